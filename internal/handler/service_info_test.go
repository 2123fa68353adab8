package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/pizza-order-service/internal/config"
)

func TestWelcome(t *testing.T) {
	c, rec := newJSONContext(t, http.MethodGet, "/", "")
	require.NoError(t, Welcome(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "welcome to JWT Pizza")
	assert.Contains(t, rec.Body.String(), Version)
}

func TestNotFound(t *testing.T) {
	c, rec := newJSONContext(t, http.MethodGet, "/nope", "")
	require.NoError(t, NotFound(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown endpoint")
}

func TestDocsListsEndpointsAndFactory(t *testing.T) {
	c, rec := newJSONContext(t, http.MethodGet, "/api/docs", "")
	require.NoError(t, Docs(config.Config{FactoryURL: "http://factory.test"})(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Version   string           `json:"version"`
		Endpoints []map[string]any `json:"endpoints"`
		Config    map[string]any   `json:"config"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, Version, body.Version)
	assert.NotEmpty(t, body.Endpoints)
	assert.Equal(t, "http://factory.test", body.Config["factory"])
}
