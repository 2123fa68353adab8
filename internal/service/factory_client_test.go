package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/pizza-order-service/internal/model"
	"github.com/iliyamo/pizza-order-service/internal/repository"
)

func TestFulfillSuccess(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"jwt":       "aaa.bbb.ccc",
			"reportUrl": srv2URL(r),
		})
	}))
	defer srv.Close()

	client := NewFactoryClient(srv.URL, "testkey")
	diner := &model.User{ID: 1, Name: "pizza diner", Email: "d@test.com"}
	order := &model.Order{ID: 55, FranchiseID: 1, StoreID: 1}

	result, err := client.Fulfill(context.Background(), diner, order)
	require.NoError(t, err)

	assert.Equal(t, "Bearer testkey", gotAuth)
	assert.Equal(t, "aaa.bbb.ccc", result.JWT)
	assert.Contains(t, gotBody, "diner")
	assert.Contains(t, gotBody, "order")
	dinerBody := gotBody["diner"].(map[string]any)
	assert.Equal(t, "d@test.com", dinerBody["email"])
}

func srv2URL(r *http.Request) string { return "http://" + r.Host + "/report" }

func TestFulfillNon2xxIsUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"reportUrl": "http://factory/report/55"})
	}))
	defer srv.Close()

	client := NewFactoryClient(srv.URL, "badkey")
	result, err := client.Fulfill(context.Background(),
		&model.User{ID: 1}, &model.Order{ID: 55})

	assert.ErrorIs(t, err, repository.ErrUpstream)
	require.NotNil(t, result)
	assert.Equal(t, "http://factory/report/55", result.ReportURL)
}

func TestFulfillTransportErrorIsUpstreamFailure(t *testing.T) {
	client := NewFactoryClient("http://127.0.0.1:1", "key")
	_, err := client.Fulfill(context.Background(),
		&model.User{ID: 1}, &model.Order{ID: 55})
	assert.ErrorIs(t, err, repository.ErrUpstream)
}
