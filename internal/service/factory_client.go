// Package service holds clients for external collaborators: the order
// fulfillment factory and the message broker.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/iliyamo/pizza-order-service/internal/model"
	"github.com/iliyamo/pizza-order-service/internal/repository"
)

// FactoryClient calls the external factory that produces and ships the
// physical order. The factory is a black box: any non-2xx response or
// transport error is treated uniformly as fulfillment failure.
type FactoryClient struct {
	URL    string
	APIKey string
	HTTP   *http.Client
}

// NewFactoryClient builds a client with a bounded request timeout so a
// stalled factory cannot hold a request slot indefinitely.
func NewFactoryClient(url, apiKey string) *FactoryClient {
	return &FactoryClient{
		URL:    url,
		APIKey: apiKey,
		HTTP:   &http.Client{Timeout: 15 * time.Second},
	}
}

// FulfillResult is the factory's success payload: a signed fulfillment
// receipt and a URL where the diner can follow the order.
type FulfillResult struct {
	JWT       string `json:"jwt"`
	ReportURL string `json:"reportUrl"`
}

type fulfillRequest struct {
	Diner dinerIdentity `json:"diner"`
	Order *model.Order  `json:"order"`
}

type dinerIdentity struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Fulfill submits a persisted order to the factory. There is no retry;
// the order row is already committed and failure here is reported to
// the caller as an upstream error without rolling it back. On failure
// the factory's reportUrl is forwarded when present so the diner can
// still complain to the right place.
func (f *FactoryClient) Fulfill(ctx context.Context, diner *model.User, order *model.Order) (*FulfillResult, error) {
	body, err := json.Marshal(fulfillRequest{
		Diner: dinerIdentity{ID: diner.ID, Name: diner.Name, Email: diner.Email},
		Order: order,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.URL+"/api/order", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.APIKey)

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("factory unreachable: %w", repository.ErrUpstream)
	}
	defer resp.Body.Close()

	var result FulfillResult
	_ = json.NewDecoder(resp.Body).Decode(&result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &result, fmt.Errorf("factory responded %d: %w", resp.StatusCode, repository.ErrUpstream)
	}
	return &result, nil
}
