package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hamed0406/iptest/internal/domain"
)

// ErrServiceUnreachable means the client could not talk to the test server at
// all. It is deliberately distinct from a target being unreachable: the
// former is an infrastructure failure, the latter is a normal result.
var ErrServiceUnreachable = errors.New("could not reach test server")

// LookupResponse mirrors the server's lookup wire format.
type LookupResponse struct {
	RequestID    string               `json:"request_id"`
	Target       string               `json:"target"`
	Status       domain.Status        `json:"status"`
	SuccessCount int                  `json:"success_count"`
	Attempts     int                  `json:"attempts"`
	Latency      *domain.LatencyStats `json:"latency_ms"`
	Results      []domain.Attempt     `json:"attempt_results"`
	Timing       domain.Timing        `json:"timing"`
}

type Client struct {
	Endpoint Endpoint
	HTTP     *http.Client
}

func New(ep Endpoint) *Client {
	return &Client{
		Endpoint: ep,
		HTTP:     &http.Client{Timeout: ep.Timeout},
	}
}

// Lookup asks the server to probe target. A transport-level failure wraps
// ErrServiceUnreachable; everything the server classified comes back as a
// normal response.
func (c *Client) Lookup(ctx context.Context, target string) (*LookupResponse, error) {
	payload, err := json.Marshal(map[string]any{
		"target":               target,
		"client_sent_epoch_ms": time.Now().UTC().UnixMilli(),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint.BaseURL+"/lookup", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrServiceUnreachable, c.Endpoint.BaseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var out LookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("malformed server response: %w", err)
	}
	return &out, nil
}

// Health checks server liveness via GET /health.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint.BaseURL+"/health", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w (%s): %v", ErrServiceUnreachable, c.Endpoint.BaseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned %s", resp.Status)
	}

	var h struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		return "", fmt.Errorf("malformed server response: %w", err)
	}
	return h.Status, nil
}
