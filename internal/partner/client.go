// Package partner talks to the downstream banking partner's onboarding API.
package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kycbridge/pkg/sentinel"
)

//go:generate mockgen -destination=mocks/client.go -package=mocks kycbridge/internal/partner Client

// Client submits completed onboarding payloads to the partner.
type Client interface {
	// SendOnboarding posts one payload and returns the partner's raw response
	// body on acceptance.
	SendOnboarding(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
}

// HTTPClient is the production Client implementation.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) SendOnboarding(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/onboarding/sync", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build onboarding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-API-KEY", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: send onboarding: %v", sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read onboarding response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("onboarding rejected: status %d: %s", resp.StatusCode, body)
	}
	return body, nil
}
