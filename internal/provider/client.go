package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"kycbridge/internal/platform/config"
)

//go:generate mockgen -destination=mocks/client.go -package=mocks kycbridge/internal/provider Client

// Client is the consumed capability surface of the verification provider.
type Client interface {
	// CreateApplicant registers a new verification subject at the given level.
	CreateApplicant(ctx context.Context, req CreateApplicantRequest) (*Applicant, error)
	// Applicant fetches the full applicant snapshot.
	Applicant(ctx context.Context, applicantID string) (*Applicant, error)
	// MetadataResources lists the document artifacts uploaded for an applicant.
	MetadataResources(ctx context.Context, applicantID string) ([]MetadataResource, error)
}

// CreateApplicantRequest carries the prefill data for a new applicant.
type CreateApplicantRequest struct {
	ExternalUserID string
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	LevelName      string
	Type           string
}

// HTTPClient talks to the provider's REST API with signed requests.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	signer  *Signer
	logger  *slog.Logger
}

func NewHTTPClient(cfg config.ProviderConfig, logger *slog.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		signer:  NewSigner(cfg.AppToken, cfg.SecretKey),
		logger:  logger,
	}
}

type createApplicantPayload struct {
	ExternalUserID string               `json:"externalUserId"`
	Lang           string               `json:"lang"`
	FixedInfo      createApplicantFixed `json:"fixedInfo"`
	Type           string               `json:"type"`
}

type createApplicantFixed struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
}

func (c *HTTPClient) CreateApplicant(ctx context.Context, req CreateApplicantRequest) (*Applicant, error) {
	path := "/resources/applicants?levelName=" + url.QueryEscape(req.LevelName)
	payload := createApplicantPayload{
		ExternalUserID: req.ExternalUserID,
		Lang:           "es",
		FixedInfo: createApplicantFixed{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Country:   "MEX",
		},
		Type: req.Type,
	}

	var applicant Applicant
	if err := c.do(ctx, http.MethodPost, path, payload, &applicant); err != nil {
		return nil, fmt.Errorf("create applicant: %w", err)
	}
	return &applicant, nil
}

func (c *HTTPClient) Applicant(ctx context.Context, applicantID string) (*Applicant, error) {
	path := "/resources/applicants/" + url.PathEscape(applicantID) + "/one"

	var applicant Applicant
	if err := c.do(ctx, http.MethodGet, path, nil, &applicant); err != nil {
		return nil, fmt.Errorf("fetch applicant %s: %w", applicantID, err)
	}
	return &applicant, nil
}

// metadataResourcesResponse wraps the resource list in an items envelope.
type metadataResourcesResponse struct {
	Items []MetadataResource `json:"items"`
}

func (c *HTTPClient) MetadataResources(ctx context.Context, applicantID string) ([]MetadataResource, error) {
	path := "/resources/applicants/" + url.PathEscape(applicantID) + "/metadata/resources"

	var resp metadataResourcesResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch metadata resources %s: %w", applicantID, err)
	}
	return resp.Items, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for key, value := range c.signer.Sign(method, path, bodyBytes) {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "provider API error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, truncate(respBody, 256))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
