package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycbridge/internal/health"
)

func TestHealthEndpoint(t *testing.T) {
	r := chi.NewRouter()
	health.New("kycbridge", nil, nil).Register(r)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status  string  `json:"status"`
		Service string  `json:"service"`
		Uptime  float64 `json:"uptime"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OK", body.Status)
	assert.Equal(t, "kycbridge", body.Service)
	assert.GreaterOrEqual(t, body.Uptime, 0.0)
}
