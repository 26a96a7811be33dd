package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"kycbridge/internal/lead"
	"kycbridge/internal/lead/handler/mocks"
	"kycbridge/internal/platform/middleware"
	"kycbridge/pkg/sentinel"
)

//go:generate mockgen -source=handler.go -destination=mocks/lead-mocks.go -package=mocks Service

type LeadHandlerSuite struct {
	suite.Suite
}

func TestLeadHandlerSuite(t *testing.T) {
	suite.Run(t, new(LeadHandlerSuite))
}

// staticValidator accepts any token and returns a fixed subject.
type staticValidator struct{}

func (staticValidator) ValidateToken(string) (*middleware.JWTClaims, error) {
	return &middleware.JWTClaims{Subject: "ops"}, nil
}

// rejectingValidator fails every token.
type rejectingValidator struct{}

func (rejectingValidator) ValidateToken(string) (*middleware.JWTClaims, error) {
	return nil, errors.New("bad token")
}

func newTestRouter(t *testing.T, validator middleware.JWTValidator) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(mockService, logger, validator).Register(r)
	return r, mockService
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer test-token")
	return req
}

func (s *LeadHandlerSuite) TestCreateLead() {
	r, mockService := newTestRouter(s.T(), staticValidator{})

	created := lead.New("Ana", "Lopez", "ana@example.com", "5215512345678", lead.TypeIndividual, "", time.Now())
	mockService.EXPECT().
		Create(gomock.Any(), lead.CreateRequest{
			FirstName: "Ana",
			LastName:  "Lopez",
			Email:     "ana@example.com",
			Phone:     "5215512345678",
		}).
		Return(created, nil)

	body, err := json.Marshal(map[string]string{
		"first_name": "Ana",
		"last_name":  "Lopez",
		"email":      "ana@example.com",
		"phone":      "5215512345678",
	})
	require.NoError(s.T(), err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authed(httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader(body))))

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp struct {
		Status string    `json:"status"`
		Data   lead.Lead `json:"data"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "SUCCESS", resp.Status)
	assert.Equal(s.T(), "ana@example.com", resp.Data.Email)
	assert.NotEmpty(s.T(), resp.Data.ExternalUserID)
}

func (s *LeadHandlerSuite) TestCreateLeadValidationError() {
	r, mockService := newTestRouter(s.T(), staticValidator{})

	mockService.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, lead.ErrValidation)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authed(httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader([]byte(`{}`)))))

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "ERROR", resp["status"])
}

func (s *LeadHandlerSuite) TestCreateLeadDuplicate() {
	r, mockService := newTestRouter(s.T(), staticValidator{})

	mockService.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, sentinel.ErrDuplicate)

	body := []byte(`{"first_name":"Ana","last_name":"Lopez","email":"ana@example.com","phone":"5215512345678"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authed(httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader(body))))

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *LeadHandlerSuite) TestCreateLeadMalformedBody() {
	r, _ := newTestRouter(s.T(), staticValidator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authed(httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader([]byte(`{not json`)))))

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *LeadHandlerSuite) TestLookupByExternalID() {
	r, mockService := newTestRouter(s.T(), staticValidator{})

	found := lead.New("Ana", "Lopez", "ana@example.com", "5215512345678", lead.TypeIndividual, "", time.Now())
	mockService.EXPECT().
		ByExternalID(gomock.Any(), found.ExternalUserID).
		Return(found, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authed(httptest.NewRequest(http.MethodGet, "/leads/"+found.ExternalUserID, nil)))

	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *LeadHandlerSuite) TestLookupNotFound() {
	r, mockService := newTestRouter(s.T(), staticValidator{})

	mockService.EXPECT().
		ByEmail(gomock.Any(), "ghost@example.com").
		Return(nil, sentinel.ErrNotFound)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authed(httptest.NewRequest(http.MethodGet, "/leads/by-email/ghost@example.com", nil)))

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *LeadHandlerSuite) TestList() {
	r, mockService := newTestRouter(s.T(), staticValidator{})

	mockService.EXPECT().
		List(gomock.Any()).
		Return([]*lead.Lead{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authed(httptest.NewRequest(http.MethodGet, "/leads", nil)))

	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *LeadHandlerSuite) TestMissingToken() {
	r, _ := newTestRouter(s.T(), staticValidator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leads", nil))

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *LeadHandlerSuite) TestInvalidToken() {
	r, _ := newTestRouter(s.T(), rejectingValidator{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authed(httptest.NewRequest(http.MethodGet, "/leads", nil)))

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}
