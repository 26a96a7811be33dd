package lead

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kycbridge/internal/platform/kafka"
	"kycbridge/internal/platform/metrics"
	"kycbridge/internal/provider"
	"kycbridge/pkg/sentinel"
)

// ErrValidation marks rejected intake input. Handlers translate it to a 400.
var ErrValidation = errors.New("invalid lead input")

// CreateRequest is the intake contract for a new lead.
type CreateRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	LeadType    Type   `json:"lead_type"`
	CompanyName string `json:"company_name"`
}

// Validate checks required intake fields.
func (r CreateRequest) Validate() error {
	if r.FirstName == "" || r.LastName == "" || r.Email == "" || r.Phone == "" {
		return fmt.Errorf("%w: first_name, last_name, email and phone are required", ErrValidation)
	}
	switch r.LeadType {
	case "", TypeIndividual, TypeCompany:
	default:
		return fmt.Errorf("%w: lead_type must be individual or company", ErrValidation)
	}
	if r.LeadType == TypeCompany && r.CompanyName == "" {
		return fmt.Errorf("%w: company_name is required for company leads", ErrValidation)
	}
	return nil
}

// LevelSelector picks the provider verification level for a lead type.
type LevelSelector interface {
	LevelFor(leadType string) string
}

// Service owns lead intake. Webhook-driven mutation lives elsewhere; this
// service only creates and reads.
type Service struct {
	store     Store
	provider  provider.Client
	levels    LevelSelector
	publisher *kafka.Producer
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(store Store, providerClient provider.Client, levels LevelSelector, publisher *kafka.Producer, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		provider:  providerClient,
		levels:    levels,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// Create registers a lead and, best effort, an applicant at the provider.
// Applicant creation failure is not fatal: the lead stays in CREATED and the
// applicant can be linked later via webhook correlation.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Lead, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	leadType := req.LeadType
	if leadType == "" {
		leadType = TypeIndividual
	}

	l := New(req.FirstName, req.LastName, req.Email, req.Phone, leadType, req.CompanyName, s.now().UTC())
	if err := s.store.Create(ctx, l); err != nil {
		if errors.Is(err, sentinel.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a lead with this email and phone already exists", sentinel.ErrDuplicate)
		}
		return nil, fmt.Errorf("create lead: %w", err)
	}
	if s.metrics != nil {
		s.metrics.IncrementLeadsCreated()
	}

	applicant, err := s.provider.CreateApplicant(ctx, provider.CreateApplicantRequest{
		ExternalUserID: l.ExternalUserID,
		FirstName:      l.FirstName,
		LastName:       l.LastName,
		Email:          l.Email,
		Phone:          l.Phone,
		LevelName:      s.levels.LevelFor(string(leadType)),
		Type:           string(leadType),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "applicant creation failed, lead stays in CREATED",
			"external_user_id", l.ExternalUserID, "error", err)
		return l, nil
	}

	l.ApplicantID = applicant.ID
	l.Status = StatusKYCCreated
	l.UpdatedAt = s.now().UTC()
	l.AppendEvent(StatusKYCCreated, "Applicant created at provider: "+applicant.ID, l.UpdatedAt)
	if err := s.store.Update(ctx, l); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist applicant link",
			"external_user_id", l.ExternalUserID, "applicant_id", applicant.ID, "error", err)
		return l, nil
	}

	s.publisher.PublishStatus(ctx, kafka.StatusEvent{
		ExternalUserID: l.ExternalUserID,
		ApplicantID:    l.ApplicantID,
		Status:         l.Status,
		Details:        "applicant created",
		Timestamp:      l.UpdatedAt,
	})
	return l, nil
}

// ByExternalID returns one lead.
func (s *Service) ByExternalID(ctx context.Context, externalUserID string) (*Lead, error) {
	return s.store.FindByExternalID(ctx, externalUserID)
}

// ByEmail returns the lead holding the given email.
func (s *Service) ByEmail(ctx context.Context, email string) (*Lead, error) {
	return s.store.FindByEmail(ctx, email)
}

// ByPhone returns the lead holding the given phone.
func (s *Service) ByPhone(ctx context.Context, phone string) (*Lead, error) {
	return s.store.FindByPhone(ctx, phone)
}

// List returns all leads ordered by creation time.
func (s *Service) List(ctx context.Context) ([]*Lead, error) {
	return s.store.List(ctx)
}
