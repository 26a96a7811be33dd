package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"kycbridge/internal/lead"
	"kycbridge/internal/onboarding"
	"kycbridge/internal/payload"
	"kycbridge/internal/platform/kafka"
	"kycbridge/internal/platform/metrics"
	"kycbridge/internal/provider"
	"kycbridge/pkg/sentinel"
)

// Outcome tells the handler which acknowledgement to send. Every outcome is a
// 200: the provider retries on non-2xx and none of these conditions resolve
// on retry.
type Outcome int

const (
	OutcomeProcessed Outcome = iota
	OutcomeIgnoredLevel
	OutcomeMissingExternalID
	OutcomeLeadNotFound
)

// StatusReviewed is the normalized form of the provider's terminal review
// event; it is the only status that triggers payload generation.
const StatusReviewed = "APPLICANT_REVIEWED"

// Service routes one webhook event through the lead state machine.
type Service struct {
	leads          lead.Store
	onboardings    onboarding.Store
	processed      ProcessedStore
	provider       provider.Client
	formatter      *payload.Formatter
	inbox          chan<- *onboarding.Record
	publisher      *kafka.Producer
	metrics        *metrics.Metrics
	acceptedLevels []string
	logger         *slog.Logger
	now            func() time.Time
}

func NewService(
	leads lead.Store,
	onboardings onboarding.Store,
	processed ProcessedStore,
	providerClient provider.Client,
	formatter *payload.Formatter,
	inbox chan<- *onboarding.Record,
	publisher *kafka.Producer,
	m *metrics.Metrics,
	acceptedLevels []string,
	logger *slog.Logger,
) *Service {
	return &Service{
		leads:          leads,
		onboardings:    onboardings,
		processed:      processed,
		provider:       providerClient,
		formatter:      formatter,
		inbox:          inbox,
		publisher:      publisher,
		metrics:        m,
		acceptedLevels: acceptedLevels,
		logger:         logger,
		now:            time.Now,
	}
}

// Process applies one provider event to its lead. The returned error covers
// only infrastructure faults (store unavailable); verification rejections and
// transformation failures are recorded on the lead and acknowledged.
func (s *Service) Process(ctx context.Context, e Event) (Outcome, error) {
	if e.LevelName != "" && !slices.Contains(s.acceptedLevels, e.LevelName) {
		s.logger.InfoContext(ctx, "webhook for unhandled level ignored",
			"level_name", e.LevelName,
			"type", e.Type,
		)
		if s.metrics != nil {
			s.metrics.IncrementWebhooksIgnored("level")
		}
		return OutcomeIgnoredLevel, nil
	}

	if e.ExternalUserID == "" {
		s.logger.WarnContext(ctx, "webhook without externalUserId", "type", e.Type)
		if s.metrics != nil {
			s.metrics.IncrementWebhooksIgnored("missing_external_user_id")
		}
		return OutcomeMissingExternalID, nil
	}

	l, err := s.leads.FindByExternalID(ctx, e.ExternalUserID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "webhook for unknown lead",
				"external_user_id", e.ExternalUserID,
				"type", e.Type,
			)
			if s.metrics != nil {
				s.metrics.IncrementWebhooksIgnored("lead_not_found")
			}
			return OutcomeLeadNotFound, nil
		}
		return OutcomeProcessed, fmt.Errorf("find lead %s: %w", e.ExternalUserID, err)
	}

	if e.ApplicantID != "" {
		if l.ApplicantID != "" && l.ApplicantID != e.ApplicantID {
			// Last writer wins: the provider occasionally re-creates
			// applicants, and its id is the authoritative one.
			s.logger.WarnContext(ctx, "applicant id mismatch, adopting webhook value",
				"lead_id", l.ID,
				"stored", l.ApplicantID,
				"received", e.ApplicantID,
			)
		}
		l.ApplicantID = e.ApplicantID
	}

	now := s.now().UTC()
	newStatus := NormalizeEventType(e.Type)
	answer := e.ReviewResult.ReviewAnswer

	if newStatus == StatusReviewed && answer == lead.ResultGreen {
		l.KYCResult = lead.ResultGreen
		s.handleApproval(ctx, l, now)
	}

	if answer == lead.ResultRed {
		l.KYCResult = lead.ResultRed
		if e.ReviewResult.ReviewRejectType != "" {
			details := "No specific labels"
			if len(e.ReviewResult.RejectLabels) > 0 {
				details = strings.Join(e.ReviewResult.RejectLabels, ", ")
			}
			l.RejectionDetails = &lead.RejectionDetails{
				Type:    e.ReviewResult.ReviewRejectType,
				Details: details,
			}
		}
	}

	l.Status = newStatus
	l.AppendEvent(newStatus, e.Details(), now)
	l.UpdatedAt = now
	if err := s.leads.Update(ctx, l); err != nil {
		return OutcomeProcessed, fmt.Errorf("update lead %s: %w", l.ID, err)
	}

	s.publisher.PublishStatus(ctx, kafka.StatusEvent{
		ExternalUserID: l.ExternalUserID,
		ApplicantID:    l.ApplicantID,
		Status:         l.Status,
		Details:        e.Details(),
		Timestamp:      now,
	})
	return OutcomeProcessed, nil
}

// handleApproval generates and queues the partner payload for an approved
// lead. Failures never propagate: they are recorded as a RED result with a
// structured rejection so operators see why no payload exists.
func (s *Service) handleApproval(ctx context.Context, l *lead.Lead, now time.Time) {
	switch err := s.processed.MarkProcessed(ctx, l.ExternalUserID, l.ApplicantID); {
	case errors.Is(err, sentinel.ErrAlreadyProcessed):
		s.logger.InfoContext(ctx, "approval already processed, skipping payload generation",
			"lead_id", l.ID,
			"applicant_id", l.ApplicantID,
		)
		return
	case err != nil:
		// Guard unavailable: proceed rather than drop the approval. A
		// duplicate payload record is recoverable, a missing one is not.
		s.logger.WarnContext(ctx, "replay guard unavailable, processing anyway",
			"lead_id", l.ID, "error", err)
	}

	isCompany := l.LeadType == lead.TypeCompany
	if err := s.generatePayload(ctx, l, now); err != nil {
		s.logger.ErrorContext(ctx, "payload generation failed",
			"lead_id", l.ID,
			"lead_type", l.LeadType,
			"error", err,
		)
		failStatus, failType := "PAYLOAD_GENERATION_FAILED", "PAYLOAD_GENERATION_ERROR"
		if isCompany {
			failStatus, failType = "KYB_PROCESSING_FAILED", "KYB_PROCESSING_ERROR"
		}
		l.KYCResult = lead.ResultRed
		l.RejectionDetails = &lead.RejectionDetails{Type: failType, Details: err.Error()}
		l.AppendEvent(failStatus, err.Error(), now)
		if s.metrics != nil {
			s.metrics.IncrementProcessingFailures(string(l.LeadType))
		}
		return
	}

	successStatus := "PAYLOAD_GENERATED"
	if isCompany {
		successStatus = "KYB_PAYLOAD_GENERATED"
	}
	l.AppendEvent(successStatus, "Partner payload generated and queued", now)
	if s.metrics != nil {
		s.metrics.IncrementPayloadsGenerated(string(l.LeadType))
	}
}

func (s *Service) generatePayload(ctx context.Context, l *lead.Lead, now time.Time) error {
	if l.ApplicantID == "" {
		return fmt.Errorf("lead has no applicant id")
	}

	start := time.Now()
	var (
		applicant *provider.Applicant
		resources []provider.MetadataResource
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := s.provider.Applicant(gctx, l.ApplicantID)
		applicant = a
		return err
	})
	g.Go(func() error {
		r, err := s.provider.MetadataResources(gctx, l.ApplicantID)
		resources = r
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fetch applicant data: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveProviderFetch(time.Since(start))
	}

	var body any
	if l.LeadType == lead.TypeCompany {
		entity, err := s.generateEntity(ctx, applicant, l, resources)
		if err != nil {
			return err
		}
		body = entity
	} else {
		body = s.formatter.Individual(ctx, applicant, l, resources)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal partner payload: %w", err)
	}

	record := onboarding.NewRecord(l.ExternalUserID, l.ApplicantID, l.ID, string(l.LeadType), raw, now)
	if err := s.onboardings.Create(ctx, record); err != nil {
		return fmt.Errorf("persist onboarding record: %w", err)
	}
	s.enqueue(ctx, record)
	return nil
}

// generateEntity assembles everything the legal-person formatter needs: the
// representative's own verification plus one optional verification per
// beneficial owner, fetched concurrently.
func (s *Service) generateEntity(ctx context.Context, applicant *provider.Applicant, l *lead.Lead, resources []provider.MetadataResource) (*payload.Entity, error) {
	// The registry lives on the self-declared branch of the snapshot, same
	// place the formatter validates it from.
	var registry []provider.Beneficiary
	if applicant.FixedInfo.CompanyInfo != nil {
		registry = applicant.FixedInfo.CompanyInfo.Beneficiaries
	}

	rep := payload.LegalRepresentative(registry)
	var (
		repKYC         *provider.Applicant
		repApplicantID string
	)
	if rep != nil && rep.ApplicantID != "" {
		repApplicantID = rep.ApplicantID
		kyc, err := s.provider.Applicant(ctx, rep.ApplicantID)
		if err != nil {
			return nil, fmt.Errorf("fetch representative verification: %w", err)
		}
		repKYC = kyc
	}

	shareholders := payload.Shareholders(registry, repApplicantID)
	pairs := make([]payload.BeneficiaryKYC, len(shareholders))
	g, gctx := errgroup.WithContext(ctx)
	for i, b := range shareholders {
		pairs[i] = payload.BeneficiaryKYC{UBO: b}
		if b.ApplicantID == "" {
			continue
		}
		g.Go(func() error {
			kyc, err := s.provider.Applicant(gctx, b.ApplicantID)
			if err != nil {
				// A beneficiary without their own verification still
				// appears in the payload as a basic contact.
				s.logger.WarnContext(gctx, "beneficiary verification fetch failed",
					"lead_id", l.ID,
					"applicant_id", b.ApplicantID,
					"error", err,
				)
				return nil
			}
			pairs[i].KYC = kyc
			return nil
		})
	}
	_ = g.Wait()

	return s.formatter.Entity(ctx, applicant, l, resources, repKYC, pairs)
}

// enqueue hands the record to the dispatcher without blocking webhook
// handling. A full or absent inbox is fine: Recover picks up anything
// persisted as pending.
func (s *Service) enqueue(ctx context.Context, record *onboarding.Record) {
	if s.inbox == nil {
		return
	}
	select {
	case s.inbox <- record:
	default:
		s.logger.WarnContext(ctx, "dispatcher inbox full, record left for recovery",
			"record_id", record.ID)
	}
}
