// Package onboarding persists generated partner payloads and drives their
// delivery.
package onboarding

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Delivery states of a generated payload.
const (
	StatusPending = "PENDING"
	StatusSent    = "SENT"
	StatusFailed  = "FAILED"
)

// Record is one generated partner payload together with its delivery state.
// Payloads are persisted before any delivery attempt so a crash between
// generation and delivery loses nothing.
type Record struct {
	ID              string          `json:"id"`
	ExternalUserID  string          `json:"external_user_id"`
	ApplicantID     string          `json:"applicant_id"`
	LeadID          string          `json:"lead_id"`
	LeadType        string          `json:"lead_type"`
	Payload         json.RawMessage `json:"payload"`
	Status          string          `json:"status"`
	PartnerResponse json.RawMessage `json:"partner_response,omitempty"`
	ErrorDetails    string          `json:"error_details,omitempty"`
	SentAt          *time.Time      `json:"sent_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewRecord builds a pending record for a freshly generated payload.
func NewRecord(externalUserID, applicantID, leadID, leadType string, payload json.RawMessage, now time.Time) *Record {
	return &Record{
		ID:             uuid.NewString(),
		ExternalUserID: externalUserID,
		ApplicantID:    applicantID,
		LeadID:         leadID,
		LeadType:       leadType,
		Payload:        payload,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// MarkSent records a successful delivery.
func (r *Record) MarkSent(response json.RawMessage, at time.Time) {
	r.Status = StatusSent
	r.PartnerResponse = response
	r.ErrorDetails = ""
	r.SentAt = &at
	r.UpdatedAt = at
}

// MarkFailed records a failed delivery attempt.
func (r *Record) MarkFailed(details string, at time.Time) {
	r.Status = StatusFailed
	r.ErrorDetails = details
	r.UpdatedAt = at
}
