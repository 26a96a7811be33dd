package lead

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type discriminates the onboarding path: individuals go through KYC,
// companies through KYB.
type Type string

const (
	TypeIndividual Type = "individual"
	TypeCompany    Type = "company"
)

// Well-known statuses assigned by this service. Webhook-derived statuses are
// open: any provider event type normalizes to an upper-snake-case status and
// overwrites the current one.
const (
	StatusCreated    = "CREATED"
	StatusKYCCreated = "KYC_CREATED"
)

// KYC result values recorded from the provider's terminal verdict.
const (
	ResultGreen = "GREEN"
	ResultRed   = "RED"
)

// EventEntry is one item of a lead's append-only audit trail.
type EventEntry struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

// RejectionDetails captures a structured rejection reason.
type RejectionDetails struct {
	Type    string `json:"type"`
	Details string `json:"details"`
}

// Lead is an onboarding subject. Created on intake, mutated exclusively by
// the webhook router once provider events start arriving, never deleted.
type Lead struct {
	ID               string            `json:"id"`
	FirstName        string            `json:"first_name"`
	LastName         string            `json:"last_name"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	LeadType         Type              `json:"lead_type"`
	CompanyName      string            `json:"company_name,omitempty"`
	ApplicantID      string            `json:"applicant_id,omitempty"`
	ExternalUserID   string            `json:"external_user_id"`
	Status           string            `json:"status"`
	KYCResult        string            `json:"kyc_result,omitempty"`
	RejectionDetails *RejectionDetails `json:"rejection_details,omitempty"`
	EventHistory     []EventEntry      `json:"event_history"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// New builds a lead in its initial state with the intake history entry.
func New(firstName, lastName, email, phone string, leadType Type, companyName string, now time.Time) *Lead {
	l := &Lead{
		ID:             uuid.NewString(),
		FirstName:      strings.TrimSpace(firstName),
		LastName:       strings.TrimSpace(lastName),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		Phone:          strings.TrimSpace(phone),
		LeadType:       leadType,
		CompanyName:    strings.TrimSpace(companyName),
		ExternalUserID: uuid.NewString(),
		Status:         StatusCreated,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	l.AppendEvent(StatusCreated, "Lead created locally", now)
	return l
}

// AppendEvent adds one entry to the audit trail. The history is append-only;
// nothing in this codebase rewrites or removes entries.
func (l *Lead) AppendEvent(status, details string, at time.Time) {
	l.EventHistory = append(l.EventHistory, EventEntry{
		Status:    status,
		Timestamp: at,
		Details:   details,
	})
}

// FullName joins the name parts the way the partner payload expects.
func (l *Lead) FullName() string {
	return strings.TrimSpace(l.FirstName + " " + l.LastName)
}
