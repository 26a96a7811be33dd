// Package webhook routes provider verification events into lead state and,
// on approval, payload generation.
package webhook

import (
	"strings"

	"kycbridge/internal/provider"
)

// Event is the provider's webhook body. Only the routed fields are modeled.
type Event struct {
	ExternalUserID string                `json:"externalUserId"`
	ApplicantID    string                `json:"applicantId"`
	Type           string                `json:"type"`
	LevelName      string                `json:"levelName"`
	ReviewStatus   string                `json:"reviewStatus"`
	ReviewResult   provider.ReviewResult `json:"reviewResult"`
}

// NormalizeEventType converts the provider's camelCase event type to the
// upper-snake-case status stored on leads: applicantReviewed becomes
// APPLICANT_REVIEWED. Unknown types normalize the same way, so new provider
// events flow through without code changes.
func NormalizeEventType(eventType string) string {
	var b strings.Builder
	b.Grow(len(eventType) + 4)
	for _, r := range eventType {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// Details renders the audit-trail line for this event.
func (e Event) Details() string {
	details := "Webhook type: " + e.Type
	if e.ReviewStatus != "" {
		details += ", Review Status: " + e.ReviewStatus
	}
	if e.ReviewResult.ReviewAnswer != "" {
		details += ", Answer: " + e.ReviewResult.ReviewAnswer
	}
	if e.ReviewResult.ReviewRejectType != "" {
		details += ", Reject Type: " + e.ReviewResult.ReviewRejectType
	}
	return details
}
