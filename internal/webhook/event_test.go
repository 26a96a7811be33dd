package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kycbridge/internal/provider"
)

func TestNormalizeEventType(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"applicantCreated", "APPLICANT_CREATED"},
		{"applicantPending", "APPLICANT_PENDING"},
		{"applicantReviewed", "APPLICANT_REVIEWED"},
		{"applicantOnHold", "APPLICANT_ON_HOLD"},
		{"applicantPersonalInfoChanged", "APPLICANT_PERSONAL_INFO_CHANGED"},
		{"videoIdentStatusChanged", "VIDEO_IDENT_STATUS_CHANGED"},
		{"reviewed", "REVIEWED"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeEventType(tc.in), "type %q", tc.in)
	}
}

func TestEventDetails(t *testing.T) {
	e := Event{
		Type:         "applicantReviewed",
		ReviewStatus: "completed",
		ReviewResult: provider.ReviewResult{
			ReviewAnswer:     "RED",
			ReviewRejectType: "FINAL",
		},
	}
	assert.Equal(t,
		"Webhook type: applicantReviewed, Review Status: completed, Answer: RED, Reject Type: FINAL",
		e.Details())

	minimal := Event{Type: "applicantCreated"}
	assert.Equal(t, "Webhook type: applicantCreated", minimal.Details())
}
