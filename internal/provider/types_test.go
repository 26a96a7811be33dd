package provider_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycbridge/internal/provider"
)

func TestFlexStringDecodesAnyScalar(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want string
	}{
		"string":  {`"yes"`, "yes"},
		"bool":    {`true`, "true"},
		"number":  {`42`, "42"},
		"decimal": {`12.5`, "12.5"},
		"null":    {`null`, ""},
		"object":  {`{"a":1}`, ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var f provider.FlexString
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &f))
			assert.Equal(t, tc.want, f.String())
		})
	}
}

func TestResourceIDPrefersID(t *testing.T) {
	r := provider.MetadataResource{ID: "res-1", ImageID: "img-1"}
	assert.Equal(t, "res-1", r.ResourceID())

	r = provider.MetadataResource{ImageID: "img-1"}
	assert.Equal(t, "img-1", r.ResourceID())
}

func TestBeneficiaryRoleDetection(t *testing.T) {
	rep := provider.Beneficiary{Types: []string{"ubo", "authorizedSignatory"}}
	assert.True(t, rep.IsAuthorizedSignatory())

	ubo := provider.Beneficiary{Types: []string{"ubo"}}
	assert.False(t, ubo.IsAuthorizedSignatory())
}

func TestApplicantDecodesReviewVerdict(t *testing.T) {
	raw := `{
		"id": "app-1",
		"inspectionId": "insp-1",
		"review": {
			"reviewResult": {
				"reviewAnswer": "RED",
				"reviewRejectType": "FINAL",
				"rejectLabels": ["FORGERY"]
			}
		}
	}`

	var a provider.Applicant
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	assert.Equal(t, "insp-1", a.InspectionID)
	assert.Equal(t, "RED", a.Review.ReviewResult.ReviewAnswer)
	assert.Equal(t, []string{"FORGERY"}, a.Review.ReviewResult.RejectLabels)
}
