package provider_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycbridge/internal/provider"
)

func decodeQuestionnaires(t *testing.T, raw string) provider.Questionnaires {
	t.Helper()

	var qs provider.Questionnaires
	require.NoError(t, json.Unmarshal([]byte(raw), &qs))
	return qs
}

func TestQuestionnaireItemsShape(t *testing.T) {
	qs := decodeQuestionnaires(t, `[{
		"id": "kyc_peibo",
		"sections": {
			"informacionPersonal": {
				"items": {
					"curp": {"value": "GOMC900101HDFRRL09"},
					"rfc": {"value": "GOMC900101AB1"}
				}
			}
		}
	}]`)

	assert.Equal(t, "GOMC900101HDFRRL09", qs.Value("informacionPersonal", "curp"))
	assert.Equal(t, "GOMC900101AB1", qs.Value("informacionPersonal", "rfc"))
}

func TestQuestionnaireDirectShape(t *testing.T) {
	qs := decodeQuestionnaires(t, `[{
		"id": "kyb_peibo",
		"sections": {
			"company_basic_info": {
				"regimen_fiscal": {"value": "601"},
				"giro": "Servicios financieros"
			}
		}
	}]`)

	assert.Equal(t, "601", qs.Value("company_basic_info", "regimen_fiscal"))
	assert.Equal(t, "Servicios financieros", qs.Value("company_basic_info", "giro"),
		"bare string answers decode the same as {value: ...} objects")
}

func TestQuestionnaireItemsWinOverDirect(t *testing.T) {
	qs := decodeQuestionnaires(t, `[{
		"sections": {
			"s": {
				"items": {"f": {"value": "from-items"}},
				"f": {"value": "from-direct"}
			}
		}
	}]`)

	assert.Equal(t, "from-items", qs.Value("s", "f"))
}

func TestQuestionnaireAbsenceIsEmpty(t *testing.T) {
	qs := decodeQuestionnaires(t, `[{
		"sections": {
			"informacionPersonal": {"items": {"curp": {"value": "X"}}}
		}
	}]`)

	assert.Empty(t, qs.Value("informacionPersonal", "missing"))
	assert.Empty(t, qs.Value("missingSection", "curp"))
	assert.Empty(t, provider.Questionnaires(nil).Value("any", "any"))
}

func TestQuestionnaireSearchesAllEntries(t *testing.T) {
	qs := decodeQuestionnaires(t, `[
		{"sections": {"a": {"items": {"x": {"value": "1"}}}}},
		{"sections": {"b": {"items": {"y": {"value": "2"}}}}}
	]`)

	assert.Equal(t, "1", qs.Value("a", "x"))
	assert.Equal(t, "2", qs.Value("b", "y"))
}
