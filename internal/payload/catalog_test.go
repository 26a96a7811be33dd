package payload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryID(t *testing.T) {
	assert.Equal(t, 1, CountryID("MEX"))
	assert.Equal(t, 2, CountryID("usa"))
	assert.Equal(t, 20, CountryID("ESP"))
	assert.Equal(t, 1, CountryID(""))
	assert.Equal(t, 1, CountryID("FRA"))
}

func TestStateID(t *testing.T) {
	assert.Equal(t, 9, StateID("CDMX"))
	assert.Equal(t, 19, StateID("nl"))
	assert.Equal(t, 32, StateID("ZAC"))
	assert.Equal(t, 9, StateID(""))
	assert.Equal(t, 9, StateID("TX"))
}

func TestBoolToSN(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "s", "S", "yes", "YES", "1"} {
		assert.Equal(t, "S", BoolToSN(v), "value %q", v)
	}
	for _, v := range []string{"", "false", "no", "n", "0", "maybe"} {
		assert.Equal(t, "N", BoolToSN(v), "value %q", v)
	}
}

func TestLimitsFor(t *testing.T) {
	tests := []struct {
		rng                string
		event, day, month  string
	}{
		{"LESS_100K", "50000.00", "100000.00", "100000.00"},
		{"100K_500K", "250000.00", "500000.00", "500000.00"},
		{"500K_1M", "500000.00", "1000000.00", "1000000.00"},
		{"1M_5M", "2500000.00", "5000000.00", "5000000.00"},
		{"5M_10M", "5000000.00", "10000000.00", "10000000.00"},
		{"MORE_10M", "10000000.00", "20000000.00", "20000000.00"},
		{"more_10m", "10000000.00", "20000000.00", "20000000.00"},
		{"", "50000.00", "100000.00", "100000.00"},
		{"UNKNOWN", "50000.00", "100000.00", "100000.00"},
	}
	for _, tc := range tests {
		l := LimitsFor(tc.rng)
		assert.Equal(t, tc.event, l.Event.StringFixed(2), "range %q", tc.rng)
		assert.Equal(t, tc.day, l.Day.StringFixed(2), "range %q", tc.rng)
		assert.Equal(t, tc.month, l.Month.StringFixed(2), "range %q", tc.rng)
	}
}

func TestIdentificationType(t *testing.T) {
	assert.Equal(t, "INE", IdentificationType("ID_CARD"))
	assert.Equal(t, "INE", IdentificationType("idcard"))
	assert.Equal(t, "Pasaporte", IdentificationType("PASSPORT"))
	assert.Equal(t, "Licencia", IdentificationType("DRIVERS"))
	assert.Equal(t, "Licencia", IdentificationType("DRIVER_LICENSE"))
	assert.Equal(t, "INE", IdentificationType(""))
	assert.Equal(t, "Otro", IdentificationType("RESIDENCE_PERMIT"))
}

func TestValidationFor(t *testing.T) {
	assert.Equal(t, ValidationStatus{"Validado", "Validado"}, ValidationFor("GREEN"))
	assert.Equal(t, ValidationStatus{"No Validado", "No Validado"}, ValidationFor("RED"))
	assert.Equal(t, ValidationStatus{"Pendiente", "Pendiente"}, ValidationFor("YELLOW"))
	assert.Equal(t, ValidationStatus{"Pendiente", "Pendiente"}, ValidationFor(""))
}
