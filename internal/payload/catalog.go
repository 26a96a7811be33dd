// Package payload builds the partner onboarding schema out of provider
// applicant data. The partner consumes a fixed JSON shape; everything here
// exists to fill that shape and nothing else.
package payload

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Partner country identifiers, keyed by ISO 3166-1 alpha-3 code.
var countryIDs = map[string]int{
	"MEX": 1,
	"USA": 2,
	"CAN": 3,
	"ARG": 4,
	"BRA": 5,
	"CHL": 6,
	"COL": 7,
	"CRI": 8,
	"CUB": 9,
	"ECU": 10,
	"SLV": 11,
	"GTM": 12,
	"HND": 13,
	"NIC": 14,
	"PAN": 15,
	"PRY": 16,
	"PER": 17,
	"URY": 18,
	"VEN": 19,
	"ESP": 20,
}

// Partner identifiers for the states of Mexico.
var stateIDs = map[string]int{
	"AGS":   1,
	"BC":    2,
	"BCS":   3,
	"CAMP":  4,
	"COAH":  5,
	"COL":   6,
	"CHIS":  7,
	"CHIH":  8,
	"CDMX":  9,
	"DGO":   10,
	"GTO":   11,
	"GRO":   12,
	"HGO":   13,
	"JAL":   14,
	"MEX":   15,
	"MICH":  16,
	"MOR":   17,
	"NAY":   18,
	"NL":    19,
	"OAX":   20,
	"PUE":   21,
	"QRO":   22,
	"QROO":  23,
	"SLP":   24,
	"SIN":   25,
	"SON":   26,
	"TAB":   27,
	"TAMPS": 28,
	"TLAX":  29,
	"VER":   30,
	"YUC":   31,
	"ZAC":   32,
}

// CountryID maps an ISO country code to the partner's numeric identifier.
// Unknown or empty codes fall back to Mexico.
func CountryID(code string) int {
	if id, ok := countryIDs[strings.ToUpper(code)]; ok {
		return id
	}
	return 1
}

// StateID maps a Mexican state code to the partner's numeric identifier.
// Unknown or empty codes fall back to CDMX.
func StateID(code string) int {
	if id, ok := stateIDs[strings.ToUpper(code)]; ok {
		return id
	}
	return 9
}

// BoolToSN renders a flexible truthy value as the partner's "S"/"N" flag.
func BoolToSN(value string) string {
	switch strings.ToLower(value) {
	case "true", "s", "yes", "1":
		return "S"
	}
	return "N"
}

// TransactionLimits caps per-event, daily, and monthly amounts for an entity
// account, derived from the declared monthly transaction volume.
type TransactionLimits struct {
	Event decimal.Decimal
	Day   decimal.Decimal
	Month decimal.Decimal
}

func limits(event, day, month int64) TransactionLimits {
	return TransactionLimits{
		Event: decimal.NewFromInt(event),
		Day:   decimal.NewFromInt(day),
		Month: decimal.NewFromInt(month),
	}
}

var transactionLimits = map[string]TransactionLimits{
	"LESS_100K": limits(50_000, 100_000, 100_000),
	"100K_500K": limits(250_000, 500_000, 500_000),
	"500K_1M":   limits(500_000, 1_000_000, 1_000_000),
	"1M_5M":     limits(2_500_000, 5_000_000, 5_000_000),
	"5M_10M":    limits(5_000_000, 10_000_000, 10_000_000),
	"MORE_10M":  limits(10_000_000, 20_000_000, 20_000_000),
}

// LimitsFor resolves the transaction limits for a declared monthly volume
// range. Unknown or empty ranges get the most conservative tier.
func LimitsFor(monthlyTransactions string) TransactionLimits {
	if l, ok := transactionLimits[strings.ToUpper(monthlyTransactions)]; ok {
		return l
	}
	return transactionLimits["LESS_100K"]
}

// Partner names for provider identity-document types.
var identificationTypes = map[string]string{
	"ID_CARD":        "INE",
	"IDCARD":         "INE",
	"PASSPORT":       "Pasaporte",
	"DRIVERS":        "Licencia",
	"DRIVER_LICENSE": "Licencia",
	"OTHER":          "Otro",
}

// IdentificationType maps a provider document type to the partner's
// identification label. Empty means no document was recorded, which the
// partner treats as INE; unknown types are "Otro".
func IdentificationType(idDocType string) string {
	if idDocType == "" {
		return "INE"
	}
	if t, ok := identificationTypes[strings.ToUpper(idDocType)]; ok {
		return t
	}
	return "Otro"
}

// ValidationStatus is the partner's identity and biometric validation pair.
type ValidationStatus struct {
	Identity  string
	Biometric string
}

// ValidationFor translates a provider review answer into the partner's
// validation labels. Anything other than GREEN or RED is pending.
func ValidationFor(reviewAnswer string) ValidationStatus {
	switch strings.ToUpper(reviewAnswer) {
	case "GREEN":
		return ValidationStatus{Identity: "Validado", Biometric: "Validado"}
	case "RED":
		return ValidationStatus{Identity: "No Validado", Biometric: "No Validado"}
	}
	return ValidationStatus{Identity: "Pendiente", Biometric: "Pendiente"}
}

// Partner document-type codes for entity onboarding.
const (
	DocArticlesOfIncorporation = 1000
	DocTaxCertificate          = 1001
	DocRepresentativeID        = 1002
	DocSelfie                  = 1006
	DocFIEL                    = 1008
	DocPowerOfAttorney         = 1012
	DocIdentification          = 1050
	DocProofOfResidence        = 1053
	DocPublicRegistry          = 1054

	// SOFOM-regulated entities.
	DocTechnicalOpinion = 1704
	DocComplianceManual = 1705
	DocODCDesignation   = 1706
	DocSIPRES           = 1707
	DocCNBVAck          = 1708

	// Unions.
	DocStatute   = 1709
	DocUnionNote = 1710

	// Vulnerable-activity entities.
	DocVulnerableRegistration = 1711
	DocComplianceOfficer      = 1712
	DocVulnerableCertificate  = 1713
)
