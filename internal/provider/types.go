package provider

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Applicant is the provider's record of a verification subject. Only the
// fields this service reads are modeled; the provider returns many more.
type Applicant struct {
	ID             string         `json:"id"`
	InspectionID   string         `json:"inspectionId"`
	ExternalUserID string         `json:"externalUserId"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Info           Info           `json:"info"`
	FixedInfo      Info           `json:"fixedInfo"`
	Questionnaires Questionnaires `json:"questionnaires"`
	IDDocs         []IDDoc        `json:"idDocs"`
	Review         Review         `json:"review"`
}

// Info carries identity fields. The same shape appears twice on an applicant:
// Info holds provider-verified data, FixedInfo holds self-declared data.
type Info struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	MiddleName   string `json:"middleName"`
	FirstNameEs  string `json:"firstNameEs"`
	LastNameEs   string `json:"lastNameEs"`
	MiddleNameEs string `json:"middleNameEs"`
	DOB          string `json:"dob"`
	Gender       string `json:"gender"`
	Nationality  string `json:"nationality"`
	PlaceOfBirth string `json:"placeOfBirth"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`

	Addresses   []Address    `json:"addresses,omitempty"`
	CompanyInfo *CompanyInfo `json:"companyInfo,omitempty"`
}

// Address is a provider-verified postal address (entities only in practice).
type Address struct {
	Street   string `json:"street"`
	Town     string `json:"town"`
	State    string `json:"state"`
	PostCode string `json:"postCode"`
	Country  string `json:"country"`
}

// CompanyInfo is present on entity applicants.
type CompanyInfo struct {
	CompanyName       string        `json:"companyName"`
	TaxID             string        `json:"taxId"`
	Country           string        `json:"country"`
	IncorporationDate string        `json:"incorporationDate"`
	Beneficiaries     []Beneficiary `json:"beneficiaries"`
}

// Beneficiary is one entry of an entity's ownership registry. The types set
// marks roles: "authorizedSignatory" for the legal representative, "ubo" for
// beneficial owners. ApplicantID links to that person's own KYC applicant,
// when they completed one.
type Beneficiary struct {
	ApplicantID string     `json:"applicantId"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Types       []string   `json:"types"`
	Share       Share      `json:"share"`
	IsPep       FlexString `json:"isPep"`
}

// IsAuthorizedSignatory reports whether this entry marks the legal representative.
func (b Beneficiary) IsAuthorizedSignatory() bool {
	for _, t := range b.Types {
		if t == "authorizedSignatory" {
			return true
		}
	}
	return false
}

// Share is a fractional ownership stake in percent.
type Share struct {
	Value decimal.Decimal `json:"value"`
}

// Review carries the provider's verdict for a verification cycle.
type Review struct {
	ReviewResult ReviewResult `json:"reviewResult"`
}

// ReviewResult is the terminal verdict: GREEN approved, RED rejected,
// YELLOW pending.
type ReviewResult struct {
	ReviewAnswer     string   `json:"reviewAnswer"`
	ReviewRejectType string   `json:"reviewRejectType"`
	RejectLabels     []string `json:"rejectLabels"`
}

// IDDoc is one identity document recorded on an applicant.
type IDDoc struct {
	IDDocType string `json:"idDocType"`
	Number    string `json:"number"`
}

// MetadataResource is one uploaded or captured artifact, as returned by the
// document-metadata endpoint.
type MetadataResource struct {
	ID           string       `json:"id"`
	ImageID      string       `json:"imageId"`
	IDDocDef     IDDocDef     `json:"idDocDef"`
	FileMetadata FileMetadata `json:"fileMetadata"`
}

// ResourceID returns the stable identifier of the artifact. The metadata
// endpoint uses "id"; older inspection payloads use "imageId".
func (r MetadataResource) ResourceID() string {
	if r.ID != "" {
		return r.ID
	}
	return r.ImageID
}

// IDDocDef classifies a resource by document type and subtype.
type IDDocDef struct {
	IDDocType    string `json:"idDocType"`
	IDDocSubType string `json:"idDocSubType"`
}

// FileMetadata describes the underlying file of a resource.
type FileMetadata struct {
	FileName    string `json:"fileName"`
	FileSize    int64  `json:"fileSize"`
	FileType    string `json:"fileType"`
	ContentType string `json:"contentType"`
}

// FlexString decodes a JSON value that the provider serializes inconsistently
// as a string, boolean, or number, into its string form.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	*f = ""
	return nil
}

func (f FlexString) String() string { return string(f) }
