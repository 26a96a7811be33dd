package payload

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"kycbridge/internal/lead"
	"kycbridge/internal/provider"
)

// BeneficiaryKYC pairs an ownership-registry entry with that person's own
// verification, when one exists.
type BeneficiaryKYC struct {
	UBO provider.Beneficiary
	KYC *provider.Applicant
}

// LegalRepresentative finds the ownership-registry entry marked as authorized
// signatory. Returns nil when the registry has none.
func LegalRepresentative(beneficiaries []provider.Beneficiary) *provider.Beneficiary {
	for i := range beneficiaries {
		if beneficiaries[i].IsAuthorizedSignatory() {
			return &beneficiaries[i]
		}
	}
	return nil
}

// Shareholders returns the registry entries that are not the legal
// representative.
func Shareholders(beneficiaries []provider.Beneficiary, representativeApplicantID string) []provider.Beneficiary {
	var out []provider.Beneficiary
	for _, b := range beneficiaries {
		if b.ApplicantID != "" && b.ApplicantID == representativeApplicantID {
			continue
		}
		if b.IsAuthorizedSignatory() {
			continue
		}
		out = append(out, b)
	}
	return out
}

var hundred = decimal.NewFromInt(100)

// validateEntity enforces the rules the partner will reject on: the legal
// representative must have completed their own verification, and declared
// ownership must not exceed 100%. An empty registry is tolerated since some
// entities list only the representative.
func (f *Formatter) validateEntity(ctx context.Context, representativeKYC *provider.Applicant, beneficiaries []provider.Beneficiary) error {
	if representativeKYC == nil || representativeKYC.ID == "" {
		return fmt.Errorf("legal representative verification not found or missing applicant id")
	}

	total := decimal.Zero
	for _, b := range beneficiaries {
		total = total.Add(b.Share.Value)
	}
	if total.GreaterThan(hundred) {
		return fmt.Errorf("declared ownership exceeds 100%% (%s%%)", total.String())
	}

	if len(beneficiaries) == 0 {
		f.logger.WarnContext(ctx, "entity has no beneficiaries in ownership registry")
	}
	return nil
}

// Entity builds the legal-person payload. The representative's verification
// is mandatory; beneficiary verifications are optional and degrade to a basic
// contact when absent.
func (f *Formatter) Entity(ctx context.Context, applicant *provider.Applicant, l *lead.Lead, resources []provider.MetadataResource, representativeKYC *provider.Applicant, beneficiaries []BeneficiaryKYC) (*Entity, error) {
	var companyInfo provider.CompanyInfo
	if applicant.Info.CompanyInfo != nil {
		companyInfo = *applicant.Info.CompanyInfo
	}
	questionnaires := applicant.Questionnaires

	var registry []provider.Beneficiary
	if applicant.FixedInfo.CompanyInfo != nil {
		registry = applicant.FixedInfo.CompanyInfo.Beneficiaries
	}

	if err := f.validateEntity(ctx, representativeKYC, registry); err != nil {
		return nil, err
	}

	taxRegime := questionnaires.Value("company_basic_info", "tax_regime")
	incorporationCountry := questionnaires.Value("company_basic_info", "incorporation_country")
	businessSector := questionnaires.Value("business_activity", "business_sector")
	economicActivity := questionnaires.Value("business_activity", "economic_activity")
	companyPurpose := questionnaires.Value("business_activity", "company_purpose")
	annualRevenue := questionnaires.Value("financial_info", "annual_revenue")
	monthlyTransactions := questionnaires.Value("financial_info", "monthly_transactions")
	shareCapital := questionnaires.Value("financial_info", "share_capital")
	employeeCount := questionnaires.Value("financial_info", "employee_count")
	entityType := questionnaires.Value("compliance", "entity_type")
	isVulnerable := BoolToSN(questionnaires.Value("compliance", "is_vulnerable_activity"))
	vulnerableType := questionnaires.Value("compliance", "vulnerable_activity_type")
	hasForeignOps := BoolToSN(questionnaires.Value("compliance", "has_foreign_operations"))
	foreignCountries := questionnaires.Value("compliance", "foreign_countries")
	isUSPerson := BoolToSN(questionnaires.Value("compliance", "is_us_person"))
	listedCompany := BoolToSN(questionnaires.Value("compliance", "listed_company"))
	stockExchange := questionnaires.Value("compliance", "stock_exchange")

	var address provider.Address
	if len(applicant.Info.Addresses) > 0 {
		address = applicant.Info.Addresses[0]
	}
	street := coalesce(address.Street, questionnaires.Value("company_address", "street"))
	city := coalesce(address.Town, questionnaires.Value("company_address", "city"))
	state := coalesce(address.State, questionnaires.Value("company_address", "state"))
	postalCode := coalesce(address.PostCode, questionnaires.Value("company_address", "postal_code"))
	interiorNumber := questionnaires.Value("company_address", "interior_number")
	exteriorNumber := questionnaires.Value("company_address", "exterior_number")
	municipality := questionnaires.Value("company_address", "municipality")
	neighborhood := questionnaires.Value("company_address", "neighborhood")

	limits := LimitsFor(monthlyTransactions)

	// The representative leads the contact list, then beneficiaries, then the
	// operating administrator when declared.
	nombres := []any{}
	if representativeKYC != nil {
		nombres = append(nombres, mapVerifiedContact(representativeKYC, nil, "Representante Legal"))
	}
	for _, b := range beneficiaries {
		if b.KYC != nil {
			share := b.UBO.Share.Value.InexactFloat64()
			nombres = append(nombres, mapVerifiedContact(b.KYC, &share, "Beneficiario"))
		} else {
			nombres = append(nombres, mapBasicContact(b.UBO))
		}
	}

	adminFirstName := questionnaires.Value("admin", "admin_first_name")
	adminEmail := questionnaires.Value("admin", "admin_email")
	if adminFirstName != "" || adminEmail != "" {
		nombres = append(nombres, AdminContact{
			Paterno:       questionnaires.Value("admin", "admin_paternal_surname"),
			Materno:       questionnaires.Value("admin", "admin_maternal_surname"),
			Nombre:        adminFirstName,
			CorreoAlterno: adminEmail,
			TelefonoCasa:  questionnaires.Value("admin", "admin_phone"),
			TipoContacto:  "Usuario Administrador",
			Status:        "Activo",
		})
	}

	documentos := f.mapEntityDocuments(ctx, resources, entityType, isVulnerable == "S", applicant.ID, applicant.InspectionID)

	companyName := coalesce(companyInfo.CompanyName, l.CompanyName)
	return &Entity{
		Clientes: Cliente{
			Nombre: companyName,
			RFC:    companyInfo.TaxID,
			Status: "success",
		},
		GlobalAsociados: GlobalAsociado{
			NivelCuenta:              "N3",
			IDCountry:                CountryID(coalesce(companyInfo.Country, "MEX")),
			IDTimezone:               1,
			TipoPersona:              "PM_MEX",
			NombreCompleto:           companyName,
			DesactivarEmails:         "N",
			QuitarControlIPs:         "N",
			Delay30NuevosGuest:       "N",
			Delay30TransfOtrosBancos: "0",
			Delay30TransfUnalanaPay:  "0",
			UsoEstrictoGPS:           "N",
			ImporteMaxEvento:         limits.Event.StringFixed(2),
			ImporteMaxDia:            limits.Day.StringFixed(2),
			ImporteMaxMes:            limits.Month.StringFixed(2),
			TipoCliente:              "Nuevo",
			MontoEgresoNuevo:         "0.00",
			MontoEgresoAcumulado:     "0.00",
		},
		Cedula: Cedula{
			RegimenFiscal:              taxRegime,
			FechaConstitucion:          companyInfo.IncorporationDate,
			PaisConstitucion:           coalesce(incorporationCountry, "MEX"),
			Giro:                       businessSector,
			ActividadEconomica:         economicActivity,
			ObjetoSocial:               companyPurpose,
			IngresosAnuales:            annualRevenue,
			TransaccionesMensuales:     monthlyTransactions,
			CapitalSocial:              shareCapital,
			NumeroEmpleados:            employeeCount,
			TipoEntidad:                entityType,
			ActividadVulnerable:        isVulnerable,
			TipoActividadVulnerable:    onlyIf(isVulnerable == "S", vulnerableType),
			OperacionesInternacionales: hasForeignOps,
			PaisesOperacion:            onlyIf(hasForeignOps == "S", foreignCountries),
			USPerson:                   isUSPerson,
			CotizaBolsa:                listedCompany,
			BolsaValores:               onlyIf(listedCompany == "S", stockExchange),
		},
		Nombres: nombres,
		Direcciones: []DireccionID{{
			IDPais:        CountryID(coalesce(address.Country, "MEX")),
			Calle:         coalesce(street, "Desconocida"),
			Ciudad:        coalesce(city, municipality, "Desconocida"),
			Estado:        StateID(state),
			CP:            coalesce(postalCode, "00000"),
			NoInterior:    interiorNumber,
			NoExterior:    coalesce(exteriorNumber, "S/N"),
			Municipio:     coalesce(municipality, city, "Desconocido"),
			Colonia:       neighborhood,
			TipoDireccion: "Fiscal",
			Habilitado:    "S",
		}},
		Documentos: documentos,
		CSF:        []any{},
		CFDI:       []any{},
	}, nil
}

// mapVerifiedContact projects a person's own verification into an entity
// contact. share is non-nil for beneficiaries.
func mapVerifiedContact(kyc *provider.Applicant, share *float64, tipoContacto string) VerifiedContact {
	info := kyc.Info
	questionnaires := kyc.Questionnaires

	isPep := questionnaires.Value("pep_section", "is_pep")
	cargoPep := ""
	if isPep == "true" {
		cargoPep = questionnaires.Value("pep_section", "pep_position")
	}

	sexo := ""
	switch info.Gender {
	case "M", "F":
		sexo = info.Gender
	}

	tipoID := "INE"
	numeroID := ""
	if len(kyc.IDDocs) > 0 {
		tipoID = IdentificationType(kyc.IDDocs[0].IDDocType)
		numeroID = kyc.IDDocs[0].Number
	}

	validation := ValidationFor(coalesce(kyc.Review.ReviewResult.ReviewAnswer, "YELLOW"))
	giro := questionnaires.Value("economic_activity_section", "economic_activity")

	return VerifiedContact{
		Paterno:              coalesce(info.LastName, info.LastNameEs),
		Materno:              coalesce(info.MiddleName, info.MiddleNameEs),
		Nombre:               coalesce(info.FirstName, info.FirstNameEs),
		Sexo:                 sexo,
		IDPaisNacionalidad:   CountryID(info.Nationality),
		FechaNacimiento:      info.DOB,
		IDPaisNacimiento:     CountryID(coalesce(info.PlaceOfBirth, info.Nationality)),
		RFC:                  questionnaires.Value("tax_section", "rfc"),
		CURP:                 questionnaires.Value("tax_section", "curp"),
		Ocupacion:            questionnaires.Value("economic_activity_section", "occupation"),
		Giro:                 giro,
		IngresoMensual:       questionnaires.Value("income_section", "monthly_income"),
		ActividadEconomica:   giro,
		TipoContacto:         tipoContacto,
		EsPep:                BoolToSN(isPep),
		CargoPep:             cargoPep,
		CorreoAlterno:        info.Email,
		TelefonoCasa:         info.Phone,
		TipoIdentificacion:   tipoID,
		Identificacion:       numeroID,
		Status:               "Activo",
		StatusValidIdentity:  validation.Identity,
		StatusValidBiometry:  validation.Biometric,
		PorcentajeAccionario: share,
	}
}

// mapBasicContact projects a registry-only beneficiary: no verification data
// exists, so nationality and birth country stay null.
func mapBasicContact(ubo provider.Beneficiary) BasicContact {
	return BasicContact{
		Paterno:              ubo.LastName,
		Materno:              "",
		Nombre:               ubo.FirstName,
		Sexo:                 "",
		IDPaisNacionalidad:   nil,
		FechaNacimiento:      "",
		IDPaisNacimiento:     nil,
		RFC:                  "",
		CURP:                 "",
		TipoContacto:         "Beneficiario",
		PorcentajeAccionario: ubo.Share.Value.InexactFloat64(),
		EsPep:                BoolToSN(ubo.IsPep.String()),
		CargoPep:             "",
		Status:               "Activo",
	}
}

// mapEntityDocuments routes corporate documents to partner codes. COMPANY_DOC
// subtypes disambiguate the incorporation act, tax certificate, and FIEL;
// SOFOM-only and vulnerable-activity-only codes unlock based on the entity's
// compliance answers.
func (f *Formatter) mapEntityDocuments(ctx context.Context, resources []provider.MetadataResource, entityType string, vulnerable bool, applicantID, inspectionID string) []DocumentoEnt {
	documentos := []DocumentoEnt{}

	for _, resource := range resources {
		resourceID := resource.ResourceID()
		if resourceID == "" {
			f.logger.WarnContext(ctx, "document resource without id, skipping",
				"doc_type", resource.IDDocDef.IDDocType)
			continue
		}

		code := 0
		descripcion := ""
		subType := strings.ToLower(resource.IDDocDef.IDDocSubType)

		switch resource.IDDocDef.IDDocType {
		case "COMPANY_DOC":
			switch {
			case strings.Contains(subType, "article"):
				code, descripcion = DocArticlesOfIncorporation, "Acta Constitutiva"
			case strings.Contains(subType, "tax"), strings.Contains(subType, "csf"):
				code, descripcion = DocTaxCertificate, "Constancia Situación Fiscal"
			case strings.Contains(subType, "fiel"):
				code, descripcion = DocFIEL, "FIEL"
			default:
				code, descripcion = DocArticlesOfIncorporation, "Documento Empresa"
			}
		case "DIRECTORS", "DIRECTOR":
			code, descripcion = DocRepresentativeID, "Identificación Representante Legal"
		case "POWER_OF_ATTORNEY":
			code, descripcion = DocPowerOfAttorney, "Poder Notarial"
		case "PROOF_OF_RESIDENCE", "UTILITY_BILL":
			code, descripcion = DocProofOfResidence, "Comprobante de Domicilio"
		case "REGISTRATION_DOC":
			code, descripcion = DocPublicRegistry, "Registro Público de la Propiedad"
		case "SELFIE":
			code, descripcion = DocSelfie, "Selfie/Video KYC"
		}

		if strings.Contains(strings.ToUpper(entityType), "SOFOM") {
			switch resource.IDDocDef.IDDocType {
			case "TECHNICAL_OPINION":
				code, descripcion = DocTechnicalOpinion, "Dictamen Técnico"
			case "COMPLIANCE_MANUAL":
				code, descripcion = DocComplianceManual, "Manual de Cumplimiento"
			}
		}
		if vulnerable && resource.IDDocDef.IDDocType == "VULNERABLE_ACTIVITY_REGISTRATION" {
			code, descripcion = DocVulnerableRegistration, "Inscripción Actividad Vulnerable"
		}

		if code == 0 {
			continue
		}

		fileName := coalesce(resource.FileMetadata.FileName, "document_"+resourceID+".pdf")
		fileType := coalesce(resource.FileMetadata.FileType, "pdf")
		mimeType := coalesce(resource.FileMetadata.ContentType, "application/"+fileType)

		documentos = append(documentos, DocumentoEnt{
			IDTipoDocumento:    code,
			Descripcion:        descripcion,
			SumsubReference:    formatReference(code, resourceID),
			SumsubDocID:        resourceID,
			SumsubApplicantID:  applicantID,
			SumsubInspectionID: inspectionID,
			FilenameOriginal:   fileName,
			Size:               resource.FileMetadata.FileSize,
			Filename:           "wf_" + resourceID + "." + fileType,
			Filetype:           fileType,
			Application:        mimeType,
			Status:             "P",
		})
	}

	return documentos
}

func onlyIf(cond bool, value string) string {
	if cond {
		return value
	}
	return ""
}
