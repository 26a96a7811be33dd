package payload

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"kycbridge/internal/lead"
	"kycbridge/internal/provider"
)

// Fallback values the partner accepts for missing individual data. The RFC
// and CURP defaults are the SAT generic placeholders.
const (
	defaultRFC  = "XAXX010101000"
	defaultCURP = "XAXX010101XXXXXX00"
)

// Formatter turns provider applicant data into partner payloads.
type Formatter struct {
	logger *slog.Logger
}

func NewFormatter(logger *slog.Logger) *Formatter {
	return &Formatter{logger: logger}
}

// Individual builds the natural-person payload. Missing questionnaire data is
// filled with partner-accepted defaults; this function does not fail, only
// document mapping can come up empty.
func (f *Formatter) Individual(ctx context.Context, applicant *provider.Applicant, l *lead.Lead, resources []provider.MetadataResource) *Individual {
	info := applicant.Info
	fixed := applicant.FixedInfo
	questionnaires := applicant.Questionnaires

	firstName := coalesce(info.FirstName, fixed.FirstName, l.FirstName)
	lastName := coalesce(info.LastName, fixed.LastName, l.LastName)
	fullName := strings.TrimSpace(firstName + " " + lastName)
	email := coalesce(applicant.Email, l.Email)
	phone := coalesce(applicant.Phone, l.Phone)
	dob := coalesce(info.DOB, fixed.DOB)
	gender := strings.ToUpper(firstChar(coalesce(info.Gender, fixed.Gender, "M")))

	rfc := coalesce(questionnaires.Value("informacionPersonal", "rfc"), defaultRFC)
	curp := questionnaires.Value("informacionPersonal", "curp")

	calle := questionnaires.Value("direccionEInformacio", "calle")
	ciudad := questionnaires.Value("direccionEInformacio", "ciudad")
	estado := questionnaires.Value("direccionEInformacio", "estado")
	municipio := questionnaires.Value("direccionEInformacio", "municipioODelegacion")
	colonia := questionnaires.Value("direccionEInformacio", "colonia")
	cp := questionnaires.Value("direccionEInformacio", "cp")
	numeroExterior := questionnaires.Value("direccionEInformacio", "numeroExterior")
	numeroInterior := questionnaires.Value("direccionEInformacio", "numeroInterior")

	ocupacion := coalesce(questionnaires.Value("newSection5", "newQuestion51"), "N/A")
	giro := coalesce(questionnaires.Value("newSection5", "sectorIndustria"), "N/A")
	ingresoMensual := coalesce(questionnaires.Value("newSection5", "ingresoMensualMxn"), "0.00")
	esPep := "N"
	switch questionnaires.Value("newSection5", "esPep") {
	case "yes", "true", "YES":
		esPep = "S"
	}

	documentos := f.mapIndividualDocuments(ctx, resources, questionnaires)

	return &Individual{
		Clientes: []Cliente{{
			Nombre: fullName,
			RFC:    rfc,
			Status: "success",
		}},
		GlobalAsociados: []GlobalAsociado{{
			NivelCuenta:              "N3",
			IDCountry:                1,
			IDTimezone:               1,
			TipoPersona:              "PF_MEX",
			NombreCompleto:           fullName,
			DesactivarEmails:         "N",
			QuitarControlIPs:         "N",
			Delay30NuevosGuest:       "N",
			Delay30TransfOtrosBancos: "0",
			Delay30TransfUnalanaPay:  "0",
			UsoEstrictoGPS:           "N",
			ImporteMaxEvento:         "10000.00",
			ImporteMaxDia:            "50000.00",
			ImporteMaxMes:            "200000.00",
			TipoCliente:              "Nuevo",
			MontoEgresoNuevo:         "0.00",
			MontoEgresoAcumulado:     "0.00",
		}},
		Nombres: []IndividualContact{{
			Paterno:             lastName,
			Materno:             "",
			Nombre:              firstName,
			Sexo:                gender,
			IDPaisNacionalidad:  1,
			FechaNacimiento:     dob,
			IDPaisNacimiento:    1,
			RFC:                 rfc,
			CURP:                coalesce(curp, defaultCURP),
			Ocupacion:           ocupacion,
			Giro:                giro,
			IngresoMensual:      ingresoMensual,
			ActividadEconomica:  giro,
			TipoContacto:        "Usuario Administrador",
			EsPep:               esPep,
			CargoPep:            "",
			CorreoAlterno:       email,
			TelefonoCasa:        phone,
			Status:              "Activo",
			StatusValidIdentity: "Validado",
			StatusValidBiometry: "Validado",
		}},
		Admin: []AdminContact{{
			Paterno:       lastName,
			Materno:       "",
			Nombre:        firstName,
			CorreoAlterno: email,
			TelefonoCasa:  phone,
			TipoContacto:  "Usuario Administrador",
			Status:        "Activo",
		}},
		Direcciones: []DireccionString{{
			IDPais:        1,
			Calle:         coalesce(calle, "Desconocida"),
			Ciudad:        coalesce(ciudad, municipio, "Desconocida"),
			Estado:        coalesce(estado, "Desconocido"),
			CP:            coalesce(cp, "00000"),
			NoInterior:    numeroInterior,
			NoExterior:    numeroExterior,
			Municipio:     coalesce(municipio, "Desconocido"),
			Colonia:       coalesce(colonia, "Desconocida"),
			TipoDireccion: "Fiscal",
			Habilitado:    "S",
		}},
		Documentos: documentos,
		CSF:        []any{},
		CFDI:       []any{},
	}
}

// mapIndividualDocuments maps identity documents to partner code 1050 and the
// proof-of-residence attachment to 1053. The attachment is correlated through
// the questionnaire: only the file the applicant declared as their proof of
// residence is forwarded, every other attachment is skipped.
func (f *Formatter) mapIndividualDocuments(ctx context.Context, resources []provider.MetadataResource, questionnaires provider.Questionnaires) []Documento {
	documentos := []Documento{}

	proofRef := questionnaires.Value("direccionEInformacio", "comprobanteDeDomicil")

	for _, resource := range resources {
		resourceID := resource.ResourceID()
		if resourceID == "" {
			f.logger.WarnContext(ctx, "document resource without id, skipping",
				"doc_type", resource.IDDocDef.IDDocType)
			continue
		}

		switch resource.IDDocDef.IDDocType {
		case "ID_CARD", "PASSPORT", "IDCARD":
			documentos = append(documentos, newDocumento(1050, resource, resourceID))
		case "FILE_ATTACHMENT":
			if proofRef != "" && resourceID == proofRef {
				documentos = append(documentos, newDocumento(1053, resource, resourceID))
			} else {
				f.logger.WarnContext(ctx, "attachment does not match declared proof of residence, skipping",
					"resource_id", resourceID, "declared", proofRef)
			}
		}
	}

	if len(documentos) == 0 {
		f.logger.WarnContext(ctx, "no documents mapped for individual payload")
	}
	return documentos
}

func newDocumento(code int, resource provider.MetadataResource, resourceID string) Documento {
	fileName := coalesce(resource.FileMetadata.FileName, "document_"+resourceID+".pdf")
	fileType := coalesce(resource.FileMetadata.FileType, "pdf")
	return Documento{
		IDTipoDocumento:  code,
		Descripcion:      "",
		SumsubReference:  formatReference(code, resourceID),
		FilenameOriginal: fileName,
		Size:             resource.FileMetadata.FileSize,
		Filename:         "wf_" + resourceID + "." + fileType,
		Filetype:         fileType,
		Application:      "application/" + fileType,
		Status:           "P",
	}
}

func formatReference(code int, resourceID string) string {
	return strconv.Itoa(code) + "_" + resourceID
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstChar(s string) string {
	if s == "" {
		return ""
	}
	return s[:1]
}
