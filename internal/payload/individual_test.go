package payload

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycbridge/internal/lead"
	"kycbridge/internal/provider"
)

const individualApplicantJSON = `{
	"id": "app-123",
	"inspectionId": "insp-123",
	"externalUserId": "ext-abc",
	"email": "maria@example.com",
	"phone": "5215511112222",
	"info": {
		"firstName": "Maria",
		"lastName": "Garcia",
		"dob": "1990-04-12",
		"gender": "female"
	},
	"fixedInfo": {},
	"questionnaires": [
		{
			"id": "kyc_questionnaire",
			"sections": {
				"informacionPersonal": {
					"items": {
						"rfc": {"value": "GAMA900412AB1"},
						"curp": {"value": "GAMA900412MDFRRR01"}
					}
				},
				"direccionEInformacio": {
					"items": {
						"calle": {"value": "Av Reforma"},
						"ciudad": {"value": "Ciudad de Mexico"},
						"estado": {"value": "CDMX"},
						"municipioODelegacion": {"value": "Cuauhtemoc"},
						"colonia": {"value": "Juarez"},
						"cp": {"value": "06600"},
						"numeroExterior": {"value": "222"},
						"numeroInterior": {"value": "4B"},
						"comprobanteDeDomicil": {"value": "img-proof-1"}
					}
				},
				"newSection5": {
					"items": {
						"newQuestion51": {"value": "Ingeniera"},
						"sectorIndustria": {"value": "Tecnologia"},
						"ingresoMensualMxn": {"value": "45000"},
						"esPep": {"value": "yes"}
					}
				}
			}
		}
	]
}`

func decodeApplicant(t *testing.T, raw string) *provider.Applicant {
	t.Helper()
	var applicant provider.Applicant
	require.NoError(t, json.Unmarshal([]byte(raw), &applicant))
	return &applicant
}

func testFormatter() *Formatter {
	return NewFormatter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testLead() *lead.Lead {
	return lead.New("Fallback", "Name", "fallback@example.com", "5215500000000", lead.TypeIndividual, "", time.Now())
}

func individualResources() []provider.MetadataResource {
	return []provider.MetadataResource{
		{
			ID:       "img-id-1",
			IDDocDef: provider.IDDocDef{IDDocType: "ID_CARD"},
			FileMetadata: provider.FileMetadata{
				FileName: "ine_frente.jpg",
				FileSize: 120000,
				FileType: "jpg",
			},
		},
		{
			ID:       "img-proof-1",
			IDDocDef: provider.IDDocDef{IDDocType: "FILE_ATTACHMENT"},
			FileMetadata: provider.FileMetadata{
				FileName: "recibo_cfe.pdf",
				FileSize: 80000,
				FileType: "pdf",
			},
		},
		{
			ID:       "img-other-1",
			IDDocDef: provider.IDDocDef{IDDocType: "FILE_ATTACHMENT"},
		},
		{
			ID:       "img-selfie-1",
			IDDocDef: provider.IDDocDef{IDDocType: "SELFIE"},
		},
	}
}

func TestIndividual_FullApplicant(t *testing.T) {
	applicant := decodeApplicant(t, individualApplicantJSON)

	p := testFormatter().Individual(context.Background(), applicant, testLead(), individualResources())

	require.Len(t, p.Clientes, 1)
	assert.Equal(t, "Maria Garcia", p.Clientes[0].Nombre)
	assert.Equal(t, "GAMA900412AB1", p.Clientes[0].RFC)
	assert.Equal(t, "success", p.Clientes[0].Status)

	require.Len(t, p.GlobalAsociados, 1)
	ga := p.GlobalAsociados[0]
	assert.Equal(t, "N3", ga.NivelCuenta)
	assert.Equal(t, "PF_MEX", ga.TipoPersona)
	assert.Equal(t, "10000.00", ga.ImporteMaxEvento)
	assert.Equal(t, "50000.00", ga.ImporteMaxDia)
	assert.Equal(t, "200000.00", ga.ImporteMaxMes)

	require.Len(t, p.Nombres, 1)
	n := p.Nombres[0]
	assert.Equal(t, "Garcia", n.Paterno)
	assert.Equal(t, "Maria", n.Nombre)
	assert.Equal(t, "F", n.Sexo)
	assert.Equal(t, "1990-04-12", n.FechaNacimiento)
	assert.Equal(t, "GAMA900412MDFRRR01", n.CURP)
	assert.Equal(t, "Ingeniera", n.Ocupacion)
	assert.Equal(t, "Tecnologia", n.Giro)
	assert.Equal(t, "Tecnologia", n.ActividadEconomica)
	assert.Equal(t, "45000", n.IngresoMensual)
	assert.Equal(t, "S", n.EsPep)
	assert.Equal(t, "maria@example.com", n.CorreoAlterno)
	assert.Equal(t, "5215511112222", n.TelefonoCasa)
	assert.Equal(t, "Validado", n.StatusValidIdentity)

	require.Len(t, p.Direcciones, 1)
	d := p.Direcciones[0]
	assert.Equal(t, "Av Reforma", d.Calle)
	assert.Equal(t, "Ciudad de Mexico", d.Ciudad)
	assert.Equal(t, "CDMX", d.Estado)
	assert.Equal(t, "06600", d.CP)
	assert.Equal(t, "4B", d.NoInterior)
	assert.Equal(t, "222", d.NoExterior)
	assert.Equal(t, "Cuauhtemoc", d.Municipio)
	assert.Equal(t, "Juarez", d.Colonia)
	assert.Equal(t, "Fiscal", d.TipoDireccion)

	assert.NotNil(t, p.CSF)
	assert.Empty(t, p.CSF)
	assert.NotNil(t, p.CFDI)
}

func TestIndividual_DocumentCorrelation(t *testing.T) {
	applicant := decodeApplicant(t, individualApplicantJSON)

	p := testFormatter().Individual(context.Background(), applicant, testLead(), individualResources())

	// Only the ID card and the declared proof of residence survive: the
	// unmatched attachment and the selfie are dropped.
	require.Len(t, p.Documentos, 2)

	idDoc := p.Documentos[0]
	assert.Equal(t, 1050, idDoc.IDTipoDocumento)
	assert.Equal(t, "1050_img-id-1", idDoc.SumsubReference)
	assert.Equal(t, "ine_frente.jpg", idDoc.FilenameOriginal)
	assert.Equal(t, "wf_img-id-1.jpg", idDoc.Filename)
	assert.Equal(t, "application/jpg", idDoc.Application)
	assert.Equal(t, "P", idDoc.Status)

	proof := p.Documentos[1]
	assert.Equal(t, 1053, proof.IDTipoDocumento)
	assert.Equal(t, "1053_img-proof-1", proof.SumsubReference)
	assert.Equal(t, "wf_img-proof-1.pdf", proof.Filename)
}

func TestIndividual_Defaults(t *testing.T) {
	applicant := decodeApplicant(t, `{"id": "app-1", "info": {}, "fixedInfo": {}}`)
	l := testLead()

	p := testFormatter().Individual(context.Background(), applicant, l, nil)

	require.Len(t, p.Nombres, 1)
	n := p.Nombres[0]
	assert.Equal(t, "XAXX010101000", n.RFC)
	assert.Equal(t, "XAXX010101XXXXXX00", n.CURP)
	assert.Equal(t, "M", n.Sexo)
	assert.Equal(t, "N/A", n.Ocupacion)
	assert.Equal(t, "0.00", n.IngresoMensual)
	assert.Equal(t, "N", n.EsPep)

	// Identity falls back to the lead record.
	assert.Equal(t, "Fallback", n.Nombre)
	assert.Equal(t, "Name", n.Paterno)
	assert.Equal(t, "fallback@example.com", n.CorreoAlterno)

	d := p.Direcciones[0]
	assert.Equal(t, "Desconocida", d.Calle)
	assert.Equal(t, "Desconocida", d.Ciudad)
	assert.Equal(t, "Desconocido", d.Estado)
	assert.Equal(t, "00000", d.CP)
	assert.Equal(t, "Desconocido", d.Municipio)

	assert.Empty(t, p.Documentos)
	assert.NotNil(t, p.Documentos)
}

func TestIndividual_JSONShape(t *testing.T) {
	applicant := decodeApplicant(t, individualApplicantJSON)

	p := testFormatter().Individual(context.Background(), applicant, testLead(), nil)
	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	for _, key := range []string{"Clientes", "GLOBAL_Asociados", "Nombres", "Admin", "Direcciones", "Documentos", "CSF", "CFDI"} {
		assert.Contains(t, decoded, key)
	}
	// Individual schema carries these sections as arrays.
	assert.IsType(t, []any{}, decoded["Clientes"])
	assert.IsType(t, []any{}, decoded["GLOBAL_Asociados"])

	nombres := decoded["Nombres"].([]any)
	entry := nombres[0].(map[string]any)
	assert.Equal(t, "Usuario Administrador", entry["tipo_contacto"])
	assert.NotContains(t, entry, "tipo_identificacion")
	assert.NotContains(t, entry, "porcentaje_accionario")
}

func TestIndividual_RepeatedFormattingIsByteIdentical(t *testing.T) {
	applicant := decodeApplicant(t, individualApplicantJSON)
	f := testFormatter()

	first, err := json.Marshal(f.Individual(context.Background(), applicant, testLead(), individualResources()))
	require.NoError(t, err)
	second, err := json.Marshal(f.Individual(context.Background(), applicant, testLead(), individualResources()))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
