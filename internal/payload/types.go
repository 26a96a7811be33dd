package payload

// The structs below mirror the partner's onboarding schema field for field,
// including its inconsistencies: individual payloads carry Clientes and
// GLOBAL_Asociados as single-element arrays while entity payloads carry them
// as objects, and entity addresses use a numeric state identifier where
// individual addresses use the raw string.

// Individual is the partner payload for a natural person.
type Individual struct {
	Clientes        []Cliente           `json:"Clientes"`
	GlobalAsociados []GlobalAsociado    `json:"GLOBAL_Asociados"`
	Nombres         []IndividualContact `json:"Nombres"`
	Admin           []AdminContact      `json:"Admin"`
	Direcciones     []DireccionString   `json:"Direcciones"`
	Documentos      []Documento         `json:"Documentos"`
	CSF             []any               `json:"CSF"`
	CFDI            []any               `json:"CFDI"`
}

// Entity is the partner payload for a legal person.
type Entity struct {
	Clientes        Cliente          `json:"Clientes"`
	GlobalAsociados GlobalAsociado   `json:"GLOBAL_Asociados"`
	Cedula          Cedula           `json:"Cedula"`
	Nombres         []any            `json:"Nombres"`
	Direcciones     []DireccionID    `json:"Direcciones"`
	Documentos      []DocumentoEnt   `json:"Documentos"`
	CSF             []any            `json:"CSF"`
	CFDI            []any            `json:"CFDI"`
}

// Cliente is the partner's client header record.
type Cliente struct {
	Nombre string `json:"nombre"`
	RFC    string `json:"rfc"`
	Status string `json:"status"`
}

// GlobalAsociado is the partner's account configuration record.
type GlobalAsociado struct {
	NivelCuenta                 string `json:"nivel_cuenta"`
	IDCountry                   int    `json:"id_country"`
	IDTimezone                  int    `json:"id_timezone"`
	TipoPersona                 string `json:"tipo_persona"`
	NombreCompleto              string `json:"nombre_completo"`
	DesactivarEmails            string `json:"desactivar_emails_comprobantes"`
	QuitarControlIPs            string `json:"quitar_control_IPs"`
	Delay30NuevosGuest          string `json:"delay_30_nuevos_guest"`
	Delay30TransfOtrosBancos    string `json:"delay_30_transf_otros_bancos"`
	Delay30TransfUnalanaPay     string `json:"delay_30_transf_UnalanaPAY"`
	UsoEstrictoGPS              string `json:"uso_estricto_gps"`
	ImporteMaxEvento            string `json:"importe_max_evento"`
	ImporteMaxDia               string `json:"importe_max_dia"`
	ImporteMaxMes               string `json:"importe_max_mes"`
	TipoCliente                 string `json:"tipo_cliente"`
	MontoEgresoNuevo            string `json:"monto_egreso_nuevo"`
	MontoEgresoAcumulado        string `json:"monto_egreso_acumulado"`
}

// IndividualContact is the applicant's own contact record in the individual
// schema.
type IndividualContact struct {
	Paterno             string `json:"paterno"`
	Materno             string `json:"materno"`
	Nombre              string `json:"nombre"`
	Sexo                string `json:"sexo"`
	IDPaisNacionalidad  int    `json:"id_pais_nacionalidad"`
	FechaNacimiento     string `json:"fecha_nacimiento"`
	IDPaisNacimiento    int    `json:"id_pais_nacimiento"`
	RFC                 string `json:"rfc"`
	CURP                string `json:"curp"`
	Ocupacion           string `json:"ocupacion"`
	Giro                string `json:"giro"`
	IngresoMensual      string `json:"ingreso_mensual"`
	ActividadEconomica  string `json:"actividad_economica"`
	TipoContacto        string `json:"tipo_contacto"`
	EsPep               string `json:"es_pep"`
	CargoPep            string `json:"cargo_pep"`
	CorreoAlterno       string `json:"correo_alterno"`
	TelefonoCasa        string `json:"telefono_casa"`
	Status              string `json:"status"`
	StatusValidIdentity string `json:"status_validacion_identidad"`
	StatusValidBiometry string `json:"status_validacion_biometrica"`
}

// VerifiedContact is an entity-schema contact backed by that person's own
// completed verification: the legal representative, or a beneficiary who went
// through KYC (those additionally carry a share percentage).
type VerifiedContact struct {
	Paterno             string `json:"paterno"`
	Materno             string `json:"materno"`
	Nombre              string `json:"nombre"`
	Sexo                string `json:"sexo"`
	IDPaisNacionalidad  int    `json:"id_pais_nacionalidad"`
	FechaNacimiento     string `json:"fecha_nacimiento"`
	IDPaisNacimiento    int    `json:"id_pais_nacimiento"`
	RFC                 string `json:"rfc"`
	CURP                string `json:"curp"`
	Ocupacion           string `json:"ocupacion"`
	Giro                string `json:"giro"`
	IngresoMensual      string `json:"ingreso_mensual"`
	ActividadEconomica  string `json:"actividad_economica"`
	TipoContacto        string `json:"tipo_contacto"`
	EsPep               string `json:"es_pep"`
	CargoPep            string `json:"cargo_pep"`
	CorreoAlterno       string `json:"correo_alterno"`
	TelefonoCasa        string `json:"telefono_casa"`
	TipoIdentificacion  string `json:"tipo_identificacion"`
	Identificacion      string `json:"identificacion"`
	Status              string `json:"status"`
	StatusValidIdentity string `json:"status_validacion_identidad"`
	StatusValidBiometry string `json:"status_validacion_biometrica"`

	// Set only for beneficiaries.
	PorcentajeAccionario *float64 `json:"porcentaje_accionario,omitempty"`
}

// BasicContact is a beneficiary who never completed their own verification:
// only the ownership-registry data is available.
type BasicContact struct {
	Paterno              string  `json:"paterno"`
	Materno              string  `json:"materno"`
	Nombre               string  `json:"nombre"`
	Sexo                 string  `json:"sexo"`
	IDPaisNacionalidad   *int    `json:"id_pais_nacionalidad"`
	FechaNacimiento      string  `json:"fecha_nacimiento"`
	IDPaisNacimiento     *int    `json:"id_pais_nacimiento"`
	RFC                  string  `json:"rfc"`
	CURP                 string  `json:"curp"`
	TipoContacto         string  `json:"tipo_contacto"`
	PorcentajeAccionario float64 `json:"porcentaje_accionario"`
	EsPep                string  `json:"es_pep"`
	CargoPep             string  `json:"cargo_pep"`
	Status               string  `json:"status"`
}

// AdminContact is the operating-account administrator.
type AdminContact struct {
	Paterno       string `json:"paterno"`
	Materno       string `json:"materno"`
	Nombre        string `json:"nombre"`
	CorreoAlterno string `json:"correo_alterno"`
	TelefonoCasa  string `json:"telefono_casa"`
	TipoContacto  string `json:"tipo_contacto"`
	Status        string `json:"status"`
}

// DireccionString is a fiscal address with the state as free text.
type DireccionString struct {
	IDPais        int    `json:"id_pais"`
	Calle         string `json:"calle"`
	Ciudad        string `json:"ciudad"`
	Estado        string `json:"estado"`
	CP            string `json:"cp"`
	NoInterior    string `json:"noInterior"`
	NoExterior    string `json:"noExterior"`
	Municipio     string `json:"municipio"`
	Colonia       string `json:"colonia"`
	TipoDireccion string `json:"tipo_direccion"`
	Habilitado    string `json:"habilitado"`
}

// DireccionID is a fiscal address with the state as a catalog identifier.
type DireccionID struct {
	IDPais        int    `json:"id_pais"`
	Calle         string `json:"calle"`
	Ciudad        string `json:"ciudad"`
	Estado        int    `json:"estado"`
	CP            string `json:"cp"`
	NoInterior    string `json:"noInterior"`
	NoExterior    string `json:"noExterior"`
	Municipio     string `json:"municipio"`
	Colonia       string `json:"colonia"`
	TipoDireccion string `json:"tipo_direccion"`
	Habilitado    string `json:"habilitado"`
}

// Documento references one uploaded file in the individual schema.
type Documento struct {
	IDTipoDocumento  int    `json:"id_tipo_documento"`
	Descripcion      string `json:"descripcion"`
	SumsubReference  string `json:"sumsub_reference"`
	FilenameOriginal string `json:"filename_original"`
	Size             int64  `json:"size"`
	Filename         string `json:"filename"`
	Filetype         string `json:"filetype"`
	Application      string `json:"application"`
	Status           string `json:"status"`
}

// DocumentoEnt references one uploaded file in the entity schema, which adds
// the provider correlation identifiers.
type DocumentoEnt struct {
	IDTipoDocumento    int    `json:"id_tipo_documento"`
	Descripcion        string `json:"descripcion"`
	SumsubReference    string `json:"sumsub_reference"`
	SumsubDocID        string `json:"sumsub_doc_id"`
	SumsubApplicantID  string `json:"sumsub_applicant_id"`
	SumsubInspectionID string `json:"sumsub_inspection_id"`
	FilenameOriginal   string `json:"filename_original"`
	Size               int64  `json:"size"`
	Filename           string `json:"filename"`
	Filetype           string `json:"filetype"`
	Application        string `json:"application"`
	Status             string `json:"status"`
}

// Cedula is the entity's regulatory profile sheet.
type Cedula struct {
	RegimenFiscal              string `json:"regimen_fiscal"`
	FechaConstitucion          string `json:"fecha_constitucion"`
	PaisConstitucion           string `json:"pais_constitucion"`
	Giro                       string `json:"giro"`
	ActividadEconomica         string `json:"actividad_economica"`
	ObjetoSocial               string `json:"objeto_social"`
	IngresosAnuales            string `json:"ingresos_anuales"`
	TransaccionesMensuales     string `json:"transacciones_mensuales"`
	CapitalSocial              string `json:"capital_social"`
	NumeroEmpleados            string `json:"numero_empleados"`
	TipoEntidad                string `json:"tipo_entidad"`
	ActividadVulnerable        string `json:"actividad_vulnerable"`
	TipoActividadVulnerable    string `json:"tipo_actividad_vulnerable"`
	OperacionesInternacionales string `json:"operaciones_internacionales"`
	PaisesOperacion            string `json:"paises_operacion"`
	USPerson                   string `json:"us_person"`
	CotizaBolsa                string `json:"cotiza_bolsa"`
	BolsaValores               string `json:"bolsa_valores"`
}
