package dto

// CreateClienteRequest body para POST /api/clientes.
// TipoClienteID: 1 = empresa, 2 = persona natural.
type CreateClienteRequest struct {
	TipoClienteID int    `json:"tipo_cliente_id"`
	Rut           string `json:"rut"`
	Nombres       string `json:"nombres,omitempty"`
	Apellidos     string `json:"apellidos,omitempty"`
	RazonSocial   string `json:"razon_social,omitempty"`
	Direccion     string `json:"direccion,omitempty"`
	Comuna        string `json:"comuna,omitempty"`
	Ciudad        string `json:"ciudad,omitempty"`
	Extranjero    bool   `json:"extranjero,omitempty"`
	Email         string `json:"email,omitempty"`
	Telefono      string `json:"telefono,omitempty"`
}

// UpdateClienteRequest body para PUT /api/clientes/:id (campos opcionales).
type UpdateClienteRequest struct {
	Nombres     *string `json:"nombres,omitempty"`
	Apellidos   *string `json:"apellidos,omitempty"`
	RazonSocial *string `json:"razon_social,omitempty"`
	Direccion   *string `json:"direccion,omitempty"`
	Comuna      *string `json:"comuna,omitempty"`
	Ciudad      *string `json:"ciudad,omitempty"`
	Email       *string `json:"email,omitempty"`
	Telefono    *string `json:"telefono,omitempty"`
}

// ClienteResponse cliente en respuestas.
type ClienteResponse struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	TipoClienteID int    `json:"tipo_cliente_id"`
	Rut           string `json:"rut"`
	Nombre        string `json:"nombre"`
	Direccion     string `json:"direccion,omitempty"`
	Comuna        string `json:"comuna,omitempty"`
	Ciudad        string `json:"ciudad,omitempty"`
	Extranjero    bool   `json:"extranjero,omitempty"`
	Email         string `json:"email,omitempty"`
	Telefono      string `json:"telefono,omitempty"`
}
