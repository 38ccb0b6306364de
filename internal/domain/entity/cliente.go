package entity

import "time"

// Tipos de cliente según tipo_cliente_id.
const (
	TipoClienteEmpresa = 1
	TipoClienteNatural = 2
)

// Cliente representa un comprador: persona natural o empresa (discriminado por TipoClienteID).
type Cliente struct {
	ID            string
	CompanyID     string
	TipoClienteID int
	Rut           string // identificador tributario
	Nombres       string // persona natural
	Apellidos     string
	RazonSocial   string // empresa
	Direccion     string
	Comuna        string
	Ciudad        string
	Extranjero    bool
	Email         string
	Telefono      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NombreCompleto devuelve el nombre a mostrar según el tipo de cliente.
func (c *Cliente) NombreCompleto() string {
	if c.TipoClienteID == TipoClienteEmpresa && c.RazonSocial != "" {
		return c.RazonSocial
	}
	if c.Apellidos == "" {
		return c.Nombres
	}
	return c.Nombres + " " + c.Apellidos
}
