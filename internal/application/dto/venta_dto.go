package dto

import "github.com/shopspring/decimal"

// LineaNotaRequest línea entrante de una nota de venta. Los totales NUNCA se
// toman del cliente: el servidor reconstruye el carrito y recalcula.
type LineaNotaRequest struct {
	ProductoID     string          `json:"id_producto"`
	Nombre         string          `json:"nombre"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CrearNotaRequest body para POST /api/generated-sale-note/:status.
// Si Folio viene presente, la operación actualiza ese borrador existente
// (incluida la re-grabación como Finalizado) en lugar de crear una nota nueva.
type CrearNotaRequest struct {
	Folio       *int64             `json:"folio,omitempty"`
	BodegaID    string             `json:"warehouse_id"`
	ClienteID   string             `json:"client_id,omitempty"`
	Observacion string             `json:"observation,omitempty"`
	Items       []LineaNotaRequest `json:"products"`
}

// LineaNotaResponse línea persistida en respuestas.
type LineaNotaResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"id_producto"`
	Nombre         string          `json:"nombre"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Total          decimal.Decimal `json:"total"`
}

// NotaVentaResponse nota de venta persistida (VentaResponse del sistema
// original). TipoEmision es null hasta que la nota se emite.
type NotaVentaResponse struct {
	Folio             int64               `json:"id"`
	CompanyID         string              `json:"company_id"`
	BodegaID          string              `json:"warehouse_id"`
	ClienteID         string              `json:"client_id,omitempty"`
	ClienteVigente    *bool               `json:"cliente_vigente,omitempty"`
	Productos         []LineaNotaResponse `json:"products"`
	CantidadProductos int64               `json:"amount_total_products"`
	Subtotal          decimal.Decimal     `json:"price_subtotal"`
	Total             decimal.Decimal     `json:"price_final"`
	TipoEmision       *string             `json:"type_emission"`
	Observacion       string              `json:"observation,omitempty"`
	Estado            string              `json:"status_sale"`
	EstadoDocumento   string              `json:"status_document,omitempty"`
	RazonSocial       string              `json:"razon_social,omitempty"`
	Rut               string              `json:"rut,omitempty"`
	CreatedAt         string              `json:"created_at"`
}

// FiltroVentasRequest query params de GET /api/history-sale/:companyId.
// Los filtros se pasan a la consulta sin re-filtrado silencioso.
type FiltroVentasRequest struct {
	ClienteID      string `query:"client_id"`
	FechaDesde     string `query:"date_start"` // YYYY-MM-DD
	Estado         string `query:"status_sale"`
	TodasLasVentas bool   `query:"all_sale"`
	Limite         int    `query:"limit"`
}

// EmitirRequest body para PUT /api/sale-note/:companyId/:saleId.
// RazonSocial y Rut son obligatorios cuando TipoEmision es factura.
type EmitirRequest struct {
	TipoEmision   string `json:"type_emission"`
	Observacion   string `json:"observation,omitempty"`
	NombreEmpresa string `json:"name_companies"`
	RazonSocial   string `json:"razon_social,omitempty"`
	Rut           string `json:"rut,omitempty"`
}

// DocumentoResponse registro de un documento emitido.
type DocumentoResponse struct {
	ID        string `json:"id"`
	Folio     int64  `json:"id_folio"`
	Tipo      string `json:"type_emission"`
	Tamano    int64  `json:"size_bytes"`
	CreatedAt string `json:"created_at"`
}
