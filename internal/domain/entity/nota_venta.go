package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/melisync/ventas-api/internal/domain/venta"
)

// NotaVenta es la representación persistida de una venta. El folio es el
// identificador numérico externo: clave para búsquedas y para el documento
// emitido (relación 1:1).
type NotaVenta struct {
	Folio             int64
	CompanyID         string
	BodegaID          string
	ClienteID         string // vacío mientras la nota es borrador sin comprador
	CantidadProductos int64
	Subtotal          decimal.Decimal
	Total             decimal.Decimal
	TipoEmision       venta.TipoEmision // "" hasta que la nota se emite
	Observacion       string
	Estado            venta.Estado
	EstadoDocumento   venta.EstadoDocumento
	RazonSocial       string // solo facturas
	Rut               string // solo facturas
	NombreEmpresa     string // encabezado del documento, fijado al emitir
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LineaVenta es una línea persistida de una nota de venta.
type LineaVenta struct {
	ID             string
	Folio          int64
	ProductoID     string
	Nombre         string
	Cantidad       int64
	PrecioUnitario decimal.Decimal
	Total          decimal.Decimal
}

// DocumentoVenta es el registro del PDF emitido, atado 1:1 a la nota por folio.
// ObjectKey apunta al blob en el almacén de objetos.
type DocumentoVenta struct {
	ID        string
	Folio     int64
	CompanyID string
	Tipo      venta.TipoEmision
	ObjectKey string
	Tamano    int64
	CreatedAt time.Time
}
