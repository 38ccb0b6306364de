package repository

import (
	"time"

	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/venta"
)

// FiltroVentas son los filtros del listado histórico. Se pasan a SQL sin
// re-filtrado silencioso del lado de la aplicación.
type FiltroVentas struct {
	ClienteID      string
	FechaDesde     *time.Time
	Estado         venta.Estado // "" = todos
	TodasLasVentas bool         // true ignora Limite
	Limite         int
}

// NotaVentaRepository define el puerto de persistencia para NotaVenta y sus líneas.
type NotaVentaRepository interface {
	// Create persiste cabecera y líneas; asigna y devuelve el folio.
	Create(nota *entity.NotaVenta, lineas []*entity.LineaVenta) (int64, error)
	// ReplaceBorrador reemplaza cabecera y líneas de un borrador existente.
	ReplaceBorrador(nota *entity.NotaVenta, lineas []*entity.LineaVenta) error
	GetByFolio(companyID string, folio int64) (*entity.NotaVenta, error)
	GetLineas(folio int64) ([]*entity.LineaVenta, error)
	List(companyID string, filtro FiltroVentas) ([]*entity.NotaVenta, error)
	UpdateEstado(folio int64, estado venta.Estado) error
	// MarcarEmitida fija tipo de emisión, encabezado de empresa y datos de
	// factura, y deja el documento en estado pendiente (fase 1 de la emisión).
	MarcarEmitida(folio int64, tipo venta.TipoEmision, observacion, nombreEmpresa, razonSocial, rut string) error
	UpdateEstadoDocumento(folio int64, estado venta.EstadoDocumento) error
	Delete(companyID string, folio int64) error
}
