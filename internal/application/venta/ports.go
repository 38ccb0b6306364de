// Package venta contiene los casos de uso del ciclo de vida de la nota de
// venta: creación/edición, consultas, transiciones de estado y emisión de
// documentos.
package venta

import (
	"context"

	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
)

// VentaTxRunner ejecuta una función dentro de una transacción que incluye los
// repos de notas y productos. Finalizar una venta descuenta stock y persiste
// la nota de forma atómica: si el descuento falla, nada queda grabado.
type VentaTxRunner interface {
	RunVenta(ctx context.Context, fn func(
		notaRepo repository.NotaVentaRepository,
		productoRepo repository.ProductoRepository,
	) error) error
}

// GeneradorPDF produce el documento legal (boleta o factura) de una nota
// emitida. Función pura de sus entradas, sin red.
type GeneradorPDF interface {
	GenerarDocumento(
		nota *entity.NotaVenta,
		lineas []*entity.LineaVenta,
		cliente *entity.Cliente,
		nombreEmpresa string,
	) ([]byte, error)
}

// AlmacenDocumentos guarda y recupera los blobs PDF por clave de objeto.
type AlmacenDocumentos interface {
	Guardar(ctx context.Context, key string, contenido []byte) error
	Obtener(ctx context.Context, key string) ([]byte, error)
}
