package repository

import "github.com/melisync/ventas-api/internal/domain/entity"

// ProductoRepository define el puerto de disponibilidad de productos por bodega.
type ProductoRepository interface {
	GetByID(id string) (*entity.Producto, error)
	ListByBodega(companyID, bodegaID string) ([]*entity.Producto, error)
	// DescontarStock descuenta cantidad unidades del producto en la bodega.
	// Devuelve domain.ErrStockInsuficiente si no hay unidades suficientes;
	// la verificación y el descuento son una sola sentencia (sin ventana).
	DescontarStock(productoID, bodegaID string, cantidad int64) error
}
