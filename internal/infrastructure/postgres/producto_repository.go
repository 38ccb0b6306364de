package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/melisync/ventas-api/internal/domain"
	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

// ProductoRepo implementación de ProductoRepository (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador.
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `
		SELECT p.id, p.company_id, p.bodega_id, p.titulo, p.cantidad_disponible, p.precio,
			b.nombre, COALESCE(e.nombre, '')
		FROM productos p
		JOIN bodegas b ON b.id = p.bodega_id
		LEFT JOIN empresas e ON e.id = p.company_id
		WHERE p.id = $1`
	var p entity.Producto
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.BodegaID, &p.Titulo, &p.CantidadDisponible, &p.Precio,
		&p.NombreBodega, &p.NombreEmpresa,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// ListByBodega lista los productos vendibles de la bodega. Un precio NULL se
// entrega como nil: el producto aparece en el listado pero no es agregable.
func (r *ProductoRepo) ListByBodega(companyID, bodegaID string) ([]*entity.Producto, error) {
	query := `
		SELECT p.id, p.company_id, p.bodega_id, p.titulo, p.cantidad_disponible, p.precio,
			b.nombre, COALESCE(e.nombre, '')
		FROM productos p
		JOIN bodegas b ON b.id = p.bodega_id
		LEFT JOIN empresas e ON e.id = p.company_id
		WHERE p.company_id = $1 AND p.bodega_id = $2
		ORDER BY p.titulo`
	rows, err := r.q.Query(context.Background(), query, companyID, bodegaID)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.BodegaID, &p.Titulo, &p.CantidadDisponible, &p.Precio,
			&p.NombreBodega, &p.NombreEmpresa,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// DescontarStock descuenta cantidad unidades en una sola sentencia: la
// condición cantidad_disponible >= $3 y el descuento son atómicos, sin
// ventana de carrera entre verificación y escritura.
func (r *ProductoRepo) DescontarStock(productoID, bodegaID string, cantidad int64) error {
	tag, err := r.q.Exec(context.Background(), `
		UPDATE productos
		SET cantidad_disponible = cantidad_disponible - $3, updated_at = now()
		WHERE id = $1 AND bodega_id = $2 AND cantidad_disponible >= $3`,
		productoID, bodegaID, cantidad,
	)
	if err != nil {
		return fmt.Errorf("descontar stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStockInsuficiente
	}
	return nil
}
