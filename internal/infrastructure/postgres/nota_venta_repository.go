package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
	"github.com/melisync/ventas-api/internal/domain/venta"
)

var _ repository.NotaVentaRepository = (*NotaVentaRepo)(nil)

// NotaVentaRepo implementación de NotaVentaRepository (usable con pool o tx).
// El folio lo asigna la secuencia de la tabla: nunca lo propone el cliente.
type NotaVentaRepo struct {
	q Querier
}

// NewNotaVentaRepository construye el adaptador.
func NewNotaVentaRepository(q Querier) *NotaVentaRepo {
	return &NotaVentaRepo{q: q}
}

// Los campos de texto opcionales se guardan como NULL, no como cadena vacía.
const notaColumns = `folio, company_id, bodega_id, COALESCE(cliente_id, ''), cantidad_productos,
		subtotal, total, COALESCE(tipo_emision, ''), COALESCE(observacion, ''), estado,
		COALESCE(estado_documento, ''), COALESCE(razon_social, ''), COALESCE(rut, ''),
		COALESCE(nombre_empresa, ''), created_at, updated_at`

// Create persiste cabecera y líneas; asigna y devuelve el folio.
func (r *NotaVentaRepo) Create(nota *entity.NotaVenta, lineas []*entity.LineaVenta) (int64, error) {
	query := `
		INSERT INTO notas_venta (company_id, bodega_id, cliente_id, cantidad_productos,
			subtotal, total, observacion, estado, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, NULLIF($7, ''), $8, $9, $10)
		RETURNING folio`
	var folio int64
	err := r.q.QueryRow(context.Background(), query,
		nota.CompanyID, nota.BodegaID, nota.ClienteID, nota.CantidadProductos,
		nota.Subtotal, nota.Total, nota.Observacion, string(nota.Estado),
		nota.CreatedAt, nota.UpdatedAt,
	).Scan(&folio)
	if err != nil {
		return 0, fmt.Errorf("insert nota: %w", err)
	}
	if err := r.insertLineas(folio, lineas); err != nil {
		return 0, err
	}
	return folio, nil
}

// ReplaceBorrador reemplaza cabecera y líneas de un borrador existente.
func (r *NotaVentaRepo) ReplaceBorrador(nota *entity.NotaVenta, lineas []*entity.LineaVenta) error {
	query := `
		UPDATE notas_venta
		SET bodega_id = $2, cliente_id = NULLIF($3, ''), cantidad_productos = $4,
			subtotal = $5, total = $6, observacion = NULLIF($7, ''), estado = $8, updated_at = $9
		WHERE folio = $1 AND company_id = $10`
	tag, err := r.q.Exec(context.Background(), query,
		nota.Folio, nota.BodegaID, nota.ClienteID, nota.CantidadProductos,
		nota.Subtotal, nota.Total, nota.Observacion, string(nota.Estado),
		nota.UpdatedAt, nota.CompanyID,
	)
	if err != nil {
		return fmt.Errorf("update nota: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update nota: folio %d no existe", nota.Folio)
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM lineas_venta WHERE folio = $1`, nota.Folio); err != nil {
		return fmt.Errorf("delete lineas: %w", err)
	}
	return r.insertLineas(nota.Folio, lineas)
}

func (r *NotaVentaRepo) insertLineas(folio int64, lineas []*entity.LineaVenta) error {
	for _, l := range lineas {
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO lineas_venta (id, folio, producto_id, nombre, cantidad, precio_unitario, total)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.ID, folio, l.ProductoID, l.Nombre, l.Cantidad, l.PrecioUnitario, l.Total,
		)
		if err != nil {
			return fmt.Errorf("insert linea: %w", err)
		}
	}
	return nil
}

// GetByFolio obtiene una nota por folio dentro de la empresa.
func (r *NotaVentaRepo) GetByFolio(companyID string, folio int64) (*entity.NotaVenta, error) {
	query := `SELECT ` + notaColumns + ` FROM notas_venta WHERE company_id = $1 AND folio = $2`
	n, err := scanNota(r.q.QueryRow(context.Background(), query, companyID, folio))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nota: %w", err)
	}
	return n, nil
}

// GetLineas obtiene las líneas de una nota.
func (r *NotaVentaRepo) GetLineas(folio int64) ([]*entity.LineaVenta, error) {
	query := `
		SELECT id, folio, producto_id, nombre, cantidad, precio_unitario, total
		FROM lineas_venta WHERE folio = $1 ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query, folio)
	if err != nil {
		return nil, fmt.Errorf("list lineas: %w", err)
	}
	defer rows.Close()
	var list []*entity.LineaVenta
	for rows.Next() {
		var l entity.LineaVenta
		if err := rows.Scan(&l.ID, &l.Folio, &l.ProductoID, &l.Nombre, &l.Cantidad, &l.PrecioUnitario, &l.Total); err != nil {
			return nil, fmt.Errorf("scan linea: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// List devuelve el historial de la empresa, más reciente primero. Los filtros
// se aplican en SQL tal como llegan.
func (r *NotaVentaRepo) List(companyID string, filtro repository.FiltroVentas) ([]*entity.NotaVenta, error) {
	query := `SELECT ` + notaColumns + ` FROM notas_venta WHERE company_id = $1`
	args := []any{companyID}
	if filtro.ClienteID != "" {
		args = append(args, filtro.ClienteID)
		query += fmt.Sprintf(" AND cliente_id = $%d", len(args))
	}
	if filtro.Estado != "" {
		args = append(args, string(filtro.Estado))
		query += fmt.Sprintf(" AND estado = $%d", len(args))
	}
	if filtro.FechaDesde != nil {
		args = append(args, *filtro.FechaDesde)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	query += " ORDER BY folio DESC"
	if !filtro.TodasLasVentas && filtro.Limite > 0 {
		args = append(args, filtro.Limite)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notas: %w", err)
	}
	defer rows.Close()
	var list []*entity.NotaVenta
	for rows.Next() {
		n, err := scanNota(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nota: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// UpdateEstado cambia el estado de la nota.
func (r *NotaVentaRepo) UpdateEstado(folio int64, estado venta.Estado) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notas_venta SET estado = $2, updated_at = now() WHERE folio = $1`,
		folio, string(estado),
	)
	if err != nil {
		return fmt.Errorf("update estado: %w", err)
	}
	return nil
}

// MarcarEmitida fija tipo de emisión, encabezado y datos de factura, pasa la
// nota a Emitido y deja el documento pendiente (fase 1 de la emisión). El
// nombre de empresa se persiste para que un reintento regenere el mismo
// encabezado.
func (r *NotaVentaRepo) MarcarEmitida(folio int64, tipo venta.TipoEmision, observacion, nombreEmpresa, razonSocial, rut string) error {
	query := `
		UPDATE notas_venta
		SET estado = $2, tipo_emision = $3, estado_documento = $4,
			observacion = COALESCE(NULLIF($5, ''), observacion),
			nombre_empresa = NULLIF($6, ''),
			razon_social = NULLIF($7, ''), rut = NULLIF($8, ''), updated_at = now()
		WHERE folio = $1`
	_, err := r.q.Exec(context.Background(), query,
		folio, string(venta.EstadoEmitido), string(tipo), string(venta.DocumentoPendiente),
		observacion, nombreEmpresa, razonSocial, rut,
	)
	if err != nil {
		return fmt.Errorf("marcar emitida: %w", err)
	}
	return nil
}

// UpdateEstadoDocumento cierra (o reabre) la fase 2 de la emisión.
func (r *NotaVentaRepo) UpdateEstadoDocumento(folio int64, estado venta.EstadoDocumento) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE notas_venta SET estado_documento = NULLIF($2, ''), updated_at = now() WHERE folio = $1`,
		folio, string(estado),
	)
	if err != nil {
		return fmt.Errorf("update estado documento: %w", err)
	}
	return nil
}

// Delete elimina la nota y sus líneas (ON DELETE CASCADE).
func (r *NotaVentaRepo) Delete(companyID string, folio int64) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM notas_venta WHERE company_id = $1 AND folio = $2`, companyID, folio)
	if err != nil {
		return fmt.Errorf("delete nota: %w", err)
	}
	return nil
}

func scanNota(row pgx.Row) (*entity.NotaVenta, error) {
	var n entity.NotaVenta
	var estado, tipoEmision, estadoDocumento string
	err := row.Scan(
		&n.Folio, &n.CompanyID, &n.BodegaID, &n.ClienteID, &n.CantidadProductos,
		&n.Subtotal, &n.Total, &tipoEmision, &n.Observacion, &estado,
		&estadoDocumento, &n.RazonSocial, &n.Rut, &n.NombreEmpresa,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	n.Estado = venta.Estado(estado)
	n.TipoEmision = venta.TipoEmision(tipoEmision)
	n.EstadoDocumento = venta.EstadoDocumento(estadoDocumento)
	return &n, nil
}
