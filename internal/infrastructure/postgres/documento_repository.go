package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/melisync/ventas-api/internal/domain"
	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
	"github.com/melisync/ventas-api/internal/domain/venta"
)

var _ repository.DocumentoRepository = (*DocumentoRepo)(nil)

// DocumentoRepo implementación de DocumentoRepository. La tabla guarda el
// registro; el blob vive en el almacén de objetos bajo object_key.
type DocumentoRepo struct {
	q Querier
}

// NewDocumentoRepository construye el adaptador.
func NewDocumentoRepository(q Querier) *DocumentoRepo {
	return &DocumentoRepo{q: q}
}

// Create registra el documento emitido. El folio es único: un segundo insert
// para el mismo folio es ErrDuplicate.
func (r *DocumentoRepo) Create(doc *entity.DocumentoVenta) error {
	query := `
		INSERT INTO documentos_venta (id, folio, company_id, tipo, object_key, tamano, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.Folio, doc.CompanyID, string(doc.Tipo), doc.ObjectKey, doc.Tamano, doc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert documento: %w", err)
	}
	return nil
}

// GetByFolio obtiene el documento de una nota dentro de la empresa.
func (r *DocumentoRepo) GetByFolio(companyID string, folio int64) (*entity.DocumentoVenta, error) {
	query := `
		SELECT id, folio, company_id, tipo, object_key, tamano, created_at
		FROM documentos_venta WHERE company_id = $1 AND folio = $2`
	var d entity.DocumentoVenta
	var tipo string
	err := r.q.QueryRow(context.Background(), query, companyID, folio).Scan(
		&d.ID, &d.Folio, &d.CompanyID, &tipo, &d.ObjectKey, &d.Tamano, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	d.Tipo = venta.TipoEmision(tipo)
	return &d, nil
}

// ListByCompany lista los documentos emitidos de la empresa, más reciente primero.
func (r *DocumentoRepo) ListByCompany(companyID string) ([]*entity.DocumentoVenta, error) {
	query := `
		SELECT id, folio, company_id, tipo, object_key, tamano, created_at
		FROM documentos_venta WHERE company_id = $1 ORDER BY folio DESC`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentoVenta
	for rows.Next() {
		var d entity.DocumentoVenta
		var tipo string
		if err := rows.Scan(&d.ID, &d.Folio, &d.CompanyID, &tipo, &d.ObjectKey, &d.Tamano, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		d.Tipo = venta.TipoEmision(tipo)
		list = append(list, &d)
	}
	return list, rows.Err()
}
