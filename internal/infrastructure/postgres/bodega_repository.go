package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
)

var _ repository.BodegaRepository = (*BodegaRepo)(nil)

// BodegaRepo implementación de BodegaRepository. Solo lectura: el flujo de
// venta no administra bodegas.
type BodegaRepo struct {
	q Querier
}

// NewBodegaRepository construye el adaptador.
func NewBodegaRepository(q Querier) *BodegaRepo {
	return &BodegaRepo{q: q}
}

// GetByID obtiene una bodega por ID.
func (r *BodegaRepo) GetByID(id string) (*entity.Bodega, error) {
	query := `
		SELECT id, company_id, nombre, ubicacion, created_at, updated_at
		FROM bodegas WHERE id = $1`
	var b entity.Bodega
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.CompanyID, &b.Nombre, &b.Ubicacion, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bodega: %w", err)
	}
	return &b, nil
}

// ListByCompany lista las bodegas de la empresa.
func (r *BodegaRepo) ListByCompany(companyID string) ([]*entity.Bodega, error) {
	query := `
		SELECT id, company_id, nombre, ubicacion, created_at, updated_at
		FROM bodegas WHERE company_id = $1 ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list bodegas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bodega
	for rows.Next() {
		var b entity.Bodega
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Nombre, &b.Ubicacion, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bodega: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
