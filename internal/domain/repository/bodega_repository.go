package repository

import "github.com/melisync/ventas-api/internal/domain/entity"

// BodegaRepository define el puerto de lectura para Bodega.
// El flujo de venta nunca crea ni modifica bodegas.
type BodegaRepository interface {
	GetByID(id string) (*entity.Bodega, error)
	ListByCompany(companyID string) ([]*entity.Bodega, error)
}
