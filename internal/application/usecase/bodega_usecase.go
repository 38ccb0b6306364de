package usecase

import (
	"github.com/melisync/ventas-api/internal/application/dto"
	"github.com/melisync/ventas-api/internal/domain"
	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
)

// BodegaUseCase lecturas de bodegas. El flujo de venta no crea ni modifica
// bodegas; eso pertenece al módulo de inventario.
type BodegaUseCase struct {
	repo repository.BodegaRepository
}

// NewBodegaUseCase construye el caso de uso.
func NewBodegaUseCase(repo repository.BodegaRepository) *BodegaUseCase {
	return &BodegaUseCase{repo: repo}
}

// List lista las bodegas de la empresa.
func (uc *BodegaUseCase) List(companyID string) ([]*dto.BodegaResponse, error) {
	bodegas, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BodegaResponse, 0, len(bodegas))
	for _, b := range bodegas {
		out = append(out, toBodegaResponse(b))
	}
	return out, nil
}

// GetByID obtiene una bodega de la empresa.
func (uc *BodegaUseCase) GetByID(companyID, id string) (*dto.BodegaResponse, error) {
	bodega, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bodega == nil || bodega.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toBodegaResponse(bodega), nil
}

func toBodegaResponse(b *entity.Bodega) *dto.BodegaResponse {
	return &dto.BodegaResponse{
		ID:        b.ID,
		CompanyID: b.CompanyID,
		Nombre:    b.Nombre,
		Ubicacion: b.Ubicacion,
		CreatedAt: b.CreatedAt,
	}
}
