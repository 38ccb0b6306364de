package repository

import "github.com/melisync/ventas-api/internal/domain/entity"

// ClienteRepository define el puerto de persistencia para Cliente.
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	GetByCompanyAndRut(companyID, rut string) (*entity.Cliente, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Cliente, error)
	Update(cliente *entity.Cliente) error
	Delete(id string) error
}
