package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/melisync/ventas-api/internal/application/dto"
	"github.com/melisync/ventas-api/internal/domain"
	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
)

// ClienteUseCase casos de uso CRUD para clientes de la empresa.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create registra un cliente nuevo. El rut es único por empresa.
func (uc *ClienteUseCase) Create(companyID string, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	if in.Rut == "" {
		return nil, fmt.Errorf("%w: rut es requerido", domain.ErrValidacion)
	}
	switch in.TipoClienteID {
	case entity.TipoClienteEmpresa:
		if in.RazonSocial == "" {
			return nil, fmt.Errorf("%w: una empresa requiere razón social", domain.ErrValidacion)
		}
	case entity.TipoClienteNatural:
		if in.Nombres == "" {
			return nil, fmt.Errorf("%w: una persona natural requiere nombres", domain.ErrValidacion)
		}
	default:
		return nil, fmt.Errorf("%w: tipo_cliente_id desconocido: %d", domain.ErrValidacion, in.TipoClienteID)
	}
	existente, err := uc.repo.GetByCompanyAndRut(companyID, in.Rut)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	cliente := &entity.Cliente{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		TipoClienteID: in.TipoClienteID,
		Rut:           in.Rut,
		Nombres:       in.Nombres,
		Apellidos:     in.Apellidos,
		RazonSocial:   in.RazonSocial,
		Direccion:     in.Direccion,
		Comuna:        in.Comuna,
		Ciudad:        in.Ciudad,
		Extranjero:    in.Extranjero,
		Email:         in.Email,
		Telefono:      in.Telefono,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// GetByID obtiene un cliente de la empresa.
func (uc *ClienteUseCase) GetByID(companyID, id string) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil || cliente.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toClienteResponse(cliente), nil
}

// List lista los clientes de la empresa con paginación.
func (uc *ClienteUseCase) List(companyID string, page dto.PageRequest) ([]*dto.ClienteResponse, error) {
	page.DefaultPage()
	clientes, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, toClienteResponse(c))
	}
	return out, nil
}

// Update modifica los datos de contacto. El rut y el tipo no cambian.
func (uc *ClienteUseCase) Update(companyID, id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cliente == nil || cliente.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Nombres != nil {
		cliente.Nombres = *in.Nombres
	}
	if in.Apellidos != nil {
		cliente.Apellidos = *in.Apellidos
	}
	if in.RazonSocial != nil {
		cliente.RazonSocial = *in.RazonSocial
	}
	if in.Direccion != nil {
		cliente.Direccion = *in.Direccion
	}
	if in.Comuna != nil {
		cliente.Comuna = *in.Comuna
	}
	if in.Ciudad != nil {
		cliente.Ciudad = *in.Ciudad
	}
	if in.Email != nil {
		cliente.Email = *in.Email
	}
	if in.Telefono != nil {
		cliente.Telefono = *in.Telefono
	}
	cliente.UpdatedAt = time.Now()
	if err := uc.repo.Update(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// Delete elimina un cliente. Las notas históricas conservan su client_id; el
// detalle de la venta informa si el cliente sigue vigente.
func (uc *ClienteUseCase) Delete(companyID, id string) error {
	cliente, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cliente == nil || cliente.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:            c.ID,
		CompanyID:     c.CompanyID,
		TipoClienteID: c.TipoClienteID,
		Rut:           c.Rut,
		Nombre:        c.NombreCompleto(),
		Direccion:     c.Direccion,
		Comuna:        c.Comuna,
		Ciudad:        c.Ciudad,
		Extranjero:    c.Extranjero,
		Email:         c.Email,
		Telefono:      c.Telefono,
	}
}
