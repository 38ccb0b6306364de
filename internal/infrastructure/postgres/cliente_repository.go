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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, company_id, tipo_cliente_id, rut, nombres, apellidos, razon_social,
		direccion, comuna, ciudad, extranjero, email, telefono, created_at, updated_at`

// Create persiste un nuevo cliente.
func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.CompanyID, cliente.TipoClienteID, cliente.Rut,
		cliente.Nombres, cliente.Apellidos, cliente.RazonSocial,
		cliente.Direccion, cliente.Comuna, cliente.Ciudad, cliente.Extranjero,
		cliente.Email, cliente.Telefono, cliente.CreatedAt, cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE id = $1`
	c, err := scanCliente(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetByCompanyAndRut obtiene un cliente por empresa y rut.
func (r *ClienteRepo) GetByCompanyAndRut(companyID, rut string) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE company_id = $1 AND rut = $2`
	c, err := scanCliente(r.q.QueryRow(context.Background(), query, companyID, rut))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente by rut: %w", err)
	}
	return c, nil
}

// ListByCompany lista clientes de la empresa con paginación.
func (r *ClienteRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + `
		FROM clientes WHERE company_id = $1 ORDER BY nombres, razon_social LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza los datos de contacto de un cliente.
func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	query := `
		UPDATE clientes SET nombres = $2, apellidos = $3, razon_social = $4, direccion = $5,
			comuna = $6, ciudad = $7, email = $8, telefono = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.Nombres, cliente.Apellidos, cliente.RazonSocial, cliente.Direccion,
		cliente.Comuna, cliente.Ciudad, cliente.Email, cliente.Telefono, cliente.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID. Las notas históricas conservan su cliente_id.
func (r *ClienteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.TipoClienteID, &c.Rut, &c.Nombres, &c.Apellidos, &c.RazonSocial,
		&c.Direccion, &c.Comuna, &c.Ciudad, &c.Extranjero, &c.Email, &c.Telefono,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
