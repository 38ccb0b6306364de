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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create persiste una cuenta nueva. El email es único.
func (r *UsuarioRepo) Create(usuario *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, company_id, email, nombre, password_hash, rol, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.CompanyID, usuario.Email, usuario.Nombre,
		usuario.PasswordHash, usuario.Rol, usuario.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByEmail obtiene una cuenta por email (para login).
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	query := `
		SELECT id, company_id, email, nombre, password_hash, rol, created_at
		FROM usuarios WHERE email = $1`
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), query, email).Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.Nombre, &u.PasswordHash, &u.Rol, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}

// GetByID obtiene una cuenta por ID.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	query := `
		SELECT id, company_id, email, nombre, password_hash, rol, created_at
		FROM usuarios WHERE id = $1`
	var u entity.Usuario
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.CompanyID, &u.Email, &u.Nombre, &u.PasswordHash, &u.Rol, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return &u, nil
}
