package repository

import "github.com/melisync/ventas-api/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByEmail(email string) (*entity.Usuario, error)
	GetByID(id string) (*entity.Usuario, error)
}
