// Package auth registra usuarios y emite tokens de acceso.
package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/melisync/ventas-api/internal/application/dto"
	"github.com/melisync/ventas-api/internal/domain"
	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
	"github.com/melisync/ventas-api/pkg/config"
	"github.com/melisync/ventas-api/pkg/jwt"
)

// UseCase registro y login. El token lleva user_id, company_id y role; los
// handlers nunca vuelven a consultar la DB para resolver la empresa.
type UseCase struct {
	repo   repository.UsuarioRepository
	jwtCfg config.JWTConfig
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.UsuarioRepository, jwtCfg config.JWTConfig) *UseCase {
	return &UseCase{repo: repo, jwtCfg: jwtCfg}
}

// Registrar crea la cuenta y devuelve un token ya emitido.
// Si no se indica rol, la cuenta queda como vendedor.
func (uc *UseCase) Registrar(in dto.RegisterRequest) (*dto.TokenResponse, error) {
	if in.Email == "" || in.CompanyID == "" {
		return nil, fmt.Errorf("%w: email y company_id son requeridos", domain.ErrValidacion)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: la contraseña requiere al menos 8 caracteres", domain.ErrValidacion)
	}
	rol := in.Rol
	switch rol {
	case "":
		rol = entity.RolVendedor
	case entity.RolAdmin, entity.RolVendedor:
	default:
		return nil, fmt.Errorf("%w: rol desconocido: %q", domain.ErrValidacion, in.Rol)
	}
	existente, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		CompanyID:    in.CompanyID,
		Email:        in.Email,
		Nombre:       in.Nombre,
		PasswordHash: string(hash),
		Rol:          rol,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(usuario); err != nil {
		return nil, err
	}
	return uc.emitirToken(usuario)
}

// Login valida credenciales y emite un token. Credenciales incorrectas y
// cuentas inexistentes responden igual: ErrUnauthorized, sin distinguir.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.TokenResponse, error) {
	usuario, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.emitirToken(usuario)
}

func (uc *UseCase) emitirToken(usuario *entity.Usuario) (*dto.TokenResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.CompanyID, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     token,
		UserID:    usuario.ID,
		CompanyID: usuario.CompanyID,
		Rol:       usuario.Rol,
	}, nil
}
