package entity

import "time"

// Roles de usuario reconocidos por el middleware RBAC.
const (
	RolAdmin    = "admin"
	RolVendedor = "vendedor"
)

// Usuario representa una cuenta que opera el flujo de ventas.
type Usuario struct {
	ID           string
	CompanyID    string
	Email        string
	Nombre       string
	PasswordHash string
	Rol          string
	CreatedAt    time.Time
}
