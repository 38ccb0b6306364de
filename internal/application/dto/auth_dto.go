package dto

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Nombre    string `json:"nombre"`
	CompanyID string `json:"company_id"`
	Rol       string `json:"rol,omitempty"` // por defecto "vendedor"
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse respuesta de login/registro.
type TokenResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Rol       string `json:"rol"`
}
