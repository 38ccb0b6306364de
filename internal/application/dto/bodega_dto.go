package dto

import "time"

// BodegaResponse bodega en respuestas (solo lectura desde el flujo de venta).
type BodegaResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Nombre    string    `json:"nombre"`
	Ubicacion string    `json:"ubicacion,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
