package entity

import "time"

// Bodega representa una ubicación de stock perteneciente a una empresa.
// De solo lectura desde el flujo de venta.
type Bodega struct {
	ID        string
	CompanyID string
	Nombre    string
	Ubicacion string
	CreatedAt time.Time
	UpdatedAt time.Time
}
