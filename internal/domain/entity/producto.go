package entity

import "github.com/shopspring/decimal"

// Producto es un ítem vendible visto dentro de una bodega.
// CantidadDisponible es autoritativa en la base de datos; lo que reciba el
// cliente HTTP es solo una pista de un instante (se revalida al finalizar).
// Precio es nil cuando el producto aún no tiene precio publicado.
type Producto struct {
	ID                 string
	CompanyID          string
	BodegaID           string
	Titulo             string
	CantidadDisponible int64
	Precio             *decimal.Decimal
	NombreBodega       string
	NombreEmpresa      string
}
