package dto

import "github.com/shopspring/decimal"

// ProductoDisponibleResponse un producto vendible dentro de una bodega.
// La cantidad es una pista de un instante: la verificación autoritativa
// ocurre al finalizar la venta.
type ProductoDisponibleResponse struct {
	ID                 string           `json:"id"`
	Titulo             string           `json:"title"`
	CantidadDisponible int64            `json:"available_quantity"`
	Precio             *decimal.Decimal `json:"price"` // null = sin precio publicado
	NombreBodega       string           `json:"warehouse_name,omitempty"`
	NombreEmpresa      string           `json:"company_name,omitempty"`
}
