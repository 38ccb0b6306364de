package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/melisync/ventas-api/internal/application/usecase"
)

// DisponibilidadHandler lista los productos vendibles por bodega (protegido).
type DisponibilidadHandler struct {
	uc *usecase.DisponibilidadUseCase
}

// NewDisponibilidadHandler construye el handler.
func NewDisponibilidadHandler(uc *usecase.DisponibilidadUseCase) *DisponibilidadHandler {
	return &DisponibilidadHandler{uc: uc}
}

// ListByBodega GET /api/disponibilidad/:warehouseId
func (h *DisponibilidadHandler) ListByBodega(c *fiber.Ctx) error {
	list, err := h.uc.ListByBodega(c.Context(), GetCompanyID(c), c.Params("warehouseId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
