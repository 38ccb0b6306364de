package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/melisync/ventas-api/internal/application/usecase"
)

// BodegaHandler maneja las lecturas de bodegas (protegido).
type BodegaHandler struct {
	uc *usecase.BodegaUseCase
}

// NewBodegaHandler construye el handler.
func NewBodegaHandler(uc *usecase.BodegaUseCase) *BodegaHandler {
	return &BodegaHandler{uc: uc}
}

// List GET /api/bodegas
func (h *BodegaHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/bodegas/:id
func (h *BodegaHandler) GetByID(c *fiber.Ctx) error {
	bodega, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(bodega)
}
