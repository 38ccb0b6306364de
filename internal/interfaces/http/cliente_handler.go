package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/melisync/ventas-api/internal/application/dto"
	"github.com/melisync/ventas-api/internal/application/usecase"
)

// ClienteHandler maneja las peticiones HTTP de clientes (protegido).
type ClienteHandler struct {
	uc *usecase.ClienteUseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *usecase.ClienteUseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc}
}

// Create POST /api/clientes
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cliente, err := h.uc.Create(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cliente)
}

// List GET /api/clientes?limit=20&offset=0
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.uc.List(GetCompanyID(c), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/clientes/:id
func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	cliente, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cliente)
}

// Update PUT /api/clientes/:id
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cliente, err := h.uc.Update(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cliente)
}

// Delete DELETE /api/clientes/:id
func (h *ClienteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
