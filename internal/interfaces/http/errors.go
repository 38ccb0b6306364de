// Package http expone la API REST del flujo de ventas sobre Fiber.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/melisync/ventas-api/internal/application/dto"
	"github.com/melisync/ventas-api/internal/domain"
)

// respondError traduce los errores de dominio al sobre único de error de la
// API. Todos los handlers pasan por aquí: ningún error de negocio sale con
// otra forma.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotaNoEncontrada):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "SALE_NOT_FOUND", Message: domain.ErrNotaNoEncontrada.Error()})
	case errors.Is(err, domain.ErrDocumentoNoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "DOCUMENT_NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrValidacion), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrTransicionInvalida):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrStockInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrDocumentoPendiente):
		// La nota quedó Emitido; el documento se reintenta con la operación de retry.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "DOCUMENT_PENDING", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
