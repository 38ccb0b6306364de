package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/melisync/ventas-api/internal/application/dto"
	appventa "github.com/melisync/ventas-api/internal/application/venta"
)

// VentaHandler maneja la creación, consulta y transiciones de notas de venta
// (protegido). La empresa activa sale del token; cuando la ruta trae
// :companyId, debe coincidir con la del token o la petición es 403.
type VentaHandler struct {
	crear *appventa.CrearNotaUseCase
	ciclo *appventa.CicloVidaUseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(crear *appventa.CrearNotaUseCase, ciclo *appventa.CicloVidaUseCase) *VentaHandler {
	return &VentaHandler{crear: crear, ciclo: ciclo}
}

// companyFromPath verifica que el :companyId de la ruta coincida con el token.
// Devuelve la empresa y, si no coincide, responde 403 y devuelve ok=false.
func companyFromPath(c *fiber.Ctx) (string, bool) {
	companyID := GetCompanyID(c)
	if param := c.Params("companyId"); param != "" && param != companyID {
		_ = c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "FORBIDDEN", Message: "la empresa de la ruta no corresponde al token",
		})
		return "", false
	}
	return companyID, true
}

// parseFolio lee un folio numérico de un parámetro de ruta o query.
func parseFolio(c *fiber.Ctx, raw string) (int64, bool) {
	folio, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || folio <= 0 {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_FOLIO", Message: "el folio debe ser un entero positivo",
		})
		return 0, false
	}
	return folio, true
}

// Create POST /api/generated-sale-note/:status
// :status es el estado inicial solicitado (borrador o finalizado, en
// cualquier escritura legada). Con folio en el body, re-graba ese borrador.
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CrearNotaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	nota, err := h.crear.Crear(c.Context(), GetCompanyID(c), c.Params("status"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(nota)
}

// GetByFolio GET /api/search-sale-by-folio/:companyId?folio=N
func (h *VentaHandler) GetByFolio(c *fiber.Ctx) error {
	companyID, ok := companyFromPath(c)
	if !ok {
		return nil
	}
	folio, ok := parseFolio(c, c.Query("folio"))
	if !ok {
		return nil
	}
	nota, err := h.ciclo.BuscarPorFolio(c.Context(), companyID, folio)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nota)
}

// List GET /api/history-sale/:companyId
func (h *VentaHandler) List(c *fiber.Ctx) error {
	companyID, ok := companyFromPath(c)
	if !ok {
		return nil
	}
	var filtro dto.FiltroVentasRequest
	if err := c.QueryParser(&filtro); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.ciclo.Listar(c.Context(), companyID, filtro)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Patch PATCH /api/sale-note-patch/:saleId/:status
// Transición de estado explícita. Emitir no pasa por aquí.
func (h *VentaHandler) Patch(c *fiber.Ctx) error {
	folio, ok := parseFolio(c, c.Params("saleId"))
	if !ok {
		return nil
	}
	nota, err := h.ciclo.CambiarEstado(c.Context(), GetCompanyID(c), folio, c.Params("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nota)
}

// Delete DELETE /api/delete-history-sale/:companyId/:saleId
// Solo borradores; restringido a admin en el router.
func (h *VentaHandler) Delete(c *fiber.Ctx) error {
	companyID, ok := companyFromPath(c)
	if !ok {
		return nil
	}
	folio, ok := parseFolio(c, c.Params("saleId"))
	if !ok {
		return nil
	}
	if err := h.ciclo.Eliminar(c.Context(), companyID, folio); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
