package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/melisync/ventas-api/internal/application/dto"
	appventa "github.com/melisync/ventas-api/internal/application/venta"
)

// DocumentoHandler maneja la emisión y el ciclo del documento PDF (protegido).
type DocumentoHandler struct {
	uc *appventa.EmisionUseCase
}

// NewDocumentoHandler construye el handler.
func NewDocumentoHandler(uc *appventa.EmisionUseCase) *DocumentoHandler {
	return &DocumentoHandler{uc: uc}
}

// Emitir PUT /api/sale-note/:companyId/:saleId
// Emisión bifásica: si la fase de almacenamiento falla, la respuesta es 502
// DOCUMENT_PENDING y la nota queda Emitido con documento pendiente.
func (h *DocumentoHandler) Emitir(c *fiber.Ctx) error {
	companyID, ok := companyFromPath(c)
	if !ok {
		return nil
	}
	folio, ok := parseFolio(c, c.Params("saleId"))
	if !ok {
		return nil
	}
	var in dto.EmitirRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	nota, err := h.uc.Emitir(c.Context(), companyID, folio, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nota)
}

// Subir POST /api/document-sale
// Multipart: campo "id_folio" + archivo "documento". El contenido debe ser un
// PDF; si no lo es, la respuesta es 422, distinta de cualquier fallo de subida.
func (h *DocumentoHandler) Subir(c *fiber.Ctx) error {
	folio, ok := parseFolio(c, c.FormValue("id_folio"))
	if !ok {
		return nil
	}
	fileHeader, err := c.FormFile("documento")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo documento requerido"})
	}
	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	defer file.Close()
	contenido, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"})
	}
	doc, err := h.uc.SubirDocumento(c.Context(), GetCompanyID(c), folio, contenido)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(doc)
}

// Reintentar POST /api/document-sale/:companyId/:folioId/retry
// Idempotente: con el documento ya almacenado devuelve el registro existente.
func (h *DocumentoHandler) Reintentar(c *fiber.Ctx) error {
	companyID, ok := companyFromPath(c)
	if !ok {
		return nil
	}
	folio, ok := parseFolio(c, c.Params("folioId"))
	if !ok {
		return nil
	}
	doc, err := h.uc.ReintentarSubida(c.Context(), companyID, folio)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(doc)
}

// Descargar GET /api/document-sale/:companyId/:folioId
func (h *DocumentoHandler) Descargar(c *fiber.Ctx) error {
	companyID, ok := companyFromPath(c)
	if !ok {
		return nil
	}
	folio, ok := parseFolio(c, c.Params("folioId"))
	if !ok {
		return nil
	}
	contenido, nombre, err := h.uc.Descargar(c.Context(), companyID, folio)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", nombre))
	return c.Send(contenido)
}

// ListarEmitidas GET /api/history-sale-issue/:companyId
func (h *DocumentoHandler) ListarEmitidas(c *fiber.Ctx) error {
	companyID, ok := companyFromPath(c)
	if !ok {
		return nil
	}
	docs, err := h.uc.ListarEmitidas(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(docs)
}
