package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrNotaNoEncontrada      = errors.New("la nota de venta no fue encontrada para este folio")
	ErrDocumentoNoEncontrado = errors.New("el documento no fue encontrado para este folio")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrValidacion            = errors.New("error de validación")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado, verifique sus permisos")
	ErrTransicionInvalida    = errors.New("transición de estado no permitida")
	ErrStockInsuficiente     = errors.New("stock insuficiente para finalizar la venta")
	ErrDocumentoPendiente    = errors.New("la nota quedó emitida pero el documento no pudo almacenarse")
	ErrRespuestaInesperada   = errors.New("respuesta inesperada del backend")
)
