// Package venta contiene las reglas puras del ciclo de vida de una nota de
// venta: el enum canónico de estados, la tabla de transiciones y el carrito
// en memoria. Sin I/O ni dependencias de infraestructura.
package venta

import (
	"fmt"
	"strings"
)

// Estado es el enum canónico cerrado de estados de una nota de venta.
type Estado string

const (
	EstadoBorrador   Estado = "Borrador"
	EstadoFinalizado Estado = "Finalizado"
	EstadoEmitido    Estado = "Emitido"
	EstadoCancelada  Estado = "Cancelada"
)

// estadosLegados mapea cada escritura histórica (backend antiguo y UI) al
// estado canónico. Es la única tabla de traducción permitida: ningún otro
// código debe comparar strings de estado.
var estadosLegados = map[string]Estado{
	"borrador":   EstadoBorrador,
	"pendiente":  EstadoBorrador,
	"finalizado": EstadoFinalizado,
	"pagada":     EstadoFinalizado,
	"emitido":    EstadoEmitido,
	"cancelada":  EstadoCancelada,
	"anulada":    EstadoCancelada,
}

// ParseEstado normaliza cualquier escritura legada a su estado canónico.
func ParseEstado(s string) (Estado, error) {
	e, ok := estadosLegados[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("estado de venta desconocido: %q", s)
	}
	return e, nil
}

// transiciones permitidas: Borrador → Finalizado|Cancelada,
// Finalizado → Emitido|Cancelada. Emitido y Cancelada son terminales.
var transiciones = map[Estado][]Estado{
	EstadoBorrador:   {EstadoFinalizado, EstadoCancelada},
	EstadoFinalizado: {EstadoEmitido, EstadoCancelada},
	EstadoEmitido:    {},
	EstadoCancelada:  {},
}

// PuedeTransicionarA indica si la transición desde e hacia destino está permitida.
func (e Estado) PuedeTransicionarA(destino Estado) bool {
	for _, d := range transiciones[e] {
		if d == destino {
			return true
		}
	}
	return false
}

// EsTerminal indica si el estado no admite más transiciones.
func (e Estado) EsTerminal() bool {
	return len(transiciones[e]) == 0
}

// EstadoDocumento modela la segunda fase de la emisión: una nota puede quedar
// Emitido con el documento todavía pendiente de almacenar (fallo parcial) y el
// operador lo reintenta de forma idempotente.
type EstadoDocumento string

const (
	DocumentoNinguno    EstadoDocumento = ""
	DocumentoPendiente  EstadoDocumento = "pendiente"
	DocumentoAlmacenado EstadoDocumento = "almacenado"
)

// TipoEmision es el tipo de documento legal emitible sobre una venta finalizada.
type TipoEmision string

const (
	EmisionBoleta  TipoEmision = "Boleta"
	EmisionFactura TipoEmision = "Factura"
)

// ParseTipoEmision acepta las escrituras de la UI ("boleta"/"factura") y del
// backend ("Boleta"/"Factura").
func ParseTipoEmision(s string) (TipoEmision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "boleta":
		return EmisionBoleta, nil
	case "factura":
		return EmisionFactura, nil
	}
	return "", fmt.Errorf("tipo de emisión desconocido: %q", s)
}
