// Package metrics expone los contadores Prometheus del flujo de ventas.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotasCreadas cuenta notas de venta creadas por estado inicial.
	NotasCreadas = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ventas_notas_creadas_total",
		Help: "Notas de venta creadas, etiquetadas por estado inicial.",
	}, []string{"estado"})

	// Transiciones cuenta cambios de estado aplicados.
	Transiciones = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ventas_transiciones_total",
		Help: "Transiciones de estado de notas de venta.",
	}, []string{"desde", "hacia"})

	// DocumentosAlmacenados cuenta PDFs emitidos y almacenados con éxito.
	DocumentosAlmacenados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ventas_documentos_almacenados_total",
		Help: "Documentos de venta almacenados en el almacén de objetos.",
	})

	// SubidasFallidas cuenta emisiones que quedaron con documento pendiente.
	SubidasFallidas = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ventas_documentos_subidas_fallidas_total",
		Help: "Fallos al generar o almacenar el documento tras marcar la nota como emitida.",
	})
)
