// Package pdf implementa la representación gráfica del documento de venta
// (boleta o factura) emitido sobre una nota finalizada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  BOLETA/FACTURA + Folio + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECEPTOR: cliente (o razón social + rut para factura)      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / TOTAL                                  │
//	│  FOOTER: leyenda según tipo de emisión                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appventa "github.com/melisync/ventas-api/internal/application/venta"
	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/venta"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appventa.GeneradorPDF = (*MarotoGenerator)(nil)

// MarotoGenerator implementa venta.GeneradorPDF usando Maroto v2.
type MarotoGenerator struct{}

// NewMarotoGenerator construye el generador.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// GenerarDocumento genera el PDF de la nota emitida y devuelve sus bytes.
func (g *MarotoGenerator) GenerarDocumento(
	nota *entity.NotaVenta,
	lineas []*entity.LineaVenta,
	cliente *entity.Cliente,
	nombreEmpresa string,
) ([]byte, error) {
	titulo := tituloDocumento(nota.TipoEmision)
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("%s N° %d", titulo, nota.Folio), true).
		WithAuthor(nonEmpty(nombreEmpresa, "Nota de Venta"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(nota, titulo, nombreEmpresa))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(receptorRow(nota, cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(lineas) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(nota))

	if nota.Observacion != "" {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Observación: "+nota.Observacion, props.Text{
				Size: 8, Color: colorGray, Top: 2,
			}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(nota.TipoEmision))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func tituloDocumento(tipo venta.TipoEmision) string {
	if tipo == venta.EmisionFactura {
		return "FACTURA"
	}
	return "BOLETA"
}

// headerRow: empresa (izq) y tipo de documento + folio + fecha (der).
func headerRow(nota *entity.NotaVenta, titulo, nombreEmpresa string) core.Row {
	fecha := nota.CreatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(nombreEmpresa, "Nota de Venta"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+nota.BodegaID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", nota.Folio), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// receptorRow: datos del comprador. Para facturas manda la razón social y el
// rut registrados al emitir; para boletas, el cliente de la nota.
func receptorRow(nota *entity.NotaVenta, cliente *entity.Cliente) core.Row {
	nombre := "Consumidor final"
	identificacion := ""
	if cliente != nil {
		nombre = cliente.NombreCompleto()
		identificacion = cliente.Rut
	}
	if nota.TipoEmision == venta.EmisionFactura {
		nombre = nonEmpty(nota.RazonSocial, nombre)
		identificacion = nonEmpty(nota.Rut, identificacion)
	}
	detalle := "Rut: " + nonEmpty(identificacion, "—")
	if cliente != nil && cliente.Email != "" {
		detalle += "   |   Email: " + cliente.Email
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECEPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nombre, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(detalle, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea de la nota.
func tableDetailRows(lineas []*entity.LineaVenta) []core.Row {
	result := make([]core.Row, 0, len(lineas))
	for _, l := range lineas {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Cantidad),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.Nombre,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(l.PrecioUnitario.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(l.Total.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(nota *entity.NotaVenta) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(18).Add(
		col.New(3),
		col.New(3).Add(
			label("Subtotal:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(nota.Subtotal.StringFixed(0))),
			grandValue("$"+formatMoney(nota.Total.StringFixed(0))),
		),
		col.New(3),
	)
}

// footerRow: leyenda según el tipo de emisión.
func footerRow(tipo venta.TipoEmision) core.Row {
	leyenda := "Boleta de venta. Conserve este documento como comprobante de su compra."
	if tipo == venta.EmisionFactura {
		leyenda = "Factura de venta. Documento tributario válido para respaldo de crédito fiscal."
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(leyenda, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
