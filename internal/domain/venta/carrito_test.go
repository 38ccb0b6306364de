package venta_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melisync/ventas-api/internal/domain/venta"
)

func precio(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func productoA() venta.ProductoVendible {
	return venta.ProductoVendible{ID: "1", Titulo: "A", Precio: precio(1000)}
}

// Agregar dos veces el mismo producto debe fusionar en una sola línea con
// cantidad 2, nunca duplicar: {idProducto:1, cantidad:2, precioUnitario:1000,
// total:2000}; subtotal = total = 2000.
func TestCarrito_AgregarMismoProductoFusionaLinea(t *testing.T) {
	c := venta.NuevoCarrito()

	require.True(t, c.AgregarItem(productoA()))
	require.True(t, c.AgregarItem(productoA()))

	lineas := c.Lineas()
	require.Len(t, lineas, 1, "re-agregar el mismo producto no debe duplicar la línea")
	assert.Equal(t, "1", lineas[0].ProductoID)
	assert.EqualValues(t, 2, lineas[0].Cantidad)
	assert.True(t, lineas[0].PrecioUnitario.Equal(decimal.NewFromInt(1000)))
	assert.True(t, lineas[0].Total.Equal(decimal.NewFromInt(2000)))
	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(2000)))
	assert.True(t, c.Total().Equal(c.Subtotal()), "sin modelo de impuestos: total == subtotal")
}

// Un producto sin precio publicado no puede agregarse: no-op silencioso.
func TestCarrito_ProductoSinPrecioNoSeAgrega(t *testing.T) {
	c := venta.NuevoCarrito()

	ok := c.AgregarItem(venta.ProductoVendible{ID: "9", Titulo: "sin precio", Precio: nil})

	assert.False(t, ok)
	assert.True(t, c.Vacio())
	assert.True(t, c.Total().IsZero())
}

// ActualizarCantidad(key, 0) elimina la línea, y una cantidad negativa se
// comporta exactamente igual que 0.
func TestCarrito_CantidadCeroONegativaEliminaLinea(t *testing.T) {
	casos := []struct {
		nombre   string
		cantidad int64
	}{
		{"cero", 0},
		{"negativa", -5},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			c := venta.NuevoCarrito()
			c.AgregarItem(productoA())
			key := c.Lineas()[0].Key

			c.ActualizarCantidad(key, tc.cantidad)

			assert.True(t, c.Vacio(), "la línea debe eliminarse")
			assert.True(t, c.Total().IsZero())
		})
	}
}

func TestCarrito_ActualizarCantidadRecalculaTotal(t *testing.T) {
	c := venta.NuevoCarrito()
	c.AgregarItem(productoA())
	key := c.Lineas()[0].Key

	c.ActualizarCantidad(key, 7)

	l := c.Lineas()[0]
	assert.EqualValues(t, 7, l.Cantidad)
	assert.True(t, l.Total.Equal(decimal.NewFromInt(7000)))
	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(7000)))
}

func TestCarrito_QuitarItemEliminaIncondicionalmente(t *testing.T) {
	c := venta.NuevoCarrito()
	c.AgregarItem(productoA())
	c.AgregarItem(venta.ProductoVendible{ID: "2", Titulo: "B", Precio: precio(500)})

	c.QuitarItem(c.Lineas()[0].Key)

	lineas := c.Lineas()
	require.Len(t, lineas, 1)
	assert.Equal(t, "2", lineas[0].ProductoID)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(500)))
}

// Re-agregar un producto después de quitarlo genera una key distinta, para que
// la UI no confunda la línea nueva con la eliminada.
func TestCarrito_ReAgregarGeneraKeyDistinta(t *testing.T) {
	c := venta.NuevoCarrito()
	c.AgregarItem(productoA())
	primeraKey := c.Lineas()[0].Key
	c.QuitarItem(primeraKey)

	c.AgregarItem(productoA())

	assert.NotEqual(t, primeraKey, c.Lineas()[0].Key)
}

// Propiedad general: tras cualquier secuencia de mutaciones, el total es la
// suma de cantidad × precioUnitario de las líneas restantes y ninguna línea
// queda con cantidad ≤ 0.
func TestCarrito_InvarianteDeTotales(t *testing.T) {
	c := venta.NuevoCarrito()
	c.AgregarLinea("1", "A", 3, decimal.NewFromInt(1000))
	c.AgregarLinea("2", "B", 2, decimal.NewFromFloat(990.50))
	c.AgregarLinea("1", "A", 1, decimal.NewFromInt(1000)) // fusiona: cantidad 4
	c.ActualizarCantidad(c.Lineas()[1].Key, 5)
	c.AgregarLinea("3", "C", 1, decimal.NewFromInt(250))
	c.QuitarItem(c.Lineas()[2].Key) // elimina C
	c.ActualizarCantidad(c.Lineas()[0].Key, -1)

	esperado := decimal.Zero
	for _, l := range c.Lineas() {
		require.Greater(t, l.Cantidad, int64(0), "ninguna línea puede quedar con cantidad ≤ 0")
		assert.True(t, l.Total.Equal(decimal.NewFromInt(l.Cantidad).Mul(l.PrecioUnitario)))
		esperado = esperado.Add(l.Total)
	}
	assert.True(t, c.Total().Equal(esperado))
	assert.True(t, c.Subtotal().Equal(c.Total()))
}

func TestCarrito_ResetLimpiaTodo(t *testing.T) {
	c := venta.NuevoCarrito()
	c.AgregarItem(productoA())
	c.SetCliente("cli-1")
	c.SetBodega("bod-1")
	c.SetObservaciones("entrega en oficina")

	c.Reset()

	assert.True(t, c.Vacio())
	assert.Empty(t, c.ClienteID())
	assert.Empty(t, c.BodegaID())
	assert.Empty(t, c.Observaciones())
	assert.True(t, c.Total().IsZero())
}
