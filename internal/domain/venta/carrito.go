package venta

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ProductoVendible es la vista mínima de un producto que el carrito necesita.
// Precio nil significa que el producto no tiene precio publicado y no puede
// agregarse.
type ProductoVendible struct {
	ID     string
	Titulo string
	Precio *decimal.Decimal
}

// Linea es una línea del carrito. Key desambigua re-agregados del mismo
// producto tras quitarlo (id de producto + secuencia monotónica).
type Linea struct {
	Key            string
	ProductoID     string
	Nombre         string
	Cantidad       int64
	PrecioUnitario decimal.Decimal
	Total          decimal.Decimal
}

// Carrito acumula líneas de una nota de venta en construcción. Máquina de
// estados pura: mutaciones síncronas, sin I/O. Invariantes:
//   - toda línea tiene Cantidad > 0 (al llegar a 0 se elimina)
//   - Total de línea = Cantidad × PrecioUnitario, recalculado en cada mutación
//   - Subtotal() == Total() == suma de totales de línea (sin modelo de impuestos)
type Carrito struct {
	lineas        []Linea
	clienteID     string
	bodegaID      string
	observaciones string
	seq           int64
}

// NuevoCarrito crea un carrito vacío.
func NuevoCarrito() *Carrito {
	return &Carrito{}
}

// AgregarItem agrega una unidad del producto. Si ya existe una línea para ese
// producto, incrementa su cantidad en 1 en lugar de duplicar la línea.
// Devuelve false (no-op) si el producto no tiene precio.
func (c *Carrito) AgregarItem(p ProductoVendible) bool {
	if p.Precio == nil {
		return false
	}
	c.AgregarLinea(p.ID, p.Titulo, 1, *p.Precio)
	return true
}

// AgregarLinea agrega cantidad unidades del producto, fusionando con la línea
// existente si el producto ya está en el carrito. Cantidades ≤ 0 se ignoran.
func (c *Carrito) AgregarLinea(productoID, nombre string, cantidad int64, precioUnitario decimal.Decimal) {
	if cantidad <= 0 {
		return
	}
	for i := range c.lineas {
		if c.lineas[i].ProductoID == productoID {
			c.lineas[i].Cantidad += cantidad
			c.recalcular(i)
			return
		}
	}
	c.seq++
	l := Linea{
		Key:            productoID + "-" + strconv.FormatInt(c.seq, 10),
		ProductoID:     productoID,
		Nombre:         nombre,
		Cantidad:       cantidad,
		PrecioUnitario: precioUnitario,
	}
	c.lineas = append(c.lineas, l)
	c.recalcular(len(c.lineas) - 1)
}

// ActualizarCantidad fija la cantidad de una línea. Valores negativos se
// tratan como 0; una cantidad resuelta en 0 elimina la línea.
func (c *Carrito) ActualizarCantidad(key string, cantidad int64) {
	if cantidad < 0 {
		cantidad = 0
	}
	for i := range c.lineas {
		if c.lineas[i].Key != key {
			continue
		}
		if cantidad == 0 {
			c.lineas = append(c.lineas[:i], c.lineas[i+1:]...)
			return
		}
		c.lineas[i].Cantidad = cantidad
		c.recalcular(i)
		return
	}
}

// QuitarItem elimina la línea incondicionalmente.
func (c *Carrito) QuitarItem(key string) {
	for i := range c.lineas {
		if c.lineas[i].Key == key {
			c.lineas = append(c.lineas[:i], c.lineas[i+1:]...)
			return
		}
	}
}

// SetCliente fija el cliente asociado al carrito.
func (c *Carrito) SetCliente(id string) { c.clienteID = id }

// SetBodega fija la bodega desde la que se vende.
func (c *Carrito) SetBodega(id string) { c.bodegaID = id }

// SetObservaciones fija el texto libre de observaciones.
func (c *Carrito) SetObservaciones(texto string) { c.observaciones = texto }

// ClienteID devuelve el cliente seleccionado ("" si no hay).
func (c *Carrito) ClienteID() string { return c.clienteID }

// BodegaID devuelve la bodega seleccionada ("" si no hay).
func (c *Carrito) BodegaID() string { return c.bodegaID }

// Observaciones devuelve el texto de observaciones.
func (c *Carrito) Observaciones() string { return c.observaciones }

// Lineas devuelve una copia de las líneas en orden de inserción.
func (c *Carrito) Lineas() []Linea {
	out := make([]Linea, len(c.lineas))
	copy(out, c.lineas)
	return out
}

// CantidadTotal devuelve la suma de cantidades de todas las líneas.
func (c *Carrito) CantidadTotal() int64 {
	var n int64
	for i := range c.lineas {
		n += c.lineas[i].Cantidad
	}
	return n
}

// Subtotal es la suma de los totales de línea.
func (c *Carrito) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.lineas {
		total = total.Add(c.lineas[i].Total)
	}
	return total
}

// Total es igual al subtotal: este sistema no modela impuestos ni descuentos.
func (c *Carrito) Total() decimal.Decimal {
	return c.Subtotal()
}

// Vacio indica si el carrito no tiene líneas.
func (c *Carrito) Vacio() bool { return len(c.lineas) == 0 }

// Reset limpia todos los campos al estado inicial.
func (c *Carrito) Reset() {
	*c = Carrito{}
}

func (c *Carrito) recalcular(i int) {
	l := &c.lineas[i]
	l.Total = decimal.NewFromInt(l.Cantidad).Mul(l.PrecioUnitario)
}
