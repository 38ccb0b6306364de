package venta_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/melisync/ventas-api/internal/domain"
	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
	domventa "github.com/melisync/ventas-api/internal/domain/venta"
)

// Fakes en memoria para los casos de uso. Replican el contrato de los repos
// Postgres, incluido el comportamiento transaccional del runner: si el
// callback falla, el estado vuelve al snapshot previo.

type notaRepoFake struct {
	notas     map[int64]*entity.NotaVenta
	lineas    map[int64][]*entity.LineaVenta
	nextFolio int64
}

func newNotaRepoFake() *notaRepoFake {
	return &notaRepoFake{
		notas:     make(map[int64]*entity.NotaVenta),
		lineas:    make(map[int64][]*entity.LineaVenta),
		nextFolio: 1000,
	}
}

func (f *notaRepoFake) Create(nota *entity.NotaVenta, lineas []*entity.LineaVenta) (int64, error) {
	f.nextFolio++
	copia := *nota
	copia.Folio = f.nextFolio
	f.notas[copia.Folio] = &copia
	f.lineas[copia.Folio] = lineas
	return copia.Folio, nil
}

func (f *notaRepoFake) ReplaceBorrador(nota *entity.NotaVenta, lineas []*entity.LineaVenta) error {
	if _, ok := f.notas[nota.Folio]; !ok {
		return domain.ErrNotaNoEncontrada
	}
	copia := *nota
	f.notas[nota.Folio] = &copia
	f.lineas[nota.Folio] = lineas
	return nil
}

func (f *notaRepoFake) GetByFolio(companyID string, folio int64) (*entity.NotaVenta, error) {
	n, ok := f.notas[folio]
	if !ok || n.CompanyID != companyID {
		return nil, nil
	}
	copia := *n
	return &copia, nil
}

func (f *notaRepoFake) GetLineas(folio int64) ([]*entity.LineaVenta, error) {
	return f.lineas[folio], nil
}

func (f *notaRepoFake) List(companyID string, filtro repository.FiltroVentas) ([]*entity.NotaVenta, error) {
	var out []*entity.NotaVenta
	for _, n := range f.notas {
		if n.CompanyID != companyID {
			continue
		}
		if filtro.Estado != "" && n.Estado != filtro.Estado {
			continue
		}
		if filtro.ClienteID != "" && n.ClienteID != filtro.ClienteID {
			continue
		}
		copia := *n
		out = append(out, &copia)
	}
	return out, nil
}

func (f *notaRepoFake) UpdateEstado(folio int64, estado domventa.Estado) error {
	n, ok := f.notas[folio]
	if !ok {
		return domain.ErrNotaNoEncontrada
	}
	n.Estado = estado
	n.UpdatedAt = time.Now()
	return nil
}

func (f *notaRepoFake) MarcarEmitida(folio int64, tipo domventa.TipoEmision, observacion, nombreEmpresa, razonSocial, rut string) error {
	n, ok := f.notas[folio]
	if !ok {
		return domain.ErrNotaNoEncontrada
	}
	n.Estado = domventa.EstadoEmitido
	n.TipoEmision = tipo
	n.EstadoDocumento = domventa.DocumentoPendiente
	n.NombreEmpresa = nombreEmpresa
	n.RazonSocial = razonSocial
	n.Rut = rut
	if observacion != "" {
		n.Observacion = observacion
	}
	n.UpdatedAt = time.Now()
	return nil
}

func (f *notaRepoFake) UpdateEstadoDocumento(folio int64, estado domventa.EstadoDocumento) error {
	n, ok := f.notas[folio]
	if !ok {
		return domain.ErrNotaNoEncontrada
	}
	n.EstadoDocumento = estado
	return nil
}

func (f *notaRepoFake) Delete(companyID string, folio int64) error {
	n, ok := f.notas[folio]
	if !ok || n.CompanyID != companyID {
		return domain.ErrNotaNoEncontrada
	}
	delete(f.notas, folio)
	delete(f.lineas, folio)
	return nil
}

type productoRepoFake struct {
	productos map[string]*entity.Producto
	stock     map[string]int64 // productoID|bodegaID
}

func newProductoRepoFake() *productoRepoFake {
	return &productoRepoFake{
		productos: make(map[string]*entity.Producto),
		stock:     make(map[string]int64),
	}
}

func stockKey(productoID, bodegaID string) string {
	return productoID + "|" + bodegaID
}

func (f *productoRepoFake) conStock(productoID, bodegaID string, cantidad int64) *productoRepoFake {
	f.stock[stockKey(productoID, bodegaID)] = cantidad
	return f
}

func (f *productoRepoFake) GetByID(id string) (*entity.Producto, error) {
	return f.productos[id], nil
}

func (f *productoRepoFake) ListByBodega(companyID, bodegaID string) ([]*entity.Producto, error) {
	var out []*entity.Producto
	for _, p := range f.productos {
		if p.CompanyID == companyID && p.BodegaID == bodegaID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *productoRepoFake) DescontarStock(productoID, bodegaID string, cantidad int64) error {
	key := stockKey(productoID, bodegaID)
	disponible, ok := f.stock[key]
	if !ok || disponible < cantidad {
		return domain.ErrStockInsuficiente
	}
	f.stock[key] = disponible - cantidad
	return nil
}

type clienteRepoFake struct {
	clientes map[string]*entity.Cliente
}

func newClienteRepoFake(clientes ...*entity.Cliente) *clienteRepoFake {
	f := &clienteRepoFake{clientes: make(map[string]*entity.Cliente)}
	for _, c := range clientes {
		f.clientes[c.ID] = c
	}
	return f
}

func (f *clienteRepoFake) Create(c *entity.Cliente) error {
	f.clientes[c.ID] = c
	return nil
}

func (f *clienteRepoFake) GetByID(id string) (*entity.Cliente, error) {
	return f.clientes[id], nil
}

func (f *clienteRepoFake) GetByCompanyAndRut(companyID, rut string) (*entity.Cliente, error) {
	for _, c := range f.clientes {
		if c.CompanyID == companyID && c.Rut == rut {
			return c, nil
		}
	}
	return nil, nil
}

func (f *clienteRepoFake) ListByCompany(companyID string, limit, offset int) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	for _, c := range f.clientes {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *clienteRepoFake) Update(c *entity.Cliente) error {
	f.clientes[c.ID] = c
	return nil
}

func (f *clienteRepoFake) Delete(id string) error {
	delete(f.clientes, id)
	return nil
}

type bodegaRepoFake struct {
	bodegas map[string]*entity.Bodega
}

func newBodegaRepoFake(bodegas ...*entity.Bodega) *bodegaRepoFake {
	f := &bodegaRepoFake{bodegas: make(map[string]*entity.Bodega)}
	for _, b := range bodegas {
		f.bodegas[b.ID] = b
	}
	return f
}

func (f *bodegaRepoFake) GetByID(id string) (*entity.Bodega, error) {
	return f.bodegas[id], nil
}

func (f *bodegaRepoFake) ListByCompany(companyID string) ([]*entity.Bodega, error) {
	var out []*entity.Bodega
	for _, b := range f.bodegas {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

type documentoRepoFake struct {
	docs       map[int64]*entity.DocumentoVenta
	failCreate bool
}

func newDocumentoRepoFake() *documentoRepoFake {
	return &documentoRepoFake{docs: make(map[int64]*entity.DocumentoVenta)}
}

func (f *documentoRepoFake) Create(doc *entity.DocumentoVenta) error {
	if f.failCreate {
		return errors.New("insert falló")
	}
	f.docs[doc.Folio] = doc
	return nil
}

func (f *documentoRepoFake) GetByFolio(companyID string, folio int64) (*entity.DocumentoVenta, error) {
	d, ok := f.docs[folio]
	if !ok || d.CompanyID != companyID {
		return nil, nil
	}
	return d, nil
}

func (f *documentoRepoFake) ListByCompany(companyID string) ([]*entity.DocumentoVenta, error) {
	var out []*entity.DocumentoVenta
	for _, d := range f.docs {
		if d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return out, nil
}

// txRunnerFake ejecuta el callback sobre los mismos fakes y simula rollback
// restaurando el snapshot si el callback devuelve error.
type txRunnerFake struct {
	notaRepo     *notaRepoFake
	productoRepo *productoRepoFake
}

func (f *txRunnerFake) RunVenta(ctx context.Context, fn func(
	notaRepo repository.NotaVentaRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	notasSnap := make(map[int64]*entity.NotaVenta, len(f.notaRepo.notas))
	for k, v := range f.notaRepo.notas {
		copia := *v
		notasSnap[k] = &copia
	}
	lineasSnap := make(map[int64][]*entity.LineaVenta, len(f.notaRepo.lineas))
	for k, v := range f.notaRepo.lineas {
		lineasSnap[k] = v
	}
	stockSnap := make(map[string]int64, len(f.productoRepo.stock))
	for k, v := range f.productoRepo.stock {
		stockSnap[k] = v
	}
	folioSnap := f.notaRepo.nextFolio

	if err := fn(f.notaRepo, f.productoRepo); err != nil {
		f.notaRepo.notas = notasSnap
		f.notaRepo.lineas = lineasSnap
		f.notaRepo.nextFolio = folioSnap
		f.productoRepo.stock = stockSnap
		return err
	}
	return nil
}

type generadorFake struct {
	fail             bool
	llamadas         int
	ultimoEncabezado string
}

func (f *generadorFake) GenerarDocumento(nota *entity.NotaVenta, lineas []*entity.LineaVenta, cliente *entity.Cliente, nombreEmpresa string) ([]byte, error) {
	f.llamadas++
	f.ultimoEncabezado = nombreEmpresa
	if f.fail {
		return nil, errors.New("maroto falló")
	}
	return []byte(fmt.Sprintf("%%PDF-1.7 venta %d", nota.Folio)), nil
}

type almacenFake struct {
	blobs       map[string][]byte
	failGuardar bool
}

func newAlmacenFake() *almacenFake {
	return &almacenFake{blobs: make(map[string][]byte)}
}

func (f *almacenFake) Guardar(ctx context.Context, key string, contenido []byte) error {
	if f.failGuardar {
		return errors.New("almacén no disponible")
	}
	f.blobs[key] = contenido
	return nil
}

func (f *almacenFake) Obtener(ctx context.Context, key string) ([]byte, error) {
	b, ok := f.blobs[key]
	if !ok {
		return nil, errors.New("clave inexistente")
	}
	return b, nil
}

func precio(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
