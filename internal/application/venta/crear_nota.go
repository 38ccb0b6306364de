package venta

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/melisync/ventas-api/internal/application/dto"
	"github.com/melisync/ventas-api/internal/domain"
	"github.com/melisync/ventas-api/internal/domain/entity"
	"github.com/melisync/ventas-api/internal/domain/repository"
	domventa "github.com/melisync/ventas-api/internal/domain/venta"
	"github.com/melisync/ventas-api/internal/metrics"
)

// CrearNotaUseCase crea una nota de venta con el estado inicial solicitado, o
// actualiza un borrador existente (folio presente en el body). Al finalizar
// descuenta stock y persiste en una sola transacción.
type CrearNotaUseCase struct {
	txRunner    VentaTxRunner
	clienteRepo repository.ClienteRepository
	bodegaRepo  repository.BodegaRepository
	notaRepo    repository.NotaVentaRepository
}

// NewCrearNotaUseCase construye el caso de uso.
func NewCrearNotaUseCase(
	txRunner VentaTxRunner,
	clienteRepo repository.ClienteRepository,
	bodegaRepo repository.BodegaRepository,
	notaRepo repository.NotaVentaRepository,
) *CrearNotaUseCase {
	return &CrearNotaUseCase{
		txRunner:    txRunner,
		clienteRepo: clienteRepo,
		bodegaRepo:  bodegaRepo,
		notaRepo:    notaRepo,
	}
}

// Crear ejecuta la operación. estadoSolicitado acepta cualquier escritura
// legada; solo Borrador y Finalizado son estados iniciales válidos.
func (uc *CrearNotaUseCase) Crear(ctx context.Context, companyID, estadoSolicitado string, in dto.CrearNotaRequest) (*dto.NotaVentaResponse, error) {
	estado, err := domventa.ParseEstado(estadoSolicitado)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	if estado != domventa.EstadoBorrador && estado != domventa.EstadoFinalizado {
		return nil, fmt.Errorf("%w: una nota solo puede grabarse como Borrador o Finalizado", domain.ErrTransicionInvalida)
	}
	if in.BodegaID == "" {
		return nil, fmt.Errorf("%w: warehouse_id es requerido", domain.ErrValidacion)
	}

	// El servidor reconstruye el carrito desde el payload: fusiona líneas
	// duplicadas, descarta cantidades ≤ 0 y recalcula todos los totales.
	// Los montos enviados por el cliente HTTP se ignoran.
	carrito := domventa.NuevoCarrito()
	carrito.SetBodega(in.BodegaID)
	carrito.SetCliente(in.ClienteID)
	carrito.SetObservaciones(in.Observacion)
	for _, item := range in.Items {
		if item.ProductoID == "" {
			return nil, fmt.Errorf("%w: línea sin id_producto", domain.ErrValidacion)
		}
		if item.PrecioUnitario.LessThan(decimal.Zero) {
			return nil, fmt.Errorf("%w: precio unitario negativo en producto %s", domain.ErrValidacion, item.ProductoID)
		}
		if item.Cantidad <= 0 {
			log.Warn().Str("producto", item.ProductoID).Int64("cantidad", item.Cantidad).
				Msg("línea con cantidad no positiva descartada")
			continue
		}
		carrito.AgregarLinea(item.ProductoID, item.Nombre, item.Cantidad, item.PrecioUnitario)
	}

	if estado == domventa.EstadoFinalizado {
		if err := uc.validarFinalizacion(companyID, carrito); err != nil {
			return nil, err
		}
	} else if in.ClienteID != "" {
		// Un borrador admite cliente opcional, pero si viene debe ser válido.
		if err := uc.validarCliente(companyID, in.ClienteID); err != nil {
			return nil, err
		}
	}

	bodega, err := uc.bodegaRepo.GetByID(in.BodegaID)
	if err != nil {
		return nil, err
	}
	if bodega == nil || bodega.CompanyID != companyID {
		return nil, fmt.Errorf("%w: bodega", domain.ErrNotFound)
	}

	now := time.Now()
	nota := &entity.NotaVenta{
		CompanyID:         companyID,
		BodegaID:          in.BodegaID,
		ClienteID:         carrito.ClienteID(),
		CantidadProductos: carrito.CantidadTotal(),
		Subtotal:          carrito.Subtotal(),
		Total:             carrito.Total(),
		Observacion:       carrito.Observaciones(),
		Estado:            estado,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	lineas := lineasDesdeCarrito(carrito)

	if in.Folio != nil {
		if err := uc.actualizarBorrador(ctx, companyID, *in.Folio, nota, lineas, estado); err != nil {
			return nil, err
		}
	} else {
		if err := uc.crearNueva(ctx, nota, lineas, estado); err != nil {
			return nil, err
		}
	}
	if nota.Folio <= 0 {
		return nil, domain.ErrRespuestaInesperada
	}

	metrics.NotasCreadas.WithLabelValues(string(estado)).Inc()
	return ToNotaResponse(nota, lineas, nil), nil
}

// crearNueva inserta la nota; si se graba Finalizado, el descuento de stock y
// la inserción comparten transacción.
func (uc *CrearNotaUseCase) crearNueva(ctx context.Context, nota *entity.NotaVenta, lineas []*entity.LineaVenta, estado domventa.Estado) error {
	return uc.txRunner.RunVenta(ctx, func(
		notaRepo repository.NotaVentaRepository,
		productoRepo repository.ProductoRepository,
	) error {
		if estado == domventa.EstadoFinalizado {
			if err := descontarStock(productoRepo, nota.BodegaID, lineas); err != nil {
				return err
			}
		}
		folio, err := notaRepo.Create(nota, lineas)
		if err != nil {
			return err
		}
		nota.Folio = folio
		for _, l := range lineas {
			l.Folio = folio
		}
		return nil
	})
}

// actualizarBorrador reemplaza un borrador existente, incluida la
// re-grabación como Finalizado (edición de borrador y luego finalizar).
func (uc *CrearNotaUseCase) actualizarBorrador(ctx context.Context, companyID string, folio int64, nota *entity.NotaVenta, lineas []*entity.LineaVenta, estado domventa.Estado) error {
	existente, err := uc.notaRepo.GetByFolio(companyID, folio)
	if err != nil {
		return err
	}
	if existente == nil {
		return domain.ErrNotaNoEncontrada
	}
	if existente.Estado != domventa.EstadoBorrador {
		return fmt.Errorf("%w: solo un borrador puede editarse", domain.ErrTransicionInvalida)
	}
	nota.Folio = folio
	nota.CreatedAt = existente.CreatedAt
	for _, l := range lineas {
		l.Folio = folio
	}
	return uc.txRunner.RunVenta(ctx, func(
		notaRepo repository.NotaVentaRepository,
		productoRepo repository.ProductoRepository,
	) error {
		if estado == domventa.EstadoFinalizado {
			if err := descontarStock(productoRepo, nota.BodegaID, lineas); err != nil {
				return err
			}
		}
		return notaRepo.ReplaceBorrador(nota, lineas)
	})
}

func (uc *CrearNotaUseCase) validarFinalizacion(companyID string, carrito *domventa.Carrito) error {
	if carrito.Vacio() {
		return fmt.Errorf("%w: una venta finalizada requiere al menos una línea", domain.ErrValidacion)
	}
	if carrito.ClienteID() == "" {
		return fmt.Errorf("%w: una venta finalizada requiere un cliente", domain.ErrValidacion)
	}
	return uc.validarCliente(companyID, carrito.ClienteID())
}

func (uc *CrearNotaUseCase) validarCliente(companyID, clienteID string) error {
	cliente, err := uc.clienteRepo.GetByID(clienteID)
	if err != nil {
		return err
	}
	if cliente == nil {
		return fmt.Errorf("%w: cliente", domain.ErrNotFound)
	}
	if cliente.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

// descontarStock revalida y descuenta el stock por línea contra la bodega.
// La cantidad disponible que vio el cliente HTTP era solo una pista: este es
// el punto autoritativo, y un rechazo tardío por stock es un caso de primera
// clase (domain.ErrStockInsuficiente).
func descontarStock(productoRepo repository.ProductoRepository, bodegaID string, lineas []*entity.LineaVenta) error {
	for _, l := range lineas {
		if err := productoRepo.DescontarStock(l.ProductoID, bodegaID, l.Cantidad); err != nil {
			return fmt.Errorf("producto %s: %w", l.ProductoID, err)
		}
	}
	return nil
}

func lineasDesdeCarrito(c *domventa.Carrito) []*entity.LineaVenta {
	lineas := make([]*entity.LineaVenta, 0, len(c.Lineas()))
	for _, l := range c.Lineas() {
		lineas = append(lineas, &entity.LineaVenta{
			ID:             uuid.New().String(),
			ProductoID:     l.ProductoID,
			Nombre:         l.Nombre,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Total:          l.Total,
		})
	}
	return lineas
}

// ToNotaResponse arma la respuesta HTTP de una nota con sus líneas.
// clienteVigente es opcional: solo los detalles de borradores lo informan.
func ToNotaResponse(nota *entity.NotaVenta, lineas []*entity.LineaVenta, clienteVigente *bool) *dto.NotaVentaResponse {
	var tipo *string
	if nota.TipoEmision != "" {
		s := string(nota.TipoEmision)
		tipo = &s
	}
	resp := &dto.NotaVentaResponse{
		Folio:             nota.Folio,
		CompanyID:         nota.CompanyID,
		BodegaID:          nota.BodegaID,
		ClienteID:         nota.ClienteID,
		ClienteVigente:    clienteVigente,
		Productos:         make([]dto.LineaNotaResponse, 0, len(lineas)),
		CantidadProductos: nota.CantidadProductos,
		Subtotal:          nota.Subtotal,
		Total:             nota.Total,
		TipoEmision:       tipo,
		Observacion:       nota.Observacion,
		Estado:            string(nota.Estado),
		EstadoDocumento:   string(nota.EstadoDocumento),
		RazonSocial:       nota.RazonSocial,
		Rut:               nota.Rut,
		CreatedAt:         nota.CreatedAt.Format(time.RFC3339),
	}
	for _, l := range lineas {
		resp.Productos = append(resp.Productos, dto.LineaNotaResponse{
			ID:             l.ID,
			ProductoID:     l.ProductoID,
			Nombre:         l.Nombre,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Total:          l.Total,
		})
	}
	return resp
}
