package venta

import (
	"context"
	"fmt"
	"time"

	"github.com/melisync/ventas-api/internal/application/dto"
	"github.com/melisync/ventas-api/internal/domain"
	"github.com/melisync/ventas-api/internal/domain/repository"
	domventa "github.com/melisync/ventas-api/internal/domain/venta"
	"github.com/melisync/ventas-api/internal/metrics"
)

// CicloVidaUseCase consulta notas y aplica las transiciones de estado
// disparadas por el usuario. Cada transición es síncrona y sin reintentos.
type CicloVidaUseCase struct {
	txRunner    VentaTxRunner
	notaRepo    repository.NotaVentaRepository
	clienteRepo repository.ClienteRepository
}

// NewCicloVidaUseCase construye el caso de uso.
func NewCicloVidaUseCase(
	txRunner VentaTxRunner,
	notaRepo repository.NotaVentaRepository,
	clienteRepo repository.ClienteRepository,
) *CicloVidaUseCase {
	return &CicloVidaUseCase{txRunner: txRunner, notaRepo: notaRepo, clienteRepo: clienteRepo}
}

// BuscarPorFolio devuelve la nota completa. Un folio inexistente es
// ErrNotaNoEncontrada, nunca un resultado vacío. Para notas con cliente,
// informa si el cliente referenciado sigue existiendo (la edición de un
// borrador procede igual aunque no exista; la UI muestra la advertencia).
func (uc *CicloVidaUseCase) BuscarPorFolio(ctx context.Context, companyID string, folio int64) (*dto.NotaVentaResponse, error) {
	nota, err := uc.notaRepo.GetByFolio(companyID, folio)
	if err != nil {
		return nil, err
	}
	if nota == nil {
		return nil, domain.ErrNotaNoEncontrada
	}
	lineas, err := uc.notaRepo.GetLineas(folio)
	if err != nil {
		return nil, err
	}
	var clienteVigente *bool
	if nota.ClienteID != "" {
		cliente, err := uc.clienteRepo.GetByID(nota.ClienteID)
		if err != nil {
			return nil, err
		}
		vigente := cliente != nil
		clienteVigente = &vigente
	}
	return ToNotaResponse(nota, lineas, clienteVigente), nil
}

// Listar devuelve el historial filtrado. El estado del filtro se normaliza al
// enum canónico y se delega a la consulta tal cual: sin re-filtrado silencioso.
func (uc *CicloVidaUseCase) Listar(ctx context.Context, companyID string, in dto.FiltroVentasRequest) ([]*dto.NotaVentaResponse, error) {
	filtro := repository.FiltroVentas{
		ClienteID:      in.ClienteID,
		TodasLasVentas: in.TodasLasVentas,
		Limite:         in.Limite,
	}
	if filtro.Limite <= 0 {
		filtro.Limite = 50
	}
	if in.Estado != "" {
		estado, err := domventa.ParseEstado(in.Estado)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
		}
		filtro.Estado = estado
	}
	if in.FechaDesde != "" {
		desde, err := time.Parse("2006-01-02", in.FechaDesde)
		if err != nil {
			return nil, fmt.Errorf("%w: date_start debe ser YYYY-MM-DD", domain.ErrValidacion)
		}
		filtro.FechaDesde = &desde
	}
	notas, err := uc.notaRepo.List(companyID, filtro)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotaVentaResponse, 0, len(notas))
	for _, n := range notas {
		lineas, err := uc.notaRepo.GetLineas(n.Folio)
		if err != nil {
			return nil, err
		}
		out = append(out, ToNotaResponse(n, lineas, nil))
	}
	return out, nil
}

// CambiarEstado aplica una transición solicitada vía PATCH. Emitido no es
// alcanzable por esta vía: la emisión tiene su propio flujo de dos fases.
// Finalizar por esta vía aplica las mismas guardas que la creación, incluido
// el descuento de stock en transacción.
func (uc *CicloVidaUseCase) CambiarEstado(ctx context.Context, companyID string, folio int64, estadoSolicitado string) (*dto.NotaVentaResponse, error) {
	destino, err := domventa.ParseEstado(estadoSolicitado)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidacion, err)
	}
	nota, err := uc.notaRepo.GetByFolio(companyID, folio)
	if err != nil {
		return nil, err
	}
	if nota == nil {
		return nil, domain.ErrNotaNoEncontrada
	}
	if destino == domventa.EstadoEmitido {
		return nil, fmt.Errorf("%w: la emisión se realiza con su propia operación", domain.ErrTransicionInvalida)
	}
	if !nota.Estado.PuedeTransicionarA(destino) {
		return nil, fmt.Errorf("%w: %s → %s", domain.ErrTransicionInvalida, nota.Estado, destino)
	}

	lineas, err := uc.notaRepo.GetLineas(folio)
	if err != nil {
		return nil, err
	}
	if destino == domventa.EstadoFinalizado {
		if len(lineas) == 0 {
			return nil, fmt.Errorf("%w: una venta finalizada requiere al menos una línea", domain.ErrValidacion)
		}
		if nota.ClienteID == "" {
			return nil, fmt.Errorf("%w: una venta finalizada requiere un cliente", domain.ErrValidacion)
		}
		cliente, err := uc.clienteRepo.GetByID(nota.ClienteID)
		if err != nil {
			return nil, err
		}
		if cliente == nil {
			return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
		}
		err = uc.txRunner.RunVenta(ctx, func(
			notaRepo repository.NotaVentaRepository,
			productoRepo repository.ProductoRepository,
		) error {
			if err := descontarStock(productoRepo, nota.BodegaID, lineas); err != nil {
				return err
			}
			return notaRepo.UpdateEstado(folio, destino)
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := uc.notaRepo.UpdateEstado(folio, destino); err != nil {
			return nil, err
		}
	}

	metrics.Transiciones.WithLabelValues(string(nota.Estado), string(destino)).Inc()
	nota.Estado = destino
	return ToNotaResponse(nota, lineas, nil), nil
}

// Eliminar borra una nota. Solo los borradores pueden eliminarse; la
// operación es irreversible.
func (uc *CicloVidaUseCase) Eliminar(ctx context.Context, companyID string, folio int64) error {
	nota, err := uc.notaRepo.GetByFolio(companyID, folio)
	if err != nil {
		return err
	}
	if nota == nil {
		return domain.ErrNotaNoEncontrada
	}
	if nota.Estado != domventa.EstadoBorrador {
		return fmt.Errorf("%w: solo un borrador puede eliminarse", domain.ErrTransicionInvalida)
	}
	return uc.notaRepo.Delete(companyID, folio)
}
