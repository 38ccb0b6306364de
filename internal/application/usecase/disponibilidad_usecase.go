package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/melisync/ventas-api/internal/application/dto"
	"github.com/melisync/ventas-api/internal/domain"
	"github.com/melisync/ventas-api/internal/domain/repository"
)

// CacheDisponibilidad es el puerto de cache para el listado de productos por
// bodega. Get devuelve (nil, nil) en miss. Una implementación nula (sin Redis
// configurado) simplemente devuelve miss siempre.
type CacheDisponibilidad interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// disponibilidadTTL vida corta: la cantidad cacheada es solo una pista y la
// verificación autoritativa ocurre al finalizar la venta.
const disponibilidadTTL = 60 * time.Second

// DisponibilidadUseCase listado de productos vendibles por bodega.
type DisponibilidadUseCase struct {
	productoRepo repository.ProductoRepository
	bodegaRepo   repository.BodegaRepository
	cache        CacheDisponibilidad
}

// NewDisponibilidadUseCase construye el caso de uso. cache puede ser la
// implementación nula.
func NewDisponibilidadUseCase(
	productoRepo repository.ProductoRepository,
	bodegaRepo repository.BodegaRepository,
	cache CacheDisponibilidad,
) *DisponibilidadUseCase {
	return &DisponibilidadUseCase{productoRepo: productoRepo, bodegaRepo: bodegaRepo, cache: cache}
}

// ListByBodega devuelve los productos de la bodega con precio y cantidad
// disponible. Un fallo del cache nunca tumba la consulta: se registra y se
// sigue contra la base de datos.
func (uc *DisponibilidadUseCase) ListByBodega(ctx context.Context, companyID, bodegaID string) ([]*dto.ProductoDisponibleResponse, error) {
	bodega, err := uc.bodegaRepo.GetByID(bodegaID)
	if err != nil {
		return nil, err
	}
	if bodega == nil || bodega.CompanyID != companyID {
		return nil, fmt.Errorf("%w: bodega", domain.ErrNotFound)
	}

	key := claveDisponibilidad(companyID, bodegaID)
	if cached, err := uc.cache.Get(ctx, key); err != nil {
		log.Warn().Err(err).Str("bodega", bodegaID).Msg("cache de disponibilidad no disponible")
	} else if cached != nil {
		var out []*dto.ProductoDisponibleResponse
		if err := json.Unmarshal(cached, &out); err == nil {
			return out, nil
		}
		// entrada corrupta: se ignora y se reconstruye
	}

	productos, err := uc.productoRepo.ListByBodega(companyID, bodegaID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductoDisponibleResponse, 0, len(productos))
	for _, p := range productos {
		out = append(out, &dto.ProductoDisponibleResponse{
			ID:                 p.ID,
			Titulo:             p.Titulo,
			CantidadDisponible: p.CantidadDisponible,
			Precio:             p.Precio,
			NombreBodega:       p.NombreBodega,
			NombreEmpresa:      p.NombreEmpresa,
		})
	}

	if payload, err := json.Marshal(out); err == nil {
		if err := uc.cache.Set(ctx, key, payload, disponibilidadTTL); err != nil {
			log.Warn().Err(err).Str("bodega", bodegaID).Msg("no se pudo cachear disponibilidad")
		}
	}
	return out, nil
}

func claveDisponibilidad(companyID, bodegaID string) string {
	return fmt.Sprintf("disponibilidad:%s:%s", companyID, bodegaID)
}
