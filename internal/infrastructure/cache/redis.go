// Package cache implementa el caché de disponibilidad sobre Redis, con una
// implementación nula cuando no hay Redis configurado.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/melisync/ventas-api/internal/application/usecase"
	"github.com/melisync/ventas-api/pkg/config"
)

var _ usecase.CacheDisponibilidad = (*RedisCache)(nil)
var _ usecase.CacheDisponibilidad = (*NoopCache)(nil)

// RedisCache cache de bytes con TTL sobre go-redis.
type RedisCache struct {
	rdb *redis.Client
}

// NewRedisCache construye el cliente y verifica conectividad.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{rdb: rdb}, nil
}

// Get devuelve (nil, nil) en miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}

// Set guarda el valor con expiración.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Close cierra la conexión.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

// NoopCache es la implementación sin Redis: siempre miss, nunca error.
type NoopCache struct{}

// Get siempre es miss.
func (NoopCache) Get(ctx context.Context, key string) ([]byte, error) { return nil, nil }

// Set descarta el valor.
func (NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}
