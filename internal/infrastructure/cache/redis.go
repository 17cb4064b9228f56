// Package cache caché opcional sobre Redis. Sin Redis la aplicación funciona igual.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/ventas-dashboard-api/pkg/config"
	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

// NewRedisClient conecta y hace ping. Devuelve nil si no hay dirección o si el
// ping falla: el llamador trata nil como caché desactivada.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if cfg.Addr == "" {
		log.Info().Msg("REDIS_ADDR vacío, caché desactivada")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("no se pudo conectar a Redis, caché desactivada")
		_ = client.Close()
		return nil
	}
	log.Info().Str("addr", cfg.Addr).Msg("conectado a Redis")
	return client
}
