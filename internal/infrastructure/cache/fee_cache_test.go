package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/cache"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-dashboard-api/pkg/config"
	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

func TestFeeCache_SinRedisDelega(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	c := cache.NewFeeCache(repos.Fees, nil, time.Minute, nil)

	require.NoError(t, c.Create(ctx, &entity.PaymentFee{ID: "1", Method: "Stripe", FeeRate: decimal.RequireFromString("0.029")}))
	fees, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, fees, 1)
	assert.Equal(t, "Stripe", fees[0].Method)
	assert.NoError(t, c.Warm(ctx))
}

func TestNewRedisClient_SinDireccionDevuelveNil(t *testing.T) {
	client := cache.NewRedisClient(context.Background(), config.RedisConfig{}, logger.Nop())
	assert.Nil(t, client)
}

func TestNewRedisClient_PingFallidoDevuelveNil(t *testing.T) {
	client := cache.NewRedisClient(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, logger.Nop())
	assert.Nil(t, client)
}

func TestFeeCache_RedisCaidoLeeDelRepositorio(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	require.NoError(t, repos.Fees.Create(ctx, &entity.PaymentFee{ID: "1", Method: "PayPal", FeeRate: decimal.RequireFromString("0.035")}))

	down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer down.Close()
	c := cache.NewFeeCache(repos.Fees, down, time.Minute, nil)

	fees, err := c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, fees, 1)
}
