package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

var _ repository.PaymentFeeRepository = (*FeeCache)(nil)

// FeeListKey clave de la tabla completa de comisiones.
const FeeListKey = "ventas:payment_fees:v1"

// FeeCache decora el repositorio de comisiones: List se sirve desde Redis y
// cualquier escritura invalida la clave. Con client nil delega todo.
type FeeCache struct {
	next   repository.PaymentFeeRepository
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewFeeCache construye el decorador.
func NewFeeCache(next repository.PaymentFeeRepository, client *redis.Client, ttl time.Duration, log *logger.Logger) *FeeCache {
	if log == nil {
		log = logger.Nop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &FeeCache{next: next, client: client, ttl: ttl, log: log}
}

type cachedFee struct {
	ID        string          `json:"id"`
	Method    string          `json:"method"`
	FeeRate   decimal.Decimal `json:"fee_rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// List lee de Redis; en fallo de caché lee del repositorio y rellena.
func (c *FeeCache) List(ctx context.Context) ([]*entity.PaymentFee, error) {
	if c.client == nil {
		return c.next.List(ctx)
	}
	raw, err := c.client.Get(ctx, FeeListKey).Bytes()
	switch {
	case err == nil:
		var rows []cachedFee
		if jsonErr := json.Unmarshal(raw, &rows); jsonErr == nil {
			return fromCached(rows), nil
		}
		c.log.Warn().Msg("caché de comisiones corrupta, se recarga")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Msg("redis no disponible, lectura directa")
		return c.next.List(ctx)
	}
	return c.load(ctx)
}

// Warm recarga la tabla en Redis.
func (c *FeeCache) Warm(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	_, err := c.load(ctx)
	return err
}

func (c *FeeCache) load(ctx context.Context) ([]*entity.PaymentFee, error) {
	fees, err := c.next.List(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(toCached(fees))
	if err == nil {
		err = c.client.Set(ctx, FeeListKey, raw, c.ttl).Err()
	}
	if err != nil {
		c.log.Warn().Err(err).Msg("no se pudo guardar la tabla de comisiones en caché")
	}
	return fees, nil
}

func (c *FeeCache) invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, FeeListKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo invalidar la caché de comisiones")
	}
}

// ── Delegación ─────────────────────────────────────────────────────────────

func (c *FeeCache) Create(ctx context.Context, f *entity.PaymentFee) error {
	if err := c.next.Create(ctx, f); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *FeeCache) GetByID(ctx context.Context, id string) (*entity.PaymentFee, error) {
	return c.next.GetByID(ctx, id)
}

func (c *FeeCache) GetByMethod(ctx context.Context, method string) (*entity.PaymentFee, error) {
	return c.next.GetByMethod(ctx, method)
}

func (c *FeeCache) Update(ctx context.Context, f *entity.PaymentFee) error {
	if err := c.next.Update(ctx, f); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *FeeCache) Delete(ctx context.Context, id string) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func toCached(fees []*entity.PaymentFee) []cachedFee {
	out := make([]cachedFee, 0, len(fees))
	for _, f := range fees {
		out = append(out, cachedFee{ID: f.ID, Method: f.Method, FeeRate: f.FeeRate, CreatedAt: f.CreatedAt, UpdatedAt: f.UpdatedAt})
	}
	return out
}

func fromCached(rows []cachedFee) []*entity.PaymentFee {
	out := make([]*entity.PaymentFee, 0, len(rows))
	for _, r := range rows {
		out = append(out, &entity.PaymentFee{ID: r.ID, Method: r.Method, FeeRate: r.FeeRate, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt})
	}
	return out
}
