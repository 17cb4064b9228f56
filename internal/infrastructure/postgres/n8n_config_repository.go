package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

var _ repository.N8nConfigRepository = (*N8nConfigRepo)(nil)

// N8nConfigRepo fila única de configuración (columna singleton con UNIQUE).
type N8nConfigRepo struct {
	q Querier
}

// NewN8nConfigRepository construye el adaptador.
func NewN8nConfigRepository(q Querier) *N8nConfigRepo {
	return &N8nConfigRepo{q: q}
}

func (r *N8nConfigRepo) Get(ctx context.Context) (*entity.N8nConfig, error) {
	var c entity.N8nConfig
	err := r.q.QueryRow(ctx, `
		SELECT id, webhook_url, api_key, enabled, last_sync, created_at, updated_at
		FROM n8n_config LIMIT 1`).Scan(
		&c.ID, &c.WebhookURL, &c.APIKey, &c.Enabled, &c.LastSync, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get n8n config: %w", err)
	}
	return &c, nil
}

func (r *N8nConfigRepo) Create(ctx context.Context, c *entity.N8nConfig) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO n8n_config (id, webhook_url, api_key, enabled, last_sync, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.WebhookURL, c.APIKey, c.Enabled, c.LastSync, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert n8n config: %w", err)
	}
	return nil
}

// Update no toca api_key: es de solo lectura tras la creación.
func (r *N8nConfigRepo) Update(ctx context.Context, c *entity.N8nConfig) error {
	tag, err := r.q.Exec(ctx, `UPDATE n8n_config SET webhook_url = $2, enabled = $3, updated_at = $4 WHERE id = $1`,
		c.ID, c.WebhookURL, c.Enabled, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update n8n config: %w", err)
	}
	return checkAffected(tag, domain.ErrNotFound)
}

func (r *N8nConfigRepo) TouchLastSync(ctx context.Context, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE n8n_config SET last_sync = $1`, at); err != nil {
		return fmt.Errorf("touch n8n last sync: %w", err)
	}
	return nil
}
