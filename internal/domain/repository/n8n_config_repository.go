package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// N8nConfigRepository puerto de la configuración única de integración.
type N8nConfigRepository interface {
	// Get devuelve la configuración o nil si aún no se ha creado.
	Get(ctx context.Context) (*entity.N8nConfig, error)
	Create(ctx context.Context, c *entity.N8nConfig) error
	Update(ctx context.Context, c *entity.N8nConfig) error
	TouchLastSync(ctx context.Context, at time.Time) error
}

// TxRunner ejecuta fn con repositorios atados a una única transacción.
// Si fn devuelve error no se persiste ningún cambio.
type TxRunner interface {
	Run(ctx context.Context, fn func(sales SaleRepository, reports ActivityReportRepository) error) error
}
