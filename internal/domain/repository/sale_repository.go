package repository

import (
	"context"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// SaleFilter filtros que la persistencia puede aplicar directamente.
// Fechas como YYYY-MM-DD inclusivas; campos vacíos no filtran.
type SaleFilter struct {
	From          string
	To            string
	Closer        string
	Setter        string
	Product       string
	PaymentMethod string
	Status        entity.SaleStatus
}

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetByExternalActivityID busca una venta por id de actividad del CRM (nil si no existe).
	GetByExternalActivityID(ctx context.Context, activityID string) (*entity.Sale, error)
	// List devuelve las ventas ordenadas por fecha descendente.
	List(ctx context.Context, f SaleFilter) ([]*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
}
