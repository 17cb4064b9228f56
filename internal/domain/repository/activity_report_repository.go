package repository

import (
	"context"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// ReportFilter filtros para reportes de actividad.
type ReportFilter struct {
	From string
	To   string
	Role entity.ReportRole
	Name string
}

// ActivityReportRepository define el puerto de persistencia para reportes diarios.
type ActivityReportRepository interface {
	Create(ctx context.Context, r *entity.ActivityReport) error
	GetByID(ctx context.Context, id string) (*entity.ActivityReport, error)
	// List devuelve los reportes ordenados por fecha descendente.
	List(ctx context.Context, f ReportFilter) ([]*entity.ActivityReport, error)
	Update(ctx context.Context, r *entity.ActivityReport) error
	Delete(ctx context.Context, id string) error
}
