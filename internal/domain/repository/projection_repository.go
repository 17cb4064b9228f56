package repository

import (
	"context"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// ProjectionFilter filtros de proyecciones. Periods vacío no filtra por periodo.
type ProjectionFilter struct {
	PeriodType entity.PeriodType
	Periods    []string
	Scope      entity.ProjectionScope
	MemberID   string
}

// ProjectionRepository puerto de persistencia para objetivos.
type ProjectionRepository interface {
	// Create devuelve domain.ErrDuplicate si ya existe un objetivo con la misma clave
	// (periodo, tipo, alcance, miembro).
	Create(ctx context.Context, p *entity.Projection) error
	GetByID(ctx context.Context, id string) (*entity.Projection, error)
	List(ctx context.Context, f ProjectionFilter) ([]*entity.Projection, error)
	Update(ctx context.Context, p *entity.Projection) error
	Delete(ctx context.Context, id string) error
}
