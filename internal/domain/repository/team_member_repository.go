package repository

import (
	"context"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// TeamFilter filtra el equipo por rol y estado. Nil/cero no filtra.
type TeamFilter struct {
	Role   entity.Role
	Active *bool
}

// TeamMemberRepository define el puerto de persistencia para miembros del equipo (DIP).
type TeamMemberRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, m *entity.TeamMember) error
	GetByID(ctx context.Context, id string) (*entity.TeamMember, error)
	GetByEmail(ctx context.Context, email string) (*entity.TeamMember, error)
	// List devuelve el equipo ordenado por nombre.
	List(ctx context.Context, f TeamFilter) ([]*entity.TeamMember, error)
	Update(ctx context.Context, m *entity.TeamMember) error
	Delete(ctx context.Context, id string) error
}
