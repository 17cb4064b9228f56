package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

var _ repository.TeamMemberRepository = (*TeamMemberRepo)(nil)

// TeamMemberRepo equipo en memoria. El email es único sin distinguir mayúsculas.
type TeamMemberRepo struct {
	s *Store
}

// NewTeamMemberRepository construye el adaptador.
func NewTeamMemberRepository(s *Store) *TeamMemberRepo {
	return &TeamMemberRepo{s: s}
}

func (r *TeamMemberRepo) Create(_ context.Context, m *entity.TeamMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(m.Email, "") {
		return domain.ErrEmailAlreadyExists
	}
	r.s.members[m.ID] = *m
	return nil
}

func (r *TeamMemberRepo) GetByID(_ context.Context, id string) (*entity.TeamMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.members[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *TeamMemberRepo) GetByEmail(_ context.Context, email string) (*entity.TeamMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, m := range r.s.members {
		if strings.EqualFold(m.Email, email) {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (r *TeamMemberRepo) List(_ context.Context, f repository.TeamFilter) ([]*entity.TeamMember, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.TeamMember, 0, len(r.s.members))
	for _, m := range r.s.members {
		if f.Role != 0 && !m.Roles.Has(f.Role) {
			continue
		}
		if f.Active != nil && m.Active != *f.Active {
			continue
		}
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *TeamMemberRepo) Update(_ context.Context, m *entity.TeamMember) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.members[m.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.emailTaken(m.Email, m.ID) {
		return domain.ErrEmailAlreadyExists
	}
	r.s.members[m.ID] = *m
	return nil
}

func (r *TeamMemberRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.members[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.members, id)
	return nil
}

func (r *TeamMemberRepo) emailTaken(email, exceptID string) bool {
	for id, m := range r.s.members {
		if id != exceptID && strings.EqualFold(m.Email, email) {
			return true
		}
	}
	return false
}
