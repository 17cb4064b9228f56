package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

var _ repository.ActivityReportRepository = (*ActivityReportRepo)(nil)

// ActivityReportRepo reportes diarios en memoria.
type ActivityReportRepo struct {
	s *Store
}

// NewActivityReportRepository construye el adaptador.
func NewActivityReportRepository(s *Store) *ActivityReportRepo {
	return &ActivityReportRepo{s: s}
}

func (r *ActivityReportRepo) Create(_ context.Context, rep *entity.ActivityReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reports[rep.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.reports[rep.ID] = *cloneReport(*rep)
	return nil
}

func (r *ActivityReportRepo) GetByID(_ context.Context, id string) (*entity.ActivityReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rep, ok := r.s.reports[id]
	if !ok {
		return nil, nil
	}
	return cloneReport(rep), nil
}

func (r *ActivityReportRepo) List(_ context.Context, f repository.ReportFilter) ([]*entity.ActivityReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.ActivityReport, 0, len(r.s.reports))
	for _, rep := range r.s.reports {
		if !inRange(rep.Date, f.From, f.To) {
			continue
		}
		if f.Role != "" && rep.Role != f.Role {
			continue
		}
		if f.Name != "" && rep.Name != f.Name {
			continue
		}
		out = append(out, cloneReport(rep))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ActivityReportRepo) Update(_ context.Context, rep *entity.ActivityReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reports[rep.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.reports[rep.ID] = *cloneReport(*rep)
	return nil
}

func (r *ActivityReportRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.reports[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.reports, id)
	return nil
}
