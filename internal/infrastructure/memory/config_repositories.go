package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

// ── Comisiones de pasarela ──────────────────────────────────────────────────

var _ repository.PaymentFeeRepository = (*PaymentFeeRepo)(nil)

// PaymentFeeRepo tabla de comisiones en memoria.
type PaymentFeeRepo struct {
	s *Store
}

// NewPaymentFeeRepository construye el adaptador.
func NewPaymentFeeRepository(s *Store) *PaymentFeeRepo {
	return &PaymentFeeRepo{s: s}
}

func (r *PaymentFeeRepo) Create(_ context.Context, f *entity.PaymentFee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.methodTaken(f.Method, "") {
		return domain.ErrDuplicate
	}
	r.s.fees[f.ID] = *f
	return nil
}

func (r *PaymentFeeRepo) GetByID(_ context.Context, id string) (*entity.PaymentFee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	f, ok := r.s.fees[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *PaymentFeeRepo) GetByMethod(_ context.Context, method string) (*entity.PaymentFee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, f := range r.s.fees {
		if f.Method == method {
			f := f
			return &f, nil
		}
	}
	return nil, nil
}

func (r *PaymentFeeRepo) List(_ context.Context) ([]*entity.PaymentFee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.PaymentFee, 0, len(r.s.fees))
	for _, f := range r.s.fees {
		f := f
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Method < out[j].Method })
	return out, nil
}

func (r *PaymentFeeRepo) Update(_ context.Context, f *entity.PaymentFee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.fees[f.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.methodTaken(f.Method, f.ID) {
		return domain.ErrDuplicate
	}
	r.s.fees[f.ID] = *f
	return nil
}

func (r *PaymentFeeRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.fees[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.fees, id)
	return nil
}

func (r *PaymentFeeRepo) methodTaken(method, exceptID string) bool {
	for id, f := range r.s.fees {
		if id != exceptID && f.Method == method {
			return true
		}
	}
	return false
}

// ── Proyecciones ────────────────────────────────────────────────────────────

var _ repository.ProjectionRepository = (*ProjectionRepo)(nil)

// ProjectionRepo objetivos en memoria.
type ProjectionRepo struct {
	s *Store
}

// NewProjectionRepository construye el adaptador.
func NewProjectionRepository(s *Store) *ProjectionRepo {
	return &ProjectionRepo{s: s}
}

func projectionKey(p entity.Projection) string {
	return p.Period + "|" + string(p.PeriodType) + "|" + string(p.Scope) + "|" + p.MemberKey()
}

func (r *ProjectionRepo) Create(_ context.Context, p *entity.Projection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.keyTaken(*p, "") {
		return domain.ErrDuplicate
	}
	r.s.projections[p.ID] = *cloneProjection(*p)
	return nil
}

func (r *ProjectionRepo) GetByID(_ context.Context, id string) (*entity.Projection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projections[id]
	if !ok {
		return nil, nil
	}
	return cloneProjection(p), nil
}

func (r *ProjectionRepo) List(_ context.Context, f repository.ProjectionFilter) ([]*entity.Projection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	periods := map[string]bool{}
	for _, p := range f.Periods {
		periods[p] = true
	}
	out := make([]*entity.Projection, 0, len(r.s.projections))
	for _, p := range r.s.projections {
		if f.PeriodType != "" && p.PeriodType != f.PeriodType {
			continue
		}
		if len(periods) > 0 && !periods[p.Period] {
			continue
		}
		if f.Scope != "" && p.Scope != f.Scope {
			continue
		}
		if f.MemberID != "" && p.MemberKey() != f.MemberID {
			continue
		}
		out = append(out, cloneProjection(p))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period != out[j].Period {
			return out[i].Period > out[j].Period
		}
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *ProjectionRepo) Update(_ context.Context, p *entity.Projection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projections[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.keyTaken(*p, p.ID) {
		return domain.ErrDuplicate
	}
	r.s.projections[p.ID] = *cloneProjection(*p)
	return nil
}

func (r *ProjectionRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projections[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.projections, id)
	return nil
}

func (r *ProjectionRepo) keyTaken(p entity.Projection, exceptID string) bool {
	key := projectionKey(p)
	for id, other := range r.s.projections {
		if id != exceptID && projectionKey(other) == key {
			return true
		}
	}
	return false
}

// ── Configuración n8n ───────────────────────────────────────────────────────

var _ repository.N8nConfigRepository = (*N8nConfigRepo)(nil)

// N8nConfigRepo singleton en memoria.
type N8nConfigRepo struct {
	s *Store
}

// NewN8nConfigRepository construye el adaptador.
func NewN8nConfigRepository(s *Store) *N8nConfigRepo {
	return &N8nConfigRepo{s: s}
}

func (r *N8nConfigRepo) Get(_ context.Context) (*entity.N8nConfig, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.n8n == nil {
		return nil, nil
	}
	c := *r.s.n8n
	return &c, nil
}

func (r *N8nConfigRepo) Create(_ context.Context, c *entity.N8nConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.n8n != nil {
		return domain.ErrDuplicate
	}
	cp := *c
	r.s.n8n = &cp
	return nil
}

func (r *N8nConfigRepo) Update(_ context.Context, c *entity.N8nConfig) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.n8n == nil {
		return domain.ErrNotFound
	}
	cp := *c
	r.s.n8n = &cp
	return nil
}

func (r *N8nConfigRepo) TouchLastSync(_ context.Context, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.n8n == nil {
		return nil
	}
	r.s.n8n.LastSync = &at
	return nil
}
