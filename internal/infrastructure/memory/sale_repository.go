package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct {
	s *Store
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(s *Store) *SaleRepo {
	return &SaleRepo{s: s}
}

// Create inserta; el id de actividad externa es único.
func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; ok {
		return domain.ErrDuplicate
	}
	if sale.ExternalActivityID != nil && r.findByActivity(*sale.ExternalActivityID) != nil {
		return domain.ErrDuplicate
	}
	r.s.sales[sale.ID] = *cloneSale(*sale)
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(sale), nil
}

// GetByExternalActivityID busca por id de actividad del CRM.
func (r *SaleRepo) GetByExternalActivityID(_ context.Context, activityID string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.findByActivity(activityID), nil
}

func (r *SaleRepo) findByActivity(activityID string) *entity.Sale {
	for _, sale := range r.s.sales {
		if sale.ExternalActivityID != nil && *sale.ExternalActivityID == activityID {
			return cloneSale(sale)
		}
	}
	return nil
}

// List filtra y ordena por fecha descendente.
func (r *SaleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Sale, 0, len(r.s.sales))
	for _, sale := range r.s.sales {
		if !inRange(sale.Date, f.From, f.To) {
			continue
		}
		if f.Closer != "" && sale.Closer != f.Closer {
			continue
		}
		if f.Setter != "" && sale.Setter != f.Setter {
			continue
		}
		if f.Product != "" && sale.Product != f.Product {
			continue
		}
		if f.PaymentMethod != "" && sale.PaymentMethod != f.PaymentMethod {
			continue
		}
		if f.Status != "" && sale.Status != f.Status {
			continue
		}
		out = append(out, cloneSale(sale))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Update reemplaza la venta completa.
func (r *SaleRepo) Update(_ context.Context, sale *entity.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[sale.ID]; !ok {
		return domain.ErrNotFound
	}
	if sale.ExternalActivityID != nil {
		if other := r.findByActivity(*sale.ExternalActivityID); other != nil && other.ID != sale.ID {
			return domain.ErrDuplicate
		}
	}
	r.s.sales[sale.ID] = *cloneSale(*sale)
	return nil
}

// Delete elimina por id.
func (r *SaleRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sales[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.sales, id)
	return nil
}
