package memory

import (
	"context"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner transacción en memoria: guarda una copia de ventas y reportes y la
// restaura si fn devuelve error. Las transacciones se serializan entre sí.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner con el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn y deshace los cambios de ventas y reportes si falla.
func (r *TxRunner) Run(_ context.Context, fn func(sales repository.SaleRepository, reports repository.ActivityReportRepository) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()

	r.s.mu.RLock()
	sales := make(map[string]entity.Sale, len(r.s.sales))
	for k, v := range r.s.sales {
		sales[k] = v
	}
	reports := make(map[string]entity.ActivityReport, len(r.s.reports))
	for k, v := range r.s.reports {
		reports[k] = v
	}
	r.s.mu.RUnlock()

	if err := fn(NewSaleRepository(r.s), NewActivityReportRepository(r.s)); err != nil {
		r.s.mu.Lock()
		r.s.sales = sales
		r.s.reports = reports
		r.s.mu.Unlock()
		return err
	}
	return nil
}
