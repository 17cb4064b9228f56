package jobs

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

const DigestJobName = "sales_digest"

// SalesDashboard lo cumple analytics.SalesDashboardUseCase.
type SalesDashboard interface {
	Get(ctx context.Context, q dto.DashboardQuery) (*dto.SalesDashboardResponse, error)
}

// DigestJob registra en el log los totales de la ventana configurada (por defecto "yesterday").
type DigestJob struct {
	dashboard SalesDashboard
	preset    string
	log       *logger.Logger
	timeout   time.Duration
}

func NewDigestJob(dashboard SalesDashboard, preset string, log *logger.Logger, timeout time.Duration) *DigestJob {
	if preset == "" {
		preset = "yesterday"
	}
	return &DigestJob{dashboard: dashboard, preset: preset, log: log.Component("jobs"), timeout: timeout}
}

// Run punto de entrada del scheduler.
func (j *DigestJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	_, _ = j.Digest(ctx)
}

// Digest calcula el dashboard sin filtros y deja el resumen en el log.
func (j *DigestJob) Digest(ctx context.Context) (*dto.SalesDashboardResponse, error) {
	start := time.Now()
	res, err := j.dashboard.Get(ctx, dto.DashboardQuery{Preset: j.preset})
	if err != nil {
		j.log.Error().Err(err).Str("preset", j.preset).Msg("resumen de ventas fallido")
		return nil, err
	}

	ev := j.log.Info().
		Str("job", DigestJobName).
		Str("desde", res.Window.Start).
		Str("hasta", res.Window.End).
		Int("ventas", res.Totals.Count).
		Str("revenue", res.Totals.Revenue.StringFixed(2)).
		Str("cash_neto", res.Totals.NetCash.StringFixed(2)).
		Int("variacion_cash_pct", res.Changes.NetCash).
		Int("pendientes", res.Statuses.Pending).
		Dur("duracion", time.Since(start))
	if len(res.CloserRanking) > 0 {
		ev = ev.Str("top_closer", res.CloserRanking[0].Key)
	}
	if len(res.DataQuality.UnknownPaymentMethods) > 0 {
		ev = ev.Strs("metodos_sin_comision", res.DataQuality.UnknownPaymentMethods)
	}
	ev.Msg("resumen de ventas")
	return res, nil
}
