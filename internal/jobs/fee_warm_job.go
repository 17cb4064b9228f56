package jobs

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

const FeeWarmJobName = "fee_cache_warm"

// FeeWarmer lo cumple cache.FeeCache.
type FeeWarmer interface {
	Warm(ctx context.Context) error
}

// FeeWarmJob recarga la tabla de comisiones en Redis antes de que expire.
type FeeWarmJob struct {
	cache   FeeWarmer
	log     *logger.Logger
	timeout time.Duration
}

func NewFeeWarmJob(cache FeeWarmer, log *logger.Logger, timeout time.Duration) *FeeWarmJob {
	return &FeeWarmJob{cache: cache, log: log.Component("jobs"), timeout: timeout}
}

func (j *FeeWarmJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	if err := j.cache.Warm(ctx); err != nil {
		j.log.Warn().Err(err).Str("job", FeeWarmJobName).Msg("no se pudo precargar comisiones")
	}
}
