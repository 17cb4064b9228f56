package jobs_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/jobs"
	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

func TestScheduler_RegistroYDuplicados(t *testing.T) {
	s := jobs.NewScheduler(logger.Nop())

	require.NoError(t, s.AddJob("b", "0 */5 * * * *", func() {}))
	require.NoError(t, s.AddJob("a", "@every 1h", func() {}))
	assert.Error(t, s.AddJob("a", "@every 1h", func() {}), "nombre duplicado")
	assert.Error(t, s.AddJob("c", "no-es-cron", func() {}))
	assert.Equal(t, []string{"a", "b"}, s.JobNames())
}

func TestScheduler_StartRegistraNombres(t *testing.T) {
	var buf bytes.Buffer
	s := jobs.NewScheduler(logger.New(logger.Config{Env: "production", Level: "info", Out: &buf}))
	require.NoError(t, s.AddJob(jobs.FeeWarmJobName, "@every 1h", func() {}))
	require.NoError(t, s.AddJob(jobs.DigestJobName, "0 0 8 * * *", func() {}))

	s.Start()
	<-s.Stop().Done()

	assert.Contains(t, buf.String(), `"jobs":["fee_cache_warm","sales_digest"]`)
}

func TestScheduler_EjecutaTarea(t *testing.T) {
	s := jobs.NewScheduler(logger.Nop())
	done := make(chan struct{}, 1)
	require.NoError(t, s.AddJob("tick", "* * * * * *", func() {
		select {
		case done <- struct{}{}:
		default:
		}
	}))
	s.Start()
	defer s.Stop()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("la tarea no se ejecutó")
	}
}

type fakeDashboard struct {
	query dto.DashboardQuery
	err   error
}

func (f *fakeDashboard) Get(_ context.Context, q dto.DashboardQuery) (*dto.SalesDashboardResponse, error) {
	f.query = q
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SalesDashboardResponse{
		Window:        dto.WindowDTO{Start: "2026-02-14", End: "2026-02-14", Days: 1},
		Totals:        dto.SaleTotalsDTO{Count: 2, Revenue: decimal.NewFromInt(1500), NetCash: decimal.NewFromInt(1471)},
		CloserRanking: []dto.SaleGroupDTO{{Key: "Emi"}},
	}, nil
}

func TestDigestJob_UsaPresetYRegistraTotales(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})
	dash := &fakeDashboard{}

	job := jobs.NewDigestJob(dash, "", log, time.Second)
	res, err := job.Digest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "yesterday", dash.query.Preset, "preset por defecto")
	assert.Equal(t, 2, res.Totals.Count)
	assert.Contains(t, buf.String(), `"cash_neto":"1471.00"`)
	assert.Contains(t, buf.String(), `"top_closer":"Emi"`)
}

func TestDigestJob_Error(t *testing.T) {
	boom := errors.New("db caída")
	job := jobs.NewDigestJob(&fakeDashboard{err: boom}, "last7", logger.Nop(), time.Second)
	_, err := job.Digest(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.NotPanics(t, job.Run)
}

type fakeWarmer struct{ calls int }

func (f *fakeWarmer) Warm(context.Context) error {
	f.calls++
	return errors.New("redis caído")
}

func TestFeeWarmJob_ErrorNoInterrumpe(t *testing.T) {
	w := &fakeWarmer{}
	job := jobs.NewFeeWarmJob(w, logger.Nop(), time.Second)
	assert.NotPanics(t, job.Run)
	assert.Equal(t, 1, w.calls)
}
