// Package analytics contiene los casos de uso de lectura: dashboards de ventas
// y de actividad, comisiones y tablero de proyecciones.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/metrics"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/period"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

// SalesDashboardUseCase genera el dashboard de ventas de una ventana y su comparación.
//
// Fuente de datos: repositorios de ventas, reportes y comisiones de pasarela.
// Cada llamada recalcula desde cero sobre una foto recién leída.
type SalesDashboardUseCase struct {
	clock
	sales   repository.SaleRepository
	reports repository.ActivityReportRepository
	fees    repository.PaymentFeeRepository
}

// NewSalesDashboardUseCase construye el caso de uso.
func NewSalesDashboardUseCase(sales repository.SaleRepository, reports repository.ActivityReportRepository, fees repository.PaymentFeeRepository) *SalesDashboardUseCase {
	return &SalesDashboardUseCase{sales: sales, reports: reports, fees: fees}
}

// Get construye el SalesDashboardResponse.
//
// Tres lecturas en paralelo:
//  1. ventas de la ventana anterior + actual  → totales, series, grupos
//  2. reportes de setters de la ventana       → leaderboard de setters
//  3. tabla de comisiones de pasarela         → cash neto
func (uc *SalesDashboardUseCase) Get(ctx context.Context, q dto.DashboardQuery) (*dto.SalesDashboardResponse, error) {
	now := uc.now()

	// ── Ventanas ───────────────────────────────────────────────────────────────
	cur := period.Resolve(q.Preset, now)
	prev := period.Previous(q.Preset, now)

	// ── Lecturas en paralelo ───────────────────────────────────────────────────
	salesCh := fetch(func() ([]*entity.Sale, error) {
		return uc.sales.List(ctx, repository.SaleFilter{From: prev.StartDate(), To: cur.EndDate()})
	})
	reportsCh := fetch(func() ([]*entity.ActivityReport, error) {
		return uc.reports.List(ctx, repository.ReportFilter{From: cur.StartDate(), To: cur.EndDate(), Role: entity.ReportRoleSetter})
	})
	feesCh := fetch(func() (metrics.FeeTable, error) { return usecase.LoadFeeTable(ctx, uc.fees) })

	sales := <-salesCh
	reports := <-reportsCh
	fees := <-feesCh

	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}
	if reports.err != nil {
		return nil, fmt.Errorf("dashboard: reportes: %w", reports.err)
	}
	if fees.err != nil {
		return nil, fmt.Errorf("dashboard: %w", fees.err)
	}

	// ── Filtrar y anotar cash neto ─────────────────────────────────────────────
	annotated := metrics.Annotate(sales.val, fees.val)
	filters := metrics.SaleFilters{Closer: q.Closer, Setter: q.Setter, Product: q.Product, PaymentMethod: q.PaymentMethod}
	current := metrics.FilterSales(annotated, cur, filters)
	previous := metrics.FilterSales(annotated, prev, filters)

	totals := metrics.SumSales(current)
	prevTotals := metrics.SumSales(previous)
	statuses := metrics.CountStatuses(current)

	resp := &dto.SalesDashboardResponse{
		Preset:         q.Preset,
		Window:         windowDTO(cur),
		PreviousWindow: windowDTO(prev),
		Totals:         totalsDTO(totals),
		Previous:       totalsDTO(prevTotals),
		Changes: dto.ChangesDTO{
			Revenue: metrics.Change(totals.Revenue, prevTotals.Revenue),
			NetCash: metrics.Change(totals.NetCash, prevTotals.NetCash),
			Count:   metrics.Rate(totals.Count-prevTotals.Count, prevTotals.Count),
		},
		PendingRevenue: totals.PendingRevenue(),
		CollectedPct:   totals.CollectedPct(),
		Statuses: dto.StatusCountsDTO{
			Completed:           statuses.Completed,
			Pending:             statuses.Pending,
			Refunded:            statuses.Refunded,
			InstallmentSales:    statuses.InstallmentSales,
			PendingInstallments: statuses.PendingInstallment,
		},
		DataQuality: dto.DataQualityDTO{UnknownPaymentMethods: metrics.UnknownMethods(current)},
	}
	if period.IsCurrentMonth(q.Preset, now) {
		pace := metrics.Pace(totals.NetCash, now.Day(), period.DaysInMonth(now))
		resp.Pace = &pace
	}

	// ── Series y grupos ────────────────────────────────────────────────────────
	daily := metrics.Cumulative(current)
	resp.Daily = make([]dto.DailyPointDTO, 0, len(daily))
	for _, p := range daily {
		resp.Daily = append(resp.Daily, dto.DailyPointDTO{
			Date:       p.Date,
			Count:      p.Count,
			Revenue:    p.Revenue,
			NetCash:    p.NetCash,
			CumRevenue: p.CumRevenue,
			CumNetCash: p.CumNetCash,
		})
	}
	resp.ByProduct = groupsDTO(metrics.SortByRevenue(metrics.GroupSales(current, metrics.ByProduct)))
	resp.ByCloser = groupsDTO(metrics.SortByRevenue(metrics.WithoutEmptyKey(metrics.GroupSales(current, metrics.ByCloser))))
	resp.BySetter = groupsDTO(metrics.SortByNetCash(metrics.WithoutEmptyKey(metrics.GroupSales(current, metrics.BySetter))))
	resp.ByUTMSource = groupsDTO(metrics.SortByRevenue(metrics.GroupSales(current, metrics.ByUTMSource)))
	resp.ByCountry = groupsDTO(metrics.SortByRevenue(metrics.GroupSales(current, metrics.ByCountry)))
	resp.ByPaymentType = groupsDTO(metrics.SortByKey(metrics.GroupSales(current, metrics.ByPaymentType)))
	resp.ByPaymentMethod = groupsDTO(metrics.SortByKey(metrics.GroupSales(current, metrics.ByPaymentMethod)))

	// ── Rankings ───────────────────────────────────────────────────────────────
	resp.CloserRanking = groupsDTO(metrics.RankByCash(current))
	setterReports := metrics.FilterReports(reports.val, cur, q.Setter)
	resp.SetterLeaderboard = performersDTO(metrics.SetterLeaderboard(metrics.SetterByPerson(setterReports)))

	return resp, nil
}
