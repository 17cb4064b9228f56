package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/metrics"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/period"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

// ReportsDashboardUseCase dashboard de actividad diaria de setters y closers.
type ReportsDashboardUseCase struct {
	clock
	reports repository.ActivityReportRepository
	sales   repository.SaleRepository
	fees    repository.PaymentFeeRepository
}

// NewReportsDashboardUseCase construye el caso de uso.
func NewReportsDashboardUseCase(reports repository.ActivityReportRepository, sales repository.SaleRepository, fees repository.PaymentFeeRepository) *ReportsDashboardUseCase {
	return &ReportsDashboardUseCase{reports: reports, sales: sales, fees: fees}
}

// Get totales y ratios de ambas ventanas, series diarias, filas por persona,
// resumen de closers cruzado con ventas y leaderboards.
// Filtrar por un setter oculta la sección de closers y viceversa.
func (uc *ReportsDashboardUseCase) Get(ctx context.Context, q dto.DashboardQuery) (*dto.ReportsDashboardResponse, error) {
	now := uc.now()
	cur := period.Resolve(q.Preset, now)
	prev := period.Previous(q.Preset, now)

	reportsCh := fetch(func() ([]*entity.ActivityReport, error) {
		return uc.reports.List(ctx, repository.ReportFilter{From: prev.StartDate(), To: cur.EndDate()})
	})
	salesCh := fetch(func() ([]*entity.Sale, error) {
		return uc.sales.List(ctx, repository.SaleFilter{From: cur.StartDate(), To: cur.EndDate(), Closer: q.Closer})
	})
	feesCh := fetch(func() (metrics.FeeTable, error) { return usecase.LoadFeeTable(ctx, uc.fees) })

	reports := <-reportsCh
	sales := <-salesCh
	fees := <-feesCh
	if reports.err != nil {
		return nil, fmt.Errorf("dashboard reportes: reportes: %w", reports.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard reportes: ventas: %w", sales.err)
	}
	if fees.err != nil {
		return nil, fmt.Errorf("dashboard reportes: %w", fees.err)
	}

	setterCur := metrics.FilterReports(reports.val, cur, q.Setter)
	setterPrev := metrics.FilterReports(reports.val, prev, q.Setter)
	closerCur := metrics.FilterReports(reports.val, cur, q.Closer)
	closerPrev := metrics.FilterReports(reports.val, prev, q.Closer)
	sections := metrics.SectionsFor(q.Setter, q.Closer)

	resp := &dto.ReportsDashboardResponse{
		Preset:         q.Preset,
		Window:         windowDTO(cur),
		PreviousWindow: windowDTO(prev),
		Sections: dto.SectionsDTO{
			ShowSetters:      sections.ShowSetters,
			ShowClosers:      sections.ShowClosers,
			ShowLeaderboards: sections.ShowLeaderboards,
		},
		SetterDaily:       []dto.SetterRowDTO{},
		SetterByPerson:    []dto.SetterRowDTO{},
		CloserDaily:       []dto.CloserRowDTO{},
		CloserByPerson:    []dto.CloserRowDTO{},
		CloserSummary:     []dto.CloserSummaryDTO{},
		CloserLeaderboard: []dto.PerformerDTO{},
		SetterLeaderboard: []dto.PerformerDTO{},
	}

	if sections.ShowSetters {
		byPerson := metrics.SetterByPerson(setterCur)
		resp.Setters = setterTotalsDTO(metrics.SumSetter(setterCur))
		resp.SettersPrevious = setterTotalsDTO(metrics.SumSetter(setterPrev))
		resp.SetterDaily = setterRowsDTO(metrics.SetterDaily(setterCur))
		resp.SetterByPerson = setterRowsDTO(byPerson)
		if sections.ShowLeaderboards {
			resp.SetterLeaderboard = performersDTO(metrics.SetterLeaderboard(byPerson))
		}
	}
	if sections.ShowClosers {
		byPerson := metrics.CloserByPerson(closerCur)
		resp.Closers = closerTotalsDTO(metrics.SumCloser(closerCur))
		resp.ClosersPrevious = closerTotalsDTO(metrics.SumCloser(closerPrev))
		resp.CloserDaily = closerRowsDTO(metrics.CloserDaily(closerCur))
		resp.CloserByPerson = closerRowsDTO(byPerson)
		current := metrics.FilterSales(metrics.Annotate(sales.val, fees.val), cur, metrics.SaleFilters{Closer: q.Closer})
		resp.CloserSummary = closerSummary(byPerson, metrics.GroupSales(current, metrics.ByCloser))
		if sections.ShowLeaderboards {
			resp.CloserLeaderboard = performersDTO(metrics.CloserLeaderboard(byPerson))
		}
	}
	return resp, nil
}

// closerSummary une la actividad de cada closer con sus ventas. Los closers con
// ventas pero sin reportes también aparecen. Orden: cash neto descendente.
func closerSummary(activity []metrics.CloserRow, sales []metrics.SaleGroup) []dto.CloserSummaryDTO {
	bySales := make(map[string]metrics.SaleGroup, len(sales))
	for _, g := range sales {
		bySales[g.Key] = g
	}
	out := make([]dto.CloserSummaryDTO, 0, len(activity)+len(sales))
	seen := map[string]bool{}
	for _, r := range activity {
		g := bySales[r.Key]
		seen[r.Key] = true
		out = append(out, dto.CloserSummaryDTO{
			Name:      r.Key,
			Calls:     r.Calls,
			Closes:    r.Closes,
			CloseRate: r.CloseRate(),
			Sales:     g.Count,
			Revenue:   g.Revenue,
			NetCash:   g.NetCash,
		})
	}
	for _, g := range sales {
		if g.Key == "" || seen[g.Key] {
			continue
		}
		out = append(out, dto.CloserSummaryDTO{Name: g.Key, Sales: g.Count, Revenue: g.Revenue, NetCash: g.NetCash})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].NetCash.GreaterThan(out[j].NetCash) })
	return out
}
