package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/metrics"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/period"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

// HistoryPeriods número de periodos de la serie histórica (incluye el actual).
const HistoryPeriods = 6

// ProjectionBoardUseCase avance de objetivos frente a reales.
type ProjectionBoardUseCase struct {
	clock
	projections repository.ProjectionRepository
	team        repository.TeamMemberRepository
	sales       repository.SaleRepository
	reports     repository.ActivityReportRepository
	fees        repository.PaymentFeeRepository
}

// NewProjectionBoardUseCase construye el caso de uso.
func NewProjectionBoardUseCase(
	projections repository.ProjectionRepository,
	team repository.TeamMemberRepository,
	sales repository.SaleRepository,
	reports repository.ActivityReportRepository,
	fees repository.PaymentFeeRepository,
) *ProjectionBoardUseCase {
	return &ProjectionBoardUseCase{projections: projections, team: team, sales: sales, reports: reports, fees: fees}
}

// Get tablero del periodo (vacío = periodo en curso) más la serie de los últimos periodos.
func (uc *ProjectionBoardUseCase) Get(ctx context.Context, q dto.BoardQuery, viewer metrics.Viewer) (*dto.ProjectionBoardResponse, error) {
	pt := entity.PeriodType(q.PeriodType)
	if pt == "" {
		pt = entity.PeriodMonthly
	}
	key := q.Period
	if key == "" {
		key = period.CurrentKey(pt, uc.now())
	}
	w, ok := period.ForPeriod(key, pt)
	if !ok {
		return nil, fmt.Errorf("%w: periodo %q no es válido para %s", domain.ErrInvalidInput, key, pt)
	}
	periods := period.Back(key, pt, HistoryPeriods)
	first, _ := period.ForPeriod(periods[0], pt)

	projCh := fetch(func() ([]*entity.Projection, error) {
		return uc.projections.List(ctx, repository.ProjectionFilter{PeriodType: pt, Periods: periods})
	})
	teamCh := fetch(func() ([]*entity.TeamMember, error) { return uc.team.List(ctx, repository.TeamFilter{}) })
	salesCh := fetch(func() ([]*entity.Sale, error) {
		return uc.sales.List(ctx, repository.SaleFilter{From: first.StartDate(), To: w.EndDate()})
	})
	reportsCh := fetch(func() ([]*entity.ActivityReport, error) {
		return uc.reports.List(ctx, repository.ReportFilter{From: w.StartDate(), To: w.EndDate(), Role: entity.ReportRoleSetter})
	})
	feesCh := fetch(func() (metrics.FeeTable, error) { return usecase.LoadFeeTable(ctx, uc.fees) })

	projections := <-projCh
	team := <-teamCh
	sales := <-salesCh
	reports := <-reportsCh
	fees := <-feesCh
	for _, err := range []error{projections.err, team.err, sales.err, reports.err, fees.err} {
		if err != nil {
			return nil, fmt.Errorf("proyecciones: %w", err)
		}
	}

	names := make(map[string]string, len(team.val))
	for _, m := range team.val {
		names[m.ID] = m.Name
	}
	annotated := metrics.Annotate(sales.val, fees.val)
	actuals := metrics.ComputeActuals(
		metrics.FilterSales(annotated, w, metrics.SaleFilters{}),
		metrics.FilterReports(reports.val, w, ""),
	)
	board := metrics.Track(projections.val, key, pt, actuals, names, viewer)
	history := metrics.History(periods, pt, projections.val, metrics.NetCashByPeriod(annotated, periods, pt))

	resp := &dto.ProjectionBoardResponse{
		Period:     key,
		PeriodType: string(pt),
		Label:      period.Label(key, pt),
		Start:      w.StartDate(),
		End:        w.EndDate(),
		Cash:       progressDTO(board.Cash),
		Revenue:    progressDTO(board.Revenue),
		Closers:    make([]dto.TargetProgressDTO, 0, len(board.Closers)),
		Setters:    make([]dto.TargetProgressDTO, 0, len(board.Setters)),
		History:    make([]dto.HistoryPointDTO, 0, len(history)),
	}
	if pt == entity.PeriodMonthly {
		resp.Label = monthLabel(w.Start)
	}
	for _, p := range board.Closers {
		resp.Closers = append(resp.Closers, progressDTO(p))
	}
	for _, p := range board.Setters {
		resp.Setters = append(resp.Setters, progressDTO(p))
	}
	for _, h := range history {
		resp.History = append(resp.History, dto.HistoryPointDTO{
			Period:   h.Period,
			Label:    h.Label,
			Target:   h.Target,
			Actual:   h.Actual,
			Progress: h.Progress,
		})
	}
	return resp, nil
}
