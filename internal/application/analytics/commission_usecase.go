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

// CommissionUseCase comisiones mensuales del equipo.
type CommissionUseCase struct {
	clock
	team      repository.TeamMemberRepository
	sales     repository.SaleRepository
	fees      repository.PaymentFeeRepository
	generator CommissionPDFGenerator
}

// NewCommissionUseCase construye el caso de uso. generator puede ser nil si no se emiten PDFs.
func NewCommissionUseCase(team repository.TeamMemberRepository, sales repository.SaleRepository, fees repository.PaymentFeeRepository, generator CommissionPDFGenerator) *CommissionUseCase {
	return &CommissionUseCase{team: team, sales: sales, fees: fees, generator: generator}
}

// Get calcula las comisiones del mes (YYYY-MM; vacío = mes en curso) para todo el equipo.
// Un viewer sin visión global recibe solo su fila.
func (uc *CommissionUseCase) Get(ctx context.Context, month string, viewer metrics.Viewer) (*dto.CommissionResponse, error) {
	if month == "" {
		month = period.MonthKey(uc.now())
	}
	w, ok := period.ForPeriod(month, entity.PeriodMonthly)
	if !ok {
		return nil, fmt.Errorf("%w: mes %q inválido, se espera YYYY-MM", domain.ErrInvalidInput, month)
	}

	teamCh := fetch(func() ([]*entity.TeamMember, error) { return uc.team.List(ctx, repository.TeamFilter{}) })
	salesCh := fetch(func() ([]*entity.Sale, error) {
		return uc.sales.List(ctx, repository.SaleFilter{From: w.StartDate(), To: w.EndDate()})
	})
	feesCh := fetch(func() (metrics.FeeTable, error) { return usecase.LoadFeeTable(ctx, uc.fees) })

	team := <-teamCh
	sales := <-salesCh
	fees := <-feesCh
	if team.err != nil {
		return nil, fmt.Errorf("comisiones: equipo: %w", team.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("comisiones: ventas: %w", sales.err)
	}
	if fees.err != nil {
		return nil, fmt.Errorf("comisiones: %w", fees.err)
	}

	inMonth := metrics.FilterSales(metrics.Annotate(sales.val, fees.val), w, metrics.SaleFilters{})
	summary := metrics.ComputeCommissions(team.val, inMonth)
	restricted := !viewer.Roles.CanSeeAll()
	if restricted {
		summary = summary.RestrictTo(viewer.MemberID)
	}

	resp := &dto.CommissionResponse{
		Month:        month,
		Label:        monthLabel(w.Start),
		Start:        w.StartDate(),
		End:          w.EndDate(),
		TotalNetCash: summary.TotalNetCash,
		Rows:         make([]dto.CommissionRowDTO, 0, len(summary.Rows)),
		Total:        summary.Total,
		Closers:      summary.Closers,
		Setters:      summary.Setters,
		Other:        summary.Other,
		Restricted:   restricted,
	}
	for _, r := range summary.Rows {
		resp.Rows = append(resp.Rows, dto.CommissionRowDTO{
			MemberID:   r.MemberID,
			Name:       r.Name,
			Role:       r.Role.String(),
			Rate:       r.Rate,
			CashBase:   r.CashBase,
			Commission: r.Commission,
		})
	}
	return resp, nil
}

// Statement genera el PDF del mes con la misma visibilidad que Get.
func (uc *CommissionUseCase) Statement(ctx context.Context, month string, viewer metrics.Viewer) (pdfBytes []byte, filename string, err error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("comisiones: generador PDF no configurado")
	}
	c, err := uc.Get(ctx, month, viewer)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.generator.GenerateCommissionStatement(ctx, c)
	if err != nil {
		return nil, "", fmt.Errorf("comisiones: generación PDF: %w", err)
	}
	return pdfBytes, fmt.Sprintf("comisiones_%s.pdf", c.Month), nil
}
