package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/metrics"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/memory"
)

var fixedNow = time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: esperado %s, obtenido %s", msg, want, got)
}

// seed: febrero con Emi (Stripe 1000) y Ana (Transferencia 500 pendiente); enero con Emi (750).
func seed(t *testing.T) memory.Repositories {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories(memory.NewStore())
	_, err := usecase.NewPaymentFeeUseCase(repos.Fees).SeedDefaults(ctx)
	require.NoError(t, err)

	for _, s := range []*entity.Sale{
		newSale("2026-02-03", "Emi", "Lu", "Stripe", "1000", entity.SaleStatusCompleted),
		newSale("2026-02-10", "Ana", "Mar", "Transferencia", "500", entity.SaleStatusPending),
		newSale("2026-01-20", "Emi", "Lu", "Transferencia", "750", entity.SaleStatusCompleted),
	} {
		require.NoError(t, repos.Sales.Create(ctx, s))
	}
	for _, r := range []*entity.ActivityReport{
		entity.NewSetterReport("2026-02-05", "Lu", entity.SetterActivity{ConversationsOpened: 100, AppointmentsBooked: 10}),
		entity.NewSetterReport("2026-02-06", "Mar", entity.SetterActivity{ConversationsOpened: 50, AppointmentsBooked: 10}),
		entity.NewCloserReport("2026-02-05", "Emi", entity.CloserActivity{ScheduledCalls: 12, CallsMade: 10, Closes: 2}),
	} {
		r.ID = uuid.New().String()
		require.NoError(t, repos.Reports.Create(ctx, r))
	}
	return repos
}

func newSale(date, closer, setter, method, cash string, status entity.SaleStatus) *entity.Sale {
	return &entity.Sale{
		ID:            uuid.New().String(),
		Date:          date,
		Closer:        closer,
		Setter:        setter,
		PaymentType:   entity.PaymentTypeSingle,
		PaymentMethod: method,
		Revenue:       d(cash),
		CashCollected: d(cash),
		Status:        status,
		Source:        entity.SaleSourceManual,
	}
}

func member(t *testing.T, repos memory.Repositories, name string, rate string, active bool, roles ...entity.Role) *entity.TeamMember {
	t.Helper()
	m := &entity.TeamMember{
		ID:             uuid.New().String(),
		Name:           name,
		Email:          name + "@example.com",
		Roles:          entity.NewRoleSet(roles...),
		Active:         active,
		CommissionRate: d(rate),
	}
	require.NoError(t, repos.Team.Create(context.Background(), m))
	return m
}

// ── Dashboard de ventas ─────────────────────────────────────────────────────

func TestSalesDashboard_MesConComparacionYRitmo(t *testing.T) {
	repos := seed(t)
	uc := analytics.NewSalesDashboardUseCase(repos.Sales, repos.Reports, repos.Fees)
	uc.SetClock(clock)

	out, err := uc.Get(context.Background(), dto.DashboardQuery{Preset: "month:2026-02"})
	require.NoError(t, err)

	assert.Equal(t, "2026-02-01", out.Window.Start)
	assert.Equal(t, "2026-02-15", out.Window.End)
	assert.Equal(t, "2026-01-01", out.PreviousWindow.Start)
	assert.Equal(t, 2, out.Totals.Count)
	assertDec(t, "1471", out.Totals.NetCash, "971 + 500")
	assertDec(t, "750", out.Previous.NetCash, "enero")
	assert.Equal(t, 96, out.Changes.NetCash)
	assert.Equal(t, 100, out.Changes.Revenue)
	require.NotNil(t, out.Pace, "mes en curso")
	assertDec(t, "2746", *out.Pace, "1471 / 15 × 28")
	assert.Equal(t, 1, out.Statuses.Pending)

	require.Len(t, out.CloserRanking, 2)
	assert.Equal(t, "Emi", out.CloserRanking[0].Key)
	require.Len(t, out.SetterLeaderboard, 2)
	assert.Equal(t, "Lu", out.SetterLeaderboard[0].Name, "más volumen compensa menor conversión")
	assert.Equal(t, 1, out.SetterLeaderboard[0].Rank)
	assert.Empty(t, out.DataQuality.UnknownPaymentMethods)
}

func TestSalesDashboard_FiltroPorCloser(t *testing.T) {
	repos := seed(t)
	uc := analytics.NewSalesDashboardUseCase(repos.Sales, repos.Reports, repos.Fees)
	uc.SetClock(clock)

	out, err := uc.Get(context.Background(), dto.DashboardQuery{Preset: "month:2026-01", Closer: "Emi"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Totals.Count)
	assert.Nil(t, out.Pace, "un mes cerrado no tiene ritmo")
	assert.Equal(t, 0, out.Changes.NetCash, "sin periodo previo no hay variación")
}

// ── Dashboard de reportes ───────────────────────────────────────────────────

func TestReportsDashboard_ResumenDeClosersIncluyeSoloVentas(t *testing.T) {
	repos := seed(t)
	uc := analytics.NewReportsDashboardUseCase(repos.Reports, repos.Sales, repos.Fees)
	uc.SetClock(clock)

	out, err := uc.Get(context.Background(), dto.DashboardQuery{Preset: "month:2026-02"})
	require.NoError(t, err)
	assert.True(t, out.Sections.ShowLeaderboards)
	assert.Equal(t, 150, out.Setters.Conversations)
	assert.Equal(t, 10, out.Closers.Calls)

	require.Len(t, out.CloserSummary, 2)
	assert.Equal(t, "Emi", out.CloserSummary[0].Name)
	assert.Equal(t, 20, out.CloserSummary[0].CloseRate)
	assert.Equal(t, "Ana", out.CloserSummary[1].Name)
	assert.Zero(t, out.CloserSummary[1].Calls, "Ana tiene ventas pero no reportes")
	require.Len(t, out.CloserLeaderboard, 1)
}

func TestReportsDashboard_FiltroSetterOcultaClosers(t *testing.T) {
	repos := seed(t)
	uc := analytics.NewReportsDashboardUseCase(repos.Reports, repos.Sales, repos.Fees)
	uc.SetClock(clock)

	out, err := uc.Get(context.Background(), dto.DashboardQuery{Preset: "month:2026-02", Setter: "Lu"})
	require.NoError(t, err)
	assert.True(t, out.Sections.ShowSetters)
	assert.False(t, out.Sections.ShowClosers)
	assert.False(t, out.Sections.ShowLeaderboards)
	assert.Equal(t, 100, out.Setters.Conversations)
	assert.Empty(t, out.CloserSummary)
	assert.Empty(t, out.SetterLeaderboard)
}

// ── Comisiones ──────────────────────────────────────────────────────────────

type fakePDF struct{ rows int }

func (f *fakePDF) GenerateCommissionStatement(_ context.Context, c *dto.CommissionResponse) ([]byte, error) {
	f.rows = len(c.Rows)
	return []byte("%PDF"), nil
}

func TestCommission_BasesPorRolYRedondeo(t *testing.T) {
	repos := seed(t)
	emi := member(t, repos, "Emi", "0.1", true, entity.RoleCloser)
	member(t, repos, "Lu", "0.05", true, entity.RoleSetter)
	member(t, repos, "Dir", "0.02", true, entity.RoleDirector, entity.RoleCloser)
	member(t, repos, "Baja", "0.5", false, entity.RoleSetter)

	uc := analytics.NewCommissionUseCase(repos.Team, repos.Sales, repos.Fees, nil)
	uc.SetClock(clock)

	out, err := uc.Get(context.Background(), "", metrics.Viewer{Roles: entity.NewRoleSet(entity.RoleDirector)})
	require.NoError(t, err)
	assert.Equal(t, "2026-02", out.Month)
	assert.Equal(t, "Febrero 2026", out.Label)
	assertDec(t, "1471", out.TotalNetCash, "cash neto del mes")
	require.Len(t, out.Rows, 3, "los inactivos no cobran")
	assertDec(t, "97", out.Closers, "971 × 10%")
	assertDec(t, "74", out.Setters, "1471 × 5% = 73,55")
	assertDec(t, "29", out.Other, "director sobre el total")
	assertDec(t, "200", out.Total, "suma")
	assert.False(t, out.Restricted)

	own, err := uc.Get(context.Background(), "2026-02", metrics.Viewer{MemberID: emi.ID, Name: "Emi", Roles: emi.Roles})
	require.NoError(t, err)
	assert.True(t, own.Restricted)
	require.Len(t, own.Rows, 1)
	assert.Equal(t, "Emi", own.Rows[0].Name)
	assertDec(t, "97", own.Total, "subtotal de la fila visible")

	_, err = uc.Get(context.Background(), "2026-13", metrics.Viewer{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCommission_Statement(t *testing.T) {
	repos := seed(t)
	member(t, repos, "Emi", "0.1", true, entity.RoleCloser)
	gen := &fakePDF{}
	uc := analytics.NewCommissionUseCase(repos.Team, repos.Sales, repos.Fees, gen)
	uc.SetClock(clock)

	data, name, err := uc.Statement(context.Background(), "2026-02", metrics.Viewer{Roles: entity.NewRoleSet(entity.RoleManager)})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Equal(t, "comisiones_2026-02.pdf", name)
	assert.Equal(t, 1, gen.rows)
}

// ── Proyecciones ────────────────────────────────────────────────────────────

func TestProjectionBoard_AvanceEHistorico(t *testing.T) {
	ctx := context.Background()
	repos := seed(t)
	emi := member(t, repos, "Emi", "0.1", true, entity.RoleCloser)
	lu := member(t, repos, "Lu", "0.05", true, entity.RoleSetter)
	for _, p := range []*entity.Projection{
		{ID: "p1", Period: "2026-02", PeriodType: entity.PeriodMonthly, Scope: entity.ScopeCompany, CashTarget: d("2000")},
		{ID: "p2", Period: "2026-02", PeriodType: entity.PeriodMonthly, Scope: entity.ScopeCloser, MemberID: &emi.ID, CashTarget: d("1000")},
		{ID: "p3", Period: "2026-02", PeriodType: entity.PeriodMonthly, Scope: entity.ScopeSetter, MemberID: &lu.ID, AppointmentTarget: 20},
		{ID: "p4", Period: "2026-01", PeriodType: entity.PeriodMonthly, Scope: entity.ScopeCompany, CashTarget: d("1500")},
	} {
		require.NoError(t, repos.Projections.Create(ctx, p))
	}
	uc := analytics.NewProjectionBoardUseCase(repos.Projections, repos.Team, repos.Sales, repos.Reports, repos.Fees)
	uc.SetClock(clock)

	out, err := uc.Get(ctx, dto.BoardQuery{}, metrics.Viewer{Roles: entity.NewRoleSet(entity.RoleDirector)})
	require.NoError(t, err)
	assert.Equal(t, "2026-02", out.Period)
	assert.Equal(t, "Febrero 2026", out.Label)
	assertDec(t, "1471", out.Cash.Actual, "cash neto de febrero")
	assert.True(t, out.Cash.HasTarget)
	require.Len(t, out.Closers, 1)
	assert.Equal(t, 97, out.Closers[0].Progress, "971 de 1000")
	require.Len(t, out.Setters, 1)
	assert.Equal(t, 50, out.Setters[0].Progress, "10 de 20 agendas")

	require.Len(t, out.History, analytics.HistoryPeriods)
	jan := out.History[len(out.History)-2]
	assert.Equal(t, "2026-01", jan.Period)
	assert.Equal(t, 50, jan.Progress, "750 de 1500")

	setterView, err := uc.Get(ctx, dto.BoardQuery{Period: "2026-02"}, metrics.Viewer{MemberID: lu.ID, Name: "Lu", Roles: lu.Roles})
	require.NoError(t, err)
	assert.Empty(t, setterView.Closers)
	assert.Len(t, setterView.Setters, 1)

	_, err = uc.Get(ctx, dto.BoardQuery{PeriodType: "weekly", Period: "2026-02"}, metrics.Viewer{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
