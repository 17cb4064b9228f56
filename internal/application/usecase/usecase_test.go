package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/memory"
)

func setup(t *testing.T) memory.Repositories {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	n, err := usecase.NewPaymentFeeUseCase(repos.Fees).SeedDefaults(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, n)
	return repos
}

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

// ── Ventas ──────────────────────────────────────────────────────────────────

func TestSaleUseCase_CreaConDefectosYCashNeto(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	uc := usecase.NewSaleUseCase(repos.Sales, repos.Fees, nil, "")

	out, err := uc.Create(ctx, dto.CreateSaleRequest{SaleFields: dto.SaleFields{
		Date:          "2026-02-03",
		Closer:        "Emi",
		PaymentMethod: "Stripe",
		CashCollected: decimal.NewFromInt(1000),
	}})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Pago único", out.PaymentType)
	assert.Equal(t, "Completada", out.Status)
	assert.Equal(t, "manual", out.Source)
	assert.True(t, decimal.NewFromInt(971).Equal(out.NetCash), "1000 - 2,9%%, obtenido %s", out.NetCash)
	assert.False(t, out.UnknownMethod)
}

func TestSaleUseCase_RechazaTipoDePagoInvalido(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	uc := usecase.NewSaleUseCase(repos.Sales, repos.Fees, nil, "")

	_, err := uc.Create(ctx, dto.CreateSaleRequest{SaleFields: dto.SaleFields{PaymentType: "12 cuotas"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaleUseCase_UpdateParcial(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	uc := usecase.NewSaleUseCase(repos.Sales, repos.Fees, nil, "")

	created, err := uc.Create(ctx, dto.CreateSaleRequest{SaleFields: dto.SaleFields{
		Date: "2026-02-03", Closer: "Emi", CashCollected: decimal.NewFromInt(500),
	}})
	require.NoError(t, err)

	newCash := decimal.NewFromInt(800)
	updated, err := uc.Update(ctx, created.ID, dto.UpdateSaleRequest{CashCollected: &newCash, Status: strp("Pendiente")})
	require.NoError(t, err)
	assert.Equal(t, "Emi", updated.Closer, "los campos ausentes no cambian")
	assert.Equal(t, "Pendiente", updated.Status)
	assert.True(t, newCash.Equal(updated.NetCash))

	_, err = uc.Update(ctx, created.ID, dto.UpdateSaleRequest{Status: strp("Otro")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, "no-existe", dto.UpdateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaleUseCase_ListConTotales(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	uc := usecase.NewSaleUseCase(repos.Sales, repos.Fees, nil, "")
	for _, f := range []dto.SaleFields{
		{Date: "2026-02-01", Closer: "Emi", PaymentMethod: "PayPal", Revenue: decimal.NewFromInt(1000), CashCollected: decimal.NewFromInt(1000)},
		{Date: "2026-02-02", Closer: "Ana", PaymentMethod: "Transferencia", Revenue: decimal.NewFromInt(200), CashCollected: decimal.NewFromInt(200)},
		{Date: "2026-01-15", Closer: "Emi", CashCollected: decimal.NewFromInt(50)},
	} {
		_, err := uc.Create(ctx, dto.CreateSaleRequest{SaleFields: f})
		require.NoError(t, err)
	}

	list, err := uc.List(ctx, dto.SaleListQuery{From: "2026-02-01", To: "2026-02-28"})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)
	assert.True(t, decimal.NewFromInt(1200).Equal(list.CashCollected))
	assert.True(t, decimal.NewFromInt(1165).Equal(list.NetCash), "965 + 200, obtenido %s", list.NetCash)
	assert.Equal(t, "2026-02-02", list.Items[0].Date)
}

type fakeExporter struct{ rows int }

func (f *fakeExporter) ExportSales(_ context.Context, sales []dto.SaleResponse) ([]byte, error) {
	f.rows = len(sales)
	return []byte("xlsx"), nil
}

func TestSaleUseCase_Export(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	exp := &fakeExporter{}
	uc := usecase.NewSaleUseCase(repos.Sales, repos.Fees, exp, "")
	_, err := uc.Create(ctx, dto.CreateSaleRequest{SaleFields: dto.SaleFields{Date: "2026-02-01"}})
	require.NoError(t, err)

	data, name, err := uc.Export(ctx, dto.SaleListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Regexp(t, `^ventas_\d{8}\.xlsx$`, name)
	assert.Equal(t, 1, exp.rows)
}

// ── Reportes ────────────────────────────────────────────────────────────────

func TestReportUseCase_FormaSegunRol(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	uc := usecase.NewReportUseCase(repos.Reports)

	rep, err := uc.Create(ctx, dto.ReportRequest{Date: "2026-02-01", Role: "setter", Name: "Lu", ConversationsOpened: intp(30), OffersLaunched: intp(4)})
	require.NoError(t, err)
	require.NotNil(t, rep.Setter)
	assert.Nil(t, rep.Closer)
	assert.Equal(t, 30, rep.Setter.ConversationsOpened)

	_, err = uc.Create(ctx, dto.ReportRequest{Role: "setter", Name: "Lu", Closes: intp(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un setter no reporta cierres")

	upd, err := uc.Update(ctx, rep.ID, dto.ReportRequest{Role: "closer", Name: "Lu", CallsMade: intp(3)})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", upd.Date, "sin fecha se conserva la anterior")
	require.NotNil(t, upd.Closer)
	assert.Equal(t, 3, upd.Closer.CallsMade)

	require.NoError(t, uc.Delete(ctx, rep.ID))
	assert.ErrorIs(t, uc.Delete(ctx, rep.ID), domain.ErrNotFound)
}

// ── Equipo ──────────────────────────────────────────────────────────────────

func TestTeamUseCase_CreaYNormalizaEmail(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	uc := usecase.NewTeamUseCase(repos.Team)

	m, err := uc.Create(ctx, dto.CreateTeamMemberRequest{
		Name: "Emi", Email: " Emi@Example.com ", Password: "secreto123", Roles: []string{"setter", "closer"},
		CommissionRate: decimal.RequireFromString("0.1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "emi@example.com", m.Email)
	assert.Equal(t, "closer", m.PrimaryRole)
	assert.True(t, m.Active)

	stored, err := repos.Team.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", stored.PasswordHash, "el password se guarda hasheado")

	_, err = uc.Create(ctx, dto.CreateTeamMemberRequest{Name: "Otro", Email: "emi@example.com", Password: "secreto123", Roles: []string{"setter"}})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Create(ctx, dto.CreateTeamMemberRequest{Name: "X", Email: "x@example.com", Password: "secreto123", Roles: []string{"jefe"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTeamUseCase_ListYUpdate(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	uc := usecase.NewTeamUseCase(repos.Team)

	a, err := uc.Create(ctx, dto.CreateTeamMemberRequest{Name: "Ana", Email: "ana@x.com", Password: "secreto123", Roles: []string{"closer"}})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateTeamMemberRequest{Name: "Lu", Email: "lu@x.com", Password: "secreto123", Roles: []string{"setter"}})
	require.NoError(t, err)

	closers, err := uc.List(ctx, "closer", nil)
	require.NoError(t, err)
	require.Len(t, closers, 1)
	assert.Equal(t, "Ana", closers[0].Name)

	_, err = uc.Update(ctx, a.ID, dto.UpdateTeamMemberRequest{Email: strp("lu@x.com")})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	inactive := false
	upd, err := uc.Update(ctx, a.ID, dto.UpdateTeamMemberRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, upd.Active)

	_, err = uc.List(ctx, "jefe", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTeamUseCase_EnsureDirectorIdempotente(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	uc := usecase.NewTeamUseCase(repos.Team)

	created, err := uc.EnsureDirector(ctx, "Dirección", "dir@x.com", "secreto123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureDirector(ctx, "Dirección", "dir@x.com", "secreto123")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestTeamUseCase_NoDejaSinDirectorActivo(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	uc := usecase.NewTeamUseCase(repos.Team)

	dir, err := uc.Create(ctx, dto.CreateTeamMemberRequest{Name: "Dirección", Email: "dir@x.com", Password: "secreto123", Roles: []string{"director"}})
	require.NoError(t, err)

	inactive := false
	_, err = uc.Update(ctx, dir.ID, dto.UpdateTeamMemberRequest{Active: &inactive})
	assert.ErrorIs(t, err, domain.ErrConflict, "desactivar al único director")
	_, err = uc.Update(ctx, dir.ID, dto.UpdateTeamMemberRequest{Roles: []string{"manager"}})
	assert.ErrorIs(t, err, domain.ErrConflict, "quitarle el rol de director")
	assert.ErrorIs(t, uc.Delete(ctx, dir.ID), domain.ErrConflict)

	kept, err := uc.GetByID(ctx, dir.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.True(t, kept.Active)
	assert.Equal(t, "director", kept.PrimaryRole)

	_, err = uc.Create(ctx, dto.CreateTeamMemberRequest{Name: "Otra", Email: "otra@x.com", Password: "secreto123", Roles: []string{"director", "closer"}})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, dir.ID), "con otro director activo sí se puede")

	assert.ErrorIs(t, uc.Delete(ctx, "no-existe"), domain.ErrNotFound)
}

// ── Configuración ───────────────────────────────────────────────────────────

func TestPaymentFeeUseCase_ValidaYDuplicados(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	uc := usecase.NewPaymentFeeUseCase(repos.Fees)

	_, err := uc.Create(ctx, dto.PaymentFeeRequest{Method: "Bizum", FeeRate: decimal.RequireFromString("1.5")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.PaymentFeeRequest{Method: "Stripe", FeeRate: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	n, err := uc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "con tabla existente no se siembra de nuevo")
}

func TestN8nConfigUseCase_CreaEnPrimeraLecturaYConservaClave(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	uc := usecase.NewN8nConfigUseCase(repos.N8n)

	first, err := uc.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, first.APIKey, 32)
	assert.False(t, first.Enabled)

	enabled := true
	upd, err := uc.Update(ctx, dto.UpdateN8nConfigRequest{WebhookURL: strp("https://n8n.example.com/hook"), Enabled: &enabled})
	require.NoError(t, err)
	assert.True(t, upd.Enabled)
	assert.Equal(t, first.APIKey, upd.APIKey)
	assert.Equal(t, first.ID, upd.ID)
}

// ── Proyecciones ────────────────────────────────────────────────────────────

func TestProjectionUseCase_EmpresaYMiembro(t *testing.T) {
	ctx := context.Background()
	repos := setup(t)
	team := usecase.NewTeamUseCase(repos.Team)
	uc := usecase.NewProjectionUseCase(repos.Projections, repos.Team)

	company, err := uc.Create(ctx, dto.ProjectionRequest{
		Period: "2026-02", PeriodType: "monthly", Scope: "company", MemberID: strp("ignorado"),
		CashTarget: decimal.NewFromInt(50000),
	})
	require.NoError(t, err)
	assert.Nil(t, company.MemberID)
	assert.Equal(t, "Empresa", company.Name)

	_, err = uc.Create(ctx, dto.ProjectionRequest{Period: "2026-02", PeriodType: "monthly", Scope: "company"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	emi, err := team.Create(ctx, dto.CreateTeamMemberRequest{Name: "Emi", Email: "emi@x.com", Password: "secreto123", Roles: []string{"closer"}})
	require.NoError(t, err)
	p, err := uc.Create(ctx, dto.ProjectionRequest{Period: "2026-W06", PeriodType: "weekly", Scope: "closer", MemberID: &emi.ID, CashTarget: decimal.NewFromInt(5000)})
	require.NoError(t, err)
	assert.Equal(t, "Emi", p.Name)

	_, err = uc.Create(ctx, dto.ProjectionRequest{Period: "2026-W06", PeriodType: "weekly", Scope: "setter", MemberID: strp("00000000-0000-0000-0000-000000000000")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.ProjectionRequest{Period: "2026-13", PeriodType: "monthly", Scope: "company"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, dto.ProjectionListQuery{PeriodType: "weekly"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
