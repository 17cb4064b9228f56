package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/memory"
)

func newRepos() memory.Repositories {
	return memory.NewRepositories(memory.NewStore())
}

func ptr(s string) *string { return &s }

func TestSaleRepo_DeduplicaPorActividadExterna(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()

	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{ID: "a", Date: "2026-02-01", ExternalActivityID: ptr("act-1")}))
	err := repos.Sales.Create(ctx, &entity.Sale{ID: "b", Date: "2026-02-01", ExternalActivityID: ptr("act-1")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	found, err := repos.Sales.GetByExternalActivityID(ctx, "act-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "a", found.ID)

	missing, err := repos.Sales.GetByExternalActivityID(ctx, "otro")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaleRepo_ListFiltraYOrdena(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	for _, s := range []*entity.Sale{
		{ID: "1", Date: "2026-01-31", Closer: "Emi"},
		{ID: "2", Date: "2026-02-10", Closer: "Emi"},
		{ID: "3", Date: "2026-02-05", Closer: "Ana"},
	} {
		require.NoError(t, repos.Sales.Create(ctx, s))
	}

	list, err := repos.Sales.List(ctx, repository.SaleFilter{From: "2026-02-01", To: "2026-02-28"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ID, "más reciente primero")

	list, err = repos.Sales.List(ctx, repository.SaleFilter{Closer: "Emi"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSaleRepo_CopiasIndependientes(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	s := &entity.Sale{ID: "1", Date: "2026-02-01", CashCollected: decimal.NewFromInt(10)}
	require.NoError(t, repos.Sales.Create(ctx, s))
	s.Closer = "mutado"

	got, err := repos.Sales.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, got.Closer, "el repositorio no debe compartir punteros con el llamador")
}

func TestTeamRepo_EmailUnicoYOrdenPorNombre(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	require.NoError(t, repos.Team.Create(ctx, &entity.TeamMember{ID: "1", Name: "Zoe", Email: "zoe@x.com", Active: true, Roles: entity.NewRoleSet(entity.RoleCloser)}))
	require.NoError(t, repos.Team.Create(ctx, &entity.TeamMember{ID: "2", Name: "Ana", Email: "ana@x.com", Roles: entity.NewRoleSet(entity.RoleSetter)}))

	err := repos.Team.Create(ctx, &entity.TeamMember{ID: "3", Name: "Otra", Email: "ANA@x.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	list, err := repos.Team.List(ctx, repository.TeamFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Ana", list[0].Name)

	active := true
	list, err = repos.Team.List(ctx, repository.TeamFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Zoe", list[0].Name)

	list, err = repos.Team.List(ctx, repository.TeamFilter{Role: entity.RoleSetter})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestProjectionRepo_UnicidadPorClave(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	base := entity.Projection{Period: "2026-02", PeriodType: entity.PeriodMonthly, Scope: entity.ScopeCompany}

	p1 := base
	p1.ID = "1"
	require.NoError(t, repos.Projections.Create(ctx, &p1))
	p2 := base
	p2.ID = "2"
	assert.ErrorIs(t, repos.Projections.Create(ctx, &p2), domain.ErrDuplicate)

	weekly := entity.Projection{ID: "3", Period: "2026-W06", PeriodType: entity.PeriodWeekly, Scope: entity.ScopeCompany}
	require.NoError(t, repos.Projections.Create(ctx, &weekly))

	list, err := repos.Projections.List(ctx, repository.ProjectionFilter{PeriodType: entity.PeriodMonthly, Periods: []string{"2026-02"}})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestN8nRepo_SingletonYLastSync(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	cfg, err := repos.N8n.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	require.NoError(t, repos.N8n.Create(ctx, entity.NewN8nConfig(time.Now())))
	assert.ErrorIs(t, repos.N8n.Create(ctx, entity.NewN8nConfig(time.Now())), domain.ErrDuplicate)

	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repos.N8n.TouchLastSync(ctx, at))
	cfg, err = repos.N8n.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, cfg.LastSync)
	assert.True(t, at.Equal(*cfg.LastSync))
}

func TestTxRunner_RevierteSiFalla(t *testing.T) {
	ctx := context.Background()
	repos := newRepos()
	require.NoError(t, repos.Sales.Create(ctx, &entity.Sale{ID: "previa", Date: "2026-02-01"}))

	boom := errors.New("fila inválida")
	err := repos.Tx.Run(ctx, func(sales repository.SaleRepository, reports repository.ActivityReportRepository) error {
		if err := sales.Create(ctx, &entity.Sale{ID: "nueva", Date: "2026-02-02"}); err != nil {
			return err
		}
		if err := reports.Create(ctx, entity.NewSetterReport("2026-02-02", "Lu", entity.SetterActivity{})); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := repos.Sales.List(ctx, repository.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "previa", list[0].ID)

	reps, err := repos.Reports.List(ctx, repository.ReportFilter{})
	require.NoError(t, err)
	assert.Empty(t, reps)
}
