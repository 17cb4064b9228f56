package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/auth"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/memory"
	"github.com/jhoicas/ventas-dashboard-api/pkg/jwt"
)

const secret = "test-secret"

func setup(t *testing.T) (*auth.AuthUseCase, *usecase.TeamUseCase) {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	team := usecase.NewTeamUseCase(repos.Team)
	return auth.NewAuthUseCase(repos.Team, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "ventas-dashboard"}), team
}

func TestLogin_TokenConRoles(t *testing.T) {
	ctx := context.Background()
	uc, team := setup(t)
	m, err := team.Create(ctx, dto.CreateTeamMemberRequest{Name: "Emi", Email: "emi@x.com", Password: "secreto123", Roles: []string{"closer", "setter"}})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "EMI@x.com", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, m.ID, out.User.ID)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, m.ID, claims.UserID)
	assert.ElementsMatch(t, []string{"closer", "setter"}, claims.Roles)
}

func TestLogin_Errores(t *testing.T) {
	ctx := context.Background()
	uc, team := setup(t)
	inactive := false
	_, err := team.Create(ctx, dto.CreateTeamMemberRequest{Name: "Baja", Email: "baja@x.com", Password: "secreto123", Roles: []string{"setter"}, Active: &inactive})
	require.NoError(t, err)
	_, err = team.Create(ctx, dto.CreateTeamMemberRequest{Name: "Lu", Email: "lu@x.com", Password: "secreto123", Roles: []string{"setter"}})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@x.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "lu@x.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@x.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMe_VisionGlobalSegunRol(t *testing.T) {
	ctx := context.Background()
	uc, team := setup(t)
	mgr, err := team.Create(ctx, dto.CreateTeamMemberRequest{Name: "Mara", Email: "mara@x.com", Password: "secreto123", Roles: []string{"manager", "closer"}})
	require.NoError(t, err)

	me, err := uc.Me(ctx, mgr.ID)
	require.NoError(t, err)
	assert.Equal(t, "manager", me.PrimaryRole)
	assert.True(t, me.CanSeeAll)

	_, err = uc.Me(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
