package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/ventas-dashboard-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login por email y contraseña de los miembros del equipo.
type AuthUseCase struct {
	teamRepo repository.TeamMemberRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(teamRepo repository.TeamMemberRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{teamRepo: teamRepo, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT con los roles y retorna token + miembro.
// Un miembro inactivo recibe ErrForbidden aunque la contraseña sea correcta.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	member, err := uc.teamRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !member.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, member.ID, member.Name, member.Roles.Strings(), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.TeamMemberToResponse(member),
	}, nil
}

// Me devuelve la identidad del miembro del token. Si fue dado de baja, ErrUnauthorized.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	member, err := uc.teamRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil || !member.Active {
		return nil, domain.ErrUnauthorized
	}
	return &dto.MeResponse{
		ID:          member.ID,
		Name:        member.Name,
		Email:       member.Email,
		Roles:       member.Roles.Strings(),
		PrimaryRole: member.Roles.Primary().String(),
		CanSeeAll:   member.Roles.CanSeeAll(),
		CreatedAt:   member.CreatedAt,
	}, nil
}
