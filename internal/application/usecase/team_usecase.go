package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

// TeamUseCase gestión del equipo (solo director).
type TeamUseCase struct {
	repo repository.TeamMemberRepository
}

// NewTeamUseCase construye el caso de uso con el puerto de persistencia.
func NewTeamUseCase(repo repository.TeamMemberRepository) *TeamUseCase {
	return &TeamUseCase{repo: repo}
}

// Create da de alta un miembro: hashea el password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *TeamUseCase) Create(ctx context.Context, in dto.CreateTeamMemberRequest) (*dto.TeamMemberResponse, error) {
	roles, err := entity.ParseRoleSet(in.Roles)
	if err != nil {
		return nil, invalid(err)
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	m := &entity.TeamMember{
		ID:             uuid.New().String(),
		Name:           strings.TrimSpace(in.Name),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:   string(hash),
		Roles:          roles,
		Active:         active,
		CommissionRate: in.CommissionRate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := m.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return TeamMemberToResponse(m), nil
}

// GetByID obtiene un miembro (nil si no existe).
func (uc *TeamUseCase) GetByID(ctx context.Context, id string) (*dto.TeamMemberResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil || m == nil {
		return nil, err
	}
	return TeamMemberToResponse(m), nil
}

// List filtra por rol ("" = todos) y estado.
func (uc *TeamUseCase) List(ctx context.Context, role string, active *bool) ([]dto.TeamMemberResponse, error) {
	f := repository.TeamFilter{Active: active}
	if role != "" {
		r, err := entity.ParseRole(role)
		if err != nil {
			return nil, invalid(err)
		}
		f.Role = r
	}
	members, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listar equipo: %w", err)
	}
	out := make([]dto.TeamMemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, *TeamMemberToResponse(m))
	}
	return out, nil
}

// Update aplica cambios parciales; un password nuevo se vuelve a hashear.
func (uc *TeamUseCase) Update(ctx context.Context, id string, in dto.UpdateTeamMemberRequest) (*dto.TeamMemberResponse, error) {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	wasDirector := isActiveDirector(m)
	if in.Name != nil {
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != m.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != m.ID {
				return nil, domain.ErrEmailAlreadyExists
			}
		}
		m.Email = email
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		m.PasswordHash = string(hash)
	}
	if in.Roles != nil {
		roles, err := entity.ParseRoleSet(in.Roles)
		if err != nil {
			return nil, invalid(err)
		}
		m.Roles = roles
	}
	if in.Active != nil {
		m.Active = *in.Active
	}
	if in.CommissionRate != nil {
		m.CommissionRate = *in.CommissionRate
	}
	if err := m.Validate(); err != nil {
		return nil, invalid(err)
	}
	if wasDirector && !isActiveDirector(m) {
		if err := uc.ensureAnotherDirector(ctx, m.ID); err != nil {
			return nil, err
		}
	}
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return TeamMemberToResponse(m), nil
}

// Delete borra el miembro (sin archivado). No se puede borrar al último director activo.
func (uc *TeamUseCase) Delete(ctx context.Context, id string) error {
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	if isActiveDirector(m) {
		if err := uc.ensureAnotherDirector(ctx, m.ID); err != nil {
			return err
		}
	}
	return uc.repo.Delete(ctx, id)
}

func isActiveDirector(m *entity.TeamMember) bool {
	return m.Active && m.Roles.Has(entity.RoleDirector)
}

// ensureAnotherDirector ErrConflict si exceptID es el único director activo.
func (uc *TeamUseCase) ensureAnotherDirector(ctx context.Context, exceptID string) error {
	active := true
	directors, err := uc.repo.List(ctx, repository.TeamFilter{Role: entity.RoleDirector, Active: &active})
	if err != nil {
		return fmt.Errorf("listar directores: %w", err)
	}
	for _, d := range directors {
		if d.ID != exceptID {
			return nil
		}
	}
	return fmt.Errorf("%w: debe quedar al menos un director activo", domain.ErrConflict)
}

// EnsureDirector crea el director inicial si no existe ningún miembro con ese email.
func (uc *TeamUseCase) EnsureDirector(ctx context.Context, name, email, password string) (bool, error) {
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = uc.Create(ctx, dto.CreateTeamMemberRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Roles:    []string{entity.RoleDirector.String()},
	})
	return err == nil, err
}

// TeamMemberToResponse mapea un miembro a su DTO (sin hash).
func TeamMemberToResponse(m *entity.TeamMember) *dto.TeamMemberResponse {
	if m == nil {
		return nil
	}
	return &dto.TeamMemberResponse{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		Roles:          m.Roles.Strings(),
		PrimaryRole:    m.Roles.Primary().String(),
		Active:         m.Active,
		CommissionRate: m.CommissionRate,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
