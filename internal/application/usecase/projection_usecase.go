package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

// ProjectionUseCase objetivos mensuales y semanales (director y manager).
type ProjectionUseCase struct {
	repo repository.ProjectionRepository
	team repository.TeamMemberRepository
}

// NewProjectionUseCase construye el caso de uso.
func NewProjectionUseCase(repo repository.ProjectionRepository, team repository.TeamMemberRepository) *ProjectionUseCase {
	return &ProjectionUseCase{repo: repo, team: team}
}

// Create registra un objetivo. Otro objetivo con la misma clave → ErrDuplicate.
func (uc *ProjectionUseCase) Create(ctx context.Context, in dto.ProjectionRequest) (*dto.ProjectionResponse, error) {
	now := time.Now()
	p := &entity.Projection{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return ProjectionToResponse(p), nil
}

// GetByID obtiene un objetivo (nil si no existe).
func (uc *ProjectionUseCase) GetByID(ctx context.Context, id string) (*dto.ProjectionResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return ProjectionToResponse(p), nil
}

// List filtra por tipo, periodo, alcance y miembro.
func (uc *ProjectionUseCase) List(ctx context.Context, q dto.ProjectionListQuery) ([]dto.ProjectionResponse, error) {
	f := repository.ProjectionFilter{
		PeriodType: entity.PeriodType(q.PeriodType),
		Scope:      entity.ProjectionScope(q.Scope),
		MemberID:   q.MemberID,
	}
	if q.Period != "" {
		f.Periods = []string{q.Period}
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listar proyecciones: %w", err)
	}
	out := make([]dto.ProjectionResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ProjectionToResponse(p))
	}
	return out, nil
}

// Update reemplaza los valores del objetivo.
func (uc *ProjectionUseCase) Update(ctx context.Context, id string, in dto.ProjectionRequest) (*dto.ProjectionResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.apply(ctx, p, in); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return ProjectionToResponse(p), nil
}

// Delete elimina un objetivo.
func (uc *ProjectionUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// apply copia la petición, resuelve el nombre del miembro y valida.
func (uc *ProjectionUseCase) apply(ctx context.Context, p *entity.Projection, in dto.ProjectionRequest) error {
	p.Period = strings.TrimSpace(in.Period)
	p.PeriodType = entity.PeriodType(in.PeriodType)
	p.Scope = entity.ProjectionScope(in.Scope)
	p.MemberID = in.MemberID
	p.Name = strings.TrimSpace(in.Name)
	p.CashTarget = in.CashTarget
	p.RevenueTarget = in.RevenueTarget
	p.AppointmentTarget = in.AppointmentTarget

	if p.Scope == entity.ScopeCompany {
		p.MemberID = nil
		if p.Name == "" {
			p.Name = "Empresa"
		}
	}
	if err := p.Validate(); err != nil {
		return invalid(err)
	}
	if p.Scope == entity.ScopeCompany {
		return nil
	}
	m, err := uc.team.GetByID(ctx, p.MemberKey())
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("%w: miembro %s no existe", domain.ErrInvalidInput, p.MemberKey())
	}
	p.Name = m.Name
	return nil
}

// ProjectionToResponse mapea un objetivo a su DTO.
func ProjectionToResponse(p *entity.Projection) *dto.ProjectionResponse {
	return &dto.ProjectionResponse{
		ID:                p.ID,
		Period:            p.Period,
		PeriodType:        string(p.PeriodType),
		Scope:             string(p.Scope),
		MemberID:          p.MemberID,
		Name:              p.Name,
		CashTarget:        p.CashTarget,
		RevenueTarget:     p.RevenueTarget,
		AppointmentTarget: p.AppointmentTarget,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
