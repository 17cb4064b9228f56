package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/period"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

// ReportUseCase reportes diarios de setters y closers.
type ReportUseCase struct {
	repo repository.ActivityReportRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(repo repository.ActivityReportRepository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// Create registra el reporte de fin de día. Fecha vacía = hoy.
func (uc *ReportUseCase) Create(ctx context.Context, in dto.ReportRequest) (*dto.ReportResponse, error) {
	now := time.Now()
	rep, err := ReportFromRequest(in, now)
	if err != nil {
		return nil, invalid(err)
	}
	rep.ID = uuid.New().String()
	rep.CreatedAt, rep.UpdatedAt = now, now
	if err := uc.repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	return ReportToResponse(rep), nil
}

// GetByID obtiene un reporte (nil si no existe).
func (uc *ReportUseCase) GetByID(ctx context.Context, id string) (*dto.ReportResponse, error) {
	rep, err := uc.repo.GetByID(ctx, id)
	if err != nil || rep == nil {
		return nil, err
	}
	return ReportToResponse(rep), nil
}

// List filtra por rango o preset, rol y nombre.
func (uc *ReportUseCase) List(ctx context.Context, q dto.ReportListQuery) ([]dto.ReportResponse, error) {
	f := repository.ReportFilter{From: q.From, To: q.To, Role: entity.ReportRole(q.Role), Name: q.Name}
	if q.Preset != "" && q.From == "" && q.To == "" {
		w := period.Resolve(q.Preset, time.Now())
		f.From, f.To = w.StartDate(), w.EndDate()
	}
	reports, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("listar reportes: %w", err)
	}
	out := make([]dto.ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, *ReportToResponse(r))
	}
	return out, nil
}

// Update reemplaza el reporte; el rol puede cambiar y con él la forma.
func (uc *ReportUseCase) Update(ctx context.Context, id string, in dto.ReportRequest) (*dto.ReportResponse, error) {
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if in.Date == "" {
		in.Date = current.Date
	}
	rep, err := ReportFromRequest(in, now)
	if err != nil {
		return nil, invalid(err)
	}
	rep.ID, rep.CreatedAt, rep.UpdatedAt = current.ID, current.CreatedAt, now
	if err := uc.repo.Update(ctx, rep); err != nil {
		return nil, err
	}
	return ReportToResponse(rep), nil
}

// Delete elimina un reporte.
func (uc *ReportUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ReportFromRequest convierte la forma plana en la variante del rol.
// Métricas del otro rol presentes = error.
func ReportFromRequest(in dto.ReportRequest, now time.Time) (*entity.ActivityReport, error) {
	date := entity.DateOnly(in.Date)
	if date == "" {
		date = now.Format(entity.DateLayout)
	}
	var rep *entity.ActivityReport
	switch entity.ReportRole(in.Role) {
	case entity.ReportRoleSetter:
		if in.ScheduledCalls != nil || in.CallsMade != nil || in.Deposits != nil || in.Closes != nil {
			return nil, fmt.Errorf("un reporte de setter no admite métricas de closer")
		}
		rep = entity.NewSetterReport(date, in.Name, entity.SetterActivity{
			ConversationsOpened: intOr0(in.ConversationsOpened),
			FollowUps:           intOr0(in.FollowUps),
			OffersLaunched:      intOr0(in.OffersLaunched),
			AppointmentsBooked:  intOr0(in.AppointmentsBooked),
		})
	case entity.ReportRoleCloser:
		if in.ConversationsOpened != nil || in.FollowUps != nil || in.AppointmentsBooked != nil {
			return nil, fmt.Errorf("un reporte de closer no admite métricas de setter")
		}
		rep = entity.NewCloserReport(date, in.Name, entity.CloserActivity{
			ScheduledCalls: intOr0(in.ScheduledCalls),
			CallsMade:      intOr0(in.CallsMade),
			OffersLaunched: intOr0(in.OffersLaunched),
			Deposits:       intOr0(in.Deposits),
			Closes:         intOr0(in.Closes),
		})
	default:
		return nil, fmt.Errorf("rol de reporte %q inválido", in.Role)
	}
	if err := rep.Validate(); err != nil {
		return nil, err
	}
	return rep, nil
}

func intOr0(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// ReportToResponse mapea un reporte a su DTO.
func ReportToResponse(r *entity.ActivityReport) *dto.ReportResponse {
	out := &dto.ReportResponse{
		ID:        r.ID,
		Date:      r.Date,
		Role:      string(r.Role),
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if a := r.Setter; a != nil {
		out.Setter = &dto.SetterActivityDTO{
			ConversationsOpened: a.ConversationsOpened,
			FollowUps:           a.FollowUps,
			OffersLaunched:      a.OffersLaunched,
			AppointmentsBooked:  a.AppointmentsBooked,
		}
	}
	if a := r.Closer; a != nil {
		out.Closer = &dto.CloserActivityDTO{
			ScheduledCalls: a.ScheduledCalls,
			CallsMade:      a.CallsMade,
			OffersLaunched: a.OffersLaunched,
			Deposits:       a.Deposits,
			Closes:         a.Closes,
		}
	}
	return out
}
