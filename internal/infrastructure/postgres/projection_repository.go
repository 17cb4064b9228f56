package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

var _ repository.ProjectionRepository = (*ProjectionRepo)(nil)

// ProjectionRepo objetivos por periodo. La unicidad la garantiza ux_projections_key.
type ProjectionRepo struct {
	q Querier
}

// NewProjectionRepository construye el adaptador.
func NewProjectionRepository(q Querier) *ProjectionRepo {
	return &ProjectionRepo{q: q}
}

const projectionColumns = `id, period, period_type, scope, member_id::TEXT, name,
	cash_target, revenue_target, appointment_target, created_at, updated_at`

func scanProjection(row pgx.Row) (*entity.Projection, error) {
	var p entity.Projection
	var pt, scope string
	if err := row.Scan(&p.ID, &p.Period, &pt, &scope, &p.MemberID, &p.Name,
		&p.CashTarget, &p.RevenueTarget, &p.AppointmentTarget, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.PeriodType = entity.PeriodType(pt)
	p.Scope = entity.ProjectionScope(scope)
	return &p, nil
}

func (r *ProjectionRepo) Create(ctx context.Context, p *entity.Projection) error {
	query := `INSERT INTO projections (id, period, period_type, scope, member_id, name,
		cash_target, revenue_target, appointment_target, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Period, string(p.PeriodType), string(p.Scope), p.MemberID, p.Name,
		p.CashTarget, p.RevenueTarget, p.AppointmentTarget, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert projection: %w", err)
	}
	return nil
}

func (r *ProjectionRepo) GetByID(ctx context.Context, id string) (*entity.Projection, error) {
	p, err := scanProjection(r.q.QueryRow(ctx, `SELECT `+projectionColumns+` FROM projections WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get projection: %w", err)
	}
	return p, nil
}

func (r *ProjectionRepo) List(ctx context.Context, f repository.ProjectionFilter) ([]*entity.Projection, error) {
	var w where
	w.addString("period_type = ?", string(f.PeriodType))
	if len(f.Periods) > 0 {
		w.add("period = ANY(?)", f.Periods)
	}
	w.addString("scope = ?", string(f.Scope))
	w.addString("member_id::TEXT = ?", f.MemberID)

	rows, err := r.q.Query(ctx, `SELECT `+projectionColumns+` FROM projections`+w.sql()+` ORDER BY period DESC, scope, name`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list projections: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Projection, 0)
	for rows.Next() {
		p, err := scanProjection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan projection: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProjectionRepo) Update(ctx context.Context, p *entity.Projection) error {
	query := `UPDATE projections SET period = $2, period_type = $3, scope = $4, member_id = $5, name = $6,
		cash_target = $7, revenue_target = $8, appointment_target = $9, updated_at = $10 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Period, string(p.PeriodType), string(p.Scope), p.MemberID, p.Name,
		p.CashTarget, p.RevenueTarget, p.AppointmentTarget, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update projection: %w", err)
	}
	return checkAffected(tag, domain.ErrNotFound)
}

func (r *ProjectionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM projections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete projection: %w", err)
	}
	return checkAffected(tag, domain.ErrNotFound)
}
