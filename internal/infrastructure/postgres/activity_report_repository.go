package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

var _ repository.ActivityReportRepository = (*ActivityReportRepo)(nil)

// ActivityReportRepo reportes diarios sobre PostgreSQL. Ambas formas comparten tabla;
// las columnas de la otra forma quedan a 0.
type ActivityReportRepo struct {
	q Querier
}

// NewActivityReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityReportRepository(q Querier) *ActivityReportRepo {
	return &ActivityReportRepo{q: q}
}

const reportColumns = `id, date, role, name, conversations_opened, follow_ups, offers_launched,
	appointments_booked, scheduled_calls, calls_made, deposits, closes, created_at, updated_at`

// flatReport vista plana de la fila.
type flatReport struct {
	convos, followUps, offers, appts, scheduled, calls, deposits, closes int
}

func flatten(r *entity.ActivityReport) flatReport {
	var f flatReport
	if r.Setter != nil {
		f.convos, f.followUps, f.offers, f.appts = r.Setter.ConversationsOpened, r.Setter.FollowUps, r.Setter.OffersLaunched, r.Setter.AppointmentsBooked
	}
	if r.Closer != nil {
		f.scheduled, f.calls, f.offers, f.deposits, f.closes = r.Closer.ScheduledCalls, r.Closer.CallsMade, r.Closer.OffersLaunched, r.Closer.Deposits, r.Closer.Closes
	}
	return f
}

func scanReport(row pgx.Row) (*entity.ActivityReport, error) {
	var r entity.ActivityReport
	var date time.Time
	var role string
	var f flatReport
	err := row.Scan(&r.ID, &date, &role, &r.Name,
		&f.convos, &f.followUps, &f.offers, &f.appts, &f.scheduled, &f.calls, &f.deposits, &f.closes,
		&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Date = dateString(date)
	r.Role = entity.ReportRole(role)
	switch r.Role {
	case entity.ReportRoleSetter:
		r.Setter = &entity.SetterActivity{ConversationsOpened: f.convos, FollowUps: f.followUps, OffersLaunched: f.offers, AppointmentsBooked: f.appts}
	case entity.ReportRoleCloser:
		r.Closer = &entity.CloserActivity{ScheduledCalls: f.scheduled, CallsMade: f.calls, OffersLaunched: f.offers, Deposits: f.deposits, Closes: f.closes}
	}
	return &r, nil
}

// Create persiste un reporte.
func (r *ActivityReportRepo) Create(ctx context.Context, rep *entity.ActivityReport) error {
	date, err := dateArg(rep.Date)
	if err != nil {
		return err
	}
	f := flatten(rep)
	query := `INSERT INTO activity_reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.q.Exec(ctx, query, rep.ID, date, string(rep.Role), rep.Name,
		f.convos, f.followUps, f.offers, f.appts, f.scheduled, f.calls, f.deposits, f.closes,
		rep.CreatedAt, rep.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert activity report: %w", err)
	}
	return nil
}

// GetByID obtiene un reporte por ID (nil si no existe).
func (r *ActivityReportRepo) GetByID(ctx context.Context, id string) (*entity.ActivityReport, error) {
	rep, err := scanReport(r.q.QueryRow(ctx, `SELECT `+reportColumns+` FROM activity_reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get activity report: %w", err)
	}
	return rep, nil
}

// List filtra por rango, rol y nombre; más recientes primero.
func (r *ActivityReportRepo) List(ctx context.Context, f repository.ReportFilter) ([]*entity.ActivityReport, error) {
	var w where
	if err := w.addDate("date >= ?", f.From); err != nil {
		return nil, err
	}
	if err := w.addDate("date <= ?", f.To); err != nil {
		return nil, err
	}
	w.addString("role = ?", string(f.Role))
	w.addString("name = ?", f.Name)

	rows, err := r.q.Query(ctx, `SELECT `+reportColumns+` FROM activity_reports`+w.sql()+` ORDER BY date DESC, created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list activity reports: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.ActivityReport, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan activity report: %w", err)
		}
		list = append(list, rep)
	}
	return list, rows.Err()
}

// Update reemplaza el reporte completo.
func (r *ActivityReportRepo) Update(ctx context.Context, rep *entity.ActivityReport) error {
	date, err := dateArg(rep.Date)
	if err != nil {
		return err
	}
	f := flatten(rep)
	query := `UPDATE activity_reports SET date = $2, role = $3, name = $4,
		conversations_opened = $5, follow_ups = $6, offers_launched = $7, appointments_booked = $8,
		scheduled_calls = $9, calls_made = $10, deposits = $11, closes = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, rep.ID, date, string(rep.Role), rep.Name,
		f.convos, f.followUps, f.offers, f.appts, f.scheduled, f.calls, f.deposits, f.closes, rep.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update activity report: %w", err)
	}
	return checkAffected(tag, domain.ErrNotFound)
}

// Delete elimina un reporte por ID.
func (r *ActivityReportRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM activity_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete activity report: %w", err)
	}
	return checkAffected(tag, domain.ErrNotFound)
}
