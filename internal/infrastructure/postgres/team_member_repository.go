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

var _ repository.TeamMemberRepository = (*TeamMemberRepo)(nil)

// TeamMemberRepo implementación del puerto TeamMemberRepository sobre PostgreSQL.
type TeamMemberRepo struct {
	q Querier
}

// NewTeamMemberRepository construye el adaptador de persistencia para el equipo.
func NewTeamMemberRepository(q Querier) *TeamMemberRepo {
	return &TeamMemberRepo{q: q}
}

const memberColumns = `id, name, email, password_hash, roles, active, commission_rate, created_at, updated_at`

func scanMember(row pgx.Row) (*entity.TeamMember, error) {
	var m entity.TeamMember
	var roles []string
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash, &roles, &m.Active,
		&m.CommissionRate, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	set, err := entity.ParseRoleSet(roles)
	if err != nil {
		return nil, fmt.Errorf("roles de %s: %w", m.ID, err)
	}
	m.Roles = set
	return &m, nil
}

// Create persiste un nuevo miembro.
func (r *TeamMemberRepo) Create(ctx context.Context, m *entity.TeamMember) error {
	query := `INSERT INTO team_members (` + memberColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Email, m.PasswordHash, m.Roles.Strings(), m.Active,
		m.CommissionRate, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert team member: %w", err)
	}
	return nil
}

// GetByID obtiene un miembro por ID.
func (r *TeamMemberRepo) GetByID(ctx context.Context, id string) (*entity.TeamMember, error) {
	m, err := scanMember(r.q.QueryRow(ctx, `SELECT `+memberColumns+` FROM team_members WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team member by id: %w", err)
	}
	return m, nil
}

// GetByEmail obtiene un miembro por email, sin distinguir mayúsculas.
func (r *TeamMemberRepo) GetByEmail(ctx context.Context, email string) (*entity.TeamMember, error) {
	m, err := scanMember(r.q.QueryRow(ctx, `SELECT `+memberColumns+` FROM team_members WHERE lower(email) = lower($1) LIMIT 1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get team member by email: %w", err)
	}
	return m, nil
}

// List filtra por rol y estado, ordenado por nombre.
func (r *TeamMemberRepo) List(ctx context.Context, f repository.TeamFilter) ([]*entity.TeamMember, error) {
	var w where
	if f.Role != 0 {
		w.add("? = ANY(roles)", f.Role.String())
	}
	if f.Active != nil {
		w.add("active = ?", *f.Active)
	}
	rows, err := r.q.Query(ctx, `SELECT `+memberColumns+` FROM team_members`+w.sql()+` ORDER BY name`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.TeamMember, 0)
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Update actualiza un miembro.
func (r *TeamMemberRepo) Update(ctx context.Context, m *entity.TeamMember) error {
	query := `UPDATE team_members SET name = $2, email = $3, password_hash = $4, roles = $5, active = $6,
		commission_rate = $7, updated_at = $8 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Email, m.PasswordHash, m.Roles.Strings(), m.Active,
		m.CommissionRate, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update team member: %w", err)
	}
	return checkAffected(tag, domain.ErrNotFound)
}

// Delete elimina un miembro por ID.
func (r *TeamMemberRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	return checkAffected(tag, domain.ErrNotFound)
}
