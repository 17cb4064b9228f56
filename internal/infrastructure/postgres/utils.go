package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx; los repos aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// dateArg convierte YYYY-MM-DD (o con sufijo horario) a time.Time para columnas DATE.
func dateArg(s string) (time.Time, error) {
	t, err := time.Parse(entity.DateLayout, entity.DateOnly(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q inválida: %w", s, err)
	}
	return t, nil
}

func dateString(t time.Time) string {
	return t.Format(entity.DateLayout)
}

// where construye condiciones AND con placeholders numerados.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *where) addDate(cond, value string) error {
	if value == "" {
		return nil
	}
	t, err := dateArg(value)
	if err != nil {
		return err
	}
	w.add(cond, t)
	return nil
}

func (w *where) addString(cond, value string) {
	if value != "" {
		w.add(cond, value)
	}
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// checkAffected traduce 0 filas afectadas en err (normalmente domain.ErrNotFound).
func checkAffected(tag pgconn.CommandTag, err error) error {
	if tag.RowsAffected() == 0 {
		return err
	}
	return nil
}
