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

var _ repository.PaymentFeeRepository = (*PaymentFeeRepo)(nil)

// PaymentFeeRepo tabla de comisiones de pasarela.
type PaymentFeeRepo struct {
	q Querier
}

// NewPaymentFeeRepository construye el adaptador.
func NewPaymentFeeRepository(q Querier) *PaymentFeeRepo {
	return &PaymentFeeRepo{q: q}
}

const feeColumns = `id, method, fee_rate, created_at, updated_at`

func scanFee(row pgx.Row) (*entity.PaymentFee, error) {
	var f entity.PaymentFee
	if err := row.Scan(&f.ID, &f.Method, &f.FeeRate, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PaymentFeeRepo) Create(ctx context.Context, f *entity.PaymentFee) error {
	_, err := r.q.Exec(ctx, `INSERT INTO payment_fees (`+feeColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		f.ID, f.Method, f.FeeRate, f.CreatedAt, f.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment fee: %w", err)
	}
	return nil
}

func (r *PaymentFeeRepo) GetByID(ctx context.Context, id string) (*entity.PaymentFee, error) {
	return r.getOne(ctx, `SELECT `+feeColumns+` FROM payment_fees WHERE id = $1`, id)
}

func (r *PaymentFeeRepo) GetByMethod(ctx context.Context, method string) (*entity.PaymentFee, error) {
	return r.getOne(ctx, `SELECT `+feeColumns+` FROM payment_fees WHERE method = $1`, method)
}

func (r *PaymentFeeRepo) getOne(ctx context.Context, query string, arg any) (*entity.PaymentFee, error) {
	f, err := scanFee(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment fee: %w", err)
	}
	return f, nil
}

func (r *PaymentFeeRepo) List(ctx context.Context) ([]*entity.PaymentFee, error) {
	rows, err := r.q.Query(ctx, `SELECT `+feeColumns+` FROM payment_fees ORDER BY method`)
	if err != nil {
		return nil, fmt.Errorf("list payment fees: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.PaymentFee, 0)
	for rows.Next() {
		f, err := scanFee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment fee: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r *PaymentFeeRepo) Update(ctx context.Context, f *entity.PaymentFee) error {
	tag, err := r.q.Exec(ctx, `UPDATE payment_fees SET method = $2, fee_rate = $3, updated_at = $4 WHERE id = $1`,
		f.ID, f.Method, f.FeeRate, f.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update payment fee: %w", err)
	}
	return checkAffected(tag, domain.ErrNotFound)
}

func (r *PaymentFeeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM payment_fees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment fee: %w", err)
	}
	return checkAffected(tag, domain.ErrNotFound)
}
