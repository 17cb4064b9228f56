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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, date, client_name, client_email, client_phone, instagram,
	product, product_interest, payment_type, installment_number, payment_method,
	revenue, cash_collected, closer, setter, triager, account_manager,
	utm_source, utm_medium, utm_campaign, utm_content, country,
	available_capital, current_situation, amazon_experience, decision_maker_confirmed, call_date,
	status, notes, source, external_activity_id, created_at, updated_at`

func saleArgs(s *entity.Sale, date time.Time) []any {
	return []any{
		s.ID, date, s.ClientName, s.ClientEmail, s.ClientPhone, s.Instagram,
		s.Product, s.ProductInterest, s.PaymentType, s.InstallmentNumber, s.PaymentMethod,
		s.Revenue, s.CashCollected, s.Closer, s.Setter, s.Triager, s.AccountManager,
		s.UTMSource, s.UTMMedium, s.UTMCampaign, s.UTMContent, s.Country,
		s.AvailableCapital, s.CurrentSituation, s.AmazonExperience, s.DecisionMakerConfirmed, s.CallDate,
		string(s.Status), s.Notes, string(s.Source), s.ExternalActivityID, s.CreatedAt, s.UpdatedAt,
	}
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var date time.Time
	var status, source string
	err := row.Scan(
		&s.ID, &date, &s.ClientName, &s.ClientEmail, &s.ClientPhone, &s.Instagram,
		&s.Product, &s.ProductInterest, &s.PaymentType, &s.InstallmentNumber, &s.PaymentMethod,
		&s.Revenue, &s.CashCollected, &s.Closer, &s.Setter, &s.Triager, &s.AccountManager,
		&s.UTMSource, &s.UTMMedium, &s.UTMCampaign, &s.UTMContent, &s.Country,
		&s.AvailableCapital, &s.CurrentSituation, &s.AmazonExperience, &s.DecisionMakerConfirmed, &s.CallDate,
		&status, &s.Notes, &source, &s.ExternalActivityID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Date = dateString(date)
	s.Status = entity.SaleStatus(status)
	s.Source = entity.SaleSource(source)
	return &s, nil
}

// Create persiste una venta. Un id de actividad repetido devuelve domain.ErrDuplicate.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	date, err := dateArg(sale.Date)
	if err != nil {
		return err
	}
	query := `INSERT INTO sales (` + saleColumns + `) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
		$18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33)`
	if _, err := r.q.Exec(ctx, query, saleArgs(sale, date)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID (nil si no existe).
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by id: %w", err)
	}
	return s, nil
}

// GetByExternalActivityID busca por id de actividad del CRM.
func (r *SaleRepo) GetByExternalActivityID(ctx context.Context, activityID string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE external_activity_id = $1`, activityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale by activity: %w", err)
	}
	return s, nil
}

// List aplica filtros de fecha e igualdad en SQL; ordena por fecha descendente.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	var w where
	if err := w.addDate("date >= ?", f.From); err != nil {
		return nil, err
	}
	if err := w.addDate("date <= ?", f.To); err != nil {
		return nil, err
	}
	w.addString("closer = ?", f.Closer)
	w.addString("setter = ?", f.Setter)
	w.addString("product = ?", f.Product)
	w.addString("payment_method = ?", f.PaymentMethod)
	w.addString("status = ?", string(f.Status))

	query := `SELECT ` + saleColumns + ` FROM sales` + w.sql() + ` ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Update reemplaza todos los campos editables.
func (r *SaleRepo) Update(ctx context.Context, sale *entity.Sale) error {
	date, err := dateArg(sale.Date)
	if err != nil {
		return err
	}
	query := `UPDATE sales SET
		date = $2, client_name = $3, client_email = $4, client_phone = $5, instagram = $6,
		product = $7, product_interest = $8, payment_type = $9, installment_number = $10, payment_method = $11,
		revenue = $12, cash_collected = $13, closer = $14, setter = $15, triager = $16, account_manager = $17,
		utm_source = $18, utm_medium = $19, utm_campaign = $20, utm_content = $21, country = $22,
		available_capital = $23, current_situation = $24, amazon_experience = $25,
		decision_maker_confirmed = $26, call_date = $27,
		status = $28, notes = $29, source = $30, external_activity_id = $31, updated_at = $32
		WHERE id = $1`
	args := saleArgs(sale, date)
	// sin created_at: la fecha de alta no se modifica
	args = append(args[:31], sale.UpdatedAt)
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update sale: %w", err)
	}
	return checkAffected(tag, domain.ErrNotFound)
}

// Delete elimina una venta por ID.
func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return checkAffected(tag, domain.ErrNotFound)
}
