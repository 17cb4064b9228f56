package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories agrupa los adaptadores PostgreSQL sobre un mismo pool.
type Repositories struct {
	Sales       *SaleRepo
	Reports     *ActivityReportRepo
	Team        *TeamMemberRepo
	Fees        *PaymentFeeRepo
	Projections *ProjectionRepo
	N8n         *N8nConfigRepo
	Tx          *TxRunner
}

// NewRepositories construye todos los repositorios sobre el pool.
func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Sales:       NewSaleRepository(pool),
		Reports:     NewActivityReportRepository(pool),
		Team:        NewTeamMemberRepository(pool),
		Fees:        NewPaymentFeeRepository(pool),
		Projections: NewProjectionRepository(pool),
		N8n:         NewN8nConfigRepository(pool),
		Tx:          NewTxRunner(pool),
	}
}
