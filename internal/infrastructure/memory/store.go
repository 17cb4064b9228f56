// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y con STORAGE_DRIVER=memory.
package memory

import (
	"sync"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu          sync.RWMutex
	txMu        sync.Mutex
	sales       map[string]entity.Sale
	reports     map[string]entity.ActivityReport
	members     map[string]entity.TeamMember
	fees        map[string]entity.PaymentFee
	projections map[string]entity.Projection
	n8n         *entity.N8nConfig
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		sales:       map[string]entity.Sale{},
		reports:     map[string]entity.ActivityReport{},
		members:     map[string]entity.TeamMember{},
		fees:        map[string]entity.PaymentFee{},
		projections: map[string]entity.Projection{},
	}
}

// Repositories agrupa los adaptadores construidos sobre un Store.
type Repositories struct {
	Sales       *SaleRepo
	Reports     *ActivityReportRepo
	Team        *TeamMemberRepo
	Fees        *PaymentFeeRepo
	Projections *ProjectionRepo
	N8n         *N8nConfigRepo
	Tx          *TxRunner
}

// NewRepositories construye todos los repositorios sobre el mismo Store.
func NewRepositories(s *Store) Repositories {
	return Repositories{
		Sales:       NewSaleRepository(s),
		Reports:     NewActivityReportRepository(s),
		Team:        NewTeamMemberRepository(s),
		Fees:        NewPaymentFeeRepository(s),
		Projections: NewProjectionRepository(s),
		N8n:         NewN8nConfigRepository(s),
		Tx:          NewTxRunner(s),
	}
}

func cloneSale(s entity.Sale) *entity.Sale {
	if s.ExternalActivityID != nil {
		id := *s.ExternalActivityID
		s.ExternalActivityID = &id
	}
	return &s
}

func cloneReport(r entity.ActivityReport) *entity.ActivityReport {
	if r.Setter != nil {
		a := *r.Setter
		r.Setter = &a
	}
	if r.Closer != nil {
		a := *r.Closer
		r.Closer = &a
	}
	return &r
}

func cloneProjection(p entity.Projection) *entity.Projection {
	if p.MemberID != nil {
		id := *p.MemberID
		p.MemberID = &id
	}
	return &p
}

func inRange(date, from, to string) bool {
	d := entity.DateOnly(date)
	if from != "" && d < from {
		return false
	}
	if to != "" && d > to {
		return false
	}
	return true
}
