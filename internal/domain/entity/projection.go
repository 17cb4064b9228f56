package entity

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType granularidad de una proyección.
type PeriodType string

const (
	PeriodMonthly PeriodType = "monthly"
	PeriodWeekly  PeriodType = "weekly"
)

// Valid indica si el tipo de periodo es conocido.
func (p PeriodType) Valid() bool { return p == PeriodMonthly || p == PeriodWeekly }

// ProjectionScope a quién aplica el objetivo.
type ProjectionScope string

const (
	ScopeCompany ProjectionScope = "company"
	ScopeCloser  ProjectionScope = "closer"
	ScopeSetter  ProjectionScope = "setter"
)

// Valid indica si el alcance es conocido.
func (s ProjectionScope) Valid() bool {
	return s == ScopeCompany || s == ScopeCloser || s == ScopeSetter
}

var (
	monthKeyRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
	weekKeyRe  = regexp.MustCompile(`^\d{4}-W(0[1-9]|[1-4]\d|5[0-3])$`)
)

// Projection objetivo de un periodo.
// RevenueTarget solo aplica a company y AppointmentTarget solo a setter.
type Projection struct {
	ID                string
	Period            string // YYYY-MM | YYYY-Www
	PeriodType        PeriodType
	Scope             ProjectionScope
	MemberID          *string
	Name              string
	CashTarget        decimal.Decimal
	RevenueTarget     decimal.Decimal
	AppointmentTarget int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MemberKey devuelve el id de miembro o "" para la proyección de empresa.
func (p *Projection) MemberKey() string {
	if p.MemberID == nil {
		return ""
	}
	return *p.MemberID
}

// Validate verifica formato de periodo y coherencia de alcance.
func (p *Projection) Validate() error {
	if !p.PeriodType.Valid() {
		return fmt.Errorf("tipo de periodo %q inválido", p.PeriodType)
	}
	if p.PeriodType == PeriodMonthly && !monthKeyRe.MatchString(p.Period) {
		return fmt.Errorf("periodo mensual %q inválido, se espera YYYY-MM", p.Period)
	}
	if p.PeriodType == PeriodWeekly && !weekKeyRe.MatchString(p.Period) {
		return fmt.Errorf("periodo semanal %q inválido, se espera YYYY-Www", p.Period)
	}
	if !p.Scope.Valid() {
		return fmt.Errorf("alcance %q inválido", p.Scope)
	}
	if p.Scope == ScopeCompany && p.MemberID != nil {
		return fmt.Errorf("la proyección de empresa no lleva miembro")
	}
	if p.Scope != ScopeCompany && p.MemberKey() == "" {
		return fmt.Errorf("la proyección de %s requiere miembro", p.Scope)
	}
	if p.CashTarget.IsNegative() || p.RevenueTarget.IsNegative() || p.AppointmentTarget < 0 {
		return fmt.Errorf("los objetivos no pueden ser negativos")
	}
	if p.Scope != ScopeCompany && !p.RevenueTarget.IsZero() {
		return fmt.Errorf("el objetivo de revenue solo aplica a empresa")
	}
	if p.Scope != ScopeSetter && p.AppointmentTarget != 0 {
		return fmt.Errorf("el objetivo de agendas solo aplica a setters")
	}
	return nil
}
