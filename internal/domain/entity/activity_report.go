package entity

import (
	"fmt"
	"time"
)

// ReportRole discrimina la forma de un reporte de actividad.
type ReportRole string

const (
	ReportRoleSetter ReportRole = "setter"
	ReportRoleCloser ReportRole = "closer"
)

// Valid indica si el rol de reporte es conocido.
func (r ReportRole) Valid() bool {
	return r == ReportRoleSetter || r == ReportRoleCloser
}

// SetterActivity métricas diarias del embudo de un setter.
type SetterActivity struct {
	ConversationsOpened int
	FollowUps           int
	OffersLaunched      int
	AppointmentsBooked  int
}

// CloserActivity métricas diarias del embudo de un closer.
type CloserActivity struct {
	ScheduledCalls int
	CallsMade      int
	OffersLaunched int
	Deposits       int
	Closes         int
}

// ActivityReport reporte de fin de día de una persona.
// Role es el discriminante: solo el puntero de la forma correspondiente viene informado.
type ActivityReport struct {
	ID     string
	Date   string // YYYY-MM-DD
	Role   ReportRole
	Name   string
	Setter *SetterActivity
	Closer *CloserActivity

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSetterReport construye un reporte con forma de setter.
func NewSetterReport(date, name string, a SetterActivity) *ActivityReport {
	return &ActivityReport{Date: date, Role: ReportRoleSetter, Name: name, Setter: &a}
}

// NewCloserReport construye un reporte con forma de closer.
func NewCloserReport(date, name string, a CloserActivity) *ActivityReport {
	return &ActivityReport{Date: date, Role: ReportRoleCloser, Name: name, Closer: &a}
}

// Validate verifica que exactamente una forma esté presente y coincida con el rol.
func (r *ActivityReport) Validate() error {
	if _, err := time.Parse(DateLayout, DateOnly(r.Date)); err != nil {
		return fmt.Errorf("fecha %q inválida", r.Date)
	}
	if r.Name == "" {
		return fmt.Errorf("nombre requerido")
	}
	switch r.Role {
	case ReportRoleSetter:
		if r.Setter == nil || r.Closer != nil {
			return fmt.Errorf("un reporte de setter solo admite métricas de setter")
		}
		a := r.Setter
		if a.ConversationsOpened < 0 || a.FollowUps < 0 || a.OffersLaunched < 0 || a.AppointmentsBooked < 0 {
			return fmt.Errorf("las métricas no pueden ser negativas")
		}
	case ReportRoleCloser:
		if r.Closer == nil || r.Setter != nil {
			return fmt.Errorf("un reporte de closer solo admite métricas de closer")
		}
		a := r.Closer
		if a.ScheduledCalls < 0 || a.CallsMade < 0 || a.OffersLaunched < 0 || a.Deposits < 0 || a.Closes < 0 {
			return fmt.Errorf("las métricas no pueden ser negativas")
		}
	default:
		return fmt.Errorf("rol de reporte %q inválido", r.Role)
	}
	return nil
}
