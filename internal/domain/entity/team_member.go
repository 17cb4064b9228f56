package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Role rol de un miembro del equipo. Se combinan como flags.
type Role uint8

const (
	RoleCloser Role = 1 << iota
	RoleSetter
	RoleManager
	RoleDirector
)

// String devuelve el nombre en minúsculas del rol.
func (r Role) String() string {
	switch r {
	case RoleDirector:
		return "director"
	case RoleManager:
		return "manager"
	case RoleCloser:
		return "closer"
	case RoleSetter:
		return "setter"
	}
	return ""
}

// ParseRole convierte un nombre ("director", "manager", "closer", "setter") en Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "director":
		return RoleDirector, nil
	case "manager":
		return RoleManager, nil
	case "closer":
		return RoleCloser, nil
	case "setter":
		return RoleSetter, nil
	}
	return 0, fmt.Errorf("rol %q desconocido", s)
}

// rolePriority orden usado para resolver el rol primario.
var rolePriority = []Role{RoleDirector, RoleManager, RoleCloser, RoleSetter}

// RoleSet conjunto de roles de un miembro.
type RoleSet uint8

// NewRoleSet construye un conjunto con los roles dados.
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s = s.Add(r)
	}
	return s
}

// ParseRoleSet convierte una lista de nombres en RoleSet.
func ParseRoleSet(names []string) (RoleSet, error) {
	var s RoleSet
	for _, n := range names {
		r, err := ParseRole(n)
		if err != nil {
			return 0, err
		}
		s = s.Add(r)
	}
	return s, nil
}

// Has indica si el conjunto contiene el rol.
func (s RoleSet) Has(r Role) bool { return s&RoleSet(r) != 0 }

// Add devuelve el conjunto con el rol añadido.
func (s RoleSet) Add(r Role) RoleSet { return s | RoleSet(r) }

// HasAny indica si el conjunto contiene alguno de los roles.
func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// Primary rol de mayor prioridad: director > manager > closer > setter. Vacío → closer.
func (s RoleSet) Primary() Role {
	for _, r := range rolePriority {
		if s.Has(r) {
			return r
		}
	}
	return RoleCloser
}

// Strings lista los nombres de los roles en orden de prioridad.
func (s RoleSet) Strings() []string {
	out := make([]string, 0, 4)
	for _, r := range rolePriority {
		if s.Has(r) {
			out = append(out, r.String())
		}
	}
	return out
}

// CanSeeAll director y manager ven datos de todo el equipo.
func (s RoleSet) CanSeeAll() bool {
	return s.HasAny(RoleDirector, RoleManager)
}

// TeamMember miembro del equipo comercial. PasswordHash es bcrypt y nunca se expone.
type TeamMember struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Roles          RoleSet
	Active         bool
	CommissionRate decimal.Decimal // fracción en [0,1]
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate verifica los invariantes del miembro.
func (m *TeamMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("nombre requerido")
	}
	if !strings.Contains(m.Email, "@") {
		return fmt.Errorf("email %q inválido", m.Email)
	}
	if m.CommissionRate.IsNegative() || m.CommissionRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("la tasa de comisión debe estar entre 0 y 1")
	}
	return nil
}
