package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTeamMemberRequest alta de un miembro (password en texto, se hashea en el use case).
type CreateTeamMemberRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Email          string          `json:"email" validate:"required,email"`
	Password       string          `json:"password" validate:"required,min=8"`
	Roles          []string        `json:"roles" validate:"required,min=1,dive,oneof=director manager closer setter"`
	Active         *bool           `json:"active"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

// UpdateTeamMemberRequest edición parcial: solo se aplican los campos presentes.
type UpdateTeamMemberRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Email          *string          `json:"email" validate:"omitempty,email"`
	Password       *string          `json:"password" validate:"omitempty,min=8"`
	Roles          []string         `json:"roles" validate:"omitempty,min=1,dive,oneof=director manager closer setter"`
	Active         *bool            `json:"active"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

// TeamMemberResponse salida de un miembro (sin password).
type TeamMemberResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Roles          []string        `json:"roles"`
	PrimaryRole    string          `json:"primary_role"`
	Active         bool            `json:"active"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
