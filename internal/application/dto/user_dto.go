package dto

import "time"

// LoginRequest entrada para login con email y contraseña.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT más el miembro autenticado.
type LoginResponse struct {
	Token string             `json:"token"`
	User  TeamMemberResponse `json:"user"`
}

// MeResponse identidad del token actual.
type MeResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Roles       []string  `json:"roles"`
	PrimaryRole string    `json:"primary_role"`
	CanSeeAll   bool      `json:"can_see_all"`
	CreatedAt   time.Time `json:"created_at"`
}
