package dto

import "time"

// ReportRequest reporte diario en forma plana. Role decide qué métricas se admiten;
// enviar una métrica del otro rol es un error de validación.
type ReportRequest struct {
	Date string `json:"date"`
	Role string `json:"role" validate:"required,oneof=setter closer"`
	Name string `json:"name" validate:"required,min=1,max=200"`

	// setter
	ConversationsOpened *int `json:"conversations_opened" validate:"omitempty,min=0"`
	FollowUps           *int `json:"follow_ups" validate:"omitempty,min=0"`
	AppointmentsBooked  *int `json:"appointments_booked" validate:"omitempty,min=0"`

	// closer
	ScheduledCalls *int `json:"scheduled_calls" validate:"omitempty,min=0"`
	CallsMade      *int `json:"calls_made" validate:"omitempty,min=0"`
	Deposits       *int `json:"deposits" validate:"omitempty,min=0"`
	Closes         *int `json:"closes" validate:"omitempty,min=0"`

	// ambos
	OffersLaunched *int `json:"offers_launched" validate:"omitempty,min=0"`
}

// ReportListQuery filtros del listado.
type ReportListQuery struct {
	From   string `query:"from"`
	To     string `query:"to"`
	Preset string `query:"preset"`
	Role   string `query:"role" validate:"omitempty,oneof=setter closer"`
	Name   string `query:"name"`
}

// SetterActivityDTO métricas de setter.
type SetterActivityDTO struct {
	ConversationsOpened int `json:"conversations_opened"`
	FollowUps           int `json:"follow_ups"`
	OffersLaunched      int `json:"offers_launched"`
	AppointmentsBooked  int `json:"appointments_booked"`
}

// CloserActivityDTO métricas de closer.
type CloserActivityDTO struct {
	ScheduledCalls int `json:"scheduled_calls"`
	CallsMade      int `json:"calls_made"`
	OffersLaunched int `json:"offers_launched"`
	Deposits       int `json:"deposits"`
	Closes         int `json:"closes"`
}

// ReportResponse reporte con solo la forma de su rol informada.
type ReportResponse struct {
	ID        string             `json:"id"`
	Date      string             `json:"date"`
	Role      string             `json:"role"`
	Name      string             `json:"name"`
	Setter    *SetterActivityDTO `json:"setter,omitempty"`
	Closer    *CloserActivityDTO `json:"closer,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
