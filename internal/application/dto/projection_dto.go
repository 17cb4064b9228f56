package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectionRequest alta o edición de un objetivo.
type ProjectionRequest struct {
	Period            string          `json:"period" validate:"required"`
	PeriodType        string          `json:"period_type" validate:"required,oneof=monthly weekly"`
	Scope             string          `json:"scope" validate:"required,oneof=company closer setter"`
	MemberID          *string         `json:"member_id" validate:"omitempty,uuid"`
	Name              string          `json:"name" validate:"max=200"`
	CashTarget        decimal.Decimal `json:"cash_target"`
	RevenueTarget     decimal.Decimal `json:"revenue_target"`
	AppointmentTarget int             `json:"appointment_target" validate:"min=0"`
}

// ProjectionListQuery filtros del listado.
type ProjectionListQuery struct {
	PeriodType string `query:"period_type" validate:"omitempty,oneof=monthly weekly"`
	Period     string `query:"period"`
	Scope      string `query:"scope" validate:"omitempty,oneof=company closer setter"`
	MemberID   string `query:"member_id"`
}

// ProjectionResponse objetivo persistido.
type ProjectionResponse struct {
	ID                string          `json:"id"`
	Period            string          `json:"period"`
	PeriodType        string          `json:"period_type"`
	Scope             string          `json:"scope"`
	MemberID          *string         `json:"member_id"`
	Name              string          `json:"name"`
	CashTarget        decimal.Decimal `json:"cash_target"`
	RevenueTarget     decimal.Decimal `json:"revenue_target"`
	AppointmentTarget int             `json:"appointment_target"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// BoardQuery tablero de objetivos: periodo vacío = periodo en curso.
type BoardQuery struct {
	PeriodType string `query:"period_type" validate:"omitempty,oneof=monthly weekly"`
	Period     string `query:"period"`
}

// TargetProgressDTO objetivo frente a real.
type TargetProgressDTO struct {
	ProjectionID string          `json:"projection_id,omitempty"`
	MemberID     string          `json:"member_id,omitempty"`
	Name         string          `json:"name"`
	Target       decimal.Decimal `json:"target"`
	Actual       decimal.Decimal `json:"actual"`
	Progress     int             `json:"progress"`
	HasTarget    bool            `json:"has_target"`
}

// HistoryPointDTO punto de la serie histórica de la empresa.
type HistoryPointDTO struct {
	Period   string          `json:"period"`
	Label    string          `json:"label"`
	Target   decimal.Decimal `json:"target"`
	Actual   decimal.Decimal `json:"actual"`
	Progress int             `json:"progress"`
}

// ProjectionBoardResponse avance del periodo y últimos periodos.
type ProjectionBoardResponse struct {
	Period     string              `json:"period"`
	PeriodType string              `json:"period_type"`
	Label      string              `json:"label"`
	Start      string              `json:"start"`
	End        string              `json:"end"`
	Cash       TargetProgressDTO   `json:"cash"`
	Revenue    TargetProgressDTO   `json:"revenue"`
	Closers    []TargetProgressDTO `json:"closers"`
	Setters    []TargetProgressDTO `json:"setters"`
	History    []HistoryPointDTO   `json:"history"`
}
