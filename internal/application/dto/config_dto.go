package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentFeeRequest alta o edición de un método de pago.
type PaymentFeeRequest struct {
	Method  string          `json:"method" validate:"required,min=1,max=100"`
	FeeRate decimal.Decimal `json:"fee_rate"`
}

// PaymentFeeResponse método de pago con su comisión.
type PaymentFeeResponse struct {
	ID        string          `json:"id"`
	Method    string          `json:"method"`
	FeeRate   decimal.Decimal `json:"fee_rate"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// N8nConfigResponse configuración de la integración. La API key solo se muestra, no se edita.
type N8nConfigResponse struct {
	ID         string     `json:"id"`
	WebhookURL string     `json:"webhook_url"`
	APIKey     string     `json:"api_key"`
	Enabled    bool       `json:"enabled"`
	LastSync   *time.Time `json:"last_sync"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// UpdateN8nConfigRequest campos editables de la integración.
type UpdateN8nConfigRequest struct {
	WebhookURL *string `json:"webhook_url" validate:"omitempty,url"`
	Enabled    *bool   `json:"enabled"`
}
