package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentFee comisión de pasarela aplicada a un método de pago.
type PaymentFee struct {
	ID        string
	Method    string
	FeeRate   decimal.Decimal // fracción en [0,1]
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate verifica método no vacío y tasa en rango.
func (f *PaymentFee) Validate() error {
	if strings.TrimSpace(f.Method) == "" {
		return fmt.Errorf("método requerido")
	}
	if f.FeeRate.IsNegative() || f.FeeRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("la comisión debe estar entre 0 y 1")
	}
	return nil
}

// DefaultPaymentFees tabla inicial de comisiones de pasarela.
func DefaultPaymentFees() []*PaymentFee {
	return []*PaymentFee{
		{Method: "Transferencia", FeeRate: decimal.Zero},
		{Method: "Stripe", FeeRate: decimal.RequireFromString("0.029")},
		{Method: "PayPal", FeeRate: decimal.RequireFromString("0.035")},
		{Method: "Tarjeta", FeeRate: decimal.RequireFromString("0.015")},
	}
}
