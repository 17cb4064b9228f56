package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de cobro de una venta.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "Completada"
	SaleStatusPending   SaleStatus = "Pendiente"
	SaleStatusRefunded  SaleStatus = "Reembolso"
)

// Valid indica si el estado es uno de los conocidos.
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusCompleted, SaleStatusPending, SaleStatusRefunded:
		return true
	}
	return false
}

// SaleSource origen del registro.
type SaleSource string

const (
	SaleSourceManual SaleSource = "manual"
	SaleSourceCRM    SaleSource = "crm"
	SaleSourceImport SaleSource = "import"
)

// Valid indica si el origen es uno de los conocidos.
func (s SaleSource) Valid() bool {
	switch s {
	case SaleSourceManual, SaleSourceCRM, SaleSourceImport:
		return true
	}
	return false
}

const (
	// PaymentTypeSingle es a la vez tipo de pago y número de cuota de un pago único.
	PaymentTypeSingle = "Pago único"
	// DefaultPaymentMethod método usado cuando la venta no indica ninguno.
	DefaultPaymentMethod = "Transferencia"

	MinInstallments = 2
	MaxInstallments = 6

	DateLayout = "2006-01-02"
)

// Sale representa un evento de cobro asociado a un deal.
// Revenue solo viene informado en la primera cuota de un deal a plazos; CashCollected
// es lo cobrado en este evento. El cash neto se deriva, nunca se persiste.
type Sale struct {
	ID          string
	Date        string // YYYY-MM-DD
	ClientName  string
	ClientEmail string
	ClientPhone string
	Instagram   string

	Product         string
	ProductInterest string

	PaymentType       string // "Pago único" | "N cuotas"
	InstallmentNumber string // "Pago único" | "i/N"
	PaymentMethod     string // clave de la tabla de comisiones de pasarela
	Revenue           decimal.Decimal
	CashCollected     decimal.Decimal

	Closer         string
	Setter         string
	Triager        string
	AccountManager string

	UTMSource   string
	UTMMedium   string
	UTMCampaign string
	UTMContent  string
	Country     string

	// Perfil del lead (texto libre)
	AvailableCapital       string
	CurrentSituation       string
	AmazonExperience       string
	DecisionMakerConfirmed string
	CallDate               string

	Status             SaleStatus
	Notes              string
	Source             SaleSource
	ExternalActivityID *string // id de actividad del CRM, para deduplicar

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApplyDefaults completa los campos opcionales con los valores por defecto.
func (s *Sale) ApplyDefaults(now time.Time, defaultMethod string) {
	if strings.TrimSpace(s.Date) == "" {
		s.Date = now.Format(DateLayout)
	}
	if s.PaymentType == "" {
		s.PaymentType = PaymentTypeSingle
	}
	if s.InstallmentNumber == "" {
		s.InstallmentNumber = PaymentTypeSingle
		if n, ok := InstallmentCount(s.PaymentType); ok && n > 1 {
			s.InstallmentNumber = fmt.Sprintf("1/%d", n)
		}
	}
	if s.PaymentMethod == "" {
		if defaultMethod == "" {
			defaultMethod = DefaultPaymentMethod
		}
		s.PaymentMethod = defaultMethod
	}
	if s.Status == "" {
		s.Status = SaleStatusCompleted
	}
	if s.Source == "" {
		s.Source = SaleSourceManual
	}
}

// Validate verifica los invariantes de la venta.
func (s *Sale) Validate() error {
	if _, err := time.Parse(DateLayout, DateOnly(s.Date)); err != nil {
		return fmt.Errorf("fecha %q inválida", s.Date)
	}
	if s.CashCollected.IsNegative() {
		return fmt.Errorf("cash collected no puede ser negativo")
	}
	if s.Revenue.IsNegative() {
		return fmt.Errorf("revenue no puede ser negativo")
	}
	if !ValidPaymentType(s.PaymentType) {
		return fmt.Errorf("tipo de pago %q inválido", s.PaymentType)
	}
	if !s.Status.Valid() {
		return fmt.Errorf("estado %q inválido", s.Status)
	}
	if !s.Source.Valid() {
		return fmt.Errorf("origen %q inválido", s.Source)
	}
	return nil
}

// IsSinglePayment indica si la venta es de pago único.
func (s *Sale) IsSinglePayment() bool {
	return s.PaymentType == PaymentTypeSingle
}

// ValidPaymentType acepta "Pago único" o "N cuotas" con N entre 2 y 6.
func ValidPaymentType(pt string) bool {
	_, ok := InstallmentCount(pt)
	return ok
}

// InstallmentCount devuelve el número de cuotas de un tipo de pago (1 para pago único).
func InstallmentCount(pt string) (int, bool) {
	if pt == PaymentTypeSingle {
		return 1, true
	}
	n, rest, found := strings.Cut(strings.TrimSpace(pt), " ")
	if !found || rest != "cuotas" {
		return 0, false
	}
	count, err := strconv.Atoi(n)
	if err != nil || count < MinInstallments || count > MaxInstallments {
		return 0, false
	}
	return count, true
}

// InstallmentPaymentType construye el tipo de pago "N cuotas".
func InstallmentPaymentType(n int) string {
	if n <= 1 {
		return PaymentTypeSingle
	}
	return fmt.Sprintf("%d cuotas", n)
}

// DateOnly recorta una fecha con sufijo de hora o zona a YYYY-MM-DD.
func DateOnly(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
