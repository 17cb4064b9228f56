package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleFields campos editables de una venta compartidos por alta e importación.
type SaleFields struct {
	Date                   string          `json:"date"`
	ClientName             string          `json:"client_name" validate:"max=200"`
	ClientEmail            string          `json:"client_email" validate:"omitempty,email"`
	ClientPhone            string          `json:"client_phone"`
	Instagram              string          `json:"instagram"`
	Product                string          `json:"product"`
	ProductInterest        string          `json:"product_interest"`
	PaymentType            string          `json:"payment_type"`
	InstallmentNumber      string          `json:"installment_number"`
	PaymentMethod          string          `json:"payment_method"`
	Revenue                decimal.Decimal `json:"revenue"`
	CashCollected          decimal.Decimal `json:"cash_collected"`
	Closer                 string          `json:"closer"`
	Setter                 string          `json:"setter"`
	Triager                string          `json:"triager"`
	AccountManager         string          `json:"account_manager"`
	UTMSource              string          `json:"utm_source"`
	UTMMedium              string          `json:"utm_medium"`
	UTMCampaign            string          `json:"utm_campaign"`
	UTMContent             string          `json:"utm_content"`
	Country                string          `json:"country"`
	AvailableCapital       string          `json:"available_capital"`
	CurrentSituation       string          `json:"current_situation"`
	AmazonExperience       string          `json:"amazon_experience"`
	DecisionMakerConfirmed string          `json:"decision_maker_confirmed"`
	CallDate               string          `json:"call_date"`
	Status                 string          `json:"status" validate:"omitempty,oneof=Completada Pendiente Reembolso"`
	Notes                  string          `json:"notes"`
}

// CreateSaleRequest alta manual de una venta.
type CreateSaleRequest struct {
	SaleFields
}

// UpdateSaleRequest edición en línea: nil = no tocar. El cash neto no es editable.
type UpdateSaleRequest struct {
	Date                   *string          `json:"date"`
	ClientName             *string          `json:"client_name" validate:"omitempty,max=200"`
	ClientEmail            *string          `json:"client_email" validate:"omitempty,email"`
	ClientPhone            *string          `json:"client_phone"`
	Instagram              *string          `json:"instagram"`
	Product                *string          `json:"product"`
	ProductInterest        *string          `json:"product_interest"`
	PaymentType            *string          `json:"payment_type"`
	InstallmentNumber      *string          `json:"installment_number"`
	PaymentMethod          *string          `json:"payment_method"`
	Revenue                *decimal.Decimal `json:"revenue"`
	CashCollected          *decimal.Decimal `json:"cash_collected"`
	Closer                 *string          `json:"closer"`
	Setter                 *string          `json:"setter"`
	Triager                *string          `json:"triager"`
	AccountManager         *string          `json:"account_manager"`
	UTMSource              *string          `json:"utm_source"`
	UTMMedium              *string          `json:"utm_medium"`
	UTMCampaign            *string          `json:"utm_campaign"`
	UTMContent             *string          `json:"utm_content"`
	Country                *string          `json:"country"`
	AvailableCapital       *string          `json:"available_capital"`
	CurrentSituation       *string          `json:"current_situation"`
	AmazonExperience       *string          `json:"amazon_experience"`
	DecisionMakerConfirmed *string          `json:"decision_maker_confirmed"`
	CallDate               *string          `json:"call_date"`
	Status                 *string          `json:"status" validate:"omitempty,oneof=Completada Pendiente Reembolso"`
	Notes                  *string          `json:"notes"`
}

// SaleListQuery filtros del listado (query string).
type SaleListQuery struct {
	From          string `query:"from"`
	To            string `query:"to"`
	Preset        string `query:"preset"`
	Closer        string `query:"closer"`
	Setter        string `query:"setter"`
	Product       string `query:"product"`
	PaymentMethod string `query:"payment_method"`
	Status        string `query:"status" validate:"omitempty,oneof=Completada Pendiente Reembolso"`
}

// SaleResponse venta con su cash neto derivado.
type SaleResponse struct {
	ID string `json:"id"`
	SaleFields
	NetCash            decimal.Decimal `json:"net_cash"`
	UnknownMethod      bool            `json:"unknown_payment_method,omitempty"`
	Source             string          `json:"source"`
	ExternalActivityID *string         `json:"external_activity_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// SaleListResponse listado con totales del resultado filtrado.
type SaleListResponse struct {
	Items         []SaleResponse  `json:"items"`
	Count         int             `json:"count"`
	Revenue       decimal.Decimal `json:"revenue"`
	CashCollected decimal.Decimal `json:"cash_collected"`
	NetCash       decimal.Decimal `json:"net_cash"`
}
