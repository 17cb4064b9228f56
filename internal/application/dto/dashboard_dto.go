package dto

import "github.com/shopspring/decimal"

// DashboardQuery parámetros comunes de los dashboards.
type DashboardQuery struct {
	Preset        string `query:"preset"` // today, last7, thisMonth, month:2026-02, custom:A:B, 2026-W06…
	Closer        string `query:"closer"`
	Setter        string `query:"setter"`
	Product       string `query:"product"`
	PaymentMethod string `query:"payment_method"`
}

// WindowDTO ventana resuelta.
type WindowDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// SaleTotalsDTO totales de un conjunto de ventas.
type SaleTotalsDTO struct {
	Count     int             `json:"count"`
	Revenue   decimal.Decimal `json:"revenue"`
	GrossCash decimal.Decimal `json:"gross_cash"`
	NetCash   decimal.Decimal `json:"net_cash"`
	AvgTicket decimal.Decimal `json:"avg_ticket"`
}

// SaleGroupDTO totales por clave de agrupación.
type SaleGroupDTO struct {
	Key string `json:"key"`
	SaleTotalsDTO
}

// DailyPointDTO punto diario con acumulados.
type DailyPointDTO struct {
	Date       string          `json:"date"`
	Count      int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
	NetCash    decimal.Decimal `json:"net_cash"`
	CumRevenue decimal.Decimal `json:"cum_revenue"`
	CumNetCash decimal.Decimal `json:"cum_net_cash"`
}

// PerformerDTO posición en un leaderboard.
type PerformerDTO struct {
	Rank           int    `json:"rank"`
	Name           string `json:"name"`
	ConversionRate int    `json:"conversion_rate"`
	Volume         int    `json:"volume"`
	VolumeNorm     int    `json:"volume_norm"`
	Score          int    `json:"score"`
}

// ChangesDTO variación porcentual frente a la ventana anterior.
type ChangesDTO struct {
	Revenue int `json:"revenue"`
	NetCash int `json:"net_cash"`
	Count   int `json:"count"`
}

// StatusCountsDTO ventas por estado y cuotas.
type StatusCountsDTO struct {
	Completed           int `json:"completed"`
	Pending             int `json:"pending"`
	Refunded            int `json:"refunded"`
	InstallmentSales    int `json:"installment_sales"`
	PendingInstallments int `json:"pending_installments"`
}

// DataQualityDTO avisos de datos incompletos.
type DataQualityDTO struct {
	UnknownPaymentMethods []string `json:"unknown_payment_methods"`
}

// SalesDashboardResponse dashboard de ventas de una ventana con comparación.
type SalesDashboardResponse struct {
	Preset         string          `json:"preset"`
	Window         WindowDTO       `json:"window"`
	PreviousWindow WindowDTO       `json:"previous_window"`
	Totals         SaleTotalsDTO   `json:"totals"`
	Previous       SaleTotalsDTO   `json:"previous"`
	Changes        ChangesDTO      `json:"changes"`
	PendingRevenue decimal.Decimal `json:"pending_revenue"`
	CollectedPct   int             `json:"collected_pct"`
	// Pace proyección a fin de mes; solo para thisMonth y el mes en curso.
	Pace     *decimal.Decimal `json:"pace,omitempty"`
	Statuses StatusCountsDTO  `json:"statuses"`

	Daily           []DailyPointDTO `json:"daily"`
	ByProduct       []SaleGroupDTO  `json:"by_product"`
	ByCloser        []SaleGroupDTO  `json:"by_closer"`
	BySetter        []SaleGroupDTO  `json:"by_setter"`
	ByUTMSource     []SaleGroupDTO  `json:"by_utm_source"`
	ByCountry       []SaleGroupDTO  `json:"by_country"`
	ByPaymentType   []SaleGroupDTO  `json:"by_payment_type"`
	ByPaymentMethod []SaleGroupDTO  `json:"by_payment_method"`

	CloserRanking     []SaleGroupDTO `json:"closer_ranking"`
	SetterLeaderboard []PerformerDTO `json:"setter_leaderboard"`

	DataQuality DataQualityDTO `json:"data_quality"`
}
