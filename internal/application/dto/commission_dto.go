package dto

import "github.com/shopspring/decimal"

// CommissionRowDTO comisión de un miembro.
type CommissionRowDTO struct {
	MemberID   string          `json:"member_id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Rate       decimal.Decimal `json:"rate"`
	CashBase   decimal.Decimal `json:"cash_base"`
	Commission decimal.Decimal `json:"commission"`
}

// CommissionResponse comisiones de un mes. Closers y setters reciben solo su fila.
type CommissionResponse struct {
	Month        string             `json:"month"`
	Label        string             `json:"label"`
	Start        string             `json:"start"`
	End          string             `json:"end"`
	TotalNetCash decimal.Decimal    `json:"total_net_cash"`
	Rows         []CommissionRowDTO `json:"rows"`
	Total        decimal.Decimal    `json:"total"`
	Closers      decimal.Decimal    `json:"closers"`
	Setters      decimal.Decimal    `json:"setters"`
	Other        decimal.Decimal    `json:"other"`
	Restricted   bool               `json:"restricted"`
}
