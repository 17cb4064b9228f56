package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// CommissionRow comisión de un miembro.
type CommissionRow struct {
	MemberID   string
	Name       string
	Role       entity.Role // rol primario
	Rate       decimal.Decimal
	CashBase   decimal.Decimal
	Commission decimal.Decimal
}

// CommissionSummary comisiones del periodo con subtotales por rol.
type CommissionSummary struct {
	TotalNetCash decimal.Decimal
	Rows         []CommissionRow
	Total        decimal.Decimal
	Closers      decimal.Decimal
	Setters      decimal.Decimal
	Other        decimal.Decimal
}

// ComputeCommissions calcula para todos los miembros activos.
// Rol primario closer: base = su propio cash neto. Cualquier otro: base = cash neto total.
// Comisión = round(base × tasa) a unidad entera.
func ComputeCommissions(members []*entity.TeamMember, sales []NetSale) CommissionSummary {
	total := decimal.Zero
	byCloser := map[string]decimal.Decimal{}
	for _, s := range sales {
		total = total.Add(s.NetCash)
		byCloser[s.Closer] = byCloser[s.Closer].Add(s.NetCash)
	}

	rows := make([]CommissionRow, 0, len(members))
	for _, m := range members {
		if !m.Active {
			continue
		}
		role := m.Roles.Primary()
		base := total
		if role == entity.RoleCloser {
			base = byCloser[m.Name]
		}
		rows = append(rows, CommissionRow{
			MemberID:   m.ID,
			Name:       m.Name,
			Role:       role,
			Rate:       m.CommissionRate,
			CashBase:   base,
			Commission: base.Mul(m.CommissionRate).Round(0),
		})
	}
	return summarize(total, rows)
}

func summarize(totalNet decimal.Decimal, rows []CommissionRow) CommissionSummary {
	s := CommissionSummary{
		TotalNetCash: totalNet,
		Rows:         rows,
		Total:        decimal.Zero,
		Closers:      decimal.Zero,
		Setters:      decimal.Zero,
	}
	for _, r := range rows {
		s.Total = s.Total.Add(r.Commission)
		switch r.Role {
		case entity.RoleCloser:
			s.Closers = s.Closers.Add(r.Commission)
		case entity.RoleSetter:
			s.Setters = s.Setters.Add(r.Commission)
		}
	}
	s.Other = s.Total.Sub(s.Closers).Sub(s.Setters)
	return s
}

// RestrictTo vista de una sola fila para un miembro con rol restringido.
// Los subtotales se recalculan sobre la fila visible.
func (s CommissionSummary) RestrictTo(memberID string) CommissionSummary {
	rows := make([]CommissionRow, 0, 1)
	for _, r := range s.Rows {
		if r.MemberID == memberID {
			rows = append(rows, r)
		}
	}
	return summarize(s.TotalNetCash, rows)
}
