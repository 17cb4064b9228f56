package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/period"
)

// Progress porcentaje de avance: min(round(actual/objetivo×100), 100); 0 sin objetivo.
func Progress(actual, target decimal.Decimal) int {
	if !target.IsPositive() {
		return 0
	}
	pct := DecimalRate(actual, target)
	if pct > 100 {
		return 100
	}
	return pct
}

// Actuals valores reales de un periodo.
type Actuals struct {
	NetCash              decimal.Decimal
	Revenue              decimal.Decimal
	CashByCloser         map[string]decimal.Decimal
	AppointmentsBySetter map[string]int
}

// ComputeActuals agrega ventas (ya filtradas al periodo) y reportes de setters.
func ComputeActuals(sales []NetSale, reports []*entity.ActivityReport) Actuals {
	a := Actuals{
		NetCash:              decimal.Zero,
		Revenue:              decimal.Zero,
		CashByCloser:         map[string]decimal.Decimal{},
		AppointmentsBySetter: map[string]int{},
	}
	for _, s := range sales {
		a.NetCash = a.NetCash.Add(s.NetCash)
		a.Revenue = a.Revenue.Add(s.Revenue)
		a.CashByCloser[s.Closer] = a.CashByCloser[s.Closer].Add(s.NetCash)
	}
	for _, r := range reports {
		if r.Role == entity.ReportRoleSetter && r.Setter != nil {
			a.AppointmentsBySetter[r.Name] += r.Setter.AppointmentsBooked
		}
	}
	return a
}

// TargetProgress par objetivo/real de una métrica.
type TargetProgress struct {
	ProjectionID string
	MemberID     string
	Name         string
	Target       decimal.Decimal
	Actual       decimal.Decimal
	Progress     int
	HasTarget    bool
}

func newProgress(p *entity.Projection, name string, target, actual decimal.Decimal) TargetProgress {
	tp := TargetProgress{Name: name, Target: target, Actual: actual, HasTarget: target.IsPositive()}
	if p != nil {
		tp.ProjectionID = p.ID
		tp.MemberID = p.MemberKey()
	}
	tp.Progress = Progress(actual, target)
	return tp
}

// Viewer usuario que consulta el tablero.
type Viewer struct {
	MemberID string
	Name     string
	Roles    entity.RoleSet
}

// Board avance de objetivos de un periodo.
type Board struct {
	Period     string
	PeriodType entity.PeriodType
	Cash       TargetProgress
	Revenue    TargetProgress
	Closers    []TargetProgress
	Setters    []TargetProgress
}

// Track empareja los objetivos del periodo exacto (periodo + tipo) con los reales.
// names resuelve MemberID → nombre; si falta se usa el nombre guardado en la proyección.
// Closers y setters sin visión global solo ven su propia fila y nada del otro rol.
func Track(projections []*entity.Projection, key string, pt entity.PeriodType, actuals Actuals, names map[string]string, viewer Viewer) Board {
	b := Board{Period: key, PeriodType: pt, Closers: []TargetProgress{}, Setters: []TargetProgress{}}
	var company *entity.Projection
	for _, p := range projections {
		if p.Period != key || p.PeriodType != pt {
			continue
		}
		name := p.Name
		if n, ok := names[p.MemberKey()]; ok && n != "" {
			name = n
		}
		switch p.Scope {
		case entity.ScopeCompany:
			company = p
		case entity.ScopeCloser:
			if viewer.sees(entity.RoleCloser, p.MemberKey(), name) {
				b.Closers = append(b.Closers, newProgress(p, name, p.CashTarget, actuals.CashByCloser[name]))
			}
		case entity.ScopeSetter:
			if viewer.sees(entity.RoleSetter, p.MemberKey(), name) {
				target := decimal.NewFromInt(int64(p.AppointmentTarget))
				actual := decimal.NewFromInt(int64(actuals.AppointmentsBySetter[name]))
				b.Setters = append(b.Setters, newProgress(p, name, target, actual))
			}
		}
	}
	cashTarget, revTarget := decimal.Zero, decimal.Zero
	if company != nil {
		cashTarget, revTarget = company.CashTarget, company.RevenueTarget
	}
	b.Cash = newProgress(company, "Empresa", cashTarget, actuals.NetCash)
	b.Revenue = newProgress(company, "Empresa", revTarget, actuals.Revenue)
	return b
}

func (v Viewer) sees(scope entity.Role, memberID, name string) bool {
	if v.Roles.CanSeeAll() {
		return true
	}
	if v.Roles.Primary() != scope {
		return false
	}
	return (v.MemberID != "" && v.MemberID == memberID) || (v.Name != "" && v.Name == name)
}

// HistoryPoint objetivo de empresa frente a cash neto real de un periodo.
type HistoryPoint struct {
	Period   string
	Label    string
	Target   decimal.Decimal
	Actual   decimal.Decimal
	Progress int
}

// History serie de los periodos dados (más antiguo primero). netCash debe traer el
// cash neto de cada periodo; los que falten cuentan como 0.
func History(periods []string, pt entity.PeriodType, projections []*entity.Projection, netCash map[string]decimal.Decimal) []HistoryPoint {
	targets := map[string]decimal.Decimal{}
	for _, p := range projections {
		if p.Scope == entity.ScopeCompany && p.PeriodType == pt {
			targets[p.Period] = p.CashTarget
		}
	}
	out := make([]HistoryPoint, 0, len(periods))
	for _, key := range periods {
		target, ok := targets[key]
		if !ok {
			target = decimal.Zero
		}
		actual := netCash[key].Round(0)
		out = append(out, HistoryPoint{
			Period:   key,
			Label:    period.Label(key, pt),
			Target:   target,
			Actual:   actual,
			Progress: Progress(actual, target),
		})
	}
	return out
}

// NetCashByPeriod suma el cash neto de las ventas que caen en cada periodo.
func NetCashByPeriod(sales []NetSale, periods []string, pt entity.PeriodType) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(periods))
	for _, key := range periods {
		w, ok := period.ForPeriod(key, pt)
		if !ok {
			continue
		}
		out[key] = SumSales(FilterSales(sales, w, SaleFilters{})).NetCash
	}
	return out
}
