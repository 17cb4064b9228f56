package metrics

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/period"
)

const (
	DefaultUTMSource = "Directo"
	DefaultCountry   = "Sin país"
)

var hundred = decimal.NewFromInt(100)

// SaleFilters filtros de igualdad. Vacío no filtra.
type SaleFilters struct {
	Closer        string
	Setter        string
	Product       string
	PaymentMethod string
}

// FilterSales ventas dentro de la ventana que cumplen todos los filtros.
func FilterSales(sales []NetSale, w period.Window, f SaleFilters) []NetSale {
	out := make([]NetSale, 0, len(sales))
	for _, s := range sales {
		if !w.Contains(s.Date) {
			continue
		}
		if f.Closer != "" && s.Closer != f.Closer {
			continue
		}
		if f.Setter != "" && s.Setter != f.Setter {
			continue
		}
		if f.Product != "" && s.Product != f.Product {
			continue
		}
		if f.PaymentMethod != "" && s.PaymentMethod != f.PaymentMethod {
			continue
		}
		out = append(out, s)
	}
	return out
}

// GroupBy agrupa por clave conservando el orden de primera aparición.
func GroupBy[T any](items []T, key func(T) string) ([]string, map[string][]T) {
	keys := make([]string, 0)
	groups := make(map[string][]T)
	for _, it := range items {
		k := key(it)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], it)
	}
	return keys, groups
}

// ── Dimensiones ─────────────────────────────────────────────────────────────

// Dimension extrae la clave de agrupación de una venta.
type Dimension func(*entity.Sale) string

var (
	ByDate          Dimension = func(s *entity.Sale) string { return entity.DateOnly(s.Date) }
	ByCloser        Dimension = func(s *entity.Sale) string { return s.Closer }
	BySetter        Dimension = func(s *entity.Sale) string { return s.Setter }
	ByProduct       Dimension = func(s *entity.Sale) string { return s.Product }
	ByPaymentType   Dimension = func(s *entity.Sale) string { return s.PaymentType }
	ByPaymentMethod Dimension = func(s *entity.Sale) string { return s.PaymentMethod }
	ByStatus        Dimension = func(s *entity.Sale) string { return string(s.Status) }
	ByUTMSource     Dimension = func(s *entity.Sale) string { return orDefault(s.UTMSource, DefaultUTMSource) }
	ByCountry       Dimension = func(s *entity.Sale) string { return orDefault(s.Country, DefaultCountry) }
)

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// SaleTotals sumas de un conjunto de ventas.
type SaleTotals struct {
	Count     int
	Revenue   decimal.Decimal
	GrossCash decimal.Decimal
	NetCash   decimal.Decimal
}

func (t SaleTotals) add(s NetSale) SaleTotals {
	t.Count++
	t.Revenue = t.Revenue.Add(s.Revenue)
	t.GrossCash = t.GrossCash.Add(s.CashCollected)
	t.NetCash = t.NetCash.Add(s.NetCash)
	return t
}

// AvgTicket revenue medio por venta, redondeado a entero.
func (t SaleTotals) AvgTicket() decimal.Decimal {
	if t.Count == 0 {
		return decimal.Zero
	}
	return t.Revenue.Div(decimal.NewFromInt(int64(t.Count))).Round(0)
}

// PendingRevenue revenue aún no cobrado (revenue − cash bruto).
func (t SaleTotals) PendingRevenue() decimal.Decimal {
	return t.Revenue.Sub(t.GrossCash)
}

// CollectedPct porcentaje cobrado del revenue; 100 si no hay revenue.
func (t SaleTotals) CollectedPct() int {
	if !t.Revenue.IsPositive() {
		return 100
	}
	return DecimalRate(t.GrossCash, t.Revenue)
}

// SumSales totaliza sumando el cash neto ya redondeado por venta.
func SumSales(sales []NetSale) SaleTotals {
	t := SaleTotals{}
	for _, s := range sales {
		t = t.add(s)
	}
	return t
}

// SaleGroup totales de una clave de agrupación.
type SaleGroup struct {
	Key string
	SaleTotals
}

// GroupSales agrupa por dimensión; orden de primera aparición.
func GroupSales(sales []NetSale, dim Dimension) []SaleGroup {
	keys, groups := GroupBy(sales, func(s NetSale) string { return dim(s.Sale) })
	out := make([]SaleGroup, 0, len(keys))
	for _, k := range keys {
		out = append(out, SaleGroup{Key: k, SaleTotals: SumSales(groups[k])})
	}
	return out
}

// SortByKey orden ascendente por clave.
func SortByKey(groups []SaleGroup) []SaleGroup {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

// SortByRevenue orden descendente por revenue.
func SortByRevenue(groups []SaleGroup) []SaleGroup {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Revenue.GreaterThan(groups[j].Revenue) })
	return groups
}

// SortByNetCash orden descendente por cash neto.
func SortByNetCash(groups []SaleGroup) []SaleGroup {
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].NetCash.GreaterThan(groups[j].NetCash) })
	return groups
}

// WithoutEmptyKey descarta el grupo de clave vacía (p. ej. ventas sin setter).
func WithoutEmptyKey(groups []SaleGroup) []SaleGroup {
	out := groups[:0:0]
	for _, g := range groups {
		if g.Key != "" {
			out = append(out, g)
		}
	}
	return out
}

// ── Serie diaria ────────────────────────────────────────────────────────────

// DailyPoint totales de un día más los acumulados hasta ese día.
type DailyPoint struct {
	Date string
	SaleTotals
	CumRevenue decimal.Decimal
	CumNetCash decimal.Decimal
}

// Cumulative serie diaria ordenada por fecha con acumulados que empiezan en cero.
func Cumulative(sales []NetSale) []DailyPoint {
	groups := SortByKey(GroupSales(sales, ByDate))
	out := make([]DailyPoint, 0, len(groups))
	rev, cash := decimal.Zero, decimal.Zero
	for _, g := range groups {
		rev = rev.Add(g.Revenue)
		cash = cash.Add(g.NetCash)
		out = append(out, DailyPoint{Date: g.Key, SaleTotals: g.SaleTotals, CumRevenue: rev, CumNetCash: cash})
	}
	return out
}

// ── Ratios ──────────────────────────────────────────────────────────────────

// Rate num/den en porcentaje entero; 0 si den es 0.
func Rate(num, den int) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

// DecimalRate igual que Rate para importes.
func DecimalRate(num, den decimal.Decimal) int {
	if den.IsZero() {
		return 0
	}
	return int(num.Div(den).Mul(hundred).Round(0).IntPart())
}

// Change variación porcentual de cur frente a prev; 0 si prev es 0.
func Change(cur, prev decimal.Decimal) int {
	if prev.IsZero() {
		return 0
	}
	return DecimalRate(cur.Sub(prev), prev.Abs())
}

// Pace proyección lineal a fin de mes: cash / día transcurrido × días del mes.
func Pace(cash decimal.Decimal, dayOfMonth, daysInMonth int) decimal.Decimal {
	if dayOfMonth <= 0 {
		return decimal.Zero
	}
	return cash.Div(decimal.NewFromInt(int64(dayOfMonth))).Mul(decimal.NewFromInt(int64(daysInMonth))).Round(0)
}

// StatusCounts conteo de ventas por estado y de cuotas.
type StatusCounts struct {
	Completed          int
	Pending            int
	Refunded           int
	InstallmentSales   int
	PendingInstallment int
}

// CountStatuses cuenta estados; una venta a plazos es cualquier tipo distinto de pago único.
func CountStatuses(sales []NetSale) StatusCounts {
	var c StatusCounts
	for _, s := range sales {
		switch s.Status {
		case entity.SaleStatusCompleted:
			c.Completed++
		case entity.SaleStatusPending:
			c.Pending++
		case entity.SaleStatusRefunded:
			c.Refunded++
		}
		if !s.IsSinglePayment() {
			c.InstallmentSales++
			if s.Status == entity.SaleStatusPending {
				c.PendingInstallment++
			}
		}
	}
	return c
}
