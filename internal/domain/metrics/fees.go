// Package metrics contiene el núcleo de cálculo del dashboard: cash neto,
// agregaciones, leaderboards, comisiones y seguimiento de proyecciones.
// Todas las funciones son puras: no leen reloj ni persistencia.
package metrics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// FeeTable comisión de pasarela por método de pago (coincidencia exacta).
type FeeTable map[string]decimal.Decimal

// NewFeeTable construye la tabla a partir de las filas persistidas.
func NewFeeTable(fees []*entity.PaymentFee) FeeTable {
	t := make(FeeTable, len(fees))
	for _, f := range fees {
		t[f.Method] = f.FeeRate
	}
	return t
}

// Rate devuelve la comisión del método y si estaba configurado.
func (t FeeTable) Rate(method string) (decimal.Decimal, bool) {
	r, ok := t[method]
	if !ok {
		return decimal.Zero, false
	}
	return r, true
}

// NetCash cash × (1 − comisión) redondeado a 2 decimales. Método desconocido → comisión 0.
func (t FeeTable) NetCash(cash decimal.Decimal, method string) decimal.Decimal {
	rate, _ := t.Rate(method)
	return cash.Mul(decimal.NewFromInt(1).Sub(rate)).Round(2)
}

// NetSale venta anotada con su cash neto.
type NetSale struct {
	*entity.Sale
	NetCash       decimal.Decimal
	UnknownMethod bool
}

// Annotate calcula el cash neto de cada venta (redondeo por venta).
func Annotate(sales []*entity.Sale, table FeeTable) []NetSale {
	out := make([]NetSale, 0, len(sales))
	for _, s := range sales {
		_, known := table.Rate(s.PaymentMethod)
		out = append(out, NetSale{
			Sale:          s,
			NetCash:       table.NetCash(s.CashCollected, s.PaymentMethod),
			UnknownMethod: !known,
		})
	}
	return out
}

// UnknownMethods métodos de pago usados que no están en la tabla, ordenados.
func UnknownMethods(sales []NetSale) []string {
	seen := map[string]struct{}{}
	for _, s := range sales {
		if s.UnknownMethod {
			seen[s.PaymentMethod] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
