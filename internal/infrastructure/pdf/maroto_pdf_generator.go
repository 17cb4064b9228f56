// Package pdf genera la liquidación mensual de comisiones en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Liquidación de comisiones │ Mes + rango de fechas  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Cash neto del mes                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Miembro | Rol | Tasa | Base | Comisión              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Closers / Setters / Otros / TOTAL                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/analytics"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
)

var _ analytics.CommissionPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa analytics.CommissionPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador; company aparece como autor y cabecera.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateCommissionStatement genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCommissionStatement(_ context.Context, c *dto.CommissionResponse) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("pdf: liquidación vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Liquidación de comisiones "+c.Label, true).
		WithAuthor(nonEmpty(g.company, "Dirección comercial"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c, g.company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(c.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(c))
	if c.Restricted {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Extracto individual: solo incluye la comisión del titular.", props.Text{
				Size: 7, Color: colorGray, Top: 3,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(c *dto.CommissionResponse, company string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("LIQUIDACIÓN DE COMISIONES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(company, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(c.Label, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("Del %s al %s", displayDate(c.Start), displayDate(c.End)), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func summaryRow(c *dto.CommissionResponse) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CASH NETO DEL MES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(euros(c.TotalNetCash), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Miembro", 4, align.Left),
		h("Rol", 2, align.Left),
		h("Tasa", 1, align.Center),
		h("Base", 3, align.Right),
		h("Comisión", 2, align.Right),
	)
}

func tableRows(rows []dto.CommissionRowDTO) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		rw := row.New(7).Add(
			col.New(4).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(roleLabel(r.Role), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(percent(r.Rate), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(euros(r.CashBase), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(euros(r.Commission), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1})),
		)
		if i%2 == 1 {
			rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, rw)
	}
	return result
}

func totalsRow(c *dto.CommissionResponse) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: right, Top: 15})
	}

	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(
			label("Closers:"),
			text.New("Setters:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			text.New("Otros:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 10}),
			grand("TOTAL:", 2),
		),
		col.New(3).Add(
			value(euros(c.Closers)),
			text.New(euros(c.Setters), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(euros(c.Other), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 10}),
			grand(euros(c.Total), 1),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func roleLabel(role string) string {
	switch role {
	case "director":
		return "Director"
	case "manager":
		return "Manager"
	case "closer":
		return "Closer"
	case "setter":
		return "Setter"
	}
	return role
}

// euros formatea un importe redondeado a la unidad: 12500 → "12.500 €".
func euros(d decimal.Decimal) string {
	s := d.StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = formatMoney(strings.TrimPrefix(s, "-"))
	if neg {
		s = "-" + s
	}
	return s + " €"
}

// percent muestra una tasa fraccional: 0.075 → "7.5%".
func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}

// displayDate YYYY-MM-DD → DD/MM/YYYY.
func displayDate(s string) string {
	if len(s) != 10 {
		return s
	}
	return s[8:10] + "/" + s[5:7] + "/" + s[0:4]
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
