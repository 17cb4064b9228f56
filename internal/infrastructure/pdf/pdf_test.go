package pdf_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/infrastructure/pdf"
)

func TestGenerateCommissionStatement_DevuelvePDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("Acme Ventas")
	c := &dto.CommissionResponse{
		Month:        "2026-02",
		Label:        "Febrero 2026",
		Start:        "2026-02-01",
		End:          "2026-02-28",
		TotalNetCash: decimal.NewFromInt(14710),
		Rows: []dto.CommissionRowDTO{
			{Name: "Emi", Role: "closer", Rate: decimal.RequireFromString("0.1"), CashBase: decimal.NewFromInt(9710), Commission: decimal.NewFromInt(971)},
			{Name: "Lu", Role: "setter", Rate: decimal.RequireFromString("0.05"), CashBase: decimal.NewFromInt(14710), Commission: decimal.NewFromInt(736)},
		},
		Total:   decimal.NewFromInt(1707),
		Closers: decimal.NewFromInt(971),
		Setters: decimal.NewFromInt(736),
		Other:   decimal.Zero,
	}

	data, err := g.GenerateCommissionStatement(context.Background(), c)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateCommissionStatement_SinDatos(t *testing.T) {
	_, err := pdf.NewMarotoPDFGenerator("").GenerateCommissionStatement(context.Background(), nil)
	assert.Error(t, err)
}
