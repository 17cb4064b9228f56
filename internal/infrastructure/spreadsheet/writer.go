package spreadsheet

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/ingest"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
)

var _ usecase.SalesExporter = (*Writer)(nil)

const salesSheet = "Ventas"

// netCashKey columna derivada que solo existe en la exportación.
const netCashKey = "netCash"

// Writer genera el xlsx de ventas con las mismas cabeceras que acepta la importación.
type Writer struct{}

// NewWriter construye el exportador.
func NewWriter() *Writer { return &Writer{} }

type column struct {
	key    string
	header string
}

func salesColumns() []column {
	cols := make([]column, 0, len(ingest.SaleFields)+1)
	for _, f := range ingest.SaleFields {
		cols = append(cols, column{key: f.Key, header: f.Label})
		if f.Key == "cashCollected" {
			cols = append(cols, column{key: netCashKey, header: "Cash neto"})
		}
	}
	return cols
}

// ExportSales escribe una fila por venta.
func (Writer) ExportSales(_ context.Context, sales []dto.SaleResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", salesSheet); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}
	cols := salesColumns()

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	for i, c := range cols {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(salesSheet, cell, c.header); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(salesSheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for r, s := range sales {
		for i, c := range cols {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			if err := f.SetCellValue(salesSheet, cell, saleValue(s, c.key)); err != nil {
				return nil, fmt.Errorf("xlsx: fila %d: %w", r+2, err)
			}
		}
	}
	if err := f.SetPanes(salesSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, fmt.Errorf("xlsx: paneles: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func saleValue(s dto.SaleResponse, key string) any {
	switch key {
	case "date":
		return s.Date
	case "clientName":
		return s.ClientName
	case "clientEmail":
		return s.ClientEmail
	case "clientPhone":
		return s.ClientPhone
	case "instagram":
		return s.Instagram
	case "product":
		return s.Product
	case "productInterest":
		return s.ProductInterest
	case "paymentType":
		return s.PaymentType
	case "installmentNumber":
		return s.InstallmentNumber
	case "paymentMethod":
		return s.PaymentMethod
	case "revenue":
		return s.Revenue.InexactFloat64()
	case "cashCollected":
		return s.CashCollected.InexactFloat64()
	case netCashKey:
		return s.NetCash.InexactFloat64()
	case "closer":
		return s.Closer
	case "setter":
		return s.Setter
	case "triager":
		return s.Triager
	case "accountManager":
		return s.AccountManager
	case "utmSource":
		return s.UTMSource
	case "utmMedium":
		return s.UTMMedium
	case "utmCampaign":
		return s.UTMCampaign
	case "utmContent":
		return s.UTMContent
	case "country":
		return s.Country
	case "availableCapital":
		return s.AvailableCapital
	case "currentSituation":
		return s.CurrentSituation
	case "amazonExperience":
		return s.AmazonExperience
	case "decisionMakerConfirmed":
		return s.DecisionMakerConfirmed
	case "callDate":
		return s.CallDate
	case "status":
		return s.Status
	case "notes":
		return s.Notes
	}
	return ""
}
