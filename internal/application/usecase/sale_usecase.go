package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/metrics"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/period"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

// SalesExporter genera la hoja de cálculo del listado de ventas.
type SalesExporter interface {
	ExportSales(ctx context.Context, sales []dto.SaleResponse) ([]byte, error)
}

// SaleUseCase altas manuales, edición en línea y listados de ventas.
type SaleUseCase struct {
	repo          repository.SaleRepository
	fees          repository.PaymentFeeRepository
	exporter      SalesExporter
	defaultMethod string
}

// NewSaleUseCase construye el caso de uso. exporter puede ser nil si no se exporta.
func NewSaleUseCase(repo repository.SaleRepository, fees repository.PaymentFeeRepository, exporter SalesExporter, defaultMethod string) *SaleUseCase {
	return &SaleUseCase{repo: repo, fees: fees, exporter: exporter, defaultMethod: defaultMethod}
}

// Create registra una venta manual aplicando los valores por defecto.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	now := time.Now()
	sale := &entity.Sale{ID: uuid.New().String(), Source: entity.SaleSourceManual, CreatedAt: now, UpdatedAt: now}
	applySaleFields(sale, in.SaleFields)
	sale.ApplyDefaults(now, uc.defaultMethod)
	if err := sale.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := uc.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, sale)
}

// GetByID obtiene una venta con su cash neto (nil si no existe).
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	return uc.toResponse(ctx, sale)
}

// List filtra por rango (o preset) y campos exactos; devuelve también los totales.
func (uc *SaleUseCase) List(ctx context.Context, q dto.SaleListQuery) (*dto.SaleListResponse, error) {
	sales, err := uc.repo.List(ctx, saleFilter(q, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	table, err := LoadFeeTable(ctx, uc.fees)
	if err != nil {
		return nil, err
	}
	annotated := metrics.Annotate(sales, table)
	totals := metrics.SumSales(annotated)

	out := &dto.SaleListResponse{
		Items:         make([]dto.SaleResponse, 0, len(annotated)),
		Count:         totals.Count,
		Revenue:       totals.Revenue,
		CashCollected: totals.GrossCash,
		NetCash:       totals.NetCash,
	}
	for _, ns := range annotated {
		out.Items = append(out.Items, SaleToResponse(ns))
	}
	return out, nil
}

// Update aplica una edición parcial y revalida la venta completa.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	patchSale(sale, in)
	sale.UpdatedAt = time.Now()
	if err := sale.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := uc.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, sale)
}

// Delete elimina una venta.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Export genera el xlsx del listado filtrado.
func (uc *SaleUseCase) Export(ctx context.Context, q dto.SaleListQuery) ([]byte, string, error) {
	if uc.exporter == nil {
		return nil, "", fmt.Errorf("exportación no configurada")
	}
	list, err := uc.List(ctx, q)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.exporter.ExportSales(ctx, list.Items)
	if err != nil {
		return nil, "", fmt.Errorf("exportar ventas: %w", err)
	}
	return data, fmt.Sprintf("ventas_%s.xlsx", time.Now().Format("20060102")), nil
}

func (uc *SaleUseCase) toResponse(ctx context.Context, sale *entity.Sale) (*dto.SaleResponse, error) {
	table, err := LoadFeeTable(ctx, uc.fees)
	if err != nil {
		return nil, err
	}
	resp := SaleToResponse(metrics.Annotate([]*entity.Sale{sale}, table)[0])
	return &resp, nil
}

// LoadFeeTable lee la tabla de comisiones de pasarela vigente.
func LoadFeeTable(ctx context.Context, repo repository.PaymentFeeRepository) (metrics.FeeTable, error) {
	fees, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("tabla de comisiones: %w", err)
	}
	return metrics.NewFeeTable(fees), nil
}

func saleFilter(q dto.SaleListQuery, now time.Time) repository.SaleFilter {
	f := repository.SaleFilter{
		From:          q.From,
		To:            q.To,
		Closer:        q.Closer,
		Setter:        q.Setter,
		Product:       q.Product,
		PaymentMethod: q.PaymentMethod,
		Status:        entity.SaleStatus(q.Status),
	}
	if q.Preset != "" && q.From == "" && q.To == "" {
		w := period.Resolve(q.Preset, now)
		f.From, f.To = w.StartDate(), w.EndDate()
	}
	return f
}

func invalid(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}

// ── Mapeo DTO <-> entidad ──────────────────────────────────────────────────

func applySaleFields(s *entity.Sale, f dto.SaleFields) {
	s.Date = entity.DateOnly(f.Date)
	s.ClientName = f.ClientName
	s.ClientEmail = f.ClientEmail
	s.ClientPhone = f.ClientPhone
	s.Instagram = f.Instagram
	s.Product = f.Product
	s.ProductInterest = f.ProductInterest
	s.PaymentType = f.PaymentType
	s.InstallmentNumber = f.InstallmentNumber
	s.PaymentMethod = f.PaymentMethod
	s.Revenue = f.Revenue
	s.CashCollected = f.CashCollected
	s.Closer = f.Closer
	s.Setter = f.Setter
	s.Triager = f.Triager
	s.AccountManager = f.AccountManager
	s.UTMSource = f.UTMSource
	s.UTMMedium = f.UTMMedium
	s.UTMCampaign = f.UTMCampaign
	s.UTMContent = f.UTMContent
	s.Country = f.Country
	s.AvailableCapital = f.AvailableCapital
	s.CurrentSituation = f.CurrentSituation
	s.AmazonExperience = f.AmazonExperience
	s.DecisionMakerConfirmed = f.DecisionMakerConfirmed
	s.CallDate = f.CallDate
	s.Status = entity.SaleStatus(f.Status)
	s.Notes = f.Notes
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDec(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

func patchSale(s *entity.Sale, in dto.UpdateSaleRequest) {
	if in.Date != nil {
		s.Date = entity.DateOnly(*in.Date)
	}
	setStr(&s.ClientName, in.ClientName)
	setStr(&s.ClientEmail, in.ClientEmail)
	setStr(&s.ClientPhone, in.ClientPhone)
	setStr(&s.Instagram, in.Instagram)
	setStr(&s.Product, in.Product)
	setStr(&s.ProductInterest, in.ProductInterest)
	setStr(&s.PaymentType, in.PaymentType)
	setStr(&s.InstallmentNumber, in.InstallmentNumber)
	setStr(&s.PaymentMethod, in.PaymentMethod)
	setDec(&s.Revenue, in.Revenue)
	setDec(&s.CashCollected, in.CashCollected)
	setStr(&s.Closer, in.Closer)
	setStr(&s.Setter, in.Setter)
	setStr(&s.Triager, in.Triager)
	setStr(&s.AccountManager, in.AccountManager)
	setStr(&s.UTMSource, in.UTMSource)
	setStr(&s.UTMMedium, in.UTMMedium)
	setStr(&s.UTMCampaign, in.UTMCampaign)
	setStr(&s.UTMContent, in.UTMContent)
	setStr(&s.Country, in.Country)
	setStr(&s.AvailableCapital, in.AvailableCapital)
	setStr(&s.CurrentSituation, in.CurrentSituation)
	setStr(&s.AmazonExperience, in.AmazonExperience)
	setStr(&s.DecisionMakerConfirmed, in.DecisionMakerConfirmed)
	setStr(&s.CallDate, in.CallDate)
	if in.Status != nil {
		s.Status = entity.SaleStatus(*in.Status)
	}
	setStr(&s.Notes, in.Notes)
}

// SaleToResponse mapea una venta anotada a su DTO.
func SaleToResponse(ns metrics.NetSale) dto.SaleResponse {
	s := ns.Sale
	return dto.SaleResponse{
		ID: s.ID,
		SaleFields: dto.SaleFields{
			Date:                   s.Date,
			ClientName:             s.ClientName,
			ClientEmail:            s.ClientEmail,
			ClientPhone:            s.ClientPhone,
			Instagram:              s.Instagram,
			Product:                s.Product,
			ProductInterest:        s.ProductInterest,
			PaymentType:            s.PaymentType,
			InstallmentNumber:      s.InstallmentNumber,
			PaymentMethod:          s.PaymentMethod,
			Revenue:                s.Revenue,
			CashCollected:          s.CashCollected,
			Closer:                 s.Closer,
			Setter:                 s.Setter,
			Triager:                s.Triager,
			AccountManager:         s.AccountManager,
			UTMSource:              s.UTMSource,
			UTMMedium:              s.UTMMedium,
			UTMCampaign:            s.UTMCampaign,
			UTMContent:             s.UTMContent,
			Country:                s.Country,
			AvailableCapital:       s.AvailableCapital,
			CurrentSituation:       s.CurrentSituation,
			AmazonExperience:       s.AmazonExperience,
			DecisionMakerConfirmed: s.DecisionMakerConfirmed,
			CallDate:               s.CallDate,
			Status:                 string(s.Status),
			Notes:                  s.Notes,
		},
		NetCash:            ns.NetCash,
		UnknownMethod:      ns.UnknownMethod,
		Source:             string(s.Source),
		ExternalActivityID: s.ExternalActivityID,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
