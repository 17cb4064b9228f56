package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
)

// ── Comisiones de pasarela ──────────────────────────────────────────────────

// PaymentFeeUseCase tabla de comisiones por método de pago.
type PaymentFeeUseCase struct {
	repo repository.PaymentFeeRepository
}

// NewPaymentFeeUseCase construye el caso de uso.
func NewPaymentFeeUseCase(repo repository.PaymentFeeRepository) *PaymentFeeUseCase {
	return &PaymentFeeUseCase{repo: repo}
}

// Create añade un método. Duplicado → ErrDuplicate.
func (uc *PaymentFeeUseCase) Create(ctx context.Context, in dto.PaymentFeeRequest) (*dto.PaymentFeeResponse, error) {
	now := time.Now()
	f := &entity.PaymentFee{
		ID:        uuid.New().String(),
		Method:    strings.TrimSpace(in.Method),
		FeeRate:   in.FeeRate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := f.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := uc.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return feeToResponse(f), nil
}

// List devuelve todos los métodos.
func (uc *PaymentFeeUseCase) List(ctx context.Context) ([]dto.PaymentFeeResponse, error) {
	fees, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar comisiones: %w", err)
	}
	out := make([]dto.PaymentFeeResponse, 0, len(fees))
	for _, f := range fees {
		out = append(out, *feeToResponse(f))
	}
	return out, nil
}

// Update cambia nombre o tasa de un método.
func (uc *PaymentFeeUseCase) Update(ctx context.Context, id string, in dto.PaymentFeeRequest) (*dto.PaymentFeeResponse, error) {
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	f.Method = strings.TrimSpace(in.Method)
	f.FeeRate = in.FeeRate
	f.UpdatedAt = time.Now()
	if err := f.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return feeToResponse(f), nil
}

// Delete elimina un método; las ventas que lo usen pasan a comisión 0.
func (uc *PaymentFeeUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// SeedDefaults carga la tabla inicial si está vacía. Devuelve cuántos métodos creó.
func (uc *PaymentFeeUseCase) SeedDefaults(ctx context.Context) (int, error) {
	fees, err := uc.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(fees) > 0 {
		return 0, nil
	}
	created := 0
	for _, f := range entity.DefaultPaymentFees() {
		if _, err := uc.Create(ctx, dto.PaymentFeeRequest{Method: f.Method, FeeRate: f.FeeRate}); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func feeToResponse(f *entity.PaymentFee) *dto.PaymentFeeResponse {
	return &dto.PaymentFeeResponse{
		ID:        f.ID,
		Method:    f.Method,
		FeeRate:   f.FeeRate,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// ── Integración n8n ─────────────────────────────────────────────────────────

// N8nConfigUseCase configuración única de la integración con el CRM.
type N8nConfigUseCase struct {
	repo repository.N8nConfigRepository
}

// NewN8nConfigUseCase construye el caso de uso.
func NewN8nConfigUseCase(repo repository.N8nConfigRepository) *N8nConfigUseCase {
	return &N8nConfigUseCase{repo: repo}
}

// Get devuelve la configuración creándola en la primera lectura.
func (uc *N8nConfigUseCase) Get(ctx context.Context) (*dto.N8nConfigResponse, error) {
	c, err := EnsureN8nConfig(ctx, uc.repo)
	if err != nil {
		return nil, err
	}
	return n8nToResponse(c), nil
}

// Update edita URL y estado; la API key no cambia.
func (uc *N8nConfigUseCase) Update(ctx context.Context, in dto.UpdateN8nConfigRequest) (*dto.N8nConfigResponse, error) {
	c, err := EnsureN8nConfig(ctx, uc.repo)
	if err != nil {
		return nil, err
	}
	if in.WebhookURL != nil {
		c.WebhookURL = strings.TrimSpace(*in.WebhookURL)
	}
	if in.Enabled != nil {
		c.Enabled = *in.Enabled
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return n8nToResponse(c), nil
}

// EnsureN8nConfig lee la configuración o crea la de por defecto.
// Si otra petición la crea a la vez, se relee la ganadora.
func EnsureN8nConfig(ctx context.Context, repo repository.N8nConfigRepository) (*entity.N8nConfig, error) {
	c, err := repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("leer config n8n: %w", err)
	}
	if c != nil {
		return c, nil
	}
	c = entity.NewN8nConfig(time.Now())
	if err := repo.Create(ctx, c); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return repo.Get(ctx)
		}
		return nil, fmt.Errorf("crear config n8n: %w", err)
	}
	return c, nil
}

func n8nToResponse(c *entity.N8nConfig) *dto.N8nConfigResponse {
	return &dto.N8nConfigResponse{
		ID:         c.ID,
		WebhookURL: c.WebhookURL,
		APIKey:     c.APIKey,
		Enabled:    c.Enabled,
		LastSync:   c.LastSync,
		UpdatedAt:  c.UpdatedAt,
	}
}
