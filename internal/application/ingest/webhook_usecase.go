package ingest

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/ventas-dashboard-api/pkg/logger"
)

// DuplicateError evento ya importado; ExistingID es la venta previa.
type DuplicateError struct {
	ExistingID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("venta con esta actividad ya existe (%s)", e.ExistingID)
}

func (e *DuplicateError) Unwrap() error { return domain.ErrDuplicate }

// WebhookUseCase recibe ventas del CRM (vía n8n).
type WebhookUseCase struct {
	sales         repository.SaleRepository
	n8n           repository.N8nConfigRepository
	apiKey        string
	defaultMethod string
	log           *logger.Logger
	now           func() time.Time
}

// NewWebhookUseCase construye el caso de uso. apiKey es la clave fija del entorno
// (puede estar vacía); la clave de la configuración n8n vale solo si está habilitada.
func NewWebhookUseCase(sales repository.SaleRepository, n8n repository.N8nConfigRepository, apiKey, defaultMethod string, log *logger.Logger) *WebhookUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &WebhookUseCase{sales: sales, n8n: n8n, apiKey: apiKey, defaultMethod: defaultMethod, log: log, now: time.Now}
}

// Authorize valida la cabecera x-api-key.
func (uc *WebhookUseCase) Authorize(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrInvalidAPIKey
	}
	if uc.apiKey != "" && equalKeys(key, uc.apiKey) {
		return nil
	}
	cfg, err := uc.n8n.Get(ctx)
	if err != nil {
		return fmt.Errorf("leer config n8n: %w", err)
	}
	if cfg != nil && cfg.Enabled && equalKeys(key, cfg.APIKey) {
		return nil
	}
	return domain.ErrInvalidAPIKey
}

func equalKeys(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Ingest traduce y guarda el evento. Un id de actividad ya visto devuelve *DuplicateError
// sin crear un segundo registro.
func (uc *WebhookUseCase) Ingest(ctx context.Context, payload map[string]any) (*dto.WebhookResponse, error) {
	now := uc.now()
	if id := ActivityID(payload); id != "" {
		if err := uc.checkDuplicate(ctx, id); err != nil {
			return nil, err
		}
	}

	sale, ignored := TranslateCRMPayload(payload, Defaults{Now: now, PaymentMethod: uc.defaultMethod})
	if err := sale.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := uc.sales.Create(ctx, sale); err != nil {
		// carrera entre dos entregas del mismo evento: el índice único decide
		if errors.Is(err, domain.ErrDuplicate) && sale.ExternalActivityID != nil {
			if dupErr := uc.checkDuplicate(ctx, *sale.ExternalActivityID); dupErr != nil {
				return nil, dupErr
			}
		}
		return nil, fmt.Errorf("guardar venta: %w", err)
	}

	if _, err := usecase.EnsureN8nConfig(ctx, uc.n8n); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo crear la config n8n")
	} else if err := uc.n8n.TouchLastSync(ctx, now); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo actualizar last_sync")
	}

	uc.log.Info().Str("sale_id", sale.ID).Str("closer", sale.Closer).
		Str("cash", sale.CashCollected.String()).Int("ignored", len(ignored)).Msg("venta recibida del CRM")

	return &dto.WebhookResponse{ID: sale.ID, Status: "created", IgnoredFields: ignored}, nil
}

func (uc *WebhookUseCase) checkDuplicate(ctx context.Context, activityID string) error {
	existing, err := uc.sales.GetByExternalActivityID(ctx, activityID)
	if err != nil {
		return fmt.Errorf("buscar duplicado: %w", err)
	}
	if existing != nil {
		return &DuplicateError{ExistingID: existing.ID}
	}
	return nil
}
