package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// N8nConfig configuración única de la integración con el CRM vía n8n.
// APIKey se genera al crear y no se modifica después.
type N8nConfig struct {
	ID         string
	WebhookURL string
	APIKey     string
	Enabled    bool
	LastSync   *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewN8nConfig crea la configuración por defecto con una API key nueva.
func NewN8nConfig(now time.Time) *N8nConfig {
	return &N8nConfig{
		ID:        uuid.New().String(),
		APIKey:    GenerateAPIKey(),
		Enabled:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GenerateAPIKey devuelve una clave aleatoria de 32 caracteres hex.
func GenerateAPIKey() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
