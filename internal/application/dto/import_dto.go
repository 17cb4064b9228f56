package dto

// Tipos de importación admitidos.
const (
	ImportTypeSales   = "sales"
	ImportTypeReports = "reports"
)

// ImportPreviewResponse resultado de leer una hoja: cabeceras, mapeo automático y filas.
type ImportPreviewResponse struct {
	Type     string              `json:"type"`
	Headers  []string            `json:"headers"`
	Mapping  map[string]string   `json:"mapping"` // cabecera -> campo interno
	Unmapped []string            `json:"unmapped"`
	Records  []map[string]string `json:"records"`
	Total    int                 `json:"total"`
}

// ImportRequest registros ya mapeados a nombres internos.
type ImportRequest struct {
	Records []map[string]any `json:"records" validate:"required,min=1,max=5000"`
}

// ImportRowError error de una fila (1-based).
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult resumen de una importación.
type ImportResult struct {
	Type     string           `json:"type"`
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}

// WebhookResponse alta desde el CRM.
type WebhookResponse struct {
	ID            string   `json:"id"`
	Status        string   `json:"status"`
	IgnoredFields []string `json:"ignored_fields,omitempty"`
}

// DuplicateResponse la actividad ya fue registrada.
type DuplicateResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	ExistingID string `json:"existing_id"`
}
