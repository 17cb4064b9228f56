package ingest

import (
	"sort"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// Claves del CRM que identifican la actividad de cierre.
var activityKeys = []string{"activity_id", "closeActivityId"}

// ActivityID id de actividad del payload ("" si no viene).
func ActivityID(payload map[string]any) string {
	for _, k := range activityKeys {
		if id := text(payload[k]); id != "" {
			return id
		}
	}
	return ""
}

// TranslateCRMPayload convierte un evento de cierre del CRM en una venta.
// Devuelve además las claves del payload que no corresponden a ningún campo.
func TranslateCRMPayload(payload map[string]any, d Defaults) (*entity.Sale, []string) {
	sale, consumed := SaleFromRecord(payload, entity.SaleSourceCRM, d, true)
	if id := ActivityID(payload); id != "" {
		sale.ExternalActivityID = &id
	}
	for _, k := range activityKeys {
		consumed[k] = true
	}

	ignored := make([]string, 0)
	for k := range payload {
		if !consumed[k] {
			ignored = append(ignored, k)
		}
	}
	sort.Strings(ignored)
	return sale, ignored
}
