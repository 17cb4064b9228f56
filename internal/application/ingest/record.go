package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// Defaults valores que rellenan lo que el registro no trae.
type Defaults struct {
	Now           time.Time
	PaymentMethod string
}

// lookup busca el valor de un campo: primero etiquetas del CRM, luego clave y alias.
// Devuelve las claves consumidas para poder informar de las ignoradas.
func lookup(rec map[string]any, f Field, withCRM bool) (any, []string) {
	keys := make([]string, 0, len(f.CRM)+1+len(f.Aliases))
	if withCRM {
		keys = append(keys, f.CRM...)
	}
	keys = append(keys, f.Key)
	keys = append(keys, f.Aliases...)

	var found any
	var used []string
	for _, k := range keys {
		v, ok := rec[k]
		if !ok {
			continue
		}
		used = append(used, k)
		if found == nil && text(v) != "" {
			found = v
		}
	}
	return found, used
}

// SaleFromRecord construye una venta desde un registro plano (clave → valor).
// withCRM activa las etiquetas nativas del CRM. consumed recoge las claves leídas.
func SaleFromRecord(rec map[string]any, src entity.SaleSource, d Defaults, withCRM bool) (sale *entity.Sale, consumed map[string]bool) {
	consumed = map[string]bool{}
	sale = &entity.Sale{ID: uuid.New().String(), Source: src, CreatedAt: d.Now, UpdatedAt: d.Now}
	for _, f := range SaleFields {
		v, used := lookup(rec, f, withCRM)
		for _, k := range used {
			consumed[k] = true
		}
		if f.Number {
			setSaleNumber(sale, f.Key, number(v))
			continue
		}
		setSaleText(sale, f.Key, text(v))
	}
	if sale.Product == "" {
		sale.Product = sale.ProductInterest
	}
	sale.ApplyDefaults(d.Now, d.PaymentMethod)
	return sale, consumed
}

// ReportFromRecord construye un reporte diario; el rol decide qué métricas se leen.
func ReportFromRecord(rec map[string]any, now time.Time) (*entity.ActivityReport, error) {
	get := func(key string) any {
		for _, f := range ReportFields {
			if f.Key == key {
				v, _ := lookup(rec, f, false)
				return v
			}
		}
		return nil
	}

	date := entity.DateOnly(text(get("date")))
	if date == "" {
		date = now.Format(entity.DateLayout)
	}
	name := text(get("name"))

	var rep *entity.ActivityReport
	switch role := strings.ToLower(text(get("role"))); entity.ReportRole(role) {
	case entity.ReportRoleSetter:
		rep = entity.NewSetterReport(date, name, entity.SetterActivity{
			ConversationsOpened: count(get("conversationsOpened")),
			FollowUps:           count(get("followUps")),
			OffersLaunched:      count(get("offersLaunched")),
			AppointmentsBooked:  count(get("appointmentsBooked")),
		})
	case entity.ReportRoleCloser:
		rep = entity.NewCloserReport(date, name, entity.CloserActivity{
			ScheduledCalls: count(get("scheduledCalls")),
			CallsMade:      count(get("callsMade")),
			OffersLaunched: count(get("offersLaunched")),
			Deposits:       count(get("deposits")),
			Closes:         count(get("closes")),
		})
	default:
		return nil, fmt.Errorf("rol %q inválido (setter o closer)", role)
	}
	rep.ID = uuid.New().String()
	rep.CreatedAt, rep.UpdatedAt = now, now
	if err := rep.Validate(); err != nil {
		return nil, err
	}
	return rep, nil
}
