package analytics

import (
	"fmt"
	"time"

	"github.com/jhoicas/ventas-dashboard-api/internal/application/dto"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/metrics"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/period"
)

// result resultado tipado de una lectura lanzada en paralelo.
type result[T any] struct {
	val T
	err error
}

// fetch ejecuta fn en una goroutine; el canal tiene buffer para no bloquearla
// si el llamador abandona por un error previo.
func fetch[T any](fn func() (T, error)) <-chan result[T] {
	ch := make(chan result[T], 1)
	go func() {
		v, err := fn()
		ch <- result[T]{val: v, err: err}
	}()
	return ch
}

// clock reloj de referencia de los cálculos; nil = time.Now.
type clock struct {
	nowFn func() time.Time
}

func (c *clock) now() time.Time {
	if c.nowFn == nil {
		return time.Now()
	}
	return c.nowFn()
}

// SetClock fija el reloj de referencia (tests y jobs).
func (c *clock) SetClock(fn func() time.Time) { c.nowFn = fn }

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}

// ── Mapeo métricas -> DTO ───────────────────────────────────────────────────

func windowDTO(w period.Window) dto.WindowDTO {
	return dto.WindowDTO{Start: w.StartDate(), End: w.EndDate(), Days: w.Days()}
}

func totalsDTO(t metrics.SaleTotals) dto.SaleTotalsDTO {
	return dto.SaleTotalsDTO{
		Count:     t.Count,
		Revenue:   t.Revenue,
		GrossCash: t.GrossCash,
		NetCash:   t.NetCash,
		AvgTicket: t.AvgTicket(),
	}
}

func groupsDTO(groups []metrics.SaleGroup) []dto.SaleGroupDTO {
	out := make([]dto.SaleGroupDTO, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.SaleGroupDTO{Key: g.Key, SaleTotalsDTO: totalsDTO(g.SaleTotals)})
	}
	return out
}

func performersDTO(ps []metrics.Performer) []dto.PerformerDTO {
	out := make([]dto.PerformerDTO, 0, len(ps))
	for i, p := range ps {
		out = append(out, dto.PerformerDTO{
			Rank:           i + 1,
			Name:           p.Name,
			ConversionRate: p.ConversionRate,
			Volume:         p.Volume,
			VolumeNorm:     p.VolumeNorm,
			Score:          p.Score,
		})
	}
	return out
}

func setterTotalsDTO(t metrics.SetterTotals) dto.SetterTotalsDTO {
	return dto.SetterTotalsDTO{
		Reports:                    t.Reports,
		Conversations:              t.Conversations,
		FollowUps:                  t.FollowUps,
		Offers:                     t.Offers,
		Appointments:               t.Appointments,
		OfferRate:                  t.OfferRate(),
		AppointmentsFromOffersRate: t.AppointmentsFromOffersRate(),
		BookingRate:                t.BookingRate(),
	}
}

func setterRowsDTO(rows []metrics.SetterRow) []dto.SetterRowDTO {
	out := make([]dto.SetterRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SetterRowDTO{Key: r.Key, SetterTotalsDTO: setterTotalsDTO(r.SetterTotals)})
	}
	return out
}

func closerTotalsDTO(t metrics.CloserTotals) dto.CloserTotalsDTO {
	return dto.CloserTotalsDTO{
		Reports:   t.Reports,
		Scheduled: t.Scheduled,
		Calls:     t.Calls,
		Offers:    t.Offers,
		Deposits:  t.Deposits,
		Closes:    t.Closes,
		ShowRate:  t.ShowRate(),
		OfferRate: t.OfferRate(),
		CloseRate: t.CloseRate(),
	}
}

func closerRowsDTO(rows []metrics.CloserRow) []dto.CloserRowDTO {
	out := make([]dto.CloserRowDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CloserRowDTO{Key: r.Key, CloserTotalsDTO: closerTotalsDTO(r.CloserTotals)})
	}
	return out
}

func progressDTO(p metrics.TargetProgress) dto.TargetProgressDTO {
	return dto.TargetProgressDTO{
		ProjectionID: p.ProjectionID,
		MemberID:     p.MemberID,
		Name:         p.Name,
		Target:       p.Target,
		Actual:       p.Actual,
		Progress:     p.Progress,
		HasTarget:    p.HasTarget,
	}
}
