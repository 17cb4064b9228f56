package metrics

import (
	"sort"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/period"
)

// FilterReports reportes dentro de la ventana, opcionalmente de una persona.
func FilterReports(reports []*entity.ActivityReport, w period.Window, name string) []*entity.ActivityReport {
	out := make([]*entity.ActivityReport, 0, len(reports))
	for _, r := range reports {
		if !w.Contains(r.Date) {
			continue
		}
		if name != "" && r.Name != name {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ── Setters ─────────────────────────────────────────────────────────────────

// SetterTotals sumas del embudo de setters.
type SetterTotals struct {
	Reports       int
	Conversations int
	FollowUps     int
	Offers        int
	Appointments  int
}

// OfferRate ofertas / conversaciones.
func (t SetterTotals) OfferRate() int { return Rate(t.Offers, t.Conversations) }

// AppointmentsFromOffersRate agendas / ofertas.
func (t SetterTotals) AppointmentsFromOffersRate() int { return Rate(t.Appointments, t.Offers) }

// BookingRate agendas / conversaciones.
func (t SetterTotals) BookingRate() int { return Rate(t.Appointments, t.Conversations) }

func (t SetterTotals) add(a *entity.SetterActivity) SetterTotals {
	t.Reports++
	t.Conversations += a.ConversationsOpened
	t.FollowUps += a.FollowUps
	t.Offers += a.OffersLaunched
	t.Appointments += a.AppointmentsBooked
	return t
}

// SumSetter totaliza solo los reportes con forma de setter.
func SumSetter(reports []*entity.ActivityReport) SetterTotals {
	var t SetterTotals
	for _, r := range reports {
		if r.Role == entity.ReportRoleSetter && r.Setter != nil {
			t = t.add(r.Setter)
		}
	}
	return t
}

// SetterRow totales de setter bajo una clave (fecha o persona).
type SetterRow struct {
	Key string
	SetterTotals
}

// SetterDaily serie diaria ascendente.
func SetterDaily(reports []*entity.ActivityReport) []SetterRow {
	rows := setterRows(reports, func(r *entity.ActivityReport) string { return entity.DateOnly(r.Date) })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// SetterByPerson filas por persona en orden de primera aparición.
func SetterByPerson(reports []*entity.ActivityReport) []SetterRow {
	return setterRows(reports, func(r *entity.ActivityReport) string { return r.Name })
}

func setterRows(reports []*entity.ActivityReport, key func(*entity.ActivityReport) string) []SetterRow {
	only := onlyRole(reports, entity.ReportRoleSetter)
	keys, groups := GroupBy(only, key)
	out := make([]SetterRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, SetterRow{Key: k, SetterTotals: SumSetter(groups[k])})
	}
	return out
}

// ── Closers ─────────────────────────────────────────────────────────────────

// CloserTotals sumas del embudo de closers.
type CloserTotals struct {
	Reports   int
	Scheduled int
	Calls     int
	Offers    int
	Deposits  int
	Closes    int
}

// ShowRate llamadas hechas / agendadas.
func (t CloserTotals) ShowRate() int { return Rate(t.Calls, t.Scheduled) }

// OfferRate ofertas / llamadas hechas.
func (t CloserTotals) OfferRate() int { return Rate(t.Offers, t.Calls) }

// CloseRate cierres / llamadas hechas.
func (t CloserTotals) CloseRate() int { return Rate(t.Closes, t.Calls) }

func (t CloserTotals) add(a *entity.CloserActivity) CloserTotals {
	t.Reports++
	t.Scheduled += a.ScheduledCalls
	t.Calls += a.CallsMade
	t.Offers += a.OffersLaunched
	t.Deposits += a.Deposits
	t.Closes += a.Closes
	return t
}

// SumCloser totaliza solo los reportes con forma de closer.
func SumCloser(reports []*entity.ActivityReport) CloserTotals {
	var t CloserTotals
	for _, r := range reports {
		if r.Role == entity.ReportRoleCloser && r.Closer != nil {
			t = t.add(r.Closer)
		}
	}
	return t
}

// CloserRow totales de closer bajo una clave (fecha o persona).
type CloserRow struct {
	Key string
	CloserTotals
}

// CloserDaily serie diaria ascendente.
func CloserDaily(reports []*entity.ActivityReport) []CloserRow {
	rows := closerRows(reports, func(r *entity.ActivityReport) string { return entity.DateOnly(r.Date) })
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// CloserByPerson filas por persona en orden de primera aparición.
func CloserByPerson(reports []*entity.ActivityReport) []CloserRow {
	return closerRows(reports, func(r *entity.ActivityReport) string { return r.Name })
}

func closerRows(reports []*entity.ActivityReport, key func(*entity.ActivityReport) string) []CloserRow {
	only := onlyRole(reports, entity.ReportRoleCloser)
	keys, groups := GroupBy(only, key)
	out := make([]CloserRow, 0, len(keys))
	for _, k := range keys {
		out = append(out, CloserRow{Key: k, CloserTotals: SumCloser(groups[k])})
	}
	return out
}

func onlyRole(reports []*entity.ActivityReport, role entity.ReportRole) []*entity.ActivityReport {
	out := make([]*entity.ActivityReport, 0, len(reports))
	for _, r := range reports {
		if r.Role == role {
			out = append(out, r)
		}
	}
	return out
}

// ── Visibilidad de secciones ────────────────────────────────────────────────

// Sections qué bloques del dashboard de reportes se muestran según los filtros de persona.
type Sections struct {
	ShowSetters      bool
	ShowClosers      bool
	ShowLeaderboards bool
}

// SectionsFor filtrar por un closer oculta setters y viceversa; sin filtros se ven leaderboards.
func SectionsFor(setterFilter, closerFilter string) Sections {
	return Sections{
		ShowSetters:      closerFilter == "" || setterFilter != "",
		ShowClosers:      setterFilter == "" || closerFilter != "",
		ShowLeaderboards: setterFilter == "" && closerFilter == "",
	}
}
