// Package period resuelve presets de fechas en ventanas concretas [inicio, fin]
// y calcula la ventana anterior para comparar periodos.
//
// Todas las fechas se manejan como días de calendario anclados a mediodía UTC,
// de modo que ni los husos horarios ni los cambios de hora desplacen un día.
package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// Presets reconocidos.
const (
	PresetToday     = "today"
	PresetYesterday = "yesterday"
	PresetLast7     = "last7"
	PresetThisWeek  = "thisWeek"
	PresetThisMonth = "thisMonth"
	PresetThisYear  = "thisYear"
	PresetAll       = "all"

	monthPrefix  = "month:"
	customPrefix = "custom:"
)

// Epoch inicio del preset "all".
var Epoch = Day(2020, time.January, 1)

// Window rango inclusivo de días.
type Window struct {
	Start time.Time
	End   time.Time
}

// Day construye un día de calendario a mediodía UTC.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// Normalize lleva un instante cualquiera a su día de calendario (mediodía UTC).
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return Day(y, m, d)
}

// ParseDate interpreta los 10 primeros caracteres como YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(entity.DateLayout, entity.DateOnly(strings.TrimSpace(s)))
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha %q inválida: %w", s, err)
	}
	return Normalize(t), nil
}

// Contains indica si la fecha (solo la parte YYYY-MM-DD) cae dentro de la ventana.
// Fechas ilegibles nunca están contenidas.
func (w Window) Contains(date string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days número de días de la ventana, inclusivo.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// StartDate devuelve el inicio como YYYY-MM-DD.
func (w Window) StartDate() string { return w.Start.Format(entity.DateLayout) }

// EndDate devuelve el fin como YYYY-MM-DD.
func (w Window) EndDate() string { return w.End.Format(entity.DateLayout) }

// Dates itera los días de la ventana en orden.
func (w Window) Dates() []string {
	out := make([]string, 0, w.Days())
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(entity.DateLayout))
	}
	return out
}

// Resolve convierte un preset en una ventana relativa a ref.
// Presets no reconocidos devuelven la ventana "all".
func Resolve(preset string, ref time.Time) Window {
	today := Normalize(ref)
	y, m, _ := today.Date()

	switch preset {
	case PresetToday:
		return Window{today, today}
	case PresetYesterday:
		d := today.AddDate(0, 0, -1)
		return Window{d, d}
	case PresetLast7:
		return Window{today.AddDate(0, 0, -6), today}
	case PresetThisWeek:
		return Window{mondayOf(today), today}
	case PresetThisMonth:
		return Window{Day(y, m, 1), today}
	case PresetThisYear:
		return Window{Day(y, time.January, 1), today}
	case PresetAll, "":
		return Window{Epoch, today}
	}

	if strings.HasPrefix(preset, monthPrefix) {
		if w, ok := monthWindow(strings.TrimPrefix(preset, monthPrefix)); ok {
			if !today.Before(w.Start) && today.Before(w.End) {
				w.End = today
			}
			return w
		}
	}
	if strings.HasPrefix(preset, customPrefix) {
		if w, ok := customWindow(strings.TrimPrefix(preset, customPrefix)); ok {
			return w
		}
	}
	if w, ok := WeekRange(preset); ok {
		return w
	}
	return Window{Epoch, today}
}

// Previous ventana de comparación del preset.
// month: y semanas ISO devuelven el mes/semana de calendario anterior completo;
// el resto, una ventana de igual duración que termina el día antes del inicio.
func Previous(preset string, ref time.Time) Window {
	if strings.HasPrefix(preset, monthPrefix) {
		if w, ok := monthWindow(strings.TrimPrefix(preset, monthPrefix)); ok {
			prevStart := w.Start.AddDate(0, -1, 0)
			return Window{prevStart, w.Start.AddDate(0, 0, -1)}
		}
	}
	if w, ok := WeekRange(preset); ok {
		return Window{w.Start.AddDate(0, 0, -7), w.Start.AddDate(0, 0, -1)}
	}

	cur := Resolve(preset, ref)
	span := cur.Days() - 1
	prevEnd := cur.Start.AddDate(0, 0, -1)
	return Window{prevEnd.AddDate(0, 0, -span), prevEnd}
}

// IsCurrentMonth indica si el preset es el mes en curso (para calcular ritmo).
func IsCurrentMonth(preset string, ref time.Time) bool {
	if preset == PresetThisMonth {
		return true
	}
	return preset == monthPrefix+MonthKey(ref)
}

// MonthPreset construye el preset month:YYYY-MM.
func MonthPreset(key string) string { return monthPrefix + key }

// CustomPreset construye el preset custom:START:END.
func CustomPreset(start, end string) string { return customPrefix + start + ":" + end }

// DaysInMonth número de días del mes de t.
func DaysInMonth(t time.Time) int {
	y, m, _ := t.Date()
	return Day(y, m+1, 0).Day()
}

func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func monthWindow(key string) (Window, bool) {
	y, m, ok := parseMonthKey(key)
	if !ok {
		return Window{}, false
	}
	start := Day(y, m, 1)
	return Window{start, Day(y, m+1, 0)}, true
}

func customWindow(spec string) (Window, bool) {
	a, b, found := strings.Cut(spec, ":")
	if !found {
		return Window{}, false
	}
	start, err := ParseDate(a)
	if err != nil {
		return Window{}, false
	}
	end, err := ParseDate(b)
	if err != nil {
		return Window{}, false
	}
	if end.Before(start) {
		start, end = end, start
	}
	return Window{start, end}, true
}

func parseMonthKey(key string) (int, time.Month, bool) {
	ys, ms, found := strings.Cut(key, "-")
	if !found || len(ys) != 4 || len(ms) != 2 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(ms)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	return y, time.Month(m), true
}
