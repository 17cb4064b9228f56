package period

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
)

// ── Semanas ISO ─────────────────────────────────────────────────────────────

// ParseISOWeek interpreta "YYYY-Www". La semana debe existir en ese año.
func ParseISOWeek(key string) (year, week int, ok bool) {
	ys, ws, found := strings.Cut(key, "-W")
	if !found || len(ys) != 4 || len(ws) != 2 {
		return 0, 0, false
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return 0, 0, false
	}
	w, err := strconv.Atoi(ws)
	if err != nil || w < 1 || w > WeeksInYear(y) {
		return 0, 0, false
	}
	return y, w, true
}

// WeekRange lunes a domingo de la semana ISO "YYYY-Www".
// La semana 1 es la que contiene el 4 de enero.
func WeekRange(key string) (Window, bool) {
	y, w, ok := ParseISOWeek(key)
	if !ok {
		return Window{}, false
	}
	start := mondayOf(Day(y, time.January, 4)).AddDate(0, 0, (w-1)*7)
	return Window{start, start.AddDate(0, 0, 6)}, true
}

// WeeksInYear 52 o 53 según el año ISO.
func WeeksInYear(year int) int {
	_, w := Day(year, time.December, 28).ISOWeek()
	return w
}

// ISOWeekKey clave "YYYY-Www" del día t.
func ISOWeekKey(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}

// MonthKey clave "YYYY-MM" del día t.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// ── Periodos de proyección ──────────────────────────────────────────────────

// CurrentKey clave del periodo que contiene ref.
func CurrentKey(pt entity.PeriodType, ref time.Time) string {
	if pt == entity.PeriodWeekly {
		return ISOWeekKey(Normalize(ref))
	}
	return MonthKey(ref)
}

// ForPeriod ventana completa (sin recortar) de un periodo de proyección.
func ForPeriod(key string, pt entity.PeriodType) (Window, bool) {
	switch pt {
	case entity.PeriodWeekly:
		return WeekRange(key)
	case entity.PeriodMonthly:
		return monthWindow(key)
	}
	return Window{}, false
}

// Label etiqueta corta para gráficas: "YYYY-MM" para meses, "Sww" para semanas.
func Label(key string, pt entity.PeriodType) string {
	if pt == entity.PeriodWeekly {
		if _, w, ok := ParseISOWeek(key); ok {
			return fmt.Sprintf("S%d", w)
		}
	}
	return key
}

// Back devuelve count claves terminando en current, de la más antigua a la más reciente.
// Cruza de enero a diciembre y de la semana 1 a la última semana ISO del año anterior.
func Back(current string, pt entity.PeriodType, count int) []string {
	if count <= 0 {
		return nil
	}
	out := make([]string, count)
	switch pt {
	case entity.PeriodWeekly:
		y, w, ok := ParseISOWeek(current)
		if !ok {
			return nil
		}
		for i := count - 1; i >= 0; i-- {
			out[i] = fmt.Sprintf("%04d-W%02d", y, w)
			w--
			if w < 1 {
				y--
				w = WeeksInYear(y)
			}
		}
	default:
		y, m, ok := parseMonthKey(current)
		if !ok {
			return nil
		}
		for i := count - 1; i >= 0; i-- {
			out[i] = fmt.Sprintf("%04d-%02d", y, int(m))
			m--
			if m < time.January {
				y--
				m = time.December
			}
		}
	}
	return out
}
