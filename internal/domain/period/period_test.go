package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/ventas-dashboard-api/internal/domain/period"
)

// ref miércoles 18 de febrero de 2026, con hora y zona arbitrarias.
var ref = time.Date(2026, time.February, 18, 23, 30, 0, 0, time.FixedZone("CET", 3600))

func assertWindow(t *testing.T, w period.Window, start, end string) {
	t.Helper()
	assert.Equal(t, start, w.StartDate(), "inicio")
	assert.Equal(t, end, w.EndDate(), "fin")
}

// ─── Resolve ─────────────────────────────────────────────────────────────────

func TestResolve_PresetsBasicos(t *testing.T) {
	cases := []struct {
		preset, start, end string
	}{
		{"today", "2026-02-18", "2026-02-18"},
		{"yesterday", "2026-02-17", "2026-02-17"},
		{"last7", "2026-02-12", "2026-02-18"},
		{"thisWeek", "2026-02-16", "2026-02-18"},
		{"thisMonth", "2026-02-01", "2026-02-18"},
		{"thisYear", "2026-01-01", "2026-02-18"},
		{"all", "2020-01-01", "2026-02-18"},
		{"month:2026-01", "2026-01-01", "2026-01-31"},
		{"month:2026-02", "2026-02-01", "2026-02-18"},
		{"month:2024-02", "2024-02-01", "2024-02-29"},
		{"custom:2026-01-05:2026-01-10", "2026-01-05", "2026-01-10"},
		{"custom:2026-01-10:2026-01-05", "2026-01-05", "2026-01-10"},
	}
	for _, tc := range cases {
		t.Run(tc.preset, func(t *testing.T) {
			assertWindow(t, period.Resolve(tc.preset, ref), tc.start, tc.end)
		})
	}
}

func TestResolve_MesEnCursoRecortadoAHoy(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, time.February, d, 9, 0, 0, 0, time.UTC) }

	assertWindow(t, period.Resolve("month:2026-02", day(15)), "2026-02-01", "2026-02-15")
	assertWindow(t, period.Resolve("month:2026-02", day(1)), "2026-02-01", "2026-02-01")
	assertWindow(t, period.Resolve("month:2026-02", day(28)), "2026-02-01", "2026-02-28")
	// meses pasados y futuros conservan su fin natural
	assertWindow(t, period.Resolve("month:2026-01", day(15)), "2026-01-01", "2026-01-31")
	assertWindow(t, period.Resolve("month:2026-03", day(15)), "2026-03-01", "2026-03-31")
	// mismo resultado que thisMonth
	assert.Equal(t, period.Resolve("thisMonth", day(15)), period.Resolve("month:2026-02", day(15)))
}

func TestResolve_PresetsDocumentadosNoCaenEnAll(t *testing.T) {
	all := period.Resolve("all", ref)
	for _, p := range []string{"today", "yesterday", "last7", "thisWeek", "thisMonth", "thisYear", "month:2026-01", "2026-W06", "custom:2026-01-05:2026-01-10"} {
		assert.NotEqual(t, all, period.Resolve(p, ref), p)
	}
	for _, p := range []string{"last30", "lastMonth"} {
		assert.Equal(t, all, period.Resolve(p, ref), "%s no es un preset", p)
	}
}

func TestResolve_SemanaISO2026W06(t *testing.T) {
	w := period.Resolve("2026-W06", ref)
	assertWindow(t, w, "2026-02-02", "2026-02-08")
	assert.Equal(t, time.Monday, w.Start.Weekday())
	assert.Equal(t, time.Sunday, w.End.Weekday())
}

func TestResolve_SemanaUnoEmpiezaEnAñoAnterior(t *testing.T) {
	assertWindow(t, period.Resolve("2026-W01", ref), "2025-12-29", "2026-01-04")
}

func TestResolve_PresetInvalidoDevuelveAll(t *testing.T) {
	for _, p := range []string{"mañana", "month:2026-13", "custom:x:y", "2026-W54", "2025-W53"} {
		assertWindow(t, period.Resolve(p, ref), "2020-01-01", "2026-02-18")
	}
}

func TestResolve_SiempreInicioAntesQueFin(t *testing.T) {
	for _, p := range []string{"today", "yesterday", "last7", "thisWeek", "thisMonth", "thisYear", "all", "month:2025-12", "2026-W06"} {
		w := period.Resolve(p, ref)
		assert.False(t, w.End.Before(w.Start), "preset %s", p)
		prev := period.Previous(p, ref)
		assert.True(t, prev.End.Before(w.Start), "la ventana anterior de %s debe terminar antes", p)
		assert.False(t, prev.End.Before(prev.Start), "ventana anterior de %s ordenada", p)
	}
}

// ─── Previous ────────────────────────────────────────────────────────────────

func TestPrevious_MesCompletoAnterior(t *testing.T) {
	assertWindow(t, period.Previous("month:2026-03", ref), "2026-02-01", "2026-02-28")
	assertWindow(t, period.Previous("month:2026-01", ref), "2025-12-01", "2025-12-31")
}

func TestPrevious_SemanaISOAnterior(t *testing.T) {
	assertWindow(t, period.Previous("2026-W01", ref), "2025-12-22", "2025-12-28")
}

func TestPrevious_MismaDuracion(t *testing.T) {
	assertWindow(t, period.Previous("today", ref), "2026-02-17", "2026-02-17")
	assertWindow(t, period.Previous("last7", ref), "2026-02-05", "2026-02-11")
	// thisMonth desplaza por duración, no toma el mes completo
	assertWindow(t, period.Previous("thisMonth", ref), "2026-01-14", "2026-01-31")
}

// ─── Contains ────────────────────────────────────────────────────────────────

func TestContains_IgnoraSufijoHorario(t *testing.T) {
	w := period.Resolve("month:2026-02", ref)
	assert.True(t, w.Contains("2026-02-01T00:00:00+05:00"))
	assert.True(t, w.Contains("2026-02-18"))
	assert.False(t, w.Contains("2026-01-31T23:59:59-05:00"))
	assert.False(t, w.Contains("no-es-fecha"))
}

// ─── Claves de periodo ───────────────────────────────────────────────────────

func TestBack_Meses(t *testing.T) {
	got := period.Back("2026-02", entity.PeriodMonthly, 4)
	assert.Equal(t, []string{"2025-11", "2025-12", "2026-01", "2026-02"}, got)
}

func TestBack_SemanasCruzanAñoDe53(t *testing.T) {
	// 2020 tiene 53 semanas ISO
	got := period.Back("2021-W02", entity.PeriodWeekly, 3)
	assert.Equal(t, []string{"2020-W53", "2021-W01", "2021-W02"}, got)

	got = period.Back("2026-W01", entity.PeriodWeekly, 2)
	assert.Equal(t, []string{"2025-W52", "2026-W01"}, got)
}

func TestWeeksInYear(t *testing.T) {
	assert.Equal(t, 53, period.WeeksInYear(2020))
	assert.Equal(t, 52, period.WeeksInYear(2025))
	assert.Equal(t, 53, period.WeeksInYear(2026))
}

func TestForPeriod_YEtiquetas(t *testing.T) {
	w, ok := period.ForPeriod("2026-02", entity.PeriodMonthly)
	require.True(t, ok)
	assertWindow(t, w, "2026-02-01", "2026-02-28")

	w, ok = period.ForPeriod("2026-W06", entity.PeriodWeekly)
	require.True(t, ok)
	assertWindow(t, w, "2026-02-02", "2026-02-08")

	assert.Equal(t, "S6", period.Label("2026-W06", entity.PeriodWeekly))
	assert.Equal(t, "2026-02", period.Label("2026-02", entity.PeriodMonthly))
	assert.Equal(t, "2026-W08", period.CurrentKey(entity.PeriodWeekly, ref))
}

func TestIsCurrentMonth(t *testing.T) {
	assert.True(t, period.IsCurrentMonth("thisMonth", ref))
	assert.True(t, period.IsCurrentMonth("month:2026-02", ref))
	assert.False(t, period.IsCurrentMonth("month:2026-01", ref))
	assert.Equal(t, 28, period.DaysInMonth(ref))
}
