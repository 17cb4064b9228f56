package metrics

import (
	"math"
	"sort"
)

const (
	conversionWeight = 0.6
	volumeWeight     = 0.4
)

// Candidate entrada del scorer: conversión = Converted/Base, volumen = Volume.
type Candidate struct {
	Name      string
	Converted int
	Base      int
	Volume    int
}

// Performer posición calculada en un leaderboard.
type Performer struct {
	Name           string
	ConversionRate int // porcentaje redondeado para mostrar
	Volume         int
	VolumeNorm     int
	Score          int
}

// Score puntúa con round(conversión × 0.6 + volumen normalizado × 0.4).
// El volumen se normaliza contra el máximo (mínimo 1). Orden: score desc,
// luego volumen desc, luego orden de entrada.
func Score(candidates []Candidate) []Performer {
	if len(candidates) == 0 {
		return []Performer{}
	}
	maxVol := 1
	for _, c := range candidates {
		if c.Volume > maxVol {
			maxVol = c.Volume
		}
	}
	out := make([]Performer, 0, len(candidates))
	for _, c := range candidates {
		conv := 0.0
		if c.Base > 0 {
			conv = float64(c.Converted) / float64(c.Base) * 100
		}
		volNorm := float64(c.Volume) / float64(maxVol) * 100
		out = append(out, Performer{
			Name:           c.Name,
			ConversionRate: int(math.Round(conv)),
			Volume:         c.Volume,
			VolumeNorm:     int(math.Round(volNorm)),
			Score:          int(math.Round(conv*conversionWeight + volNorm*volumeWeight)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Volume > out[j].Volume
	})
	return out
}

// CloserLeaderboard conversión = cierres/llamadas, volumen = llamadas hechas.
func CloserLeaderboard(rows []CloserRow) []Performer {
	cands := make([]Candidate, 0, len(rows))
	for _, r := range rows {
		cands = append(cands, Candidate{Name: r.Key, Converted: r.Closes, Base: r.Calls, Volume: r.Calls})
	}
	return Score(cands)
}

// SetterLeaderboard conversión = agendas/conversaciones, volumen = conversaciones.
func SetterLeaderboard(rows []SetterRow) []Performer {
	cands := make([]Candidate, 0, len(rows))
	for _, r := range rows {
		cands = append(cands, Candidate{Name: r.Key, Converted: r.Appointments, Base: r.Conversations, Volume: r.Conversations})
	}
	return Score(cands)
}

// RankByCash ranking de closers por cash neto descendente (dashboard de ventas).
func RankByCash(sales []NetSale) []SaleGroup {
	return SortByNetCash(WithoutEmptyKey(GroupSales(sales, ByCloser)))
}
