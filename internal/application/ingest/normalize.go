package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize minúsculas, sin acentos y solo letras/dígitos: "Método de pago" -> "metododepago".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	var b strings.Builder
	for _, r := range strings.ToLower(plain) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// AutoMap asigna cada cabecera a un campo. Primero coincidencias exactas (etiqueta,
// clave o alias), luego por inclusión en cualquier sentido. Un campo se asigna una vez.
func AutoMap(headers []string, fields []Field) (mapping map[string]string, unmapped []string) {
	mapping = make(map[string]string, len(headers))
	used := map[string]bool{}
	norms := make([]string, len(headers))
	for i, h := range headers {
		norms[i] = Normalize(h)
	}

	match := func(exact bool) {
		for i, h := range headers {
			hn := norms[i]
			if hn == "" || mapping[h] != "" {
				continue
			}
			for _, f := range fields {
				if used[f.Key] {
					continue
				}
				if matches(hn, f, exact) {
					mapping[h] = f.Key
					used[f.Key] = true
					break
				}
			}
		}
	}
	match(true)
	match(false)

	for _, h := range headers {
		if mapping[h] == "" {
			delete(mapping, h)
			unmapped = append(unmapped, h)
		}
	}
	return mapping, unmapped
}

func matches(h string, f Field, exact bool) bool {
	candidates := append([]string{f.Label, f.Key}, f.Aliases...)
	for _, c := range candidates {
		cn := Normalize(c)
		if cn == "" {
			continue
		}
		if h == cn {
			return true
		}
		if !exact && (strings.Contains(h, cn) || strings.Contains(cn, h)) {
			return true
		}
	}
	return false
}
