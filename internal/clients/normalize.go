package clients

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a catalog label into a comparable key: accents
// stripped, lowercased, surrounding space trimmed, inner spaces turned
// into underscores. "Cuerpo Completo" and "cuerpo_completo" compare equal.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	folded = strings.TrimSpace(strings.ToLower(folded))
	return strings.ReplaceAll(folded, " ", "_")
}
