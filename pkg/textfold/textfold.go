// Package textfold normalise les chaînes pour la recherche catalogue :
// minuscules et suppression des diacritiques (noms de produits français).
package textfold

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold retourne la forme de recherche de s : NFD, marques combinantes
// retirées, NFC, minuscules. "Protéine Whey" → "proteine whey".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return strings.ToLower(strings.TrimSpace(out))
}
