// Package textsearch compara textos ignorando mayúsculas y acentos ("acucar" encuentra "Açúcar").
package textsearch

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize quita marcas diacríticas y pliega mayúsculas. Los transformers no se comparten entre goroutines.
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return cases.Fold().String(strings.TrimSpace(out))
}

// Contains indica si needle aparece en haystack. needle vacío siempre coincide.
func Contains(haystack, needle string) bool {
	n := Normalize(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Normalize(haystack), n)
}

// SortByName ordena por nombre normalizado y, a igual nombre, por id. Es el único criterio de
// orden alfabético: "Ábaco" queda antes de "Banco" en cualquier backend.
func SortByName[T any](list []T, name, id func(T) string) {
	keys := make(map[string]string, len(list))
	for _, v := range list {
		keys[id(v)] = Normalize(name(v))
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := keys[id(list[i])], keys[id(list[j])]
		if a != b {
			return a < b
		}
		return id(list[i]) < id(list[j])
	})
}
