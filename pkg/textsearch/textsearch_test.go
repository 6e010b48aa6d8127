package textsearch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContains(t *testing.T) {
	cases := []struct {
		haystack, needle string
		want             bool
	}{
		{"Açúcar Mascavo", "acucar", true},
		{"MDF Branco 15mm", "branco", true},
		{"Dobradiça Caneco", "DOBRADICA", true},
		{"Verniz", "tinta", false},
		{"Qualquer", "", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Contains(tc.haystack, tc.needle), "%q em %q", tc.needle, tc.haystack)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "joao", Normalize("  João "))
}

func TestSortByName(t *testing.T) {
	type item struct{ id, nome string }
	list := []item{{"3", "Zinco"}, {"2", "banco"}, {"9", "Ábaco"}, {"1", "Abaco"}}
	SortByName(list, func(i item) string { return i.nome }, func(i item) string { return i.id })

	ids := make([]string, 0, len(list))
	for _, i := range list {
		ids = append(ids, i.id)
	}
	assert.Equal(t, []string{"1", "9", "2", "3"}, ids)
}
