package validation

import (
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/domain"
)

func TestDecimal(t *testing.T) {
	v := New()
	assert.Equal(t, "10.5", v.Decimal("a", dto.NumberOf("10.50"), Money).String())
	assert.Equal(t, "0", v.Decimal("b", dto.NumberOf("abc"), Money).String())
	v.Decimal("c", dto.NumberOf("NaN"), Money)
	v.Decimal("d", dto.NumberOf("-1"), Money)
	v.Decimal("e", dto.NumberOf("1.999"), Money)
	v.Decimal("f", dto.NumberOf("0"), Quantity)
	v.Decimal("g", dto.NumberOf("101"), Percent)
	v.Decimal("h", dto.Number{}, Money)
	v.Decimal("i", dto.Number{}, Money.Optional())
	v.Decimal("j", dto.NumberOf("1e15"), Money)

	err := v.Err()
	require.Error(t, err)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, map[string]string{
		"b": "número inválido",
		"c": "número inválido",
		"d": "não pode ser negativo",
		"e": "máximo de 2 casas decimais",
		"f": "deve ser maior que zero",
		"g": "deve ser no máximo 100",
		"h": "campo obrigatório",
		"j": "valor fora do intervalo permitido",
	}, ve.Fields)
}

func TestInt(t *testing.T) {
	v := New()
	assert.Equal(t, 3, v.Int("a", dto.NumberOf("3"), true, 1))
	assert.Equal(t, 3, v.Int("b", dto.NumberOf("3.0"), true, 1))
	v.Int("c", dto.NumberOf("3.5"), true, 1)
	v.Int("d", dto.NumberOf("0"), true, 1)
	v.Int("e", dto.NumberOf("dez"), true, 0)

	var ve *domain.ValidationError
	require.True(t, errors.As(v.Err(), &ve))
	assert.Equal(t, []string{"c", "d", "e"}, keys(ve.Fields))
}

func TestInt_ForaDoIntervalo(t *testing.T) {
	v := New()
	assert.Equal(t, 0, v.Int("negativo", dto.NumberOf("-18446744073709551615"), true, 1))
	assert.Equal(t, 0, v.Int("enorme", dto.NumberOf("18446744073709551617"), true, 1))
	assert.Equal(t, 0, v.Int("menor", dto.NumberOf("-1"), false, 0))

	var ve *domain.ValidationError
	require.True(t, errors.As(v.Err(), &ve))
	assert.Equal(t, "deve ser no mínimo 1", ve.Fields["negativo"])
	assert.Equal(t, "valor fora do intervalo permitido", ve.Fields["enorme"])
	assert.Equal(t, "deve ser no mínimo 0", ve.Fields["menor"])
}

func TestNumeros_ExpoenteLimitado(t *testing.T) {
	v := New()
	inicio := time.Now()
	v.Decimal("a", dto.NumberOf("1e10000000"), Money)
	v.Decimal("b", dto.NumberOf("1e-100000"), Money)
	v.Int("c", dto.NumberOf("1e10000000"), true, 0)
	v.Int("d", dto.NumberOf("-1e10000000"), true, 0)
	v.Decimal("e", dto.NumberOf("1"+strings.Repeat("0", 40)), Money)
	assert.Less(t, time.Since(inicio), 100*time.Millisecond)

	var ve *domain.ValidationError
	require.True(t, errors.As(v.Err(), &ve))
	for _, f := range []string{"a", "b", "c", "d", "e"} {
		assert.Equal(t, "valor fora do intervalo permitido", ve.Fields[f], f)
	}

	v = New()
	assert.Equal(t, "0.5", v.Decimal("ok", dto.NumberOf("5e-1"), Money).String())
	assert.Equal(t, 2000, v.Int("ok2", dto.NumberOf("2e3"), true, 0))
	assert.NoError(t, v.Err())
}

func TestTextos(t *testing.T) {
	v := New()
	assert.Equal(t, "Ana", v.Required("nome", "  Ana "))
	v.Required("telefone", " ")
	v.Email("email", "nao-e-email")
	assert.Equal(t, "Chapa", v.OneOf("type", "chapa", []string{"Chapa", "Ferragem"}))
	v.OneOf("status", "Perdido", []string{"Ativo", "Inativo"})
	v.ID("clienteId", "123")

	var ve *domain.ValidationError
	require.True(t, errors.As(v.Err(), &ve))
	assert.Equal(t, []string{"clienteId", "email", "status", "telefone"}, keys(ve.Fields))
}

func TestDate(t *testing.T) {
	v := New()
	def := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, def, v.Date("data", "", def))
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), v.Date("data", "2026-10-15", def))
	assert.NoError(t, v.Err())

	v.Date("data", "15/10/2026", def)
	assert.Error(t, v.Err())
}

func TestErr_SinErrores(t *testing.T) {
	assert.NoError(t, New().Err())
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
