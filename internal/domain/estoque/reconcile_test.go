package estoque

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
)

func TestDemanda_AgregaLineasRepetidas(t *testing.T) {
	d := Demanda([]entity.VendaItem{
		{ProdutoID: "b", Quantidade: 2},
		{ProdutoID: "a", Quantidade: 1},
		{ProdutoID: "b", Quantidade: 3},
	})
	assert.Equal(t, map[string]int{"a": 1, "b": 5}, d)
	assert.Equal(t, []string{"a", "b"}, OrdenBloqueo(d))
}

func TestVerificar_ReportaTodosLosFaltantes(t *testing.T) {
	produtos := map[string]*entity.Produto{
		"a": {ID: "a", Nome: "Mesa", Estoque: 1},
		"b": {ID: "b", Nome: "Cadeira", Estoque: 10},
		"c": {ID: "c", Nome: "Armário", Estoque: 0},
	}
	err := Verificar(produtos, map[string]int{"a": 2, "b": 10, "c": 1})
	require.Error(t, err)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, []domain.Shortage{
		{ProdutoID: "a", Nome: "Mesa", Disponivel: 1, Solicitado: 2},
		{ProdutoID: "c", Nome: "Armário", Disponivel: 0, Solicitado: 1},
	}, ise.Shortages)
}

func TestVerificar_ExactoEnElLimite(t *testing.T) {
	produtos := map[string]*entity.Produto{"a": {ID: "a", Estoque: 5}}
	assert.NoError(t, Verificar(produtos, map[string]int{"a": 5}))
}

func TestVerificar_ProductoAusente(t *testing.T) {
	err := Verificar(map[string]*entity.Produto{}, map[string]int{"x": 1})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
