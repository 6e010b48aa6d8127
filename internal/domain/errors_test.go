package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_EsInvalidInput(t *testing.T) {
	err := fmt.Errorf("criar produto: %w", &ValidationError{Fields: map[string]string{
		"preco":   "número inválido",
		"estoque": "deve ser inteiro",
	}})

	assert.True(t, errors.Is(err, ErrInvalidInput))
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Fields, 2)
	assert.Contains(t, err.Error(), "estoque: deve ser inteiro; preco: número inválido")
}

func TestInsufficientStockError(t *testing.T) {
	err := &InsufficientStockError{Shortages: []Shortage{{ProdutoID: "p1", Nome: "Mesa", Disponivel: 2, Solicitado: 3}}}

	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Contains(t, err.Error(), "Mesa (disponível 2, solicitado 3)")
}

func TestNotFound(t *testing.T) {
	err := NotFound("cliente", "abc")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "cliente abc: recurso não encontrado", err.Error())
}
