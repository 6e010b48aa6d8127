package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-api/internal/domain/entity"
)

func TestFormatBRL(t *testing.T) {
	cases := map[string]string{
		"0":         "R$ 0,00",
		"12.5":      "R$ 12,50",
		"1234.56":   "R$ 1.234,56",
		"1234567.5": "R$ 1.234.567,50",
		"-99.999":   "-R$ 100,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatBRL(decimal.RequireFromString(in)), in)
	}
}

func TestFormatQty(t *testing.T) {
	assert.Equal(t, "2,5", formatQty(decimal.RequireFromString("2.500")))
	assert.Equal(t, "3", formatQty(decimal.NewFromInt(3)))
}

func TestGenerateOrcamento(t *testing.T) {
	o := &entity.Orcamento{
		Numero:      "ORC-001",
		Data:        time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:      entity.OrcamentoAprovado,
		Observacoes: "Entrega em 30 dias",
		Cliente:     &entity.Contato{Nome: "João", Telefone: "11 99999-0000"},
		ValorTotal:  decimal.RequireFromString("3300.97"),
		Itens: []entity.OrcamentoItem{{
			Descricao:     "Armário",
			Quantidade:    decimal.NewFromInt(2),
			ValorUnitario: decimal.RequireFromString("1500.50"),
			Materiais: []entity.OrcamentoMaterial{{
				MaterialID: "m1",
				Quantidade: decimal.NewFromInt(4),
				Material:   &entity.MaterialRef{Name: "MDF Branco 15mm", Unit: "un"},
			}},
		}},
	}

	b, err := NewMarotoPDFGenerator("Marcenaria Exemplo").GenerateOrcamento(o)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")), "cabeçalho PDF")
}
