package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto artículo vendible con estoque entero. Estoque nunca queda negativo.
type Produto struct {
	ID         string
	Nome       string
	Categoria  string
	Preco      decimal.Decimal
	Estoque    int
	Fornecedor string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProdutoRef datos del producto embebidos en VendaItem.
type ProdutoRef struct {
	ID    string
	Nome  string
	Preco decimal.Decimal
}
