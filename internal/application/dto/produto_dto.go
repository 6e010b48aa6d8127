package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProdutoRequest entrada para crear un producto. Estoque debe ser entero >= 0.
type CreateProdutoRequest struct {
	Nome       string `json:"nome"`
	Categoria  string `json:"categoria"`
	Preco      Number `json:"preco"`
	Estoque    Number `json:"estoque"`
	Fornecedor string `json:"fornecedor"`
}

// UpdateProdutoRequest actualización parcial de un producto.
type UpdateProdutoRequest struct {
	Nome       *string `json:"nome"`
	Categoria  *string `json:"categoria"`
	Preco      Number  `json:"preco"`
	Estoque    Number  `json:"estoque"`
	Fornecedor *string `json:"fornecedor"`
}

// ProdutoResponse salida de un producto.
type ProdutoResponse struct {
	ID         string          `json:"id"`
	Nome       string          `json:"nome"`
	Categoria  string          `json:"categoria"`
	Preco      decimal.Decimal `json:"preco"`
	Estoque    int             `json:"estoque"`
	Fornecedor string          `json:"fornecedor"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ProdutoRefResponse producto embebido en un ítem de venta.
type ProdutoRefResponse struct {
	ID    string          `json:"id"`
	Nome  string          `json:"nome"`
	Preco decimal.Decimal `json:"preco"`
}
