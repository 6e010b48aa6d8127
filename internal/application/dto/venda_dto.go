package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVendaRequest entrada para registrar una venta. El total lo calcula el servidor.
type CreateVendaRequest struct {
	ClienteID  string             `json:"clienteId"`
	VendedorID string             `json:"vendedorId"`
	Status     string             `json:"status"`
	Data       string             `json:"data"` // RFC3339 o AAAA-MM-DD; vacío = ahora
	Items      []VendaItemRequest `json:"items"`
}

// VendaItemRequest línea de la venta.
type VendaItemRequest struct {
	ProdutoID  string `json:"produtoId"`
	Quantidade Number `json:"quantidade"`
	PrecoUnit  Number `json:"precoUnit"`
}

// UpdateVendaRequest solo el status es modificable.
type UpdateVendaRequest struct {
	Status *string `json:"status"`
}

// VendaResponse salida de una venta con cliente, vendedor e ítems.
type VendaResponse struct {
	ID         string              `json:"id"`
	ClienteID  string              `json:"clienteId"`
	VendedorID string              `json:"vendedorId"`
	Total      decimal.Decimal     `json:"total"`
	Status     string              `json:"status"`
	Data       time.Time           `json:"data"`
	Cliente    *ContatoResponse    `json:"cliente,omitempty"`
	Vendedor   *ContatoResponse    `json:"vendedor,omitempty"`
	Items      []VendaItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// VendaItemResponse línea de la venta.
type VendaItemResponse struct {
	ID         string              `json:"id"`
	ProdutoID  string              `json:"produtoId"`
	Quantidade int                 `json:"quantidade"`
	PrecoUnit  decimal.Decimal     `json:"precoUnit"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Produto    *ProdutoRefResponse `json:"produto,omitempty"`
}

// VendaResumoResponse venta resumida dentro de un vendedor.
type VendaResumoResponse struct {
	ID     string          `json:"id"`
	Data   time.Time       `json:"data"`
	Total  decimal.Decimal `json:"total"`
	Status string          `json:"status"`
}
