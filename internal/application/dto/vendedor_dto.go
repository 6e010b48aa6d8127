package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVendedorRequest entrada para crear un vendedor.
type CreateVendedorRequest struct {
	Nome       string `json:"nome"`
	Email      string `json:"email"`
	Telefone   string `json:"telefone"`
	Comissao   Number `json:"comissao"`
	MetaMensal Number `json:"metaMensal"`
	Status     string `json:"status"`
}

// UpdateVendedorRequest actualización parcial de un vendedor.
type UpdateVendedorRequest struct {
	Nome       *string `json:"nome"`
	Email      *string `json:"email"`
	Telefone   *string `json:"telefone"`
	Comissao   Number  `json:"comissao"`
	MetaMensal Number  `json:"metaMensal"`
	Status     *string `json:"status"`
}

// VendedorResponse salida de un vendedor. Vendas solo se llena en GET por id.
type VendedorResponse struct {
	ID         string                `json:"id"`
	Nome       string                `json:"nome"`
	Email      string                `json:"email"`
	Telefone   string                `json:"telefone,omitempty"`
	Comissao   decimal.Decimal       `json:"comissao"`
	MetaMensal decimal.Decimal       `json:"metaMensal"`
	Status     string                `json:"status"`
	Vendas     []VendaResumoResponse `json:"vendas,omitempty"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}
