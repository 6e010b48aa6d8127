package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de vendedor.
const (
	VendedorAtivo   = "Ativo"
	VendedorInativo = "Inativo"
)

// Vendedor miembro del equipo de ventas. Comissao en porcentaje (0-100).
type Vendedor struct {
	ID         string
	Nome       string
	Email      string
	Telefone   string
	Comissao   decimal.Decimal
	MetaMensal decimal.Decimal
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Contato devuelve la vista reducida del vendedor.
func (v *Vendedor) Contato() *Contato {
	return &Contato{ID: v.ID, Nome: v.Nome, Email: v.Email, Telefone: v.Telefone}
}
