package entity

import "time"

// Cliente representa un cliente del taller (persona física con CPF o jurídica con CNPJ).
type Cliente struct {
	ID        string
	Nome      string
	Email     string // opcional
	Telefone  string
	CPF       string // solo dígitos
	CNPJ      string // solo dígitos
	Endereco  string
	Cidade    string
	Estado    string // UF
	CEP       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contato datos mínimos de cliente o vendedor embebidos en ventas y presupuestos.
type Contato struct {
	ID       string
	Nome     string
	Email    string
	Telefone string
}

// Contato devuelve la vista reducida del cliente.
func (c *Cliente) Contato() *Contato {
	return &Contato{ID: c.ID, Nome: c.Nome, Email: c.Email, Telefone: c.Telefone}
}
