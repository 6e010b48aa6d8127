package dto

import "time"

// CreateClienteRequest entrada para crear un cliente. Requiere CPF o CNPJ.
type CreateClienteRequest struct {
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone"`
	CPF      string `json:"cpf"`
	CNPJ     string `json:"cnpj"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	Estado   string `json:"estado"`
	CEP      string `json:"cep"`
}

// UpdateClienteRequest actualización parcial: campo ausente = se conserva.
type UpdateClienteRequest struct {
	Nome     *string `json:"nome"`
	Email    *string `json:"email"`
	Telefone *string `json:"telefone"`
	CPF      *string `json:"cpf"`
	CNPJ     *string `json:"cnpj"`
	Endereco *string `json:"endereco"`
	Cidade   *string `json:"cidade"`
	Estado   *string `json:"estado"`
	CEP      *string `json:"cep"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email,omitempty"`
	Telefone  string    `json:"telefone"`
	CPF       string    `json:"cpf,omitempty"`
	CNPJ      string    `json:"cnpj,omitempty"`
	Endereco  string    `json:"endereco,omitempty"`
	Cidade    string    `json:"cidade,omitempty"`
	Estado    string    `json:"estado,omitempty"`
	CEP       string    `json:"cep,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
