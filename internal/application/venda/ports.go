package venda

import (
	"context"

	"github.com/jhoicas/gestao-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Clientes   repository.ClienteRepository
	Vendedores repository.VendedorRepository
	Produtos   repository.ProdutoRepository
	Vendas     repository.VendaRepository
}

// TxRunner ejecuta fn dentro de una transacción: commit si fn devuelve nil, rollback en otro caso.
type TxRunner interface {
	RunVenda(ctx context.Context, fn func(r Repos) error) error
}
