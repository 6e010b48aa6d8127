package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/gestao-api/internal/application/orcamento"
	"github.com/jhoicas/gestao-api/internal/application/venda"
)

// Ensure TxRunner implements venda.TxRunner and orcamento.TxRunner.
var (
	_ venda.TxRunner     = (*TxRunner)(nil)
	_ orcamento.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunVenda inicia una transacción con los repos de ventas (crear y borrar con estoque).
func (r *TxRunner) RunVenda(ctx context.Context, fn func(r venda.Repos) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(venda.Repos{
			Clientes:   NewClienteRepository(tx),
			Vendedores: NewVendedorRepository(tx),
			Produtos:   NewProdutoRepository(tx),
			Vendas:     NewVendaRepository(tx),
		})
	})
}

// RunOrcamento inicia una transacción con los repos de presupuestos.
func (r *TxRunner) RunOrcamento(ctx context.Context, fn func(r orcamento.Repos) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(orcamento.Repos{
			Clientes:   NewClienteRepository(tx),
			Materiais:  NewMaterialRepository(tx),
			Orcamentos: NewOrcamentoRepository(tx),
		})
	})
}

// run hace Commit si fn devuelve nil; en cualquier otro caso Rollback.
func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return writeError("commit transaction", err)
	}
	return nil
}
