// Package memory implementa los repositorios en memoria (DB_DRIVER=memory y tests).
// Las transacciones trabajan sobre una copia del estado que solo se publica en el commit.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/gestao-api/internal/application/orcamento"
	"github.com/jhoicas/gestao-api/internal/application/venda"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
)

var (
	_ venda.TxRunner     = (*Store)(nil)
	_ orcamento.TxRunner = (*Store)(nil)
)

type state struct {
	clientes   map[string]*entity.Cliente
	materiais  map[string]*entity.Material
	produtos   map[string]*entity.Produto
	vendedores map[string]*entity.Vendedor
	vendas     map[string]*entity.Venda
	orcamentos map[string]*entity.Orcamento
}

func newState() *state {
	return &state{
		clientes:   make(map[string]*entity.Cliente),
		materiais:  make(map[string]*entity.Material),
		produtos:   make(map[string]*entity.Produto),
		vendedores: make(map[string]*entity.Vendedor),
		vendas:     make(map[string]*entity.Venda),
		orcamentos: make(map[string]*entity.Orcamento),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.clientes {
		c.clientes[k] = copyCliente(v)
	}
	for k, v := range s.materiais {
		c.materiais[k] = copyMaterial(v)
	}
	for k, v := range s.produtos {
		c.produtos[k] = copyProduto(v)
	}
	for k, v := range s.vendedores {
		c.vendedores[k] = copyVendedor(v)
	}
	for k, v := range s.vendas {
		c.vendas[k] = copyVenda(v)
	}
	for k, v := range s.orcamentos {
		c.orcamentos[k] = copyOrcamento(v)
	}
	return c
}

// Store guarda todas las entidades detrás de un único mutex.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// db acceso al estado: tx != nil dentro de una transacción (el lock ya está tomado).
type db struct {
	s  *Store
	tx *state
}

func (d db) do(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.tx != nil {
		return fn(d.tx)
	}
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	return fn(d.s.st)
}

func (s *Store) db() db { return db{s: s} }

// Clientes repositorio fuera de transacción.
func (s *Store) Clientes() repository.ClienteRepository { return &clienteRepo{s.db()} }

// Materiais repositorio fuera de transacción.
func (s *Store) Materiais() repository.MaterialRepository { return &materialRepo{s.db()} }

// Produtos repositorio fuera de transacción.
func (s *Store) Produtos() repository.ProdutoRepository { return &produtoRepo{s.db()} }

// Vendedores repositorio fuera de transacción.
func (s *Store) Vendedores() repository.VendedorRepository { return &vendedorRepo{s.db()} }

// Vendas repositorio fuera de transacción.
func (s *Store) Vendas() repository.VendaRepository { return &vendaRepo{s.db()} }

// Orcamentos repositorio fuera de transacción.
func (s *Store) Orcamentos() repository.OrcamentoRepository { return &orcamentoRepo{s.db()} }

// RunVenda ejecuta fn con repos atados a la transacción.
func (s *Store) RunVenda(ctx context.Context, fn func(r venda.Repos) error) error {
	return s.run(ctx, func(d db) error {
		return fn(venda.Repos{
			Clientes:   &clienteRepo{d},
			Vendedores: &vendedorRepo{d},
			Produtos:   &produtoRepo{d},
			Vendas:     &vendaRepo{d},
		})
	})
}

// RunOrcamento ejecuta fn con repos atados a la transacción.
func (s *Store) RunOrcamento(ctx context.Context, fn func(r orcamento.Repos) error) error {
	return s.run(ctx, func(d db) error {
		return fn(orcamento.Repos{
			Clientes:   &clienteRepo{d},
			Materiais:  &materialRepo{d},
			Orcamentos: &orcamentoRepo{d},
		})
	})
}

// run serializa las transacciones: copia el estado, ejecuta fn y publica la copia solo si fn no falla.
func (s *Store) run(ctx context.Context, fn func(d db) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(db{s: s, tx: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

