package memory

import (
	"context"

	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

type clienteRepo struct{ db db }

func (r *clienteRepo) Create(ctx context.Context, c *entity.Cliente) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.clientes[c.ID]; ok {
			return domain.ErrConflict
		}
		st.clientes[c.ID] = copyCliente(c)
		return nil
	})
}

func (r *clienteRepo) GetByID(ctx context.Context, id string) (*entity.Cliente, error) {
	var out *entity.Cliente
	err := r.db.do(ctx, func(st *state) error {
		if c, ok := st.clientes[id]; ok {
			out = copyCliente(c)
		}
		return nil
	})
	return out, err
}

func (r *clienteRepo) Update(ctx context.Context, c *entity.Cliente) error {
	return r.db.do(ctx, func(st *state) error {
		atual, ok := st.clientes[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := copyCliente(c)
		next.CreatedAt = atual.CreatedAt
		st.clientes[c.ID] = next
		return nil
	})
}

func (r *clienteRepo) Delete(ctx context.Context, id string) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.clientes[id]; !ok {
			return domain.ErrNotFound
		}
		for _, v := range st.vendas {
			if v.ClienteID == id {
				return domain.ErrInUse
			}
		}
		for _, o := range st.orcamentos {
			if o.ClienteID == id {
				return domain.ErrInUse
			}
		}
		delete(st.clientes, id)
		return nil
	})
}

func (r *clienteRepo) List(ctx context.Context) ([]*entity.Cliente, error) {
	var out []*entity.Cliente
	err := r.db.do(ctx, func(st *state) error {
		out = make([]*entity.Cliente, 0, len(st.clientes))
		for _, c := range st.clientes {
			out = append(out, copyCliente(c))
		}
		return nil
	})
	textsearch.SortByName(out, func(c *entity.Cliente) string { return c.Nome }, func(c *entity.Cliente) string { return c.ID })
	return out, err
}

func (r *clienteRepo) Count(ctx context.Context) (int, error) {
	n := 0
	err := r.db.do(ctx, func(st *state) error {
		n = len(st.clientes)
		return nil
	})
	return n, err
}
