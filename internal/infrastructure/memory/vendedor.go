package memory

import (
	"context"

	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

type vendedorRepo struct{ db db }

func (r *vendedorRepo) Create(ctx context.Context, v *entity.Vendedor) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.vendedores[v.ID]; ok {
			return domain.ErrConflict
		}
		st.vendedores[v.ID] = copyVendedor(v)
		return nil
	})
}

func (r *vendedorRepo) GetByID(ctx context.Context, id string) (*entity.Vendedor, error) {
	var out *entity.Vendedor
	err := r.db.do(ctx, func(st *state) error {
		if v, ok := st.vendedores[id]; ok {
			out = copyVendedor(v)
		}
		return nil
	})
	return out, err
}

func (r *vendedorRepo) Update(ctx context.Context, v *entity.Vendedor) error {
	return r.db.do(ctx, func(st *state) error {
		atual, ok := st.vendedores[v.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := copyVendedor(v)
		next.CreatedAt = atual.CreatedAt
		st.vendedores[v.ID] = next
		return nil
	})
}

func (r *vendedorRepo) Delete(ctx context.Context, id string) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.vendedores[id]; !ok {
			return domain.ErrNotFound
		}
		for _, v := range st.vendas {
			if v.VendedorID == id {
				return domain.ErrInUse
			}
		}
		delete(st.vendedores, id)
		return nil
	})
}

func (r *vendedorRepo) List(ctx context.Context) ([]*entity.Vendedor, error) {
	var out []*entity.Vendedor
	err := r.db.do(ctx, func(st *state) error {
		out = make([]*entity.Vendedor, 0, len(st.vendedores))
		for _, v := range st.vendedores {
			out = append(out, copyVendedor(v))
		}
		return nil
	})
	textsearch.SortByName(out, func(v *entity.Vendedor) string { return v.Nome }, func(v *entity.Vendedor) string { return v.ID })
	return out, err
}
