package memory

import (
	"context"

	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

type produtoRepo struct{ db db }

func (r *produtoRepo) Create(ctx context.Context, p *entity.Produto) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.produtos[p.ID]; ok {
			return domain.ErrConflict
		}
		st.produtos[p.ID] = copyProduto(p)
		return nil
	})
}

func (r *produtoRepo) GetByID(ctx context.Context, id string) (*entity.Produto, error) {
	var out *entity.Produto
	err := r.db.do(ctx, func(st *state) error {
		if p, ok := st.produtos[id]; ok {
			out = copyProduto(p)
		}
		return nil
	})
	return out, err
}

// GetForUpdate dentro de una transacción el lock del store ya excluye a los demás escritores.
func (r *produtoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Produto, error) {
	return r.GetByID(ctx, id)
}

func (r *produtoRepo) Update(ctx context.Context, p *entity.Produto, setEstoque bool) error {
	return r.db.do(ctx, func(st *state) error {
		atual, ok := st.produtos[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if !setEstoque {
			p.Estoque = atual.Estoque
		}
		next := copyProduto(p)
		next.CreatedAt = atual.CreatedAt
		st.produtos[p.ID] = next
		return nil
	})
}

func (r *produtoRepo) Delete(ctx context.Context, id string) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.produtos[id]; !ok {
			return domain.ErrNotFound
		}
		for _, v := range st.vendas {
			for _, it := range v.Itens {
				if it.ProdutoID == id {
					return domain.ErrInUse
				}
			}
		}
		delete(st.produtos, id)
		return nil
	})
}

func (r *produtoRepo) List(ctx context.Context) ([]*entity.Produto, error) {
	var out []*entity.Produto
	err := r.db.do(ctx, func(st *state) error {
		out = make([]*entity.Produto, 0, len(st.produtos))
		for _, p := range st.produtos {
			out = append(out, copyProduto(p))
		}
		return nil
	})
	textsearch.SortByName(out, func(p *entity.Produto) string { return p.Nome }, func(p *entity.Produto) string { return p.ID })
	return out, err
}

// DecrementStock misma guarda que el UPDATE condicional: estoque >= qty o ErrConflict.
func (r *produtoRepo) DecrementStock(ctx context.Context, id string, qty int) error {
	return r.db.do(ctx, func(st *state) error {
		p, ok := st.produtos[id]
		if !ok {
			return domain.ErrNotFound
		}
		if p.Estoque < qty {
			return domain.ErrConflict
		}
		p.Estoque -= qty
		p.UpdatedAt = now()
		return nil
	})
}

func (r *produtoRepo) IncrementStock(ctx context.Context, id string, qty int) error {
	return r.db.do(ctx, func(st *state) error {
		p, ok := st.produtos[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Estoque += qty
		p.UpdatedAt = now()
		return nil
	})
}
