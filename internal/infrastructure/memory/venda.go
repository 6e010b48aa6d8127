package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
)

type vendaRepo struct{ db db }

func (r *vendaRepo) Create(ctx context.Context, v *entity.Venda) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.vendas[v.ID]; ok {
			return domain.ErrConflict
		}
		if st.clientes[v.ClienteID] == nil || st.vendedores[v.VendedorID] == nil {
			return domain.ErrNotFound
		}
		for _, it := range v.Itens {
			if st.produtos[it.ProdutoID] == nil {
				return domain.ErrNotFound
			}
		}
		st.vendas[v.ID] = copyVenda(v)
		return nil
	})
}

func (r *vendaRepo) GetByID(ctx context.Context, id string) (*entity.Venda, error) {
	var out *entity.Venda
	err := r.db.do(ctx, func(st *state) error {
		if v, ok := st.vendas[id]; ok {
			out = joinVenda(st, v)
		}
		return nil
	})
	return out, err
}

func (r *vendaRepo) GetForUpdate(ctx context.Context, id string) (*entity.Venda, error) {
	return r.GetByID(ctx, id)
}

func (r *vendaRepo) UpdateStatus(ctx context.Context, v *entity.Venda) error {
	return r.db.do(ctx, func(st *state) error {
		atual, ok := st.vendas[v.ID]
		if !ok {
			return domain.ErrNotFound
		}
		atual.Status = v.Status
		atual.UpdatedAt = v.UpdatedAt
		return nil
	})
}

func (r *vendaRepo) Delete(ctx context.Context, id string) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.vendas[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.vendas, id)
		return nil
	})
}

func (r *vendaRepo) List(ctx context.Context) ([]*entity.Venda, error) {
	return r.list(ctx, func(*entity.Venda) bool { return true })
}

func (r *vendaRepo) ListByVendedor(ctx context.Context, vendedorID string) ([]*entity.Venda, error) {
	return r.list(ctx, func(v *entity.Venda) bool { return v.VendedorID == vendedorID })
}

func (r *vendaRepo) list(ctx context.Context, keep func(*entity.Venda) bool) ([]*entity.Venda, error) {
	var out []*entity.Venda
	err := r.db.do(ctx, func(st *state) error {
		out = make([]*entity.Venda, 0, len(st.vendas))
		for _, v := range st.vendas {
			if keep(v) {
				out = append(out, joinVenda(st, v))
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Data.After(out[j].Data) })
	return out, err
}

// Resumo ignora las ventas canceladas.
func (r *vendaRepo) Resumo(ctx context.Context) (entity.VendasResumo, error) {
	res := entity.VendasResumo{Total: decimal.Zero}
	err := r.db.do(ctx, func(st *state) error {
		for _, v := range st.vendas {
			if v.Status == entity.VendaCancelada {
				continue
			}
			res.Quantidade++
			res.Total = res.Total.Add(v.Total)
			for _, it := range v.Itens {
				res.ProdutosVendidos += it.Quantidade
			}
		}
		return nil
	})
	return res, err
}

// joinVenda equivalente al JOIN con clientes, vendedores y produtos.
func joinVenda(st *state, v *entity.Venda) *entity.Venda {
	out := copyVenda(v)
	if c := st.clientes[v.ClienteID]; c != nil {
		out.Cliente = c.Contato()
	}
	if s := st.vendedores[v.VendedorID]; s != nil {
		out.Vendedor = s.Contato()
	}
	for i := range out.Itens {
		if p := st.produtos[out.Itens[i].ProdutoID]; p != nil {
			out.Itens[i].Produto = &entity.ProdutoRef{ID: p.ID, Nome: p.Nome, Preco: p.Preco}
		}
	}
	return out
}

func now() time.Time { return time.Now().UTC() }
