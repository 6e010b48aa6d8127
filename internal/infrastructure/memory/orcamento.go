package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
)

type orcamentoRepo struct{ db db }

func (r *orcamentoRepo) Create(ctx context.Context, o *entity.Orcamento) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.orcamentos[o.ID]; ok {
			return domain.ErrConflict
		}
		if err := checkRefs(st, o); err != nil {
			return err
		}
		st.orcamentos[o.ID] = copyOrcamento(o)
		return nil
	})
}

func (r *orcamentoRepo) GetByID(ctx context.Context, id string) (*entity.Orcamento, error) {
	var out *entity.Orcamento
	err := r.db.do(ctx, func(st *state) error {
		if o, ok := st.orcamentos[id]; ok {
			out = joinOrcamento(st, o)
		}
		return nil
	})
	return out, err
}

func (r *orcamentoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Orcamento, error) {
	return r.GetByID(ctx, id)
}

func (r *orcamentoRepo) UpdateHeader(ctx context.Context, o *entity.Orcamento) error {
	return r.db.do(ctx, func(st *state) error {
		atual, ok := st.orcamentos[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if st.clientes[o.ClienteID] == nil {
			return domain.ErrNotFound
		}
		atual.Numero = o.Numero
		atual.Data = o.Data
		atual.Status = o.Status
		atual.Observacoes = o.Observacoes
		atual.ClienteID = o.ClienteID
		atual.ValorTotal = o.ValorTotal
		atual.UpdatedAt = o.UpdatedAt
		return nil
	})
}

func (r *orcamentoRepo) ReplaceItens(ctx context.Context, o *entity.Orcamento) error {
	return r.db.do(ctx, func(st *state) error {
		atual, ok := st.orcamentos[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkRefs(st, &entity.Orcamento{ClienteID: atual.ClienteID, Itens: o.Itens}); err != nil {
			return err
		}
		atual.Itens = copyOrcamento(o).Itens
		return nil
	})
}

func (r *orcamentoRepo) Delete(ctx context.Context, id string) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.orcamentos[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.orcamentos, id)
		return nil
	})
}

func (r *orcamentoRepo) List(ctx context.Context, status string) ([]*entity.Orcamento, error) {
	var out []*entity.Orcamento
	err := r.db.do(ctx, func(st *state) error {
		out = make([]*entity.Orcamento, 0, len(st.orcamentos))
		for _, o := range st.orcamentos {
			if status == "" || o.Status == status {
				out = append(out, joinOrcamento(st, o))
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Data.After(out[j].Data) })
	return out, err
}

func (r *orcamentoRepo) ResumoPorStatus(ctx context.Context) ([]entity.OrcamentoStatusResumo, error) {
	acc := make(map[string]*entity.OrcamentoStatusResumo)
	err := r.db.do(ctx, func(st *state) error {
		for _, o := range st.orcamentos {
			g, ok := acc[o.Status]
			if !ok {
				g = &entity.OrcamentoStatusResumo{Status: o.Status, Valor: decimal.Zero}
				acc[o.Status] = g
			}
			g.Quantidade++
			g.Valor = g.Valor.Add(o.ValorTotal)
		}
		return nil
	})
	out := make([]entity.OrcamentoStatusResumo, 0, len(acc))
	for _, g := range acc {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, err
}

// checkRefs equivalente a las FKs: cliente y materiales deben existir.
func checkRefs(st *state, o *entity.Orcamento) error {
	if st.clientes[o.ClienteID] == nil {
		return domain.ErrNotFound
	}
	for _, id := range o.MaterialIDs() {
		if st.materiais[id] == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func joinOrcamento(st *state, o *entity.Orcamento) *entity.Orcamento {
	out := copyOrcamento(o)
	if c := st.clientes[o.ClienteID]; c != nil {
		out.Cliente = c.Contato()
	}
	for i := range out.Itens {
		for j := range out.Itens[i].Materiais {
			m := st.materiais[out.Itens[i].Materiais[j].MaterialID]
			if m != nil {
				out.Itens[i].Materiais[j].Material = &entity.MaterialRef{ID: m.ID, Name: m.Name, Type: m.Type, Unit: m.Unit, Price: m.Price}
			}
		}
	}
	return out
}
