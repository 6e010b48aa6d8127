package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

type materialRepo struct{ db db }

func (r *materialRepo) Create(ctx context.Context, m *entity.Material) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.materiais[m.ID]; ok {
			return domain.ErrConflict
		}
		st.materiais[m.ID] = copyMaterial(m)
		return nil
	})
}

func (r *materialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	var out *entity.Material
	err := r.db.do(ctx, func(st *state) error {
		if m, ok := st.materiais[id]; ok {
			out = copyMaterial(m)
		}
		return nil
	})
	return out, err
}

func (r *materialRepo) Update(ctx context.Context, m *entity.Material) error {
	return r.db.do(ctx, func(st *state) error {
		atual, ok := st.materiais[m.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := copyMaterial(m)
		next.CreatedAt = atual.CreatedAt
		st.materiais[m.ID] = next
		return nil
	})
}

func (r *materialRepo) Delete(ctx context.Context, id string) error {
	return r.db.do(ctx, func(st *state) error {
		if _, ok := st.materiais[id]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range st.orcamentos {
			for _, id2 := range o.MaterialIDs() {
				if id2 == id {
					return domain.ErrInUse
				}
			}
		}
		delete(st.materiais, id)
		return nil
	})
}

func (r *materialRepo) List(ctx context.Context) ([]*entity.Material, error) {
	var out []*entity.Material
	err := r.db.do(ctx, func(st *state) error {
		out = make([]*entity.Material, 0, len(st.materiais))
		for _, m := range st.materiais {
			out = append(out, copyMaterial(m))
		}
		return nil
	})
	textsearch.SortByName(out, func(m *entity.Material) string { return m.Name }, func(m *entity.Material) string { return m.ID })
	return out, err
}

func (r *materialRepo) Resumo(ctx context.Context) (entity.EstoqueResumo, error) {
	res := entity.EstoqueResumo{ValorTotal: decimal.Zero}
	err := r.db.do(ctx, func(st *state) error {
		for _, m := range st.materiais {
			res.TotalItens++
			if m.LowStock() {
				res.AbaixoMinimo++
			}
			res.ValorTotal = res.ValorTotal.Add(m.Value())
		}
		return nil
	})
	res.ValorTotal = res.ValorTotal.Round(2)
	return res, err
}
