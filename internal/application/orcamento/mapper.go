package orcamento

import (
	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
)

func toOrcamentoResponse(o *entity.Orcamento) *dto.OrcamentoResponse {
	out := &dto.OrcamentoResponse{
		ID:          o.ID,
		Numero:      o.Numero,
		Data:        o.Data,
		Status:      o.Status,
		Observacoes: o.Observacoes,
		ClienteID:   o.ClienteID,
		ValorTotal:  o.ValorTotal,
		Cliente:     dto.ContatoFrom(o.Cliente),
		Itens:       make([]dto.OrcamentoItemResponse, 0, len(o.Itens)),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	for _, it := range o.Itens {
		item := dto.OrcamentoItemResponse{
			ID:            it.ID,
			Descricao:     it.Descricao,
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario,
			Subtotal:      it.Quantidade.Mul(it.ValorUnitario).Round(2),
			Materiais:     make([]dto.OrcamentoMaterialResponse, 0, len(it.Materiais)),
		}
		for _, m := range it.Materiais {
			mr := dto.OrcamentoMaterialResponse{ID: m.ID, MaterialID: m.MaterialID, Quantidade: m.Quantidade}
			if m.Material != nil {
				mr.Material = &dto.MaterialRefResponse{
					ID:    m.Material.ID,
					Name:  m.Material.Name,
					Type:  m.Material.Type,
					Unit:  m.Material.Unit,
					Price: m.Material.Price,
				}
			}
			item.Materiais = append(item.Materiais, mr)
		}
		out.Itens = append(out.Itens, item)
	}
	return out
}
