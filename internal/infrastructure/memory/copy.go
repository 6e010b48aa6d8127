package memory

import "github.com/jhoicas/gestao-api/internal/domain/entity"

func copyCliente(c *entity.Cliente) *entity.Cliente {
	out := *c
	return &out
}

func copyMaterial(m *entity.Material) *entity.Material {
	out := *m
	return &out
}

func copyProduto(p *entity.Produto) *entity.Produto {
	out := *p
	return &out
}

func copyVendedor(v *entity.Vendedor) *entity.Vendedor {
	out := *v
	return &out
}

// copyVenda copia cabecera e ítems; las referencias de solo lectura se resuelven al leer.
func copyVenda(v *entity.Venda) *entity.Venda {
	out := *v
	out.Cliente, out.Vendedor = nil, nil
	out.Itens = make([]entity.VendaItem, len(v.Itens))
	for i, it := range v.Itens {
		it.Produto = nil
		out.Itens[i] = it
	}
	return &out
}

func copyOrcamento(o *entity.Orcamento) *entity.Orcamento {
	out := *o
	out.Cliente = nil
	out.Itens = make([]entity.OrcamentoItem, len(o.Itens))
	for i, it := range o.Itens {
		mats := make([]entity.OrcamentoMaterial, len(it.Materiais))
		for j, m := range it.Materiais {
			m.Material = nil
			mats[j] = m
		}
		it.Materiais = mats
		out.Itens[i] = it
	}
	return &out
}
