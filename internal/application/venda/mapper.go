package venda

import (
	"errors"
	"strconv"
	"time"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
)

func toVendaResponse(v *entity.Venda) *dto.VendaResponse {
	out := &dto.VendaResponse{
		ID:         v.ID,
		ClienteID:  v.ClienteID,
		VendedorID: v.VendedorID,
		Total:      v.Total,
		Status:     v.Status,
		Data:       v.Data,
		Cliente:    dto.ContatoFrom(v.Cliente),
		Vendedor:   dto.ContatoFrom(v.Vendedor),
		Items:      make([]dto.VendaItemResponse, 0, len(v.Itens)),
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
	for _, it := range v.Itens {
		item := dto.VendaItemResponse{
			ID:         it.ID,
			ProdutoID:  it.ProdutoID,
			Quantidade: it.Quantidade,
			PrecoUnit:  it.PrecoUnit,
			Subtotal:   it.Subtotal(),
		}
		if it.Produto != nil {
			item.Produto = &dto.ProdutoRefResponse{ID: it.Produto.ID, Nome: it.Produto.Nome, Preco: it.Produto.Preco}
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func eventPayload(v *entity.Venda) map[string]any {
	items := make([]map[string]any, 0, len(v.Itens))
	for _, it := range v.Itens {
		items = append(items, map[string]any{"produtoId": it.ProdutoID, "quantidade": it.Quantidade})
	}
	return map[string]any{
		"id":         v.ID,
		"clienteId":  v.ClienteID,
		"vendedorId": v.VendedorID,
		"total":      v.Total,
		"status":     v.Status,
		"items":      items,
	}
}

func contatoNome(c *entity.Contato) string {
	if c == nil {
		return ""
	}
	return c.Nome
}

func wrapNotFound(err error, id string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("venda", id)
	}
	return err
}

func itoa(i int) string { return strconv.Itoa(i) }

func now() time.Time { return time.Now().UTC() }
