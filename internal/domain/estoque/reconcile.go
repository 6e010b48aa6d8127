// Package estoque contiene las reglas puras de reconciliación de estoque de ventas.
package estoque

import (
	"sort"

	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
)

// Demanda agrega la cantidad pedida por producto; un producto puede repetirse en varias líneas.
func Demanda(itens []entity.VendaItem) map[string]int {
	d := make(map[string]int, len(itens))
	for _, it := range itens {
		d[it.ProdutoID] += it.Quantidade
	}
	return d
}

// OrdenBloqueo devuelve los ids en orden determinista para tomar locks de fila sin deadlocks.
func OrdenBloqueo(demanda map[string]int) []string {
	ids := make([]string, 0, len(demanda))
	for id := range demanda {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Verificar compara la demanda con el estoque actual y reporta todos los faltantes juntos.
// produtos debe contener cada id de demanda.
func Verificar(produtos map[string]*entity.Produto, demanda map[string]int) error {
	var faltantes []domain.Shortage
	for _, id := range OrdenBloqueo(demanda) {
		p := produtos[id]
		if p == nil {
			return domain.NotFound("produto", id)
		}
		if demanda[id] > p.Estoque {
			faltantes = append(faltantes, domain.Shortage{
				ProdutoID:  id,
				Nome:       p.Nome,
				Disponivel: p.Estoque,
				Solicitado: demanda[id],
			})
		}
	}
	if len(faltantes) > 0 {
		return &domain.InsufficientStockError{Shortages: faltantes}
	}
	return nil
}
