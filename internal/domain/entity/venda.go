package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de venta. Solo cambian vía update de status; total y estoque no se tocan.
const (
	VendaPendente  = "Pendente"
	VendaConcluida = "Concluida"
	VendaCancelada = "Cancelada"
)

// VendaStatuses estados válidos.
var VendaStatuses = []string{VendaPendente, VendaConcluida, VendaCancelada}

// Venda cabecera de la venta. Total se fija al crear: Σ quantidade × precoUnit.
type Venda struct {
	ID         string
	ClienteID  string
	VendedorID string
	Total      decimal.Decimal
	Status     string
	Data       time.Time
	Itens      []VendaItem
	Cliente    *Contato // solo lectura
	Vendedor   *Contato // solo lectura
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// VendaItem línea de la venta.
type VendaItem struct {
	ID         string
	VendaID    string
	ProdutoID  string
	Quantidade int
	PrecoUnit  decimal.Decimal
	Produto    *ProdutoRef // solo lectura
}

// Subtotal quantidade × precoUnit.
func (i VendaItem) Subtotal() decimal.Decimal {
	return i.PrecoUnit.Mul(decimal.NewFromInt(int64(i.Quantidade)))
}

// CalcularTotal suma exacta de los subtotales.
func (v *Venda) CalcularTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range v.Itens {
		total = total.Add(it.Subtotal())
	}
	return total
}

// VendasResumo agregados de ventas para el dashboard.
type VendasResumo struct {
	Quantidade       int
	Total            decimal.Decimal
	ProdutosVendidos int
}
