package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de presupuesto.
const (
	OrcamentoPendente   = "Pendente"
	OrcamentoAprovado   = "Aprovado"
	OrcamentoRejeitado  = "Rejeitado"
	OrcamentoEmProducao = "Em Produção"
)

// OrcamentoStatuses estados válidos.
var OrcamentoStatuses = []string{OrcamentoPendente, OrcamentoAprovado, OrcamentoRejeitado, OrcamentoEmProducao}

// Orcamento presupuesto con su grafo de ítems y materiales.
// En cada actualización el grafo se reemplaza completo: los IDs de ítems no se conservan.
type Orcamento struct {
	ID          string
	Numero      string
	Data        time.Time
	Status      string
	Observacoes string
	ClienteID   string
	ValorTotal  decimal.Decimal
	Itens       []OrcamentoItem
	Cliente     *Contato // solo lectura
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OrcamentoItem ítem del presupuesto.
type OrcamentoItem struct {
	ID            string
	OrcamentoID   string
	Descricao     string
	Quantidade    decimal.Decimal
	ValorUnitario decimal.Decimal
	Materiais     []OrcamentoMaterial
}

// OrcamentoMaterial material previsto para un ítem. No descuenta estoque.
type OrcamentoMaterial struct {
	ID              string
	OrcamentoItemID string
	MaterialID      string
	Quantidade      decimal.Decimal
	Material        *MaterialRef // solo lectura
}

// CalcularTotal Σ quantidade × valorUnitario, redondeado a centavos.
func (o *Orcamento) CalcularTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Itens {
		total = total.Add(it.Quantidade.Mul(it.ValorUnitario))
	}
	return total.Round(2)
}

// MaterialIDs ids de materiales referenciados, sin repetir.
func (o *Orcamento) MaterialIDs() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, it := range o.Itens {
		for _, m := range it.Materiais {
			if _, ok := seen[m.MaterialID]; ok {
				continue
			}
			seen[m.MaterialID] = struct{}{}
			ids = append(ids, m.MaterialID)
		}
	}
	return ids
}

// OrcamentoStatusResumo conteo por estado.
type OrcamentoStatusResumo struct {
	Status     string
	Quantidade int
	Valor      decimal.Decimal
}
