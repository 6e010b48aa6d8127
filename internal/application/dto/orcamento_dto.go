package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrcamentoRequest entrada de create y update. En update reemplaza cabecera e ítems completos.
type OrcamentoRequest struct {
	Numero      string                 `json:"numero"`
	Data        string                 `json:"data"`
	Status      string                 `json:"status"`
	Observacoes string                 `json:"observacoes"`
	ClienteID   string                 `json:"clienteId"`
	Itens       []OrcamentoItemRequest `json:"itens"`
}

// OrcamentoItemRequest ítem del presupuesto.
type OrcamentoItemRequest struct {
	Descricao     string                     `json:"descricao"`
	Quantidade    Number                     `json:"quantidade"`
	ValorUnitario Number                     `json:"valorUnitario"`
	Materiais     []OrcamentoMaterialRequest `json:"materiais"`
}

// OrcamentoMaterialRequest material de un ítem. Acepta "materialId" o "id".
type OrcamentoMaterialRequest struct {
	ID         string `json:"id"`
	MaterialID string `json:"materialId"`
	Quantidade Number `json:"quantidade"`
}

// Ref id del material referenciado.
func (r OrcamentoMaterialRequest) Ref() string {
	if r.MaterialID != "" {
		return r.MaterialID
	}
	return r.ID
}

// OrcamentoResponse salida del presupuesto con el grafo completo.
type OrcamentoResponse struct {
	ID          string                  `json:"id"`
	Numero      string                  `json:"numero"`
	Data        time.Time               `json:"data"`
	Status      string                  `json:"status"`
	Observacoes string                  `json:"observacoes,omitempty"`
	ClienteID   string                  `json:"clienteId"`
	ValorTotal  decimal.Decimal         `json:"valorTotal"`
	Cliente     *ContatoResponse        `json:"cliente,omitempty"`
	Itens       []OrcamentoItemResponse `json:"itens"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

// OrcamentoItemResponse ítem del presupuesto.
type OrcamentoItemResponse struct {
	ID            string                      `json:"id"`
	Descricao     string                      `json:"descricao"`
	Quantidade    decimal.Decimal             `json:"quantidade"`
	ValorUnitario decimal.Decimal             `json:"valorUnitario"`
	Subtotal      decimal.Decimal             `json:"subtotal"`
	Materiais     []OrcamentoMaterialResponse `json:"materiais"`
}

// OrcamentoMaterialResponse material de un ítem.
type OrcamentoMaterialResponse struct {
	ID         string               `json:"id"`
	MaterialID string               `json:"materialId"`
	Quantidade decimal.Decimal      `json:"quantidade"`
	Material   *MaterialRefResponse `json:"material,omitempty"`
}

// MaterialRefResponse material embebido.
type MaterialRefResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Unit  string          `json:"unit"`
	Price decimal.Decimal `json:"price"`
}

// OrcamentoResumoResponse tarjetas de la página de presupuestos.
type OrcamentoResumoResponse struct {
	Total         int             `json:"total"`
	PorStatus     map[string]int  `json:"porStatus"`
	ValorAprovado decimal.Decimal `json:"valorAprovado"` // Aprovado + Em Produção
}
