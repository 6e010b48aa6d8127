package dto

import "github.com/shopspring/decimal"

// DashboardResumoDTO respuesta de GET /api/dashboard/resumo.
type DashboardResumoDTO struct {
	// Ventas
	TotalVendas      decimal.Decimal `json:"totalVendas"`
	QuantidadeVendas int             `json:"quantidadeVendas"`
	ProdutosVendidos int             `json:"produtosVendidos"`

	Clientes int `json:"clientes"`

	// Estoque de materiales
	MateriaisAbaixoMinimo int             `json:"materiaisAbaixoMinimo"`
	ValorEstoque          decimal.Decimal `json:"valorEstoque"`

	Referencia string `json:"referencia"` // ej: "Outubro 2026"
}
