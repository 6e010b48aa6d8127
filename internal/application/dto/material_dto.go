package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material.
type CreateMaterialRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Quantity    Number `json:"quantity"`
	Unit        string `json:"unit"`
	Price       Number `json:"price"`
	MinStock    Number `json:"minStock"`
}

// UpdateMaterialRequest actualización parcial de un material.
type UpdateMaterialRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Quantity    Number  `json:"quantity"`
	Unit        *string `json:"unit"`
	Price       Number  `json:"price"`
	MinStock    Number  `json:"minStock"`
}

// MaterialResponse salida de un material con su indicador de estoque bajo.
type MaterialResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	MinStock    decimal.Decimal `json:"minStock"`
	LowStock    bool            `json:"lowStock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// EstoqueResumoResponse tarjetas de la página de estoque.
type EstoqueResumoResponse struct {
	TotalItens   int             `json:"totalItens"`
	AbaixoMinimo int             `json:"abaixoMinimo"`
	ValorTotal   decimal.Decimal `json:"valorTotal"`
}

// BulkDeleteRequest ids a eliminar (operación no atómica).
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// Resultados posibles de cada id en BulkDelete.
const (
	BulkDeleted  = "deleted"
	BulkNotFound = "not_found"
	BulkInUse    = "in_use"
	BulkError    = "error"
)

// BulkDeleteResult resultado de un id.
type BulkDeleteResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BulkDeleteResponse resultado por id, en el orden recibido.
type BulkDeleteResponse struct {
	Excluidos  int                `json:"excluidos"`
	Falhas     int                `json:"falhas"`
	Resultados []BulkDeleteResult `json:"resultados"`
}
