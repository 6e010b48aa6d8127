package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de material aceptados.
const (
	MaterialChapa      = "Chapa"
	MaterialFerragem   = "Ferragem"
	MaterialAcabamento = "Acabamento"
)

// MaterialTypes lista los tipos válidos en orden de presentación.
var MaterialTypes = []string{MaterialChapa, MaterialFerragem, MaterialAcabamento}

// Material insumo del estoque (chapas, herrajes, acabados). Quantity y MinStock en la unidad Unit.
type Material struct {
	ID          string
	Name        string
	Type        string
	Description string
	Quantity    decimal.Decimal
	Unit        string          // un, m², kg, L...
	Price       decimal.Decimal // precio por unidad
	MinStock    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock es verdadero cuando la cantidad llegó al mínimo (quantity <= minStock).
func (m *Material) LowStock() bool {
	return m.Quantity.LessThanOrEqual(m.MinStock)
}

// Value valor inmovilizado: price × quantity.
func (m *Material) Value() decimal.Decimal {
	return m.Price.Mul(m.Quantity)
}

// MaterialRef datos del material embebidos en OrcamentoMaterial.
type MaterialRef struct {
	ID    string
	Name  string
	Type  string
	Unit  string
	Price decimal.Decimal
}

// EstoqueResumo totales del estoque de materiales.
type EstoqueResumo struct {
	TotalItens   int
	AbaixoMinimo int
	ValorTotal   decimal.Decimal
}
