package orcamento

import (
	"context"

	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Clientes   repository.ClienteRepository
	Materiais  repository.MaterialRepository
	Orcamentos repository.OrcamentoRepository
}

// TxRunner ejecuta fn dentro de una transacción.
type TxRunner interface {
	RunOrcamento(ctx context.Context, fn func(r Repos) error) error
}

// PDFGenerator genera el documento imprimible del presupuesto.
type PDFGenerator interface {
	GenerateOrcamento(o *entity.Orcamento) ([]byte, error)
}
