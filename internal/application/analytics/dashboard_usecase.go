// Package analytics contiene el caso de uso del resumen del dashboard.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
)

// DashboardUseCase agrega ventas, clientes y estoque de materiales.
// Solo lectura; cada fuente se consulta en paralelo.
type DashboardUseCase struct {
	vendas    repository.VendaRepository
	clientes  repository.ClienteRepository
	materiais repository.MaterialRepository
	clock     func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(vendas repository.VendaRepository, clientes repository.ClienteRepository, materiais repository.MaterialRepository) *DashboardUseCase {
	return &DashboardUseCase{vendas: vendas, clientes: clientes, materiais: materiais, clock: time.Now}
}

// GetResumo construye el DashboardResumoDTO.
//
// Tres lecturas en paralelo:
//  1. VendaRepository.Resumo     → total, cantidad, productos vendidos
//  2. ClienteRepository.Count    → clientes
//  3. MaterialRepository.Resumo  → abajo del mínimo, valor del estoque
func (uc *DashboardUseCase) GetResumo(ctx context.Context) (*dto.DashboardResumoDTO, error) {
	var (
		vendas   entity.VendasResumo
		clientes int
		estoque  entity.EstoqueResumo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := uc.vendas.Resumo(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: vendas: %w", err)
		}
		vendas = r
		return nil
	})
	g.Go(func() error {
		n, err := uc.clientes.Count(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: clientes: %w", err)
		}
		clientes = n
		return nil
	})
	g.Go(func() error {
		r, err := uc.materiais.Resumo(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: estoque: %w", err)
		}
		estoque = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	return &dto.DashboardResumoDTO{
		TotalVendas:           vendas.Total.Round(2),
		QuantidadeVendas:      vendas.Quantidade,
		ProdutosVendidos:      vendas.ProdutosVendidos,
		Clientes:              clientes,
		MateriaisAbaixoMinimo: estoque.AbaixoMinimo,
		ValorEstoque:          estoque.ValorTotal.Round(2),
		Referencia:            monthLabel(uc.clock()),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Fevereiro 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
