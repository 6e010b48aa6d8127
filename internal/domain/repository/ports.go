package repository

import (
	"context"

	"github.com/jhoicas/gestao-api/internal/domain/entity"
)

// Convenciones de los puertos de persistencia:
//   - GetByID devuelve (nil, nil) si no existe.
//   - Update y Delete devuelven domain.ErrNotFound si la fila no existe.
//   - Delete devuelve domain.ErrInUse si la fila está referenciada (RESTRICT).

// ClienteRepository puerto de persistencia para Cliente.
type ClienteRepository interface {
	Create(ctx context.Context, c *entity.Cliente) error
	GetByID(ctx context.Context, id string) (*entity.Cliente, error)
	Update(ctx context.Context, c *entity.Cliente) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Cliente, error)
	Count(ctx context.Context) (int, error)
}

// MaterialRepository puerto de persistencia para Material.
type MaterialRepository interface {
	Create(ctx context.Context, m *entity.Material) error
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	Update(ctx context.Context, m *entity.Material) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Material, error)
	Resumo(ctx context.Context) (entity.EstoqueResumo, error)
}

// ProdutoRepository puerto de persistencia para Produto.
// DecrementStock solo descuenta si estoque >= qty; de lo contrario devuelve domain.ErrConflict.
// Update escribe estoque solo con setEstoque; si no, lo deja intacto y recarga p.Estoque con el valor guardado.
type ProdutoRepository interface {
	Create(ctx context.Context, p *entity.Produto) error
	GetByID(ctx context.Context, id string) (*entity.Produto, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Produto, error)
	Update(ctx context.Context, p *entity.Produto, setEstoque bool) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Produto, error)
	DecrementStock(ctx context.Context, id string, qty int) error
	IncrementStock(ctx context.Context, id string, qty int) error
}

// VendedorRepository puerto de persistencia para Vendedor.
type VendedorRepository interface {
	Create(ctx context.Context, v *entity.Vendedor) error
	GetByID(ctx context.Context, id string) (*entity.Vendedor, error)
	Update(ctx context.Context, v *entity.Vendedor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Vendedor, error)
}

// VendaRepository puerto de persistencia para Venda y sus ítems.
// Create inserta cabecera e ítems; Delete borra ambos. El estoque lo maneja el caso de uso.
type VendaRepository interface {
	Create(ctx context.Context, v *entity.Venda) error
	GetByID(ctx context.Context, id string) (*entity.Venda, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Venda, error)
	UpdateStatus(ctx context.Context, v *entity.Venda) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Venda, error)
	ListByVendedor(ctx context.Context, vendedorID string) ([]*entity.Venda, error)
	Resumo(ctx context.Context) (entity.VendasResumo, error)
}

// OrcamentoRepository puerto de persistencia para Orcamento y su grafo de ítems/materiales.
type OrcamentoRepository interface {
	Create(ctx context.Context, o *entity.Orcamento) error
	GetByID(ctx context.Context, id string) (*entity.Orcamento, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Orcamento, error)
	UpdateHeader(ctx context.Context, o *entity.Orcamento) error
	// ReplaceItens borra materiales e ítems actuales y crea los de o.Itens.
	ReplaceItens(ctx context.Context, o *entity.Orcamento) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status string) ([]*entity.Orcamento, error)
	ResumoPorStatus(ctx context.Context) ([]entity.OrcamentoStatusResumo, error)
}
