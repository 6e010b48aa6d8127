package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/application/validation"
	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

// ProdutoUseCase casos de uso CRUD para productos. Las ventas mueven el estoque vía venda.UseCase;
// aquí el estoque solo se fija como ajuste manual.
type ProdutoUseCase struct {
	repo repository.ProdutoRepository
}

// NewProdutoUseCase construye el caso de uso.
func NewProdutoUseCase(repo repository.ProdutoRepository) *ProdutoUseCase {
	return &ProdutoUseCase{repo: repo}
}

// Create crea un producto. Estoque ausente = 0.
func (uc *ProdutoUseCase) Create(ctx context.Context, in dto.CreateProdutoRequest) (*dto.ProdutoResponse, error) {
	v := validation.New()
	p := &entity.Produto{
		Nome:       v.Required("nome", in.Nome),
		Categoria:  strings.TrimSpace(in.Categoria),
		Preco:      v.Decimal("preco", in.Preco, validation.Money),
		Estoque:    v.Int("estoque", in.Estoque, false, 0),
		Fornecedor: strings.TrimSpace(in.Fornecedor),
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	p.ID = uuid.New().String()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProdutoResponse(p), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProdutoUseCase) GetByID(ctx context.Context, id string) (*dto.ProdutoResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProdutoResponse(p), nil
}

// Update actualiza los campos presentes.
func (uc *ProdutoUseCase) Update(ctx context.Context, id string, in dto.UpdateProdutoRequest) (*dto.ProdutoResponse, error) {
	p, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := validation.New()
	if in.Nome != nil {
		p.Nome = v.Required("nome", *in.Nome)
	}
	if in.Categoria != nil {
		p.Categoria = strings.TrimSpace(*in.Categoria)
	}
	if in.Fornecedor != nil {
		p.Fornecedor = strings.TrimSpace(*in.Fornecedor)
	}
	if in.Preco.IsSet() {
		p.Preco = v.Decimal("preco", in.Preco, validation.Money)
	}
	if in.Estoque.IsSet() {
		p.Estoque = v.Int("estoque", in.Estoque, true, 0)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	p.UpdatedAt = now()
	if err := uc.repo.Update(ctx, p, in.Estoque.IsSet()); err != nil {
		return nil, wrapNotFound(err, "produto", id)
	}
	return toProdutoResponse(p), nil
}

// Delete elimina el producto; ErrInUse si figura en alguna venta.
func (uc *ProdutoUseCase) Delete(ctx context.Context, id string) error {
	if err := checkID("produto", id); err != nil {
		return err
	}
	return wrapNotFound(uc.repo.Delete(ctx, id), "produto", id)
}

// List lista productos por nombre; q filtra por nombre, categoría o proveedor.
func (uc *ProdutoUseCase) List(ctx context.Context, f dto.ListFilter) ([]dto.ProdutoResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProdutoResponse, 0, len(list))
	for _, p := range list {
		if !textsearch.Contains(p.Nome+" "+p.Categoria+" "+p.Fornecedor, f.Q) {
			continue
		}
		out = append(out, *toProdutoResponse(p))
	}
	return out, nil
}

func (uc *ProdutoUseCase) get(ctx context.Context, id string) (*entity.Produto, error) {
	if err := checkID("produto", id); err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("produto", id)
	}
	return p, nil
}

func toProdutoResponse(p *entity.Produto) *dto.ProdutoResponse {
	return &dto.ProdutoResponse{
		ID:         p.ID,
		Nome:       p.Nome,
		Categoria:  p.Categoria,
		Preco:      p.Preco,
		Estoque:    p.Estoque,
		Fornecedor: p.Fornecedor,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
