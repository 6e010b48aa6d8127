package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/application/events"
	"github.com/jhoicas/gestao-api/internal/application/usecase"
	"github.com/jhoicas/gestao-api/internal/application/venda"
	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
	"github.com/jhoicas/gestao-api/internal/infrastructure/memory"
	"github.com/jhoicas/gestao-api/pkg/logger"
)

func TestProduto_CreateValidaEstoqueEntero(t *testing.T) {
	uc := usecase.NewProdutoUseCase(memory.NewStore().Produtos())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProdutoRequest{Nome: "Mesa", Preco: dto.NumberOf("100"), Estoque: dto.NumberOf("2.5")})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "deve ser um número inteiro", ve.Fields["estoque"])

	res, err := uc.Create(ctx, dto.CreateProdutoRequest{Nome: "Mesa", Categoria: "Móveis", Preco: dto.NumberOf("350.00"), Estoque: dto.NumberOf("4")})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Estoque)

	list, err := uc.List(ctx, dto.ListFilter{Q: "moveis"})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// produtoRepoIntercalado ejecuta entreLecturas justo después de GetByID,
// simulando una venta que confirma entre la lectura y la escritura del Update.
type produtoRepoIntercalado struct {
	repository.ProdutoRepository
	entreLecturas func()
}

func (r *produtoRepoIntercalado) GetByID(ctx context.Context, id string) (*entity.Produto, error) {
	p, err := r.ProdutoRepository.GetByID(ctx, id)
	if r.entreLecturas != nil {
		fn := r.entreLecturas
		r.entreLecturas = nil
		fn()
	}
	return p, err
}

func TestProduto_UpdateNoPisaEstoqueDeVentaConcurrente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := &produtoRepoIntercalado{ProdutoRepository: store.Produtos()}
	uc := usecase.NewProdutoUseCase(repo)
	vendas := venda.NewUseCase(store, store.Vendas(), events.Nop{}, logger.Nop())

	p, err := uc.Create(ctx, dto.CreateProdutoRequest{Nome: "Mesa", Preco: dto.NumberOf("100"), Estoque: dto.NumberOf("5")})
	require.NoError(t, err)
	cliente, vendedor := uuid.New().String(), uuid.New().String()
	require.NoError(t, store.Clientes().Create(ctx, &entity.Cliente{ID: cliente, Nome: "C"}))
	require.NoError(t, store.Vendedores().Create(ctx, &entity.Vendedor{ID: vendedor, Nome: "V"}))

	var vendaID string
	repo.entreLecturas = func() {
		v, err := vendas.Create(ctx, dto.CreateVendaRequest{
			ClienteID: cliente, VendedorID: vendedor,
			Items: []dto.VendaItemRequest{{ProdutoID: p.ID, Quantidade: dto.NumberOf("3"), PrecoUnit: dto.NumberOf("100")}},
		})
		require.NoError(t, err)
		vendaID = v.ID
	}

	nome := "Mesa de Jantar"
	res, err := uc.Update(ctx, p.ID, dto.UpdateProdutoRequest{Nome: &nome})
	require.NoError(t, err)
	assert.Equal(t, "Mesa de Jantar", res.Nome)
	assert.Equal(t, 2, res.Estoque)

	got, err := store.Produtos().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Estoque)

	require.NoError(t, vendas.Delete(ctx, vendaID))
	got, err = store.Produtos().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Estoque)

	// el ajuste manual explícito sí fija el valor
	res, err = uc.Update(ctx, p.ID, dto.UpdateProdutoRequest{Estoque: dto.NumberOf("9")})
	require.NoError(t, err)
	assert.Equal(t, 9, res.Estoque)
}

func TestProduto_DeleteReferenciado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewProdutoUseCase(store.Produtos())
	p, err := uc.Create(ctx, dto.CreateProdutoRequest{Nome: "Mesa", Preco: dto.NumberOf("10"), Estoque: dto.NumberOf("5")})
	require.NoError(t, err)

	cliente, vendedor := uuid.New().String(), uuid.New().String()
	require.NoError(t, store.Clientes().Create(ctx, &entity.Cliente{ID: cliente, Nome: "C"}))
	require.NoError(t, store.Vendedores().Create(ctx, &entity.Vendedor{ID: vendedor, Nome: "V"}))
	require.NoError(t, store.Vendas().Create(ctx, &entity.Venda{
		ID: uuid.New().String(), ClienteID: cliente, VendedorID: vendedor, Data: time.Now(),
		Itens: []entity.VendaItem{{ID: uuid.New().String(), ProdutoID: p.ID, Quantidade: 1, PrecoUnit: decimal.NewFromInt(10)}},
	}))

	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrInUse)
	assert.ErrorIs(t, store.Vendedores().Delete(ctx, vendedor), domain.ErrInUse)
	assert.ErrorIs(t, store.Clientes().Delete(ctx, cliente), domain.ErrInUse)
}

func TestVendedor_CreateYGetConVendas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewVendedorUseCase(store.Vendedores(), store.Vendas())

	_, err := uc.Create(ctx, dto.CreateVendedorRequest{Nome: "Ana", Email: "ana@loja.com", Comissao: dto.NumberOf("150")})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "comissao")

	v, err := uc.Create(ctx, dto.CreateVendedorRequest{Nome: "Ana", Email: "ana@loja.com", Comissao: dto.NumberOf("5.5")})
	require.NoError(t, err)
	assert.Equal(t, entity.VendedorAtivo, v.Status)

	cliente, produto := uuid.New().String(), uuid.New().String()
	require.NoError(t, store.Clientes().Create(ctx, &entity.Cliente{ID: cliente, Nome: "C"}))
	require.NoError(t, store.Produtos().Create(ctx, &entity.Produto{ID: produto, Nome: "Mesa", Estoque: 1}))
	require.NoError(t, store.Vendas().Create(ctx, &entity.Venda{
		ID: uuid.New().String(), ClienteID: cliente, VendedorID: v.ID, Total: decimal.NewFromInt(99), Status: entity.VendaConcluida, Data: time.Now(),
		Itens: []entity.VendaItem{{ID: uuid.New().String(), ProdutoID: produto, Quantidade: 1, PrecoUnit: decimal.NewFromInt(99)}},
	}))

	got, err := uc.GetByID(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, got.Vendas, 1)
	assert.Equal(t, "99", got.Vendas[0].Total.String())

	list, err := uc.List(ctx, dto.ListFilter{Status: "inativo"})
	require.NoError(t, err)
	assert.Empty(t, list)
}
