package venda_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/application/events"
	"github.com/jhoicas/gestao-api/internal/application/venda"
	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/infrastructure/memory"
	"github.com/jhoicas/gestao-api/pkg/logger"
)

// publisherSpy registra los eventos publicados.
type publisherSpy struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *publisherSpy) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *publisherSpy) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type fixture struct {
	store    *memory.Store
	uc       *venda.UseCase
	pub      *publisherSpy
	cliente  string
	vendedor string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	pub := &publisherSpy{}
	f := &fixture{
		store:    store,
		uc:       venda.NewUseCase(store, store.Vendas(), pub, logger.Nop()),
		pub:      pub,
		cliente:  uuid.New().String(),
		vendedor: uuid.New().String(),
	}
	require.NoError(t, store.Clientes().Create(ctx, &entity.Cliente{ID: f.cliente, Nome: "Marcenaria Silva", Telefone: "11999990000"}))
	require.NoError(t, store.Vendedores().Create(ctx, &entity.Vendedor{ID: f.vendedor, Nome: "Ana", Email: "ana@loja.com", Status: entity.VendedorAtivo}))
	return f
}

func (f *fixture) produto(t *testing.T, nome, preco string, estoque int) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, f.store.Produtos().Create(context.Background(), &entity.Produto{
		ID: id, Nome: nome, Preco: decimal.RequireFromString(preco), Estoque: estoque,
	}))
	return id
}

func (f *fixture) estoque(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Produtos().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Estoque
}

func (f *fixture) request(itens ...dto.VendaItemRequest) dto.CreateVendaRequest {
	return dto.CreateVendaRequest{ClienteID: f.cliente, VendedorID: f.vendedor, Items: itens}
}

func item(produtoID, qtd, preco string) dto.VendaItemRequest {
	it := dto.VendaItemRequest{ProdutoID: produtoID, Quantidade: dto.NumberOf(qtd)}
	if preco != "" {
		it.PrecoUnit = dto.NumberOf(preco)
	}
	return it
}

func TestCreate_TotalExactoYDescuentaEstoque(t *testing.T) {
	f := newFixture(t)
	mesa := f.produto(t, "Mesa", "0.10", 10)
	cadeira := f.produto(t, "Cadeira", "0.20", 10)

	res, err := f.uc.Create(context.Background(), f.request(item(mesa, "3", "0.10"), item(cadeira, "1", "0.20")))
	require.NoError(t, err)

	assert.Equal(t, "0.5", res.Total.String(), "3×0.10 + 1×0.20 sin error de punto flotante")
	assert.Equal(t, entity.VendaConcluida, res.Status)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, "Marcenaria Silva", res.Cliente.Nome)
	assert.Equal(t, "Ana", res.Vendedor.Nome)
	assert.Equal(t, 7, f.estoque(t, mesa))
	assert.Equal(t, 9, f.estoque(t, cadeira))
	assert.Equal(t, []string{events.VendaCriada}, f.pub.types())
}

func TestCreate_SinPrecoUsaPrecoDelProducto(t *testing.T) {
	f := newFixture(t)
	mesa := f.produto(t, "Mesa", "350.00", 5)

	res, err := f.uc.Create(context.Background(), f.request(item(mesa, "2", "")))
	require.NoError(t, err)
	assert.True(t, res.Total.Equal(decimal.RequireFromString("700")))
}

func TestCreate_EstoqueInsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t)
	mesa := f.produto(t, "Mesa", "100", 10)
	cadeira := f.produto(t, "Cadeira", "50", 1)

	_, err := f.uc.Create(context.Background(), f.request(item(mesa, "2", "100"), item(cadeira, "3", "50")))
	require.Error(t, err)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	require.Len(t, ise.Shortages, 1)
	assert.Equal(t, cadeira, ise.Shortages[0].ProdutoID)
	assert.Equal(t, 1, ise.Shortages[0].Disponivel)
	assert.Equal(t, 3, ise.Shortages[0].Solicitado)

	assert.Equal(t, 10, f.estoque(t, mesa), "ningún producto pierde estoque")
	assert.Equal(t, 1, f.estoque(t, cadeira))
	list, err := f.uc.List(context.Background(), dto.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.pub.types())
}

func TestCreate_DemandaAgregadaPorProducto(t *testing.T) {
	f := newFixture(t)
	mesa := f.produto(t, "Mesa", "100", 4)

	// 2 + 3 > 4 aunque cada línea por separado cabe
	_, err := f.uc.Create(context.Background(), f.request(item(mesa, "2", "100"), item(mesa, "3", "100")))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 4, f.estoque(t, mesa))
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	mesa := f.produto(t, "Mesa", "100", 4)

	cases := map[string]struct {
		req   dto.CreateVendaRequest
		field string
	}{
		"sin ítems":            {f.request(), "items"},
		"cantidad no numérica": {f.request(item(mesa, "abc", "1")), "items[0].quantidade"},
		"cantidad cero":        {f.request(item(mesa, "0", "1")), "items[0].quantidade"},
		"cantidad negativa":    {f.request(item(mesa, "-18446744073709551615", "1")), "items[0].quantidade"},
		"precio negativo":      {f.request(item(mesa, "1", "-1")), "items[0].precoUnit"},
		"status desconocido": {
			dto.CreateVendaRequest{ClienteID: f.cliente, VendedorID: f.vendedor, Status: "Enviada", Items: []dto.VendaItemRequest{item(mesa, "1", "1")}},
			"status",
		},
		"cliente mal formado": {
			dto.CreateVendaRequest{ClienteID: "x", VendedorID: f.vendedor, Items: []dto.VendaItemRequest{item(mesa, "1", "1")}},
			"clienteId",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), tc.req)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "err = %v", err)
			assert.Contains(t, ve.Fields, tc.field)
		})
	}
	assert.Equal(t, 4, f.estoque(t, mesa))
}

func TestCreate_TotalForaDoIntervalo(t *testing.T) {
	f := newFixture(t)
	mesa := f.produto(t, "Mesa", "1", 20)

	_, err := f.uc.Create(context.Background(), f.request(item(mesa, "10", "999999999999.99")))
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "err = %v", err)
	assert.Equal(t, "total fora do intervalo permitido", ve.Fields["items"])
	assert.Equal(t, 20, f.estoque(t, mesa))
	assert.Empty(t, f.pub.types())
}

func TestCreate_ReferenciasInexistentes(t *testing.T) {
	f := newFixture(t)
	mesa := f.produto(t, "Mesa", "100", 4)

	_, err := f.uc.Create(context.Background(), f.request(item(uuid.New().String(), "1", "1")))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req := f.request(item(mesa, "1", "1"))
	req.ClienteID = uuid.New().String()
	_, err = f.uc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 4, f.estoque(t, mesa))
}

func TestCreateDelete_RestauraEstoque(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mesa := f.produto(t, "Mesa", "100", 10)
	cadeira := f.produto(t, "Cadeira", "50", 8)

	res, err := f.uc.Create(ctx, f.request(item(mesa, "4", "100"), item(cadeira, "2", "50"), item(mesa, "1", "90")))
	require.NoError(t, err)
	assert.Equal(t, 5, f.estoque(t, mesa))

	require.NoError(t, f.uc.Delete(ctx, res.ID))
	assert.Equal(t, 10, f.estoque(t, mesa))
	assert.Equal(t, 8, f.estoque(t, cadeira))

	_, err = f.uc.GetByID(ctx, res.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// segundo delete: NotFound y no devuelve estoque otra vez
	assert.ErrorIs(t, f.uc.Delete(ctx, res.ID), domain.ErrNotFound)
	assert.Equal(t, 10, f.estoque(t, mesa))
	assert.Equal(t, []string{events.VendaCriada, events.VendaExcluida}, f.pub.types())
}

func TestCreate_Concurrente(t *testing.T) {
	f := newFixture(t)
	mesa := f.produto(t, "Mesa", "100", 5)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Create(context.Background(), f.request(item(mesa, "3", "100")))
		}(i)
	}
	wg.Wait()

	ok, sinEstoque := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			sinEstoque++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, sinEstoque)
	assert.Equal(t, 2, f.estoque(t, mesa))
}

func TestUpdateStatus_NoTocaTotalNiEstoque(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mesa := f.produto(t, "Mesa", "100", 5)
	res, err := f.uc.Create(ctx, f.request(item(mesa, "2", "100")))
	require.NoError(t, err)

	status := "cancelada"
	upd, err := f.uc.UpdateStatus(ctx, res.ID, dto.UpdateVendaRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.VendaCancelada, upd.Status)
	assert.True(t, upd.Total.Equal(res.Total))
	assert.Equal(t, 3, f.estoque(t, mesa))

	bad := "Enviada"
	_, err = f.uc.UpdateStatus(ctx, res.ID, dto.UpdateVendaRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateStatus(ctx, res.ID, dto.UpdateVendaRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.UpdateStatus(ctx, uuid.New().String(), dto.UpdateVendaRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_OrdenYFiltros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mesa := f.produto(t, "Mesa", "100", 50)

	antiga := f.request(item(mesa, "1", "100"))
	antiga.Data = time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	_, err := f.uc.Create(ctx, antiga)
	require.NoError(t, err)

	nova := f.request(item(mesa, "1", "100"))
	nova.Status = entity.VendaPendente
	_, err = f.uc.Create(ctx, nova)
	require.NoError(t, err)

	list, err := f.uc.List(ctx, dto.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Data.After(list[1].Data), "más reciente primero")

	list, err = f.uc.List(ctx, dto.ListFilter{Status: "pendente"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = f.uc.List(ctx, dto.ListFilter{Q: "silva"})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
