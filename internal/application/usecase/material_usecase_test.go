package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/application/events"
	"github.com/jhoicas/gestao-api/internal/application/usecase"
	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/infrastructure/memory"
	"github.com/jhoicas/gestao-api/pkg/logger"
)

type eventosSpy struct {
	mu    sync.Mutex
	tipos []string
}

func (s *eventosSpy) Publish(_ context.Context, ev events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tipos = append(s.tipos, ev.Type)
	return nil
}

func newMaterialUC(store *memory.Store) (*usecase.MaterialUseCase, *eventosSpy) {
	spy := &eventosSpy{}
	return usecase.NewMaterialUseCase(store.Materiais(), spy, logger.Nop()), spy
}

func materialReq(name, qty, min string) dto.CreateMaterialRequest {
	return dto.CreateMaterialRequest{
		Name:     name,
		Type:     "chapa",
		Quantity: dto.NumberOf(qty),
		Unit:     "un",
		Price:    dto.NumberOf("89.90"),
		MinStock: dto.NumberOf(min),
	}
}

func TestMaterial_LowStock(t *testing.T) {
	uc, spy := newMaterialUC(memory.NewStore())
	ctx := context.Background()

	baixo, err := uc.Create(ctx, materialReq("MDF", "10", "15"))
	require.NoError(t, err)
	assert.True(t, baixo.LowStock)
	assert.Equal(t, entity.MaterialChapa, baixo.Type)

	ok, err := uc.Create(ctx, materialReq("Compensado", "20", "15"))
	require.NoError(t, err)
	assert.False(t, ok.LowStock)
	assert.Equal(t, []string{events.MaterialEstoqueBaixo}, spy.tipos)

	list, err := uc.List(ctx, dto.ListFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "MDF", list[0].Name)
}

func TestMaterial_NumerosComoTexto(t *testing.T) {
	uc, _ := newMaterialUC(memory.NewStore())

	req := materialReq("MDF", "abc", "15")
	req.Price = dto.NumberOf("12,5")
	_, err := uc.Create(context.Background(), req)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "número inválido", ve.Fields["quantity"])
	assert.NotContains(t, ve.Fields, "price", "vírgula decimal é aceita")
}

func TestMaterial_UpdateParcial(t *testing.T) {
	uc, _ := newMaterialUC(memory.NewStore())
	ctx := context.Background()
	m, err := uc.Create(ctx, materialReq("MDF", "30", "15"))
	require.NoError(t, err)

	upd, err := uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{Quantity: dto.NumberOf("12.5")})
	require.NoError(t, err)
	assert.Equal(t, "MDF", upd.Name)
	assert.True(t, upd.Quantity.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, upd.LowStock)

	_, err = uc.Update(ctx, m.ID, dto.UpdateMaterialRequest{Price: dto.NumberOf("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(ctx, uuid.New().String(), dto.UpdateMaterialRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMaterial_BulkDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc, _ := newMaterialUC(store)

	livre, err := uc.Create(ctx, materialReq("Verniz", "5", "1"))
	require.NoError(t, err)
	usado, err := uc.Create(ctx, materialReq("MDF", "5", "1"))
	require.NoError(t, err)

	cliente := uuid.New().String()
	require.NoError(t, store.Clientes().Create(ctx, &entity.Cliente{ID: cliente, Nome: "C"}))
	require.NoError(t, store.Orcamentos().Create(ctx, &entity.Orcamento{
		ID: uuid.New().String(), ClienteID: cliente, Status: entity.OrcamentoPendente,
		Itens: []entity.OrcamentoItem{{ID: uuid.New().String(), Descricao: "Armário", Quantidade: decimal.NewFromInt(1),
			Materiais: []entity.OrcamentoMaterial{{ID: uuid.New().String(), MaterialID: usado.ID, Quantidade: decimal.NewFromInt(2)}}}},
	}))

	inexistente := uuid.New().String()
	res, err := uc.BulkDelete(ctx, dto.BulkDeleteRequest{IDs: []string{livre.ID, usado.ID, inexistente}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Excluidos)
	assert.Equal(t, 2, res.Falhas)
	require.Len(t, res.Resultados, 3)
	assert.Equal(t, dto.BulkDeleted, res.Resultados[0].Status)
	assert.Equal(t, dto.BulkInUse, res.Resultados[1].Status)
	assert.Equal(t, dto.BulkNotFound, res.Resultados[2].Status)

	_, err = uc.GetByID(ctx, usado.ID)
	assert.NoError(t, err, "material referenciado no se borra")

	_, err = uc.BulkDelete(ctx, dto.BulkDeleteRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaterial_Resumo(t *testing.T) {
	uc, _ := newMaterialUC(memory.NewStore())
	ctx := context.Background()
	_, err := uc.Create(ctx, materialReq("MDF", "10", "15"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, materialReq("Compensado", "2", "0"))
	require.NoError(t, err)

	r, err := uc.Resumo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, r.TotalItens)
	assert.Equal(t, 1, r.AbaixoMinimo)
	assert.Equal(t, "1078.80", r.ValorTotal.StringFixed(2))
}
