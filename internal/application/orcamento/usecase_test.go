package orcamento_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/application/orcamento"
	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/infrastructure/memory"
)

type pdfFake struct{ numero string }

func (p *pdfFake) GenerateOrcamento(o *entity.Orcamento) ([]byte, error) {
	p.numero = o.Numero
	return []byte("%PDF-1.4"), nil
}

type fixture struct {
	store     *memory.Store
	uc        *orcamento.UseCase
	pdf       *pdfFake
	cliente   string
	mdf       string
	corredica string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	f := &fixture{
		store:     store,
		pdf:       &pdfFake{},
		cliente:   uuid.New().String(),
		mdf:       uuid.New().String(),
		corredica: uuid.New().String(),
	}
	f.uc = orcamento.NewUseCase(store, store.Orcamentos(), f.pdf)
	require.NoError(t, store.Clientes().Create(ctx, &entity.Cliente{ID: f.cliente, Nome: "João", Telefone: "11988887777"}))
	for id, nome := range map[string]string{f.mdf: "MDF Branco 15mm", f.corredica: "Corrediça 45cm"} {
		require.NoError(t, store.Materiais().Create(ctx, &entity.Material{
			ID: id, Name: nome, Type: entity.MaterialChapa, Unit: "un",
			Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(100),
		}))
	}
	return f
}

func (f *fixture) request(itens ...dto.OrcamentoItemRequest) dto.OrcamentoRequest {
	return dto.OrcamentoRequest{Numero: "ORC-001", Data: "2026-03-10", ClienteID: f.cliente, Itens: itens}
}

func itemReq(desc, qtd, valor string, mats ...dto.OrcamentoMaterialRequest) dto.OrcamentoItemRequest {
	return dto.OrcamentoItemRequest{Descricao: desc, Quantidade: dto.NumberOf(qtd), ValorUnitario: dto.NumberOf(valor), Materiais: mats}
}

func matReq(id, qtd string) dto.OrcamentoMaterialRequest {
	return dto.OrcamentoMaterialRequest{MaterialID: id, Quantidade: dto.NumberOf(qtd)}
}

func TestCreate_ValorTotalCalculadoEnServidor(t *testing.T) {
	f := newFixture(t)
	res, err := f.uc.Create(context.Background(), f.request(
		itemReq("Armário", "2", "1500.50", matReq(f.mdf, "4"), matReq(f.corredica, "6")),
		itemReq("Prateleira", "3", "99.99"),
	))
	require.NoError(t, err)

	assert.Equal(t, "3300.97", res.ValorTotal.StringFixed(2))
	assert.Equal(t, entity.OrcamentoPendente, res.Status)
	assert.Equal(t, "João", res.Cliente.Nome)
	require.Len(t, res.Itens, 2)
	require.Len(t, res.Itens[0].Materiais, 2)
	assert.Equal(t, "MDF Branco 15mm", res.Itens[0].Materiais[0].Material.Name)
}

func TestCreate_NoTocaCantidadDeMateriales(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), f.request(itemReq("Armário", "1", "10", matReq(f.mdf, "8"))))
	require.NoError(t, err)

	m, err := f.store.Materiais().GetByID(context.Background(), f.mdf)
	require.NoError(t, err)
	assert.True(t, m.Quantity.Equal(decimal.NewFromInt(10)))
}

func TestCreate_AceptaIdComoReferenciaDeMaterial(t *testing.T) {
	f := newFixture(t)
	req := f.request(itemReq("Armário", "1", "10", dto.OrcamentoMaterialRequest{ID: f.mdf, Quantidade: dto.NumberOf("1")}))
	res, err := f.uc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, f.mdf, res.Itens[0].Materiais[0].MaterialID)
}

func TestCreate_ReferenciasYValidacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.request(itemReq("Armário", "1", "10", matReq(uuid.New().String(), "1"))))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req := f.request()
	req.ClienteID = uuid.New().String()
	_, err = f.uc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Create(ctx, f.request(itemReq("", "abc", "10")))
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "itens[0].descricao")
	assert.Contains(t, ve.Fields, "itens[0].quantidade")

	list, err := f.uc.List(ctx, dto.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreate_ValorTotalForaDoIntervalo(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), f.request(itemReq("Painel", "10", "999999999999.99")))
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "err = %v", err)
	assert.Equal(t, "total fora do intervalo permitido", ve.Fields["itens"])
}

func TestUpdate_ReemplazaItensCompletos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.uc.Create(ctx, f.request(
		itemReq("Armário", "1", "1000", matReq(f.mdf, "4")),
		itemReq("Gaveteiro", "1", "500", matReq(f.corredica, "2")),
	))
	require.NoError(t, err)

	upd := f.request(itemReq("Cozinha planejada", "1", "8000", matReq(f.corredica, "10")))
	upd.Status = "aprovado"
	upd.Numero = ""
	out, err := f.uc.Update(ctx, res.ID, upd)
	require.NoError(t, err)
	assert.Equal(t, "ORC-001", out.Numero, "número ausente conserva el anterior")

	got, err := f.uc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, got.Itens, 1, "no quedan ítems anteriores")
	assert.Equal(t, "Cozinha planejada", got.Itens[0].Descricao)
	require.Len(t, got.Itens[0].Materiais, 1)
	assert.Equal(t, f.corredica, got.Itens[0].Materiais[0].MaterialID)
	assert.Equal(t, entity.OrcamentoAprovado, got.Status)
	assert.Equal(t, "8000.00", got.ValorTotal.StringFixed(2))
	assert.Equal(t, res.CreatedAt, got.CreatedAt)

	// el mdf ya no está referenciado y puede borrarse
	assert.NoError(t, f.store.Materiais().Delete(ctx, f.mdf))
	assert.ErrorIs(t, f.store.Materiais().Delete(ctx, f.corredica), domain.ErrInUse)
}

func TestUpdate_FallaNoDejaCambios(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.uc.Create(ctx, f.request(itemReq("Armário", "1", "1000", matReq(f.mdf, "4"))))
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, res.ID, f.request(itemReq("Outro", "1", "1", matReq(uuid.New().String(), "1"))))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := f.uc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, got.Itens, 1)
	assert.Equal(t, "Armário", got.Itens[0].Descricao)

	_, err = f.uc.Update(ctx, uuid.New().String(), f.request())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.uc.Create(ctx, f.request(itemReq("Armário", "1", "1000", matReq(f.mdf, "4"))))
	require.NoError(t, err)

	assert.ErrorIs(t, f.store.Clientes().Delete(ctx, f.cliente), domain.ErrInUse)
	require.NoError(t, f.uc.Delete(ctx, res.ID))
	assert.ErrorIs(t, f.uc.Delete(ctx, res.ID), domain.ErrNotFound)
	assert.NoError(t, f.store.Materiais().Delete(ctx, f.mdf))
}

func TestResumoYFiltroPorStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, c := range []struct{ status, valor string }{
		{entity.OrcamentoAprovado, "100"},
		{entity.OrcamentoEmProducao, "250.50"},
		{entity.OrcamentoRejeitado, "999"},
		{"", "10"},
	} {
		req := f.request(itemReq("Item", "1", c.valor))
		req.Status = c.status
		_, err := f.uc.Create(ctx, req)
		require.NoError(t, err)
	}

	r, err := f.uc.Resumo(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 1, r.PorStatus[entity.OrcamentoPendente])
	assert.Equal(t, 1, r.PorStatus[entity.OrcamentoRejeitado])
	assert.Equal(t, "350.50", r.ValorAprovado.StringFixed(2))

	list, err := f.uc.List(ctx, dto.ListFilter{Status: "em produção"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.OrcamentoEmProducao, list[0].Status)

	_, err = f.uc.List(ctx, dto.ListFilter{Status: "Enviado"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.uc.Create(ctx, f.request(itemReq("Armário", "1", "1000")))
	require.NoError(t, err)

	b, name, err := f.uc.PDF(ctx, res.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	assert.Equal(t, "orcamento-ORC-001.pdf", name)
	assert.Equal(t, "ORC-001", f.pdf.numero)

	_, _, err = f.uc.PDF(ctx, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_NumeroGeneradoCuandoFalta(t *testing.T) {
	f := newFixture(t)
	req := f.request()
	req.Numero = ""
	res, err := f.uc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Regexp(t, `^ORC-\d{8}-[0-9A-F]{6}$`, res.Numero)
	assert.True(t, res.ValorTotal.IsZero())
}
