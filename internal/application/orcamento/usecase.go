// Package orcamento implementa presupuestos con su grafo de ítems y materiales.
// Los presupuestos nunca tocan la cantidad de los materiales.
package orcamento

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/application/validation"
	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
)

// UseCase casos de uso de presupuestos.
type UseCase struct {
	tx         TxRunner
	orcamentos repository.OrcamentoRepository
	pdf        PDFGenerator
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se expone el documento.
func NewUseCase(tx TxRunner, orcamentos repository.OrcamentoRepository, pdf PDFGenerator) *UseCase {
	return &UseCase{tx: tx, orcamentos: orcamentos, pdf: pdf}
}

// Create valida, comprueba cliente y materiales y persiste el grafo completo con valorTotal calculado.
func (uc *UseCase) Create(ctx context.Context, in dto.OrcamentoRequest) (*dto.OrcamentoResponse, error) {
	t := now()
	o, err := parse(in, t)
	if err != nil {
		return nil, err
	}
	o.ID = uuid.New().String()
	o.CreatedAt = t
	o.UpdatedAt = t
	if o.Numero == "" {
		o.Numero = gerarNumero(t)
	}
	assignIDs(o)

	err = uc.tx.RunOrcamento(ctx, func(r Repos) error {
		if err := resolve(ctx, r, o); err != nil {
			return err
		}
		return r.Orcamentos.Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return toOrcamentoResponse(o), nil
}

// Update reemplaza cabecera e ítems. Los ítems y materiales anteriores se borran y se recrean,
// así que después del update los ítems son exactamente los del payload.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.OrcamentoRequest) (*dto.OrcamentoResponse, error) {
	if !validation.ValidID(id) {
		return nil, domain.NotFound("orcamento", id)
	}
	t := now()
	o, err := parse(in, t)
	if err != nil {
		return nil, err
	}
	o.ID = id
	o.UpdatedAt = t
	assignIDs(o)

	err = uc.tx.RunOrcamento(ctx, func(r Repos) error {
		atual, err := r.Orcamentos.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if atual == nil {
			return domain.NotFound("orcamento", id)
		}
		o.CreatedAt = atual.CreatedAt
		if o.Numero == "" {
			o.Numero = atual.Numero
		}
		if err := resolve(ctx, r, o); err != nil {
			return err
		}
		if err := r.Orcamentos.UpdateHeader(ctx, o); err != nil {
			return wrapNotFound(err, id)
		}
		return r.Orcamentos.ReplaceItens(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return toOrcamentoResponse(o), nil
}

// Delete borra materiales, ítems y el presupuesto en una transacción.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if !validation.ValidID(id) {
		return domain.NotFound("orcamento", id)
	}
	return uc.tx.RunOrcamento(ctx, func(r Repos) error {
		return wrapNotFound(r.Orcamentos.Delete(ctx, id), id)
	})
}

// GetByID devuelve el presupuesto con cliente, ítems y materiales.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrcamentoResponse, error) {
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrcamentoResponse(o), nil
}

// List presupuestos del más reciente al más antiguo, opcionalmente filtrados por estado.
func (uc *UseCase) List(ctx context.Context, f dto.ListFilter) ([]dto.OrcamentoResponse, error) {
	status := ""
	if f.Status != "" {
		v := validation.New()
		status = v.OneOf("status", f.Status, entity.OrcamentoStatuses)
		if err := v.Err(); err != nil {
			return nil, err
		}
	}
	list, err := uc.orcamentos.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrcamentoResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrcamentoResponse(o))
	}
	return out, nil
}

// Resumo conteo por estado y valor aprobado (Aprovado + Em Produção).
func (uc *UseCase) Resumo(ctx context.Context) (*dto.OrcamentoResumoResponse, error) {
	rows, err := uc.orcamentos.ResumoPorStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.OrcamentoResumoResponse{PorStatus: make(map[string]int, len(entity.OrcamentoStatuses)), ValorAprovado: decimal.Zero}
	for _, s := range entity.OrcamentoStatuses {
		out.PorStatus[s] = 0
	}
	for _, r := range rows {
		out.Total += r.Quantidade
		out.PorStatus[r.Status] = r.Quantidade
		if r.Status == entity.OrcamentoAprovado || r.Status == entity.OrcamentoEmProducao {
			out.ValorAprovado = out.ValorAprovado.Add(r.Valor)
		}
	}
	return out, nil
}

// PDF documento imprimible; devuelve también el nombre de archivo sugerido.
func (uc *UseCase) PDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.pdf == nil {
		return nil, "", errors.New("orcamento: generador de PDF no configurado")
	}
	o, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateOrcamento(o)
	if err != nil {
		return nil, "", fmt.Errorf("orcamento: generar pdf: %w", err)
	}
	return b, "orcamento-" + o.Numero + ".pdf", nil
}

func (uc *UseCase) load(ctx context.Context, id string) (*entity.Orcamento, error) {
	if !validation.ValidID(id) {
		return nil, domain.NotFound("orcamento", id)
	}
	o, err := uc.orcamentos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.NotFound("orcamento", id)
	}
	return o, nil
}

// resolve comprueba cliente y materiales y completa las referencias de solo lectura.
func resolve(ctx context.Context, r Repos, o *entity.Orcamento) error {
	c, err := r.Clientes.GetByID(ctx, o.ClienteID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("cliente", o.ClienteID)
	}
	o.Cliente = c.Contato()

	refs := make(map[string]*entity.MaterialRef)
	for _, id := range o.MaterialIDs() {
		m, err := r.Materiais.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NotFound("material", id)
		}
		refs[id] = &entity.MaterialRef{ID: m.ID, Name: m.Name, Type: m.Type, Unit: m.Unit, Price: m.Price}
	}
	for i := range o.Itens {
		for j := range o.Itens[i].Materiais {
			o.Itens[i].Materiais[j].Material = refs[o.Itens[i].Materiais[j].MaterialID]
		}
	}
	return nil
}

func parse(in dto.OrcamentoRequest, t time.Time) (*entity.Orcamento, error) {
	v := validation.New()
	o := &entity.Orcamento{
		Numero:      strings.TrimSpace(in.Numero),
		Data:        v.Date("data", in.Data, t),
		Status:      entity.OrcamentoPendente,
		Observacoes: strings.TrimSpace(in.Observacoes),
		ClienteID:   v.ID("clienteId", in.ClienteID),
	}
	if strings.TrimSpace(in.Status) != "" {
		o.Status = v.OneOf("status", in.Status, entity.OrcamentoStatuses)
	}
	for i, it := range in.Itens {
		p := "itens[" + strconv.Itoa(i) + "]."
		item := entity.OrcamentoItem{
			Descricao:     v.Required(p+"descricao", it.Descricao),
			Quantidade:    v.Decimal(p+"quantidade", it.Quantidade, validation.Quantity),
			ValorUnitario: v.Decimal(p+"valorUnitario", it.ValorUnitario, validation.Money),
		}
		for j, m := range it.Materiais {
			mp := p + "materiais[" + strconv.Itoa(j) + "]."
			item.Materiais = append(item.Materiais, entity.OrcamentoMaterial{
				MaterialID: v.ID(mp+"materialId", m.Ref()),
				Quantidade: v.Decimal(mp+"quantidade", m.Quantidade, validation.Quantity),
			})
		}
		o.Itens = append(o.Itens, item)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	o.ValorTotal = o.CalcularTotal()
	if err := validation.Total("itens", o.ValorTotal); err != nil {
		return nil, err
	}
	return o, nil
}

// assignIDs genera ids nuevos para todo el grafo; en update los anteriores se descartan.
func assignIDs(o *entity.Orcamento) {
	for i := range o.Itens {
		it := &o.Itens[i]
		it.ID = uuid.New().String()
		it.OrcamentoID = o.ID
		for j := range it.Materiais {
			it.Materiais[j].ID = uuid.New().String()
			it.Materiais[j].OrcamentoItemID = it.ID
		}
	}
}

// gerarNumero número legible cuando el cliente no envía uno, ej: ORC-20261015-3F9A2C.
func gerarNumero(t time.Time) string {
	sufixo := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return "ORC-" + t.Format("20060102") + "-" + sufixo
}

func wrapNotFound(err error, id string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("orcamento", id)
	}
	return err
}

func now() time.Time { return time.Now().UTC() }
