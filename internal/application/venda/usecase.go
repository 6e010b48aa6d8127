// Package venda implementa el registro de ventas con reconciliación de estoque.
package venda

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/application/events"
	"github.com/jhoicas/gestao-api/internal/application/validation"
	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/estoque"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
	"github.com/jhoicas/gestao-api/pkg/logger"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

// UseCase crea, consulta, cambia de estado y elimina ventas.
// Crear descuenta el estoque y eliminar lo devuelve, siempre en una sola transacción.
type UseCase struct {
	tx        TxRunner
	vendas    repository.VendaRepository
	publisher events.Publisher
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, vendas repository.VendaRepository, publisher events.Publisher, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, vendas: vendas, publisher: publisher, log: log}
}

// linea ítem ya validado; sin precio se usa el precio actual del producto.
type linea struct {
	produtoID  string
	quantidade int
	precoUnit  decimal.Decimal
	precoSet   bool
}

type createCmd struct {
	clienteID  string
	vendedorID string
	status     string
	data       time.Time
	criada     time.Time
	linhas     []linea
}

// Create registra la venta. Orden dentro de la transacción:
//  1. cliente y vendedor existen
//  2. lock de los productos en orden de id (SELECT ... FOR UPDATE)
//  3. demanda agregada vs estoque; cualquier faltante aborta todo
//  4. inserta venta e ítems y descuenta estoque con guarda estoque >= qty
func (uc *UseCase) Create(ctx context.Context, in dto.CreateVendaRequest) (*dto.VendaResponse, error) {
	cmd, err := parseCreate(in)
	if err != nil {
		return nil, err
	}

	var created *entity.Venda
	err = uc.tx.RunVenda(ctx, func(r Repos) error {
		cliente, err := r.Clientes.GetByID(ctx, cmd.clienteID)
		if err != nil {
			return err
		}
		if cliente == nil {
			return domain.NotFound("cliente", cmd.clienteID)
		}
		vendedor, err := r.Vendedores.GetByID(ctx, cmd.vendedorID)
		if err != nil {
			return err
		}
		if vendedor == nil {
			return domain.NotFound("vendedor", cmd.vendedorID)
		}

		v := &entity.Venda{
			ID:         uuid.New().String(),
			ClienteID:  cliente.ID,
			VendedorID: vendedor.ID,
			Status:     cmd.status,
			Data:       cmd.data,
			Cliente:    cliente.Contato(),
			Vendedor:   vendedor.Contato(),
			CreatedAt:  cmd.criada,
			UpdatedAt:  cmd.criada,
		}
		for _, l := range cmd.linhas {
			v.Itens = append(v.Itens, entity.VendaItem{
				ID:         uuid.New().String(),
				VendaID:    v.ID,
				ProdutoID:  l.produtoID,
				Quantidade: l.quantidade,
				PrecoUnit:  l.precoUnit,
			})
		}

		demanda := estoque.Demanda(v.Itens)
		orden := estoque.OrdenBloqueo(demanda)
		produtos := make(map[string]*entity.Produto, len(orden))
		for _, id := range orden {
			p, err := r.Produtos.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.NotFound("produto", id)
			}
			produtos[id] = p
		}
		if err := estoque.Verificar(produtos, demanda); err != nil {
			return err
		}

		for i, l := range cmd.linhas {
			p := produtos[l.produtoID]
			if !l.precoSet {
				v.Itens[i].PrecoUnit = p.Preco
			}
			v.Itens[i].Produto = &entity.ProdutoRef{ID: p.ID, Nome: p.Nome, Preco: p.Preco}
		}
		v.Total = v.CalcularTotal()
		if err := validation.Total("items", v.Total); err != nil {
			return err
		}

		if err := r.Vendas.Create(ctx, v); err != nil {
			return err
		}
		for _, id := range orden {
			if err := r.Produtos.DecrementStock(ctx, id, demanda[id]); err != nil {
				return err
			}
		}
		created = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, uc.publisher, uc.log, events.New(events.VendaCriada, eventPayload(created)))
	return toVendaResponse(created), nil
}

// GetByID obtiene la venta con cliente, vendedor e ítems.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.VendaResponse, error) {
	if !validation.ValidID(id) {
		return nil, domain.NotFound("venda", id)
	}
	v, err := uc.vendas.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.NotFound("venda", id)
	}
	return toVendaResponse(v), nil
}

// List lista ventas de la más reciente a la más antigua.
// status filtra por estado; q busca en el nombre del cliente o del vendedor.
func (uc *UseCase) List(ctx context.Context, f dto.ListFilter) ([]dto.VendaResponse, error) {
	list, err := uc.vendas.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendaResponse, 0, len(list))
	for _, v := range list {
		if f.Status != "" && !strings.EqualFold(v.Status, f.Status) {
			continue
		}
		if f.Q != "" && !textsearch.Contains(contatoNome(v.Cliente)+" "+contatoNome(v.Vendedor), f.Q) {
			continue
		}
		out = append(out, *toVendaResponse(v))
	}
	return out, nil
}

// UpdateStatus cambia solo el estado. Total e ítems no se recalculan y el estoque no se toca.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateVendaRequest) (*dto.VendaResponse, error) {
	if !validation.ValidID(id) {
		return nil, domain.NotFound("venda", id)
	}
	if in.Status == nil {
		return nil, domain.Invalid("status", "campo obrigatório")
	}
	v := validation.New()
	status := v.OneOf("status", *in.Status, entity.VendaStatuses)
	if err := v.Err(); err != nil {
		return nil, err
	}
	err := uc.vendas.UpdateStatus(ctx, &entity.Venda{ID: id, Status: status, UpdatedAt: now()})
	if err != nil {
		return nil, wrapNotFound(err, id)
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina la venta y devuelve al estoque la cantidad de cada ítem.
// Un segundo delete concurrente ve la venta ya borrada y no devuelve nada.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if !validation.ValidID(id) {
		return domain.NotFound("venda", id)
	}
	var deleted *entity.Venda
	err := uc.tx.RunVenda(ctx, func(r Repos) error {
		v, err := r.Vendas.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if v == nil {
			return domain.NotFound("venda", id)
		}
		demanda := estoque.Demanda(v.Itens)
		for _, pid := range estoque.OrdenBloqueo(demanda) {
			if err := r.Produtos.IncrementStock(ctx, pid, demanda[pid]); err != nil {
				return wrapNotFound(err, pid)
			}
		}
		if err := r.Vendas.Delete(ctx, id); err != nil {
			return wrapNotFound(err, id)
		}
		deleted = v
		return nil
	})
	if err != nil {
		return err
	}
	events.Emit(ctx, uc.publisher, uc.log, events.New(events.VendaExcluida, eventPayload(deleted)))
	return nil
}

func parseCreate(in dto.CreateVendaRequest) (*createCmd, error) {
	v := validation.New()
	t := now()
	cmd := &createCmd{
		clienteID:  v.ID("clienteId", in.ClienteID),
		vendedorID: v.ID("vendedorId", in.VendedorID),
		status:     entity.VendaConcluida,
	}
	cmd.data = v.Date("data", in.Data, t)
	cmd.criada = t
	if strings.TrimSpace(in.Status) != "" {
		cmd.status = v.OneOf("status", in.Status, entity.VendaStatuses)
	}
	if len(in.Items) == 0 {
		v.Add("items", "informe ao menos um item")
	}
	for i, it := range in.Items {
		prefix := "items[" + itoa(i) + "]."
		l := linea{
			produtoID:  v.ID(prefix+"produtoId", it.ProdutoID),
			quantidade: v.Int(prefix+"quantidade", it.Quantidade, true, 1),
		}
		if it.PrecoUnit.IsSet() {
			l.precoUnit = v.Decimal(prefix+"precoUnit", it.PrecoUnit, validation.Money)
			l.precoSet = true
		}
		cmd.linhas = append(cmd.linhas, l)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	return cmd, nil
}
