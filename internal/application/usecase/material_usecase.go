package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/application/events"
	"github.com/jhoicas/gestao-api/internal/application/validation"
	"github.com/jhoicas/gestao-api/internal/domain"
	"github.com/jhoicas/gestao-api/internal/domain/entity"
	"github.com/jhoicas/gestao-api/internal/domain/repository"
	"github.com/jhoicas/gestao-api/pkg/logger"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

const (
	bulkDeleteMax         = 200
	bulkDeleteConcurrency = 4
)

// MaterialUseCase CRUD de materiales, resumen del estoque y borrado masivo.
// No hay descuento automático: los presupuestos no consumen materiales.
type MaterialUseCase struct {
	repo      repository.MaterialRepository
	publisher events.Publisher
	log       *logger.Logger
}

// NewMaterialUseCase construye el caso de uso. publisher puede ser events.Nop{}.
func NewMaterialUseCase(repo repository.MaterialRepository, publisher events.Publisher, log *logger.Logger) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, publisher: publisher, log: log}
}

// Create valida y persiste un material.
func (uc *MaterialUseCase) Create(ctx context.Context, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	v := validation.New()
	m := &entity.Material{
		Name:        v.Required("name", in.Name),
		Type:        v.OneOf("type", in.Type, entity.MaterialTypes),
		Description: strings.TrimSpace(in.Description),
		Quantity:    v.Decimal("quantity", in.Quantity, validation.Stock),
		Unit:        v.Required("unit", in.Unit),
		Price:       v.Decimal("price", in.Price, validation.Money),
		MinStock:    v.Decimal("minStock", in.MinStock, validation.Stock.Optional()),
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	m.ID = uuid.New().String()
	m.CreatedAt = now()
	m.UpdatedAt = m.CreatedAt
	if err := uc.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.notifyLowStock(ctx, m)
	return toMaterialResponse(m), nil
}

// GetByID obtiene un material por ID.
func (uc *MaterialUseCase) GetByID(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	m, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(m), nil
}

// Update aplica solo los campos presentes, con las mismas reglas de Create.
func (uc *MaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := validation.New()
	if in.Name != nil {
		m.Name = v.Required("name", *in.Name)
	}
	if in.Type != nil {
		m.Type = v.OneOf("type", *in.Type, entity.MaterialTypes)
	}
	if in.Description != nil {
		m.Description = strings.TrimSpace(*in.Description)
	}
	if in.Unit != nil {
		m.Unit = v.Required("unit", *in.Unit)
	}
	if in.Quantity.IsSet() {
		m.Quantity = v.Decimal("quantity", in.Quantity, validation.Stock)
	}
	if in.Price.IsSet() {
		m.Price = v.Decimal("price", in.Price, validation.Money)
	}
	if in.MinStock.IsSet() {
		m.MinStock = v.Decimal("minStock", in.MinStock, validation.Stock)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	m.UpdatedAt = now()
	if err := uc.repo.Update(ctx, m); err != nil {
		return nil, wrapNotFound(err, "material", id)
	}
	uc.notifyLowStock(ctx, m)
	return toMaterialResponse(m), nil
}

// Delete elimina el material; ErrInUse si algún presupuesto lo referencia.
func (uc *MaterialUseCase) Delete(ctx context.Context, id string) error {
	if err := checkID("material", id); err != nil {
		return err
	}
	return wrapNotFound(uc.repo.Delete(ctx, id), "material", id)
}

// List lista materiales por nombre con filtros opcionales de texto, tipo y estoque bajo.
func (uc *MaterialUseCase) List(ctx context.Context, f dto.ListFilter) ([]dto.MaterialResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		if !textsearch.Contains(m.Name+" "+m.Description, f.Q) {
			continue
		}
		if f.Type != "" && !strings.EqualFold(m.Type, f.Type) {
			continue
		}
		if f.LowStock && !m.LowStock() {
			continue
		}
		out = append(out, *toMaterialResponse(m))
	}
	return out, nil
}

// Resumo totales de la página de estoque.
func (uc *MaterialUseCase) Resumo(ctx context.Context) (*dto.EstoqueResumoResponse, error) {
	r, err := uc.repo.Resumo(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.EstoqueResumoResponse{
		TotalItens:   r.TotalItens,
		AbaixoMinimo: r.AbaixoMinimo,
		ValorTotal:   r.ValorTotal.Round(2),
	}, nil
}

// BulkDelete elimina cada id de forma independiente (no atómica). Un fallo no detiene a los demás;
// el resultado se informa por id en el orden recibido.
func (uc *MaterialUseCase) BulkDelete(ctx context.Context, in dto.BulkDeleteRequest) (*dto.BulkDeleteResponse, error) {
	if len(in.IDs) == 0 {
		return nil, domain.Invalid("ids", "informe ao menos um id")
	}
	if len(in.IDs) > bulkDeleteMax {
		return nil, domain.Invalid("ids", "máximo de 200 ids por requisição")
	}

	results := make([]dto.BulkDeleteResult, len(in.IDs))
	var g errgroup.Group
	g.SetLimit(bulkDeleteConcurrency)
	for i, id := range in.IDs {
		g.Go(func() error {
			results[i] = uc.deleteOne(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	out := &dto.BulkDeleteResponse{Resultados: results}
	for _, r := range results {
		if r.Status == dto.BulkDeleted {
			out.Excluidos++
		} else {
			out.Falhas++
		}
	}
	return out, nil
}

func (uc *MaterialUseCase) deleteOne(ctx context.Context, id string) dto.BulkDeleteResult {
	err := uc.Delete(ctx, id)
	switch {
	case err == nil:
		return dto.BulkDeleteResult{ID: id, Status: dto.BulkDeleted}
	case errors.Is(err, domain.ErrNotFound):
		return dto.BulkDeleteResult{ID: id, Status: dto.BulkNotFound}
	case errors.Is(err, domain.ErrInUse):
		return dto.BulkDeleteResult{ID: id, Status: dto.BulkInUse, Error: domain.ErrInUse.Error()}
	default:
		uc.log.Error().Err(err).Str("material_id", id).Msg("bulk delete")
		return dto.BulkDeleteResult{ID: id, Status: dto.BulkError, Error: "erro interno"}
	}
}

func (uc *MaterialUseCase) get(ctx context.Context, id string) (*entity.Material, error) {
	if err := checkID("material", id); err != nil {
		return nil, err
	}
	m, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.NotFound("material", id)
	}
	return m, nil
}

func (uc *MaterialUseCase) notifyLowStock(ctx context.Context, m *entity.Material) {
	if !m.LowStock() {
		return
	}
	events.Emit(ctx, uc.publisher, uc.log, events.New(events.MaterialEstoqueBaixo, map[string]any{
		"id":       m.ID,
		"name":     m.Name,
		"quantity": m.Quantity,
		"minStock": m.MinStock,
		"unit":     m.Unit,
	}))
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:          m.ID,
		Name:        m.Name,
		Type:        m.Type,
		Description: m.Description,
		Quantity:    m.Quantity,
		Unit:        m.Unit,
		Price:       m.Price,
		MinStock:    m.MinStock,
		LowStock:    m.LowStock(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
