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

// VendedorUseCase casos de uso CRUD para vendedores.
type VendedorUseCase struct {
	repo   repository.VendedorRepository
	vendas repository.VendaRepository
}

// NewVendedorUseCase construye el caso de uso.
func NewVendedorUseCase(repo repository.VendedorRepository, vendas repository.VendaRepository) *VendedorUseCase {
	return &VendedorUseCase{repo: repo, vendas: vendas}
}

// Create crea un vendedor; status ausente = Ativo.
func (uc *VendedorUseCase) Create(ctx context.Context, in dto.CreateVendedorRequest) (*dto.VendedorResponse, error) {
	v := validation.New()
	vd := &entity.Vendedor{
		Nome:       v.Required("nome", in.Nome),
		Email:      v.Email("email", v.Required("email", in.Email)),
		Telefone:   strings.TrimSpace(in.Telefone),
		Comissao:   v.Decimal("comissao", in.Comissao, validation.Percent.Optional()),
		MetaMensal: v.Decimal("metaMensal", in.MetaMensal, validation.Money.Optional()),
		Status:     entity.VendedorAtivo,
	}
	if strings.TrimSpace(in.Status) != "" {
		vd.Status = v.OneOf("status", in.Status, []string{entity.VendedorAtivo, entity.VendedorInativo})
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	vd.ID = uuid.New().String()
	vd.CreatedAt = now()
	vd.UpdatedAt = vd.CreatedAt
	if err := uc.repo.Create(ctx, vd); err != nil {
		return nil, err
	}
	return toVendedorResponse(vd), nil
}

// GetByID obtiene el vendedor con el resumen de sus ventas (más recientes primero).
func (uc *VendedorUseCase) GetByID(ctx context.Context, id string) (*dto.VendedorResponse, error) {
	vd, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	vendas, err := uc.vendas.ListByVendedor(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toVendedorResponse(vd)
	out.Vendas = make([]dto.VendaResumoResponse, 0, len(vendas))
	for _, vv := range vendas {
		out.Vendas = append(out.Vendas, dto.VendaResumoResponse{ID: vv.ID, Data: vv.Data, Total: vv.Total, Status: vv.Status})
	}
	return out, nil
}

// Update actualiza los campos presentes.
func (uc *VendedorUseCase) Update(ctx context.Context, id string, in dto.UpdateVendedorRequest) (*dto.VendedorResponse, error) {
	vd, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := validation.New()
	if in.Nome != nil {
		vd.Nome = v.Required("nome", *in.Nome)
	}
	if in.Email != nil {
		vd.Email = v.Email("email", v.Required("email", *in.Email))
	}
	if in.Telefone != nil {
		vd.Telefone = strings.TrimSpace(*in.Telefone)
	}
	if in.Comissao.IsSet() {
		vd.Comissao = v.Decimal("comissao", in.Comissao, validation.Percent)
	}
	if in.MetaMensal.IsSet() {
		vd.MetaMensal = v.Decimal("metaMensal", in.MetaMensal, validation.Money)
	}
	if in.Status != nil {
		vd.Status = v.OneOf("status", *in.Status, []string{entity.VendedorAtivo, entity.VendedorInativo})
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	vd.UpdatedAt = now()
	if err := uc.repo.Update(ctx, vd); err != nil {
		return nil, wrapNotFound(err, "vendedor", id)
	}
	return toVendedorResponse(vd), nil
}

// Delete elimina el vendedor; ErrInUse si tiene ventas.
func (uc *VendedorUseCase) Delete(ctx context.Context, id string) error {
	if err := checkID("vendedor", id); err != nil {
		return err
	}
	return wrapNotFound(uc.repo.Delete(ctx, id), "vendedor", id)
}

// List lista vendedores por nombre; status filtra Ativo/Inativo.
func (uc *VendedorUseCase) List(ctx context.Context, f dto.ListFilter) ([]dto.VendedorResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendedorResponse, 0, len(list))
	for _, vd := range list {
		if !textsearch.Contains(vd.Nome+" "+vd.Email, f.Q) {
			continue
		}
		if f.Status != "" && !strings.EqualFold(vd.Status, f.Status) {
			continue
		}
		out = append(out, *toVendedorResponse(vd))
	}
	return out, nil
}

func (uc *VendedorUseCase) get(ctx context.Context, id string) (*entity.Vendedor, error) {
	if err := checkID("vendedor", id); err != nil {
		return nil, err
	}
	vd, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vd == nil {
		return nil, domain.NotFound("vendedor", id)
	}
	return vd, nil
}

func toVendedorResponse(v *entity.Vendedor) *dto.VendedorResponse {
	return &dto.VendedorResponse{
		ID:         v.ID,
		Nome:       v.Nome,
		Email:      v.Email,
		Telefone:   v.Telefone,
		Comissao:   v.Comissao,
		MetaMensal: v.MetaMensal,
		Status:     v.Status,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
