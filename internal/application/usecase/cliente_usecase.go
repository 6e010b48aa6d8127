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
	"github.com/jhoicas/gestao-api/pkg/documento"
	"github.com/jhoicas/gestao-api/pkg/textsearch"
)

// ClienteUseCase casos de uso CRUD para clientes.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create valida y persiste un cliente nuevo.
func (uc *ClienteUseCase) Create(ctx context.Context, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	c := &entity.Cliente{
		Nome:     in.Nome,
		Email:    in.Email,
		Telefone: in.Telefone,
		CPF:      in.CPF,
		CNPJ:     in.CNPJ,
		Endereco: in.Endereco,
		Cidade:   in.Cidade,
		Estado:   in.Estado,
		CEP:      in.CEP,
	}
	if err := normalizeCliente(c); err != nil {
		return nil, err
	}
	c.ID = uuid.New().String()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// GetByID obtiene un cliente por ID.
func (uc *ClienteUseCase) GetByID(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClienteResponse(c), nil
}

// Update aplica los campos presentes y revalida el cliente completo.
func (uc *ClienteUseCase) Update(ctx context.Context, id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	setIf(&c.Nome, in.Nome)
	setIf(&c.Email, in.Email)
	setIf(&c.Telefone, in.Telefone)
	setIf(&c.CPF, in.CPF)
	setIf(&c.CNPJ, in.CNPJ)
	setIf(&c.Endereco, in.Endereco)
	setIf(&c.Cidade, in.Cidade)
	setIf(&c.Estado, in.Estado)
	setIf(&c.CEP, in.CEP)
	if err := normalizeCliente(c); err != nil {
		return nil, err
	}
	c.UpdatedAt = now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, wrapNotFound(err, "cliente", id)
	}
	return toClienteResponse(c), nil
}

// Delete elimina el cliente; falla con ErrInUse si tiene ventas o presupuestos.
func (uc *ClienteUseCase) Delete(ctx context.Context, id string) error {
	if err := checkID("cliente", id); err != nil {
		return err
	}
	return wrapNotFound(uc.repo.Delete(ctx, id), "cliente", id)
}

// List lista clientes por nombre; q filtra por nombre, e-mail o documento.
func (uc *ClienteUseCase) List(ctx context.Context, f dto.ListFilter) ([]dto.ClienteResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		if !matchCliente(c, f.Q) {
			continue
		}
		out = append(out, *toClienteResponse(c))
	}
	return out, nil
}

func (uc *ClienteUseCase) get(ctx context.Context, id string) (*entity.Cliente, error) {
	if err := checkID("cliente", id); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NotFound("cliente", id)
	}
	return c, nil
}

// normalizeCliente recorta, valida y deja CPF/CNPJ/CEP solo con dígitos.
func normalizeCliente(c *entity.Cliente) error {
	v := validation.New()
	c.Nome = v.Required("nome", c.Nome)
	c.Telefone = v.Required("telefone", c.Telefone)
	c.Email = v.Email("email", c.Email)

	c.CPF = strings.TrimSpace(c.CPF)
	if c.CPF != "" {
		if err := documento.ValidateCPF(c.CPF); err != nil {
			v.Add("cpf", err.Error())
		}
		c.CPF = documento.Digits(c.CPF)
	}
	c.CNPJ = strings.TrimSpace(c.CNPJ)
	if c.CNPJ != "" {
		if err := documento.ValidateCNPJ(c.CNPJ); err != nil {
			v.Add("cnpj", err.Error())
		}
		c.CNPJ = documento.Digits(c.CNPJ)
	}
	if c.CPF == "" && c.CNPJ == "" && !v.Has("cpf") && !v.Has("cnpj") {
		v.Add("cpf", "informe CPF ou CNPJ")
	}

	c.Endereco = strings.TrimSpace(c.Endereco)
	c.Cidade = strings.TrimSpace(c.Cidade)
	c.Estado = strings.ToUpper(strings.TrimSpace(c.Estado))
	if c.Estado != "" && len(c.Estado) != 2 {
		v.Add("estado", "use a sigla da UF")
	}
	if cep := strings.TrimSpace(c.CEP); cep != "" {
		c.CEP = documento.Digits(cep)
		if len(c.CEP) != 8 {
			v.Add("cep", "CEP deve ter 8 dígitos")
		}
	} else {
		c.CEP = ""
	}
	return v.Err()
}

func matchCliente(c *entity.Cliente, q string) bool {
	if textsearch.Contains(c.Nome+" "+c.Email, q) {
		return true
	}
	d := documento.Digits(q)
	return d != "" && (strings.Contains(c.CPF, d) || strings.Contains(c.CNPJ, d))
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID,
		Nome:      c.Nome,
		Email:     c.Email,
		Telefone:  c.Telefone,
		CPF:       c.CPF,
		CNPJ:      c.CNPJ,
		Endereco:  c.Endereco,
		Cidade:    c.Cidade,
		Estado:    c.Estado,
		CEP:       c.CEP,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
