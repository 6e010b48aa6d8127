package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/application/orcamento"
)

// OrcamentoHandler maneja presupuestos; PUT reemplaza el grafo de ítems completo.
type OrcamentoHandler struct {
	uc *orcamento.UseCase
}

// NewOrcamentoHandler construye el handler.
func NewOrcamentoHandler(uc *orcamento.UseCase) *OrcamentoHandler {
	return &OrcamentoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear presupuesto
// @Tags         orcamentos
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OrcamentoRequest  true  "Cabecera, ítems y materiales"
// @Success      200   {object}  dto.OrcamentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orcamentos [post]
func (h *OrcamentoHandler) Create(c *fiber.Ctx) error {
	var in dto.OrcamentoRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *OrcamentoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List GET /api/orcamentos?status=
func (h *OrcamentoHandler) List(c *fiber.Ctx) error {
	f, err := listFilter(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar presupuesto
// @Description  Los ítems y materiales anteriores se eliminan y se recrean desde el payload.
// @Tags         orcamentos
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del presupuesto"
// @Param        body  body  dto.OrcamentoRequest  true  "Presupuesto completo"
// @Success      200   {object}  dto.OrcamentoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orcamentos/{id} [put]
func (h *OrcamentoHandler) Update(c *fiber.Ctx) error {
	var in dto.OrcamentoRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *OrcamentoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Resumo GET /api/orcamentos/resumo
func (h *OrcamentoHandler) Resumo(c *fiber.Ctx) error {
	out, err := h.uc.Resumo(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// PDF GET /api/orcamentos/:id/pdf
func (h *OrcamentoHandler) PDF(c *fiber.Ctx) error {
	b, filename, err := h.uc.PDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", filename))
	return c.Send(b)
}
