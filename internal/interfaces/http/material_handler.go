package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestao-api/internal/application/dto"
	"github.com/jhoicas/gestao-api/internal/application/usecase"
)

// MaterialHandler maneja las peticiones HTTP del estoque de materiales.
type MaterialHandler struct {
	uc *usecase.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *usecase.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Create godoc
// @Summary      Crear material
// @Tags         materials
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMaterialRequest  true  "Datos del material"
// @Success      200   {object}  dto.MaterialResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar materiales
// @Tags         materials
// @Produce      json
// @Param        q         query  string  false  "Búsqueda por nombre (sin acentos)"
// @Param        type      query  string  false  "Chapa, Ferragem o Acabamento"
// @Param        lowStock  query  bool    false  "Solo bajo el mínimo"
// @Success      200       {array}  dto.MaterialResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
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

func (h *MaterialHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// BulkDelete POST /api/materials/bulk-delete
// No es atómico: la respuesta informa el resultado de cada id.
func (h *MaterialHandler) BulkDelete(c *fiber.Ctx) error {
	var in dto.BulkDeleteRequest
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	out, err := h.uc.BulkDelete(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Resumo GET /api/materials/resumo
func (h *MaterialHandler) Resumo(c *fiber.Ctx) error {
	out, err := h.uc.Resumo(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
