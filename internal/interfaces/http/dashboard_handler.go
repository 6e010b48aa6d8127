package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestao-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetResumo devuelve las tarjetas del panel principal.
// GET /api/dashboard/resumo
//
// Respuesta: DashboardResumoDTO (totalVendas, quantidadeVendas, produtosVendidos,
// clientes, materiaisAbaixoMinimo, valorEstoque, referencia).
// Las ventas canceladas no suman.
func (h *DashboardHandler) GetResumo(c *fiber.Ctx) error {
	out, err := h.uc.GetResumo(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
