package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mistock-api/internal/application/analytics"
)

// AnalyticsHandler expone las agregaciones de analítica (protegido).
type AnalyticsHandler struct {
	uc *analytics.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// CategoriesRevenue godoc
// @Summary      Ingresos e inventario por categoría
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryRevenueDTO
// @Router       /api/analytics/categories-revenue [get]
func (h *AnalyticsHandler) CategoriesRevenue(c *fiber.Ctx) error {
	out, err := h.uc.CategoriesRevenue(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InventoryTrend godoc
// @Summary      Tendencia mensual del inventario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        months  query  int  false  "Meses a incluir (1-24)"  default(6)
// @Success      200  {array}  dto.InventoryTrendPointDTO
// @Router       /api/analytics/inventory-trend [get]
func (h *AnalyticsHandler) InventoryTrend(c *fiber.Ctx) error {
	out, err := h.uc.InventoryTrend(c.Context(), GetUserID(c), c.QueryInt("months", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
