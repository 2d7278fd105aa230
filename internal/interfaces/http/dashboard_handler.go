package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmarte/equimed-api/internal/application/analytics"
)

// DashboardHandler expone los agregados del tablero (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats resumen del tablero de la organización.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context(), GetOrganizationID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}
