package handlers

import (
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service *services.DashboardService
}

func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.UserContext(), tenant.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
