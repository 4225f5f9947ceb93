package handlers

import (
	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type OperatingHourHandler struct {
	service *services.OperatingHourService
}

func NewOperatingHourHandler(service *services.OperatingHourService) *OperatingHourHandler {
	return &OperatingHourHandler{service: service}
}

func (h *OperatingHourHandler) List(c *fiber.Ctx) error {
	scID, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	week, err := h.service.List(c.UserContext(), tenant.GetUserID(c), scID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(week)
}

func (h *OperatingHourHandler) Upsert(c *fiber.Ctx) error {
	scID, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpsertOperatingHoursRequest
	if err := parseOwnedBody(c, &req, func() error {
		return h.service.Authorize(c.UserContext(), tenant.GetUserID(c), scID)
	}); err != nil {
		return fail(c, err)
	}

	week, err := h.service.Upsert(c.UserContext(), tenant.GetUserID(c), scID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(week)
}
