package handlers

import (
	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type FieldHandler struct {
	service *services.FieldService
}

func NewFieldHandler(service *services.FieldService) *FieldHandler {
	return &FieldHandler{service: service}
}

func (h *FieldHandler) List(c *fiber.Ctx) error {
	scID, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	page, err := h.service.List(c.UserContext(), tenant.GetUserID(c), scID, pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

func (h *FieldHandler) Create(c *fiber.Ctx) error {
	scID, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.CreateFieldRequest
	if err := parseOwnedBody(c, &req, func() error {
		return h.service.AuthorizeSportsCenter(c.UserContext(), tenant.GetUserID(c), scID)
	}); err != nil {
		return fail(c, err)
	}

	f, err := h.service.Create(c.UserContext(), tenant.GetUserID(c), scID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(f)
}

func (h *FieldHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateFieldRequest
	if err := parseOwnedBody(c, &req, func() error {
		return h.service.Authorize(c.UserContext(), tenant.GetUserID(c), id)
	}); err != nil {
		return fail(c, err)
	}

	f, err := h.service.Update(c.UserContext(), tenant.GetUserID(c), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(f)
}

func (h *FieldHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.service.Delete(c.UserContext(), tenant.GetUserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Campo removido."})
}
