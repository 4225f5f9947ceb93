package handlers

import (
	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type SportsCenterHandler struct {
	service *services.SportsCenterService
}

func NewSportsCenterHandler(service *services.SportsCenterService) *SportsCenterHandler {
	return &SportsCenterHandler{service: service}
}

func (h *SportsCenterHandler) List(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), tenant.GetUserID(c), pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

func (h *SportsCenterHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSportsCenterRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	sc, err := h.service.Create(c.UserContext(), tenant.GetUserID(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sc)
}

func (h *SportsCenterHandler) Show(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	sc, err := h.service.Get(c.UserContext(), tenant.GetUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sc)
}

func (h *SportsCenterHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateSportsCenterRequest
	if err := parseOwnedBody(c, &req, func() error {
		return h.service.Authorize(c.UserContext(), tenant.GetUserID(c), id)
	}); err != nil {
		return fail(c, err)
	}

	sc, err := h.service.Update(c.UserContext(), tenant.GetUserID(c), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sc)
}

func (h *SportsCenterHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	if err := h.service.Delete(c.UserContext(), tenant.GetUserID(c), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Sports center removido."})
}
