package handlers

import (
	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	"github.com/anselmoparente/VemProFut/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type GameHandler struct {
	service *services.GameService
}

func NewGameHandler(service *services.GameService) *GameHandler {
	return &GameHandler{service: service}
}

func (h *GameHandler) filter(c *fiber.Ctx) (services.GameFilter, error) {
	var q dto.GameListQuery
	if err := c.QueryParser(&q); err != nil {
		return services.GameFilter{}, validation.Single("query", "Parâmetros de consulta inválidos.")
	}
	return services.ParseGameFilter(&q)
}

// List is the owner's game listing across all of their sports centers.
func (h *GameHandler) List(c *fiber.Ctx) error {
	f, err := h.filter(c)
	if err != nil {
		return fail(c, err)
	}

	page, err := h.service.List(c.UserContext(), tenant.GetUserID(c), f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

func (h *GameHandler) BySportsCenter(c *fiber.Ctx) error {
	scID, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	f, err := h.filter(c)
	if err != nil {
		return fail(c, err)
	}

	page, err := h.service.ListBySportsCenter(c.UserContext(), tenant.GetUserID(c), scID, f)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

func (h *GameHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateGameStatusRequest
	if err := parseOwnedBody(c, &req, func() error {
		return h.service.Authorize(c.UserContext(), tenant.GetUserID(c), id)
	}); err != nil {
		return fail(c, err)
	}

	game, err := h.service.UpdateStatus(c.UserContext(), tenant.GetUserID(c), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(game)
}

func (h *GameHandler) Statuses(c *fiber.Ctx) error {
	statuses, err := h.service.Statuses(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(statuses)
}

func (h *GameHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateGameRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	game, err := h.service.Create(c.UserContext(), tenant.GetUserID(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

func (h *GameHandler) OpenGames(c *fiber.Ctx) error {
	page, err := h.service.OpenGames(c.UserContext(), pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

func (h *GameHandler) MyGames(c *fiber.Ctx) error {
	page, err := h.service.MyGames(c.UserContext(), tenant.GetUserID(c), pageQuery(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

func (h *GameHandler) Join(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	game, err := h.service.Join(c.UserContext(), tenant.GetUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(game)
}

func (h *GameHandler) Leave(c *fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, err)
	}

	game, err := h.service.Leave(c.UserContext(), tenant.GetUserID(c), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(game)
}
