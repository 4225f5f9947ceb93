package handlers

import (
	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	resp, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}

	resp, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), tenant.GetAccessToken(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Logout realizado."})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := tenant.GetUser(c)
	if user == nil {
		return fail(c, services.ErrUnauthenticated)
	}
	return c.JSON(services.UserResponse(user))
}
