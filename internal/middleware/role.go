package middleware

import (
	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// RequireRole lets the request through only when the current user's role
// name is one of roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := tenant.GetUser(c)
		if user == nil {
			return unauthenticated(c)
		}

		role := user.RoleName()
		if role == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "Usuário sem role definida."})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "Acesso negado."})
	}
}
