package middleware

import (
	"errors"

	"github.com/anselmoparente/VemProFut/internal/config"
	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const unauthenticatedMessage = "Não autenticado."

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: unauthenticatedMessage})
}

// JWTProtected verifies the bearer token signature and expiry.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthenticated(c)
		},
	})
}

// CurrentUser resolves the verified token to a live access token and its
// user. Revoked or unknown tokens are rejected.
func CurrentUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return unauthenticated(c)
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthenticated(c)
		}
		jti, _ := claims["jti"].(string)
		sub, _ := claims["sub"].(string)

		user, accessToken, err := auth.Authenticate(c.UserContext(), jti, sub)
		if err != nil {
			if errors.Is(err, services.ErrUnauthenticated) {
				return unauthenticated(c)
			}
			return err
		}

		tenant.SetCurrent(c, user, accessToken)
		return c.Next()
	}
}

// Authenticated chains signature verification and user resolution.
func Authenticated(cfg *config.Config, auth *services.AuthService) []fiber.Handler {
	return []fiber.Handler{JWTProtected(cfg), CurrentUser(auth)}
}
