package tenant

import (
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/gofiber/fiber/v2"
)

const (
	userKey  = "current_user"
	tokenKey = "current_token"
)

// SetCurrent stores the authenticated user and token on the request.
func SetCurrent(c *fiber.Ctx, user *models.User, token *models.AccessToken) {
	c.Locals(userKey, user)
	c.Locals(tokenKey, token)
}

// GetUser returns the authenticated user, or nil on public routes.
func GetUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(userKey).(*models.User); ok {
		return user
	}
	return nil
}

// GetUserID returns the authenticated user's id, or 0.
func GetUserID(c *fiber.Ctx) uint {
	if user := GetUser(c); user != nil {
		return user.ID
	}
	return 0
}

func GetAccessToken(c *fiber.Ctx) *models.AccessToken {
	if token, ok := c.Locals(tokenKey).(*models.AccessToken); ok {
		return token
	}
	return nil
}
