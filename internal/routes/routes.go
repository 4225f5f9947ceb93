package routes

import (
	"time"

	"github.com/anselmoparente/VemProFut/internal/config"
	"github.com/anselmoparente/VemProFut/internal/handlers"
	"github.com/anselmoparente/VemProFut/internal/middleware"
	"github.com/anselmoparente/VemProFut/internal/models"
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Handlers groups every HTTP handler mounted by Setup.
type Handlers struct {
	Auth          *handlers.AuthHandler
	Health        *handlers.HealthHandler
	SportsCenter  *handlers.SportsCenterHandler
	Field         *handlers.FieldHandler
	OperatingHour *handlers.OperatingHourHandler
	Game          *handlers.GameHandler
	Dashboard     *handlers.DashboardHandler
	Address       *handlers.AddressHandler
}

func rateLimit(limit int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:               limit,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
}

// chain copies mw and appends the route handler, so shared middleware slices
// are never aliased between routes.
func chain(mw []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(mw)+1)
	return append(append(out, mw...), h)
}

func Setup(app *fiber.App, cfg *config.Config, authService *services.AuthService, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(rateLimit(60))

	api.Get("/health", h.Health.Check)

	// Credential endpoints share a stricter 10 req/min
	credentials := rateLimit(10)
	api.Post("/register", credentials, h.Auth.Register)
	api.Post("/login", credentials, h.Auth.Login)

	// Middleware is attached per route: a Use on a blank group would apply to
	// every later /api route, including the public ones.
	authed := middleware.Authenticated(cfg, authService)
	owner := chain(authed, middleware.RequireRole(models.RoleFieldOwner))
	player := chain(authed, middleware.RequireRole(models.RolePlayer))

	api.Post("/logout", chain(authed, h.Auth.Logout)...)
	api.Get("/me", chain(authed, h.Auth.Me)...)
	api.Get("/game-statuses", chain(authed, h.Game.Statuses)...)

	api.Get("/sports-centers", chain(owner, h.SportsCenter.List)...)
	api.Post("/sports-centers", chain(owner, h.SportsCenter.Create)...)
	api.Get("/sports-centers/:id", chain(owner, h.SportsCenter.Show)...)
	api.Put("/sports-centers/:id", chain(owner, h.SportsCenter.Update)...)
	api.Delete("/sports-centers/:id", chain(owner, h.SportsCenter.Delete)...)

	api.Get("/sports-centers/:id/fields", chain(owner, h.Field.List)...)
	api.Post("/sports-centers/:id/fields", chain(owner, h.Field.Create)...)
	api.Put("/fields/:id", chain(owner, h.Field.Update)...)
	api.Delete("/fields/:id", chain(owner, h.Field.Delete)...)

	api.Get("/sports-centers/:id/operating-hours", chain(owner, h.OperatingHour.List)...)
	api.Put("/sports-centers/:id/operating-hours", chain(owner, h.OperatingHour.Upsert)...)

	api.Get("/games", chain(owner, h.Game.List)...)
	api.Get("/sports-centers/:id/games", chain(owner, h.Game.BySportsCenter)...)
	api.Patch("/games/:id/status", chain(owner, h.Game.UpdateStatus)...)

	api.Get("/dashboard", chain(owner, h.Dashboard.Show)...)
	api.Get("/address-lookup", chain(owner, h.Address.Lookup)...)

	api.Post("/games", chain(player, h.Game.Create)...)
	api.Get("/open-games", chain(player, h.Game.OpenGames)...)
	api.Get("/my-games", chain(player, h.Game.MyGames)...)
	api.Post("/games/:id/join", chain(player, h.Game.Join)...)
	api.Delete("/games/:id/leave", chain(player, h.Game.Leave)...)
}
