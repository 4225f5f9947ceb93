package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/jonboulle/clockwork"

	"github.com/anselmoparente/VemProFut/internal/config"
	"github.com/anselmoparente/VemProFut/internal/database"
	"github.com/anselmoparente/VemProFut/internal/geocode"
	"github.com/anselmoparente/VemProFut/internal/handlers"
	"github.com/anselmoparente/VemProFut/internal/logging"
	"github.com/anselmoparente/VemProFut/internal/middleware"
	"github.com/anselmoparente/VemProFut/internal/policy"
	"github.com/anselmoparente/VemProFut/internal/routes"
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdout := logging.Setup(cfg.SlogLevel())

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.IsProduction() && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Ping(); err != nil {
		slog.Error("database unreachable", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	if err := database.Seed(database.DB); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	clock := clockwork.NewRealClock()
	loc := cfg.Location()

	// system_logs handler (WARN+ async batch)
	dbLogHandler := logging.NewDBHandler(database.DB, clock, slog.LevelWarn, 5*time.Second)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdout, dbLogHandler)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, clock, cfg.LogRetention, cleanupDone)

	// Services
	gate := policy.NewGate(database.DB)
	authService := services.NewAuthService(database.DB, cfg, clock)
	sportsCenterService := services.NewSportsCenterService(database.DB, gate)
	fieldService := services.NewFieldService(database.DB, gate)
	operatingHourService := services.NewOperatingHourService(database.DB, gate)
	gameService := services.NewGameService(database.DB, gate, clock, loc)
	dashboardService := services.NewDashboardService(database.DB, clock, loc)

	resolver := geocode.NewResolver(
		geocode.NewViaCEP(cfg.ViaCEPURL, cfg.GeocoderTimeout),
		geocode.NewNominatim(cfg.NominatimURL, cfg.GeocoderUserAgent, cfg.GeocoderTimeout),
	)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	routes.Setup(app, cfg, authService, routes.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Health:        handlers.NewHealthHandler(database.DB),
		SportsCenter:  handlers.NewSportsCenterHandler(sportsCenterService),
		Field:         handlers.NewFieldHandler(fieldService),
		OperatingHour: handlers.NewOperatingHourHandler(operatingHourService),
		Game:          handlers.NewGameHandler(gameService),
		Dashboard:     handlers.NewDashboardHandler(dashboardService),
		Address:       handlers.NewAddressHandler(resolver),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	dbLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}
