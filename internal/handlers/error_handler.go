package handlers

import (
	"errors"
	"log/slog"

	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/tenant"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders errors that escaped the handlers. Details of server
// errors are logged and reported, never sent to the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Erro interno do servidor."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("unhandled server error",
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID),
			"user_id", tenant.GetUserID(c),
			"method", c.Method(),
			"path", c.Path(),
			"error", err.Error(),
		)
		if hub := sentryfiber.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		message = "Erro interno do servidor."
	}

	return c.Status(code).JSON(dto.ErrorResponse{Message: message})
}
