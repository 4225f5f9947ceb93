package handlers

import (
	"errors"
	"strconv"

	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/services"
	"github.com/anselmoparente/VemProFut/internal/validation"
	"github.com/gofiber/fiber/v2"
)

const invalidBodyMessage = "O corpo da requisição é inválido."

// fail maps domain errors to their HTTP status. Anything it does not know is
// returned to the app ErrorHandler as a 500.
func fail(c *fiber.Ctx, err error) error {
	var verr *validation.Errors
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Message: verr.Message, Errors: verr.Fields,
		})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: err.Error()})
	}
	return err
}

// parseBody decodes the JSON body into dst. A malformed body is a 422.
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return validation.Single("body", invalidBodyMessage)
	}
	return nil
}

// parseOwnedBody decodes the body of a request on an owned resource. When
// the body is malformed, authorize runs first so a missing or foreign
// resource still answers 404/403 instead of 422.
func parseOwnedBody(c *fiber.Ctx, dst interface{}, authorize func() error) error {
	if err := parseBody(c, dst); err != nil {
		if authErr := authorize(); authErr != nil {
			return authErr
		}
		return err
	}
	return nil
}

// idParam reads a positive integer route parameter. Anything else cannot name
// a record, so it is a 404.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, services.ErrNotFound
	}
	return uint(id), nil
}

func pageQuery(c *fiber.Ctx) int {
	return c.QueryInt("page", 1)
}
