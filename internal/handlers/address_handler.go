package handlers

import (
	"errors"
	"log/slog"

	"github.com/anselmoparente/VemProFut/internal/dto"
	"github.com/anselmoparente/VemProFut/internal/geocode"
	"github.com/anselmoparente/VemProFut/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type AddressHandler struct {
	resolver *geocode.Resolver
}

func NewAddressHandler(resolver *geocode.Resolver) *AddressHandler {
	return &AddressHandler{resolver: resolver}
}

// Lookup resolves zip_code + number to an address with coordinates.
// fallback=1 walks the ordered list of looser queries.
func (h *AddressHandler) Lookup(c *fiber.Ctx) error {
	var q dto.AddressLookupQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, validation.Single("query", "Parâmetros de consulta inválidos."))
	}
	if err := validation.Struct(&q); err != nil {
		return fail(c, err)
	}

	resolve := h.resolver.Resolve
	if q.Fallback {
		resolve = h.resolver.ResolveWithFallback
	}

	addr, err := resolve(c.UserContext(), q.ZipCode, q.Number)
	if err != nil {
		return h.lookupFailed(c, err)
	}
	return c.JSON(addr)
}

func (h *AddressHandler) lookupFailed(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, geocode.ErrRateLimited):
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Message: geocode.ErrRateLimited.Error()})
	case errors.Is(err, geocode.ErrInvalidZip):
		return fail(c, validation.Single("zip_code", geocode.ErrInvalidZip.Error()))
	case errors.Is(err, geocode.ErrZipNotFound),
		errors.Is(err, geocode.ErrIncompleteAddress),
		errors.Is(err, geocode.ErrEmpty),
		errors.Is(err, geocode.ErrInvalidCoordinates),
		errors.Is(err, geocode.ErrNoCoordinates):
		msg := err.Error()
		if errors.Is(err, geocode.ErrEmpty) {
			msg = geocode.ErrNoCoordinates.Error()
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Message: msg})
	case errors.Is(err, geocode.ErrZipLookupFailed), errors.Is(err, geocode.ErrGeocodeFailed):
		slog.Warn("address lookup upstream failure", "error", err, "path", c.Path())
		msg := geocode.ErrGeocodeFailed.Error()
		if errors.Is(err, geocode.ErrZipLookupFailed) {
			msg = geocode.ErrZipLookupFailed.Error()
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Message: msg})
	}
	return err
}
