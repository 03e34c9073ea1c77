package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Geo222222/serenity-s-keys/internal/api"
	"github.com/Geo222222/serenity-s-keys/internal/services"
)

// respondError maps service and upstream failures onto portal responses.
// Validation problems keep their exact user-facing message; upstream HTTP
// failures relay the upstream status and detail; transport failures come back
// as a bad gateway. Nothing is retried.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionBusy):
		return c.Status(fiber.StatusConflict).
			JSON(fiber.Map{"error": "A checkout for this session is already in progress."})
	case errors.Is(err, services.ErrAdminRequired):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Log in as admin first."})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Kind {
		case api.KindHTTPStatus:
			return c.Status(apiErr.Status).JSON(fiber.Map{"error": apiErr.Detail})
		case api.KindNetwork:
			return c.Status(fiber.StatusBadGateway).
				JSON(fiber.Map{"error": "The booking service is temporarily unavailable."})
		}
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Unexpected error."})
}
