package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/omspdev/omsp/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps the service layer's sentinel errors onto HTTP
// statuses; anything unrecognized is a 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrPermissionDenied):
		return apiError(c, fiber.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrTermReadOnly):
		return apiError(c, fiber.StatusForbidden, "term is read-only")
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrUnauthenticated):
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	case errors.Is(err, services.ErrInvalidAmount),
		errors.Is(err, services.ErrUnknownStatus),
		errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrMissingTerm),
		errors.Is(err, services.ErrInvalidTerm):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrAlreadyRequested):
		return apiError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrArchiveNotRequested):
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	return apiError(c, fiber.StatusInternalServerError, "internal error")
}
