package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/koe-app/koe/internal/db"
	"github.com/koe-app/koe/internal/services"
	"github.com/koe-app/koe/internal/validation"
)

// sendError maps the error taxonomy onto HTTP statuses. Validation
// failures carry the field so the client can highlight the input; storage
// failures suggest exporting because the database file may be damaged.
func sendError(c *fiber.Ctx, err error) error {
	var validationErr *validation.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Error(),
			"table": validationErr.Table,
			"field": validationErr.Field,
		})
	}
	if errors.Is(err, db.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	if errors.Is(err, services.ErrRemoteService) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"hint":  "the language service is unreachable, try again later",
		})
	}
	var storageErr *db.StorageError
	if errors.As(err, &storageErr) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "storage failure",
			"hint":  "export your data as a backup before retrying",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
