package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/koe-app/koe/internal/models"
)

func (handler *Handler) GetMedicines(c *fiber.Ctx) error {
	medicines, err := handler.store.Medicines().List()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(medicines)
}

func (handler *Handler) CreateMedicine(c *fiber.Ctx) error {
	medicine := models.Medicine{}
	if err := c.BodyParser(&medicine); err != nil {
		return badRequest(c, "malformed medicine payload")
	}
	medicine.ID = 0
	medicine.UpdatedAt = time.Now().UnixMilli()
	if err := handler.store.Medicines().Add(&medicine); err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(medicine)
}

func (handler *Handler) UpdateMedicine(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "id must be a positive integer")
	}
	medicine := models.Medicine{}
	if err := c.BodyParser(&medicine); err != nil {
		return badRequest(c, "malformed medicine payload")
	}
	medicine.ID = id
	medicine.UpdatedAt = time.Now().UnixMilli()
	if err := handler.store.Medicines().Save(&medicine); err != nil {
		return sendError(c, err)
	}
	return c.JSON(medicine)
}

func (handler *Handler) DeleteMedicine(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "id must be a positive integer")
	}
	if err := handler.store.Medicines().Delete(id); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
