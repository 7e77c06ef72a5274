package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/koe-app/koe/internal/models"
)

func (handler *Handler) GetStampLabels(c *fiber.Ctx) error {
	labels, err := handler.settings.StampLabels(c.Params("type"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(labels)
}

func (handler *Handler) SetStampLabels(c *fiber.Ctx) error {
	labels := make([]string, 0)
	if err := c.BodyParser(&labels); err != nil {
		return badRequest(c, "payload must be a JSON array of labels")
	}
	if err := handler.settings.SetStampLabels(c.Params("type"), labels); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) GetStampDetails(c *fiber.Ctx) error {
	details, err := handler.settings.StampDetails()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(details)
}

func (handler *Handler) SetStampDetail(c *fiber.Ctx) error {
	detail := models.StampDetail{}
	if err := c.BodyParser(&detail); err != nil {
		return badRequest(c, "malformed stamp detail payload")
	}
	if err := handler.settings.SetStampDetail(c.Params("label"), detail); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) GetSetting(c *fiber.Ctx) error {
	value, found, err := handler.settings.Get(c.Params("key"))
	if err != nil {
		return sendError(c, err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(value)
}

func (handler *Handler) PutSetting(c *fiber.Ctx) error {
	if err := handler.settings.Put(c.Params("key"), json.RawMessage(c.Body())); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
