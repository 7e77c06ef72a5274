package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/services"
	"github.com/koe-app/koe/internal/validation"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	date := c.Params("date")
	if !validation.ValidDateKey(date) {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	entry, found, err := handler.days.Fetch(date)
	if err != nil {
		return sendError(c, err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return c.JSON(entry)
}

func (handler *Handler) GetDayRange(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if !validation.ValidDateKey(from) || !validation.ValidDateKey(to) {
		return badRequest(c, "from and to must be YYYY-MM-DD")
	}
	logs, err := handler.days.FetchRange(from, to)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(logs)
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	patch := models.DayLogPatch{}
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "malformed day log payload")
	}
	entry, err := handler.days.Upsert(c.Params("date"), patch)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	if err := handler.days.Delete(c.Params("date")); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type napRequest struct {
	Minutes int    `json:"minutes"`
	EndedAt *int64 `json:"endedAt"`
}

func (handler *Handler) LogNap(c *fiber.Ctx) error {
	request := napRequest{}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "malformed nap payload")
	}
	endedAt := time.Now()
	if request.EndedAt != nil {
		endedAt = time.UnixMilli(*request.EndedAt)
	}
	event, err := handler.days.LogNap(endedAt, request.Minutes)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (handler *Handler) GenerateEcho(c *fiber.Ctx) error {
	if handler.echoes == nil {
		return sendError(c, services.ErrRemoteService)
	}
	date := c.Params("date")
	if !validation.ValidDateKey(date) {
		return badRequest(c, "date must be YYYY-MM-DD")
	}
	text, err := handler.echoes.GenerateEcho(c.Context(), date)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{"text": text})
}
