package api

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/services"
	"github.com/koe-app/koe/internal/validation"
)

func (handler *Handler) GetEvents(c *fiber.Ctx) error {
	if date := c.Query("date"); date != "" {
		if !validation.ValidDateKey(date) {
			return badRequest(c, "date must be YYYY-MM-DD")
		}
		events, err := handler.store.EventLogs().ListByDate(date)
		if err != nil {
			return sendError(c, err)
		}
		return c.JSON(events)
	}

	from := c.Query("from")
	to := c.Query("to")
	if !validation.ValidDateKey(from) || !validation.ValidDateKey(to) {
		return badRequest(c, "from and to must be YYYY-MM-DD")
	}
	if eventType := c.Query("type"); eventType != "" {
		events, err := handler.store.EventLogs().ListRangeByType(from, to, eventType)
		if err != nil {
			return sendError(c, err)
		}
		return c.JSON(events)
	}
	events, err := handler.store.EventLogs().ListRange(from, to)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(events)
}

func (handler *Handler) CreateEvent(c *fiber.Ctx) error {
	event := models.EventLog{}
	if err := c.BodyParser(&event); err != nil {
		return badRequest(c, "malformed event payload")
	}
	event.ID = 0
	if err := handler.alignEventDate(&event); err != nil {
		return sendError(c, err)
	}
	if err := handler.store.EventLogs().Add(&event); err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// alignEventDate keeps date and timestamp consistent: date is derived from
// the timestamp in the journal's timezone, and a client-supplied date that
// disagrees with its own timestamp is rejected rather than silently moved.
func (handler *Handler) alignEventDate(event *models.EventLog) error {
	if event.Timestamp <= 0 {
		return nil
	}
	derived := services.DateKey(time.UnixMilli(event.Timestamp), handler.location)
	if event.Date == "" {
		event.Date = derived
		return nil
	}
	if event.Date != derived {
		return &validation.ValidationError{
			Table:   models.TableEventLogs,
			Field:   "date",
			Message: "date must match the calendar date of timestamp",
		}
	}
	return nil
}

type tapRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

func (handler *Handler) TapStamp(c *fiber.Ctx) error {
	request := tapRequest{}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "malformed tap payload")
	}
	event, combo, err := handler.quickLog.Tap(request.Type, request.Name)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{"event": event, "combo": combo})
}

func (handler *Handler) UpdateEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "id must be a positive integer")
	}
	event := models.EventLog{}
	if err := c.BodyParser(&event); err != nil {
		return badRequest(c, "malformed event payload")
	}
	event.ID = id
	if err := handler.alignEventDate(&event); err != nil {
		return sendError(c, err)
	}
	if err := handler.store.EventLogs().Save(&event); err != nil {
		return sendError(c, err)
	}
	return c.JSON(event)
}

func (handler *Handler) DeleteEvent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "id must be a positive integer")
	}
	if err := handler.store.EventLogs().Delete(id); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx) (uint, error) {
	value, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || value == 0 {
		return 0, strconv.ErrSyntax
	}
	return uint(value), nil
}
