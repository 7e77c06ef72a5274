package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/koe-app/koe/internal/services"
	"github.com/koe-app/koe/internal/validation"
)

func (handler *Handler) GetReportSummary(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if !validation.ValidDateKey(from) || !validation.ValidDateKey(to) {
		return badRequest(c, "from and to must be YYYY-MM-DD")
	}
	summary, err := handler.reports.BuildSummary(from, to)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(summary)
}

type generateReportRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (handler *Handler) GenerateReport(c *fiber.Ctx) error {
	if handler.echoes == nil {
		return sendError(c, services.ErrRemoteService)
	}
	request := generateReportRequest{}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "malformed report payload")
	}
	if !validation.ValidDateKey(request.From) || !validation.ValidDateKey(request.To) {
		return badRequest(c, "from and to must be YYYY-MM-DD")
	}
	text, err := handler.echoes.GenerateReport(c.Context(), request.From, request.To)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{"text": text})
}
