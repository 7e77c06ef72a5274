package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetActiveRegimen(c *fiber.Ctx) error {
	active, found, err := handler.regimens.Active()
	if err != nil {
		return sendError(c, err)
	}
	if !found {
		return c.JSON(fiber.Map{"active": nil})
	}
	day, _, err := handler.regimens.CurrentPhaseDay()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{"active": active, "phaseDay": day})
}

func (handler *Handler) GetRegimenHistory(c *fiber.Ctx) error {
	history, err := handler.regimens.History()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(history)
}

type declarePhaseRequest struct {
	Type        string `json:"type"`
	StartDate   string `json:"startDate"`
	Description string `json:"description"`
}

func (handler *Handler) DeclareRegimenPhase(c *fiber.Ctx) error {
	request := declarePhaseRequest{}
	if err := c.BodyParser(&request); err != nil {
		return badRequest(c, "malformed regimen payload")
	}
	entry, err := handler.regimens.DeclarePhase(request.Type, request.StartDate, request.Description)
	if err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}
