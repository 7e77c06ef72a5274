package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
)

func (handler *Handler) GetClinics(c *fiber.Ctx) error {
	clinics, err := handler.store.Clinics().List()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(clinics)
}

func (handler *Handler) CreateClinic(c *fiber.Ctx) error {
	clinic := models.Clinic{}
	if err := c.BodyParser(&clinic); err != nil {
		return badRequest(c, "malformed clinic payload")
	}
	clinic.ID = 0
	if err := handler.store.Clinics().Add(&clinic); err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(clinic)
}

func (handler *Handler) UpdateClinic(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "id must be a positive integer")
	}
	clinic := models.Clinic{}
	if err := c.BodyParser(&clinic); err != nil {
		return badRequest(c, "malformed clinic payload")
	}
	clinic.ID = id
	if err := handler.store.Clinics().Save(&clinic); err != nil {
		return sendError(c, err)
	}
	return c.JSON(clinic)
}

func (handler *Handler) DeleteClinic(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "id must be a positive integer")
	}
	if err := handler.store.Clinics().Delete(id); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) GetClinicVisits(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")
	if from != "" || to != "" {
		if !validation.ValidDateKey(from) || !validation.ValidDateKey(to) {
			return badRequest(c, "from and to must be YYYY-MM-DD")
		}
		visits, err := handler.store.ClinicVisits().ListRange(from, to)
		if err != nil {
			return sendError(c, err)
		}
		return c.JSON(visits)
	}
	visits, err := handler.store.ClinicVisits().List()
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(visits)
}

func (handler *Handler) CreateClinicVisit(c *fiber.Ctx) error {
	visit := models.ClinicVisit{}
	if err := c.BodyParser(&visit); err != nil {
		return badRequest(c, "malformed visit payload")
	}
	visit.ID = 0
	if err := handler.store.ClinicVisits().Add(&visit); err != nil {
		return sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(visit)
}

func (handler *Handler) UpdateClinicVisit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "id must be a positive integer")
	}
	visit := models.ClinicVisit{}
	if err := c.BodyParser(&visit); err != nil {
		return badRequest(c, "malformed visit payload")
	}
	visit.ID = id
	if err := handler.store.ClinicVisits().Save(&visit); err != nil {
		return sendError(c, err)
	}
	return c.JSON(visit)
}

func (handler *Handler) DeleteClinicVisit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "id must be a positive integer")
	}
	if err := handler.store.ClinicVisits().Delete(id); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
