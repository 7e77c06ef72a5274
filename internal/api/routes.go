package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	days := api.Group("/days")
	days.Get("", handler.GetDayRange)
	days.Get("/:date", handler.GetDay)
	days.Post("/:date", handler.UpsertDay)
	days.Delete("/:date", handler.DeleteDay)
	days.Post("/:date/echo", handler.GenerateEcho)

	events := api.Group("/events")
	events.Get("", handler.GetEvents)
	events.Post("", handler.CreateEvent)
	events.Post("/tap", handler.TapStamp)
	events.Post("/nap", handler.LogNap)
	events.Put("/:id", handler.UpdateEvent)
	events.Delete("/:id", handler.DeleteEvent)

	regimen := api.Group("/regimen")
	regimen.Get("", handler.GetActiveRegimen)
	regimen.Get("/history", handler.GetRegimenHistory)
	regimen.Post("", handler.DeclareRegimenPhase)

	report := api.Group("/report")
	report.Get("/summary", handler.GetReportSummary)
	report.Post("/generate", handler.GenerateReport)

	export := api.Group("/export")
	export.Get("/json", handler.ExportJSON)
	export.Post("/import", handler.ImportJSON)
	export.Post("/clear", handler.ClearAllData)

	settings := api.Group("/settings")
	settings.Get("/stamps/:type", handler.GetStampLabels)
	settings.Put("/stamps/:type", handler.SetStampLabels)
	settings.Get("/stamp-details", handler.GetStampDetails)
	settings.Put("/stamp-details/:label", handler.SetStampDetail)
	settings.Get("/:key", handler.GetSetting)
	settings.Put("/:key", handler.PutSetting)

	clinics := api.Group("/clinics")
	clinics.Get("", handler.GetClinics)
	clinics.Post("", handler.CreateClinic)
	clinics.Put("/:id", handler.UpdateClinic)
	clinics.Delete("/:id", handler.DeleteClinic)

	visits := api.Group("/visits")
	visits.Get("", handler.GetClinicVisits)
	visits.Post("", handler.CreateClinicVisit)
	visits.Put("/:id", handler.UpdateClinicVisit)
	visits.Delete("/:id", handler.DeleteClinicVisit)

	medicines := api.Group("/medicines")
	medicines.Get("", handler.GetMedicines)
	medicines.Post("", handler.CreateMedicine)
	medicines.Put("/:id", handler.UpdateMedicine)
	medicines.Delete("/:id", handler.DeleteMedicine)

	api.Get("/live/today", handler.LiveToday)
}
