package api

import (
	"time"

	"github.com/koe-app/koe/internal/db"
	"github.com/koe-app/koe/internal/services"
)

// Handler wires the JSON surface to the service layer. All state lives in
// the services; handlers only parse, delegate and map errors.
type Handler struct {
	store    *db.Store
	days     *services.DayService
	quickLog *services.QuickLogService
	regimens *services.RegimenService
	reports  *services.ReportService
	echoes   *services.EchoService
	exports  *services.ExportService
	settings *services.SettingsService
	location *time.Location
}

func NewHandler(store *db.Store, location *time.Location) *Handler {
	if location == nil {
		location = time.Local
	}
	days := services.NewDayService(store, location, nil)
	reports := services.NewReportService(store.DayLogs(), store.EventLogs(), store.Regimens(), store.Medicines())
	return &Handler{
		store:    store,
		days:     days,
		quickLog: services.NewQuickLogService(store, location, nil),
		regimens: services.NewRegimenService(store, location, nil),
		reports:  reports,
		exports:  services.NewExportService(store, location, nil),
		settings: services.NewSettingsService(store),
		location: location,
	}
}

// EnableGeneration attaches the language-model collaborator. Without it the
// report and echo endpoints answer 502; everything local keeps working.
func (handler *Handler) EnableGeneration(generator services.TextGenerator) {
	handler.echoes = services.NewEchoService(handler.reports, handler.days, generator)
}
