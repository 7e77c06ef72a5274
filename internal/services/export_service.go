package services

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/koe-app/koe/internal/db"
	"github.com/koe-app/koe/internal/models"
)

// ExportDocument is the full-database snapshot: one array per collection
// plus an identifier and timestamp for the snapshot itself. Sleep instants
// serialize as RFC 3339 strings through the standard time encoding.
type ExportDocument struct {
	ExportID       string                  `json:"exportId"`
	ExportedAt     string                  `json:"exportedAt"`
	DayLogs        []models.DayLog         `json:"dayLogs"`
	EventLogs      []models.EventLog       `json:"eventLogs"`
	RegimenHistory []models.RegimenHistory `json:"regimenHistory"`
	Settings       []models.Setting        `json:"settings"`
	Clinics        []models.Clinic         `json:"clinics"`
	ClinicVisits   []models.ClinicVisit    `json:"clinicVisits"`
	Medicines      []models.Medicine       `json:"medicines"`
}

// ExportService snapshots and restores the whole journal. Import is
// best-effort: records with salvageable problems are defaulted into shape
// rather than failing the document, because the snapshot may be the only
// surviving copy of the data.
type ExportService struct {
	store    *db.Store
	location *time.Location
	clock    func() time.Time
}

func NewExportService(store *db.Store, location *time.Location, clock func() time.Time) *ExportService {
	if location == nil {
		location = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &ExportService{store: store, location: location, clock: clock}
}

func (service *ExportService) Export() (ExportDocument, error) {
	document := ExportDocument{
		ExportID:   uuid.NewString(),
		ExportedAt: service.clock().UTC().Format(time.RFC3339),
	}
	var err error
	if document.DayLogs, err = service.store.DayLogs().ListAll(); err != nil {
		return ExportDocument{}, err
	}
	if document.EventLogs, err = service.store.EventLogs().ListAll(); err != nil {
		return ExportDocument{}, err
	}
	if document.RegimenHistory, err = service.store.Regimens().ListAll(); err != nil {
		return ExportDocument{}, err
	}
	if document.Settings, err = service.store.Settings().List(); err != nil {
		return ExportDocument{}, err
	}
	if document.Clinics, err = service.store.Clinics().List(); err != nil {
		return ExportDocument{}, err
	}
	if document.ClinicVisits, err = service.store.ClinicVisits().List(); err != nil {
		return ExportDocument{}, err
	}
	if document.Medicines, err = service.store.Medicines().List(); err != nil {
		return ExportDocument{}, err
	}
	return document, nil
}

// ExportJSON renders the snapshot as an indented document, the shape a
// person can eyeball before trusting it as a backup.
func (service *ExportService) ExportJSON() ([]byte, error) {
	document, err := service.Export()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(document, "", "  ")
}

// Import restores a snapshot in one transaction: every collection bulk
// upserts, malformed records are repaired first, and a failure rolls the
// whole restore back so the store never holds half a snapshot.
func (service *ExportService) Import(document ExportDocument) error {
	repaired := repairDocument(document, service.location)
	return service.store.Transaction(func(tx *db.Tx) error {
		if err := tx.DayLogs().BulkPut(repaired.DayLogs); err != nil {
			return err
		}
		if err := tx.EventLogs().BulkPut(repaired.EventLogs); err != nil {
			return err
		}
		if err := tx.Regimens().BulkPut(repaired.RegimenHistory); err != nil {
			return err
		}
		if err := tx.Settings().BulkPut(repaired.Settings); err != nil {
			return err
		}
		if err := tx.Clinics().BulkPut(repaired.Clinics); err != nil {
			return err
		}
		if err := tx.ClinicVisits().BulkPut(repaired.ClinicVisits); err != nil {
			return err
		}
		return tx.Medicines().BulkPut(repaired.Medicines)
	})
}

func (service *ExportService) ImportJSON(raw []byte) error {
	document := ExportDocument{}
	if err := json.Unmarshal(raw, &document); err != nil {
		return err
	}
	return service.Import(document)
}

// ClearAll wipes every collection in one transaction.
func (service *ExportService) ClearAll() error {
	return service.store.Transaction(func(tx *db.Tx) error {
		if err := tx.DayLogs().Clear(); err != nil {
			return err
		}
		if err := tx.EventLogs().Clear(); err != nil {
			return err
		}
		if err := tx.Regimens().Clear(); err != nil {
			return err
		}
		if err := tx.Settings().Clear(); err != nil {
			return err
		}
		if err := tx.Clinics().Clear(); err != nil {
			return err
		}
		if err := tx.ClinicVisits().Clear(); err != nil {
			return err
		}
		return tx.Medicines().Clear()
	})
}

// repairDocument nurses an imported snapshot back into valid shape.
// Records that cannot be repaired (no usable date at all) are dropped;
// everything salvageable gets defaults instead of rejection.
func repairDocument(document ExportDocument, location *time.Location) ExportDocument {
	repaired := ExportDocument{
		ExportID:   document.ExportID,
		ExportedAt: document.ExportedAt,
		Settings:   make([]models.Setting, 0, len(document.Settings)),
	}

	for _, entry := range document.DayLogs {
		if entry.ID == "" {
			continue
		}
		repaired.DayLogs = append(repaired.DayLogs, repairDayLog(entry))
	}
	for _, event := range document.EventLogs {
		fixed, usable := repairEventLog(event, location)
		if usable {
			repaired.EventLogs = append(repaired.EventLogs, fixed)
		}
	}
	for _, record := range document.RegimenHistory {
		if record.StartDate == "" {
			continue
		}
		repaired.RegimenHistory = append(repaired.RegimenHistory, repairRegimen(record))
	}
	for _, setting := range document.Settings {
		if setting.Key == "" {
			continue
		}
		repaired.Settings = append(repaired.Settings, setting)
	}
	for _, clinic := range document.Clinics {
		if clinic.Name == "" {
			continue
		}
		repaired.Clinics = append(repaired.Clinics, clinic)
	}
	for _, visit := range document.ClinicVisits {
		if visit.Date == "" || visit.ClinicID == 0 {
			continue
		}
		repaired.ClinicVisits = append(repaired.ClinicVisits, visit)
	}
	for _, medicine := range document.Medicines {
		if medicine.Name == "" {
			continue
		}
		if medicine.Type != models.MedicineRegular && medicine.Type != models.MedicinePRN {
			medicine.Type = models.MedicineRegular
		}
		repaired.Medicines = append(repaired.Medicines, medicine)
	}
	return repaired
}

func repairDayLog(entry models.DayLog) models.DayLog {
	clampPointer(&entry.SleepQuality, 1, 5)
	clampPointer(&entry.MorningArousal, 1, 5)
	clampPointer(&entry.MigraineProdrome, 0, 3)
	clampPointer(&entry.FatigueLevel, 0, 3)
	clampPointer(&entry.NapDuration, 0, maxNapMinutes)
	entry.TodayMode = keepEnum(entry.TodayMode, models.TodayModeNormal, models.TodayModeEco, models.TodayModeRest)
	entry.DayOverall = keepEnum(entry.DayOverall, models.DayOverallGood, models.DayOverallFair, models.DayOverallBad)
	entry.DinnerAmount = keepEnum(entry.DinnerAmount, models.DinnerLight, models.DinnerMedium, models.DinnerHeavy)
	return entry
}

func repairEventLog(event models.EventLog, location *time.Location) (models.EventLog, bool) {
	switch event.Type {
	case models.EventTypeSymptom, models.EventTypeMedicine, models.EventTypeTrigger,
		models.EventTypeFood, models.EventTypeNap:
	default:
		event.Type = models.EventTypeSymptom
	}
	if event.Name == "" {
		event.Name = "unknown"
	}
	maxSeverity := 5
	if event.Type == models.EventTypeNap {
		maxSeverity = maxNapMinutes
	}
	if event.Severity < 1 {
		event.Severity = 1
	}
	if event.Severity > maxSeverity {
		event.Severity = maxSeverity
	}
	if event.Date == "" {
		if event.Timestamp <= 0 {
			return models.EventLog{}, false
		}
		event.Date = DateKey(time.UnixMilli(event.Timestamp), location)
	}
	if event.Timestamp <= 0 {
		midnight, err := ParseDateKey(event.Date, location)
		if err != nil {
			return models.EventLog{}, false
		}
		event.Timestamp = EpochMillis(midnight)
	}
	return event, true
}

func repairRegimen(record models.RegimenHistory) models.RegimenHistory {
	switch record.Type {
	case models.RegimenMaintenance, models.RegimenTapering, models.RegimenTitration:
	default:
		record.Type = models.RegimenMaintenance
	}
	if record.Description == "" {
		record.Description = "imported"
	}
	return record
}

func clampPointer(value **int, min int, max int) {
	if *value == nil {
		return
	}
	clamped := **value
	if clamped < min {
		clamped = min
	}
	if clamped > max {
		clamped = max
	}
	*value = &clamped
}

func keepEnum(value string, allowed ...string) string {
	for _, candidate := range allowed {
		if value == candidate {
			return value
		}
	}
	return ""
}
