// Package validation is the write-time gate in front of the document store.
// Every insert and update runs through Validate before it reaches a
// transaction; a failure aborts only the offending write and never touches
// storage. Partial updates are validated after merging onto the existing
// record, so a patch cannot sneak a record into an invalid full shape.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/koe-app/koe/internal/models"
)

// ValidationError reports a rejected write. It is recoverable by correcting
// input and is surfaced verbatim to the caller.
type ValidationError struct {
	Table   string
	Field   string
	Message string
}

func (err *ValidationError) Error() string {
	if err.Field != "" {
		return fmt.Sprintf("validation failed for %s.%s: %s", err.Table, err.Field, err.Message)
	}
	return fmt.Sprintf("validation failed for %s: %s", err.Table, err.Message)
}

func reject(table string, field string, message string) error {
	return &ValidationError{Table: table, Field: field, Message: message}
}

const (
	maxNoteLength        = 5000
	maxNameLength        = 100
	maxDescriptionLength = 500
	maxNapMinutes        = 480
)

var dateKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validate checks a candidate record for the named table. Tables without
// declared rules (settings) pass through unchanged.
func Validate(table string, value any) error {
	switch record := value.(type) {
	case models.DayLog:
		return validateDayLog(record)
	case *models.DayLog:
		return validateDayLog(*record)
	case models.EventLog:
		return validateEventLog(record)
	case *models.EventLog:
		return validateEventLog(*record)
	case models.RegimenHistory:
		return validateRegimen(record)
	case *models.RegimenHistory:
		return validateRegimen(*record)
	case models.Clinic:
		return validateClinic(record)
	case *models.Clinic:
		return validateClinic(*record)
	case models.ClinicVisit:
		return validateClinicVisit(record)
	case *models.ClinicVisit:
		return validateClinicVisit(*record)
	case models.Medicine:
		return validateMedicine(record)
	case *models.Medicine:
		return validateMedicine(*record)
	case models.Setting:
		return validateSetting(record)
	case *models.Setting:
		return validateSetting(*record)
	default:
		return reject(table, "", fmt.Sprintf("unknown record type %T", value))
	}
}

// ValidDateKey reports whether the value is a YYYY-MM-DD date id.
func ValidDateKey(value string) bool {
	return dateKeyPattern.MatchString(value)
}

func checkFreeText(table string, field string, value string) error {
	if len([]rune(value)) > maxNoteLength {
		return reject(table, field, fmt.Sprintf("must be at most %d characters", maxNoteLength))
	}
	if strings.Contains(strings.ToLower(value), "<script") {
		return reject(table, field, "script tags are not allowed")
	}
	return nil
}

func checkIntRange(table string, field string, value *int, min int, max int) error {
	if value == nil {
		return nil
	}
	if *value < min || *value > max {
		return reject(table, field, fmt.Sprintf("must be between %d and %d", min, max))
	}
	return nil
}

func checkEnum(table string, field string, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, candidate := range allowed {
		if value == candidate {
			return nil
		}
	}
	return reject(table, field, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")))
}

func validateDayLog(record models.DayLog) error {
	table := models.TableDayLogs
	if !ValidDateKey(record.ID) {
		return reject(table, "id", "must be a YYYY-MM-DD date")
	}
	if err := checkIntRange(table, "sleepQuality", record.SleepQuality, 1, 5); err != nil {
		return err
	}
	if err := checkIntRange(table, "morningArousal", record.MorningArousal, 1, 5); err != nil {
		return err
	}
	if err := checkIntRange(table, "migraineProdrome", record.MigraineProdrome, 0, 3); err != nil {
		return err
	}
	if err := checkIntRange(table, "fatigueLevel", record.FatigueLevel, 0, 3); err != nil {
		return err
	}
	if err := checkIntRange(table, "napDuration", record.NapDuration, 0, maxNapMinutes); err != nil {
		return err
	}
	if err := checkEnum(table, "todayMode", record.TodayMode,
		models.TodayModeNormal, models.TodayModeEco, models.TodayModeRest); err != nil {
		return err
	}
	if err := checkEnum(table, "dayOverall", record.DayOverall,
		models.DayOverallGood, models.DayOverallFair, models.DayOverallBad); err != nil {
		return err
	}
	if err := checkEnum(table, "dinnerAmount", record.DinnerAmount,
		models.DinnerLight, models.DinnerMedium, models.DinnerHeavy); err != nil {
		return err
	}
	if err := checkFreeText(table, "note", record.Note); err != nil {
		return err
	}
	if err := checkFreeText(table, "echoSummary", record.EchoSummary); err != nil {
		return err
	}
	return checkFreeText(table, "bestMeasure", record.BestMeasure)
}

func validateEventLog(record models.EventLog) error {
	table := models.TableEventLogs
	if !ValidDateKey(record.Date) {
		return reject(table, "date", "must be a YYYY-MM-DD date")
	}
	if err := checkEnum(table, "type", record.Type,
		models.EventTypeSymptom, models.EventTypeMedicine, models.EventTypeTrigger,
		models.EventTypeFood, models.EventTypeNap); err != nil {
		return err
	}
	if record.Type == "" {
		return reject(table, "type", "is required")
	}
	trimmed := strings.TrimSpace(record.Name)
	if trimmed == "" {
		return reject(table, "name", "is required")
	}
	if len([]rune(record.Name)) > maxNameLength {
		return reject(table, "name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	if record.Type == models.EventTypeNap {
		if record.Severity < 1 || record.Severity > maxNapMinutes {
			return reject(table, "severity", fmt.Sprintf("nap minutes must be between 1 and %d", maxNapMinutes))
		}
	} else if record.Severity < 1 || record.Severity > 5 {
		return reject(table, "severity", "must be between 1 and 5")
	}
	if record.Timestamp <= 0 {
		return reject(table, "timestamp", "is required")
	}
	return checkFreeText(table, "note", record.Note)
}

func validateRegimen(record models.RegimenHistory) error {
	table := models.TableRegimenHistory
	if !ValidDateKey(record.StartDate) {
		return reject(table, "startDate", "must be a YYYY-MM-DD date")
	}
	if err := checkEnum(table, "type", record.Type,
		models.RegimenMaintenance, models.RegimenTapering, models.RegimenTitration); err != nil {
		return err
	}
	if record.Type == "" {
		return reject(table, "type", "is required")
	}
	if strings.TrimSpace(record.Description) == "" {
		return reject(table, "description", "is required")
	}
	if len([]rune(record.Description)) > maxDescriptionLength {
		return reject(table, "description", fmt.Sprintf("must be at most %d characters", maxDescriptionLength))
	}
	return nil
}

func validateClinic(record models.Clinic) error {
	table := models.TableClinics
	if strings.TrimSpace(record.Name) == "" {
		return reject(table, "name", "is required")
	}
	if len([]rune(record.Name)) > maxNameLength {
		return reject(table, "name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	return nil
}

func validateClinicVisit(record models.ClinicVisit) error {
	table := models.TableClinicVisits
	if !ValidDateKey(record.Date) {
		return reject(table, "date", "must be a YYYY-MM-DD date")
	}
	if record.ClinicID == 0 {
		return reject(table, "clinicId", "is required")
	}
	return checkFreeText(table, "note", record.Note)
}

func validateMedicine(record models.Medicine) error {
	table := models.TableMedicines
	if strings.TrimSpace(record.Name) == "" {
		return reject(table, "name", "is required")
	}
	if len([]rune(record.Name)) > maxNameLength {
		return reject(table, "name", fmt.Sprintf("must be at most %d characters", maxNameLength))
	}
	if err := checkEnum(table, "type", record.Type, models.MedicineRegular, models.MedicinePRN); err != nil {
		return err
	}
	if record.Type == "" {
		return reject(table, "type", "is required")
	}
	return nil
}

func validateSetting(record models.Setting) error {
	if strings.TrimSpace(record.Key) == "" {
		return reject(models.TableSettings, "key", "is required")
	}
	return nil
}
