package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/koe-app/koe/internal/db"
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
)

// comboWindowMillis is how long after a tap a repeat of the same stamp
// cycles the existing record instead of inserting a new one.
const comboWindowMillis = 5000

type lastLoggedEntry struct {
	id        uint
	severity  int
	timestamp int64
}

// QuickLogService turns one-tap stamps into event log records. A repeated
// tap of the same stamp within the combo window cycles the severity of the
// record it already wrote; after the window a tap starts a fresh record at
// severity 1. The engine is instance-scoped: its recent-tap memory lives on
// the struct, taps serialize through one mutex, and two engines over the
// same store never share combo state.
type QuickLogService struct {
	store    *db.Store
	location *time.Location
	clock    func() time.Time

	mu         sync.Mutex
	lastLogged map[string]lastLoggedEntry
	seededDate string
}

func NewQuickLogService(store *db.Store, location *time.Location, clock func() time.Time) *QuickLogService {
	if location == nil {
		location = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &QuickLogService{
		store:      store,
		location:   location,
		clock:      clock,
		lastLogged: make(map[string]lastLoggedEntry),
	}
}

// Tap records one stamp press. The returned bool reports whether the press
// combo-cycled an existing record rather than inserting a new one.
func (service *QuickLogService) Tap(eventType string, name string) (models.EventLog, bool, error) {
	switch eventType {
	case models.EventTypeSymptom, models.EventTypeMedicine, models.EventTypeTrigger, models.EventTypeFood:
	default:
		return models.EventLog{}, false, &validation.ValidationError{
			Table:   models.TableEventLogs,
			Field:   "type",
			Message: "quick log accepts symptom, medicine, trigger and food stamps",
		}
	}

	logName, err := service.composeLogName(eventType, name)
	if err != nil {
		return models.EventLog{}, false, err
	}

	now := service.clock()
	nowMillis := EpochMillis(now)
	today := DateKey(now, service.location)
	key := eventType + "/" + logName

	service.mu.Lock()
	defer service.mu.Unlock()

	if service.seededDate != today {
		if err := service.reseedLocked(today); err != nil {
			return models.EventLog{}, false, err
		}
	}

	if last, known := service.lastLogged[key]; known && nowMillis-last.timestamp < comboWindowMillis {
		severity := (last.severity % models.MaxComboSeverity(eventType)) + 1
		// The map slides forward before the write so a racing observer of
		// the next tap sees the cycled state; the stored timestamp of the
		// record itself stays at the first tap.
		service.lastLogged[key] = lastLoggedEntry{id: last.id, severity: severity, timestamp: nowMillis}
		if err := service.store.EventLogs().UpdateSeverity(last.id, severity); err != nil {
			log.Printf("quicklog: combo update for %s failed: %v", logName, err)
			delete(service.lastLogged, key)
			return models.EventLog{}, false, err
		}
		event, _, err := service.store.EventLogs().Get(last.id)
		if err != nil {
			return models.EventLog{}, false, err
		}
		return event, true, nil
	}

	event := models.EventLog{
		Date:      today,
		Type:      eventType,
		Name:      logName,
		Severity:  1,
		Timestamp: nowMillis,
	}
	if err := service.store.EventLogs().Add(&event); err != nil {
		log.Printf("quicklog: insert for %s failed: %v", logName, err)
		delete(service.lastLogged, key)
		return models.EventLog{}, false, err
	}
	service.lastLogged[key] = lastLoggedEntry{id: event.ID, severity: 1, timestamp: nowMillis}
	return event, false, nil
}

// Reseed rebuilds the combo memory from today's stored events, keeping the
// latest record per stamp. Called implicitly on the first tap of a new
// calendar date; call it explicitly after an import replaces today's data.
func (service *QuickLogService) Reseed() error {
	service.mu.Lock()
	defer service.mu.Unlock()
	return service.reseedLocked(DateKey(service.clock(), service.location))
}

func (service *QuickLogService) reseedLocked(today string) error {
	events, err := service.store.EventLogs().ListByDate(today)
	if err != nil {
		return err
	}
	seeded := make(map[string]lastLoggedEntry)
	for _, event := range events {
		if event.Type == models.EventTypeNap {
			continue
		}
		key := event.Type + "/" + event.Name
		if previous, known := seeded[key]; !known || event.Timestamp >= previous.timestamp {
			seeded[key] = lastLoggedEntry{id: event.ID, severity: event.Severity, timestamp: event.Timestamp}
		}
	}
	service.lastLogged = seeded
	service.seededDate = today
	return nil
}

// composeLogName appends the configured dosage to the stamp label, so
// "Ibuprofen" with a 200 mg detail is stored as "Ibuprofen (200mg)".
func (service *QuickLogService) composeLogName(eventType string, name string) (string, error) {
	if eventType != models.EventTypeMedicine {
		return name, nil
	}
	setting, found, err := service.store.Settings().Get(models.SettingStampDetails)
	if err != nil {
		return "", err
	}
	if !found || len(setting.Value) == 0 {
		return name, nil
	}
	details := make(map[string]models.StampDetail)
	if err := json.Unmarshal(setting.Value, &details); err != nil {
		log.Printf("quicklog: malformed stamp details, ignoring: %v", err)
		return name, nil
	}
	detail, known := details[name]
	if !known || detail.Dosage == "" {
		return name, nil
	}
	return fmt.Sprintf("%s (%s%s)", name, detail.Dosage, detail.Unit), nil
}
