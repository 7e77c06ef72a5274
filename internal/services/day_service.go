package services

import (
	"time"

	"github.com/koe-app/koe/internal/db"
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
)

// maxNapMinutes caps the accumulated nap total for a day. Individual nap
// events keep their real length; only the day-log total saturates.
const maxNapMinutes = 480

// DayService owns the one-record-per-date journal. All writes go through
// the validated merge-upsert so a partial update can never erase fields it
// did not mention.
type DayService struct {
	store    *db.Store
	location *time.Location
	clock    func() time.Time
}

func NewDayService(store *db.Store, location *time.Location, clock func() time.Time) *DayService {
	if location == nil {
		location = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &DayService{store: store, location: location, clock: clock}
}

func (service *DayService) Fetch(date string) (models.DayLog, bool, error) {
	return service.store.DayLogs().Get(date)
}

func (service *DayService) FetchRange(from string, to string) ([]models.DayLog, error) {
	return service.store.DayLogs().ListRange(from, to)
}

// FetchLastDays returns the trailing window ending today, today included.
func (service *DayService) FetchLastDays(days int) ([]models.DayLog, error) {
	if days < 1 {
		days = 1
	}
	now := service.clock()
	to := DateKey(now, service.location)
	from := DateKey(now.AddDate(0, 0, -(days-1)), service.location)
	return service.store.DayLogs().ListRange(from, to)
}

// Upsert merges the patch onto the stored record for date, creating the
// record on first write. CreatedAt is set once and never changes;
// UpdatedAt strictly increases even when two writes land inside the same
// clock millisecond.
func (service *DayService) Upsert(date string, patch models.DayLogPatch) (models.DayLog, error) {
	if !validation.ValidDateKey(date) {
		return models.DayLog{}, &validation.ValidationError{
			Table:   models.TableDayLogs,
			Field:   "id",
			Message: "date must be YYYY-MM-DD",
		}
	}

	var merged models.DayLog
	err := service.store.Transaction(func(tx *db.Tx) error {
		entry, found, err := tx.DayLogs().Get(date)
		if err != nil {
			return err
		}
		now := EpochMillis(service.clock())
		if !found {
			entry = models.DayLog{ID: date, CreatedAt: now}
		}
		patch.Apply(&entry)
		entry.UpdatedAt = nextUpdatedAt(now, entry.UpdatedAt)
		if err := tx.DayLogs().Put(&entry); err != nil {
			return err
		}
		merged = entry
		return nil
	})
	if err != nil {
		return models.DayLog{}, err
	}
	return merged, nil
}

// LogNap records a nap that ended at the given instant: one nap event with
// the length in minutes, plus the day-log nap total, committed together.
func (service *DayService) LogNap(endedAt time.Time, minutes int) (models.EventLog, error) {
	if minutes < 1 || minutes > maxNapMinutes {
		return models.EventLog{}, &validation.ValidationError{
			Table:   models.TableEventLogs,
			Field:   "severity",
			Message: "nap minutes must be between 1 and 480",
		}
	}

	date := DateKey(endedAt, service.location)
	event := models.EventLog{
		Date:      date,
		Type:      models.EventTypeNap,
		Name:      "nap",
		Severity:  minutes,
		Timestamp: EpochMillis(endedAt),
	}
	err := service.store.Transaction(func(tx *db.Tx) error {
		if err := tx.EventLogs().Add(&event); err != nil {
			return err
		}
		entry, found, err := tx.DayLogs().Get(date)
		if err != nil {
			return err
		}
		now := EpochMillis(service.clock())
		if !found {
			entry = models.DayLog{ID: date, CreatedAt: now}
		}
		total := minutes
		if entry.NapDuration != nil {
			total += *entry.NapDuration
		}
		if total > maxNapMinutes {
			total = maxNapMinutes
		}
		entry.NapDuration = &total
		entry.UpdatedAt = nextUpdatedAt(now, entry.UpdatedAt)
		return tx.DayLogs().Put(&entry)
	})
	if err != nil {
		return models.EventLog{}, err
	}
	return event, nil
}

func (service *DayService) Delete(date string) error {
	return service.store.DayLogs().Delete(date)
}

// nextUpdatedAt keeps UpdatedAt strictly increasing under a coarse clock.
func nextUpdatedAt(now int64, previous int64) int64 {
	if now <= previous {
		return previous + 1
	}
	return now
}
