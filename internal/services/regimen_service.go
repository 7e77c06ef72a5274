package services

import (
	"log"
	"time"

	"github.com/koe-app/koe/internal/db"
	"github.com/koe-app/koe/internal/models"
)

// RegimenService manages medication-management phases. Exactly one phase is
// active at a time: declaring a new phase deactivates every prior record
// and inserts the new one inside a single transaction, so the invariant
// holds after every declare no matter what state preceded it.
type RegimenService struct {
	store    *db.Store
	location *time.Location
	clock    func() time.Time
}

func NewRegimenService(store *db.Store, location *time.Location, clock func() time.Time) *RegimenService {
	if location == nil {
		location = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &RegimenService{store: store, location: location, clock: clock}
}

func (service *RegimenService) DeclarePhase(phaseType string, startDate string, description string) (models.RegimenHistory, error) {
	entry := models.RegimenHistory{
		StartDate:   startDate,
		Type:        phaseType,
		Description: description,
		IsActive:    true,
		CreatedAt:   EpochMillis(service.clock()),
	}
	err := service.store.Transaction(func(tx *db.Tx) error {
		if err := tx.Regimens().DeactivateAll(); err != nil {
			return err
		}
		return tx.Regimens().Add(&entry)
	})
	if err != nil {
		return models.RegimenHistory{}, err
	}
	return entry, nil
}

// Active returns the current phase. A store that somehow holds several
// active records (a hand-edited import, for example) is tolerated: the most
// recently created one wins and the ambiguity is logged, never guessed away
// silently.
func (service *RegimenService) Active() (models.RegimenHistory, bool, error) {
	records, err := service.store.Regimens().ListActive()
	if err != nil {
		return models.RegimenHistory{}, false, err
	}
	if len(records) == 0 {
		return models.RegimenHistory{}, false, nil
	}
	if len(records) > 1 {
		log.Printf("regimen: %d active records found, using the most recent", len(records))
	}
	latest := records[0]
	for _, record := range records[1:] {
		if record.CreatedAt > latest.CreatedAt ||
			(record.CreatedAt == latest.CreatedAt && record.ID > latest.ID) {
			latest = record
		}
	}
	return latest, true, nil
}

// CurrentPhaseDay reports which day of the active phase today is, start
// date counting as day 1. Returns false when no phase is active.
func (service *RegimenService) CurrentPhaseDay() (int, bool, error) {
	active, found, err := service.Active()
	if err != nil || !found {
		return 0, false, err
	}
	start, err := ParseDateKey(active.StartDate, service.location)
	if err != nil {
		return 0, false, err
	}
	return CalendarDaysBetween(start, service.clock(), service.location) + 1, true, nil
}

func (service *RegimenService) History() ([]models.RegimenHistory, error) {
	return service.store.Regimens().ListAll()
}
