package db

import (
	"sort"
	"sync"

	"github.com/koe-app/koe/internal/livequery"
	"gorm.io/gorm"
)

// Store owns all persisted state. Repositories obtained from it validate
// every write before it reaches SQLite and publish a live-query
// notification after each committed write. Cross-table writes go through
// Transaction so they commit atomically and notify once.
type Store struct {
	database *gorm.DB
	hub      *livequery.Hub
}

func NewStore(database *gorm.DB, hub *livequery.Hub) *Store {
	return &Store{database: database, hub: hub}
}

func (store *Store) Hub() *livequery.Hub {
	return store.hub
}

func (store *Store) DayLogs() *DayLogRepository {
	return &DayLogRepository{database: store.database, changed: store.publish}
}

func (store *Store) EventLogs() *EventLogRepository {
	return &EventLogRepository{database: store.database, changed: store.publish}
}

func (store *Store) Regimens() *RegimenRepository {
	return &RegimenRepository{database: store.database, changed: store.publish}
}

func (store *Store) Settings() *SettingRepository {
	return &SettingRepository{database: store.database, changed: store.publish}
}

func (store *Store) Clinics() *ClinicRepository {
	return &ClinicRepository{database: store.database, changed: store.publish}
}

func (store *Store) ClinicVisits() *ClinicVisitRepository {
	return &ClinicVisitRepository{database: store.database, changed: store.publish}
}

func (store *Store) Medicines() *MedicineRepository {
	return &MedicineRepository{database: store.database, changed: store.publish}
}

func (store *Store) publish(tables ...string) {
	if store.hub != nil {
		store.hub.Publish(tables...)
	}
}

// Tx gives a transaction body tx-bound repositories. Touched tables are
// accumulated instead of published; the store publishes the whole set once
// after commit, so a transaction spanning three tables triggers a
// subscription on all three exactly once.
type Tx struct {
	database *gorm.DB
	touched  *touchedTables
}

func (tx *Tx) DayLogs() *DayLogRepository {
	return &DayLogRepository{database: tx.database, changed: tx.touched.add}
}

func (tx *Tx) EventLogs() *EventLogRepository {
	return &EventLogRepository{database: tx.database, changed: tx.touched.add}
}

func (tx *Tx) Regimens() *RegimenRepository {
	return &RegimenRepository{database: tx.database, changed: tx.touched.add}
}

func (tx *Tx) Settings() *SettingRepository {
	return &SettingRepository{database: tx.database, changed: tx.touched.add}
}

func (tx *Tx) Clinics() *ClinicRepository {
	return &ClinicRepository{database: tx.database, changed: tx.touched.add}
}

func (tx *Tx) ClinicVisits() *ClinicVisitRepository {
	return &ClinicVisitRepository{database: tx.database, changed: tx.touched.add}
}

func (tx *Tx) Medicines() *MedicineRepository {
	return &MedicineRepository{database: tx.database, changed: tx.touched.add}
}

// Transaction runs body atomically. On any error the transaction rolls
// back, the error propagates unchanged, and no notification is published.
func (store *Store) Transaction(body func(tx *Tx) error) error {
	touched := &touchedTables{}
	err := store.database.Transaction(func(txdb *gorm.DB) error {
		return body(&Tx{database: txdb, touched: touched})
	})
	if err != nil {
		return err
	}
	store.publish(touched.list()...)
	return nil
}

type touchedTables struct {
	mu     sync.Mutex
	tables map[string]struct{}
}

func (touched *touchedTables) add(tables ...string) {
	touched.mu.Lock()
	defer touched.mu.Unlock()
	if touched.tables == nil {
		touched.tables = make(map[string]struct{})
	}
	for _, table := range tables {
		touched.tables[table] = struct{}{}
	}
}

func (touched *touchedTables) list() []string {
	touched.mu.Lock()
	defer touched.mu.Unlock()
	tables := make([]string, 0, len(touched.tables))
	for table := range touched.tables {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	return tables
}
