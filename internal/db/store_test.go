package db

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/koe-app/koe/internal/livequery"
	"gorm.io/datatypes"
	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return NewStore(database, livequery.NewHub())
}

func intPointer(value int) *int {
	return &value
}

func TestOpenSQLiteAppliesMigrationsIdempotently(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "twice.db")
	if _, err := OpenSQLite(path); err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := OpenSQLite(path); err != nil {
		t.Fatalf("second open re-applied migrations: %v", err)
	}
}

func TestDayLogPutGetDelete(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	entry := models.DayLog{ID: "2026-08-27", SleepQuality: intPointer(4), Note: "ok day", CreatedAt: 1, UpdatedAt: 1}
	if err := store.DayLogs().Put(&entry); err != nil {
		t.Fatalf("put: %v", err)
	}

	loaded, found, err := store.DayLogs().Get("2026-08-27")
	if err != nil || !found {
		t.Fatalf("get after put: found=%v err=%v", found, err)
	}
	if loaded.SleepQuality == nil || *loaded.SleepQuality != 4 || loaded.Note != "ok day" {
		t.Fatalf("loaded record does not match: %+v", loaded)
	}

	_, found, err = store.DayLogs().Get("2026-08-28")
	if err != nil {
		t.Fatalf("get absent: %v", err)
	}
	if found {
		t.Fatal("absent date reported found")
	}

	if err := store.DayLogs().Delete("2026-08-27"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.DayLogs().Delete("2026-08-27"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestRejectedWriteNeverVisible(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	bad := models.DayLog{ID: "2026-08-27", SleepQuality: intPointer(6)}
	err := store.DayLogs().Put(&bad)
	var validationErr *validation.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	_, found, err := store.DayLogs().Get("2026-08-27")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("rejected write became visible")
	}
}

func TestEventLogSeverityUpdateValidatesMergedRecord(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	event := models.EventLog{Date: "2026-08-27", Type: models.EventTypeSymptom, Name: "headache", Severity: 2, Timestamp: 100}
	if err := store.EventLogs().Add(&event); err != nil {
		t.Fatalf("add: %v", err)
	}
	if event.ID == 0 {
		t.Fatal("add did not assign an id")
	}

	if err := store.EventLogs().UpdateSeverity(event.ID, 3); err != nil {
		t.Fatalf("update severity: %v", err)
	}
	if err := store.EventLogs().UpdateSeverity(event.ID, 6); err == nil {
		t.Fatal("out-of-range severity accepted")
	}

	loaded, _, err := store.EventLogs().Get(event.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Severity != 3 {
		t.Fatalf("severity = %d, want 3", loaded.Severity)
	}
	if err := store.EventLogs().UpdateSeverity(9999, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update of absent id = %v, want ErrNotFound", err)
	}
}

func TestEventLogRangeQueries(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	seed := []models.EventLog{
		{Date: "2026-08-25", Type: models.EventTypeSymptom, Name: "headache", Severity: 1, Timestamp: 10},
		{Date: "2026-08-26", Type: models.EventTypeMedicine, Name: "ibuprofen", Severity: 1, Timestamp: 20},
		{Date: "2026-08-27", Type: models.EventTypeSymptom, Name: "nausea", Severity: 2, Timestamp: 30},
		{Date: "2026-08-28", Type: models.EventTypeSymptom, Name: "headache", Severity: 1, Timestamp: 40},
	}
	for index := range seed {
		if err := store.EventLogs().Add(&seed[index]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	inRange, err := store.EventLogs().ListRange("2026-08-25", "2026-08-27")
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(inRange) != 3 {
		t.Fatalf("range returned %d events, want 3", len(inRange))
	}

	symptoms, err := store.EventLogs().ListRangeByType("2026-08-25", "2026-08-28", models.EventTypeSymptom)
	if err != nil {
		t.Fatalf("list range by type: %v", err)
	}
	if len(symptoms) != 3 {
		t.Fatalf("symptom range returned %d events, want 3", len(symptoms))
	}

	byDate, err := store.EventLogs().ListByDate("2026-08-26")
	if err != nil {
		t.Fatalf("list by date: %v", err)
	}
	if len(byDate) != 1 || byDate[0].Name != "ibuprofen" {
		t.Fatalf("by-date result: %+v", byDate)
	}
}

func TestTransactionRollsBackAndStaysSilent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	var runs atomic.Int32
	subscription := store.Hub().Subscribe([]string{models.TableDayLogs}, func(ctx context.Context) (any, error) {
		return runs.Add(1), nil
	})
	defer subscription.Cancel()
	waitForRuns(t, &runs, 1)

	boom := errors.New("boom")
	err := store.Transaction(func(tx *Tx) error {
		if err := tx.DayLogs().Put(&models.DayLog{ID: "2026-08-27", CreatedAt: 1, UpdatedAt: 1}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("transaction error = %v, want boom", err)
	}

	_, found, err := store.DayLogs().Get("2026-08-27")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if found {
		t.Fatal("rolled-back write is visible")
	}

	time.Sleep(200 * time.Millisecond)
	if count := runs.Load(); count != 1 {
		t.Fatalf("rollback published a notification, runs = %d", count)
	}
}

func TestTransactionPublishesTouchedTablesOnce(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	var dayRuns, eventRuns, clinicRuns atomic.Int32
	daySub := store.Hub().Subscribe([]string{models.TableDayLogs}, func(ctx context.Context) (any, error) {
		return dayRuns.Add(1), nil
	})
	defer daySub.Cancel()
	eventSub := store.Hub().Subscribe([]string{models.TableEventLogs}, func(ctx context.Context) (any, error) {
		return eventRuns.Add(1), nil
	})
	defer eventSub.Cancel()
	clinicSub := store.Hub().Subscribe([]string{models.TableClinics}, func(ctx context.Context) (any, error) {
		return clinicRuns.Add(1), nil
	})
	defer clinicSub.Cancel()
	waitForRuns(t, &dayRuns, 1)
	waitForRuns(t, &eventRuns, 1)
	waitForRuns(t, &clinicRuns, 1)

	err := store.Transaction(func(tx *Tx) error {
		if err := tx.DayLogs().Put(&models.DayLog{ID: "2026-08-27", CreatedAt: 1, UpdatedAt: 1}); err != nil {
			return err
		}
		return tx.EventLogs().Add(&models.EventLog{
			Date: "2026-08-27", Type: models.EventTypeNap, Name: "nap", Severity: 30, Timestamp: 50,
		})
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}

	waitForRuns(t, &dayRuns, 2)
	waitForRuns(t, &eventRuns, 2)
	time.Sleep(200 * time.Millisecond)
	if count := clinicRuns.Load(); count != 1 {
		t.Fatalf("untouched table re-ran, clinic runs = %d", count)
	}
	if count := dayRuns.Load(); count != 2 {
		t.Fatalf("day subscription ran %d times, want 2", count)
	}
}

func TestRegimenDeactivateAll(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	for _, startDate := range []string{"2026-01-01", "2026-02-01"} {
		entry := models.RegimenHistory{StartDate: startDate, Type: models.RegimenMaintenance, Description: "phase", IsActive: true, CreatedAt: 1}
		if err := store.Regimens().Add(&entry); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	if err := store.Regimens().DeactivateAll(); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, err := store.Regimens().ListActive()
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("%d records still active", len(active))
	}
	all, err := store.Regimens().ListAll()
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("history lost records, have %d", len(all))
	}
}

func TestSettingUpsert(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	if err := store.Settings().Put(&models.Setting{Key: "profile", Value: datatypes.JSON(`{"name":"a"}`)}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Settings().Put(&models.Setting{Key: "profile", Value: datatypes.JSON(`{"name":"b"}`)}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	setting, found, err := store.Settings().Get("profile")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if string(setting.Value) != `{"name":"b"}` {
		t.Fatalf("value = %s, want overwritten payload", setting.Value)
	}
}

func waitForRuns(t *testing.T, runs *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for runs.Load() < want {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d runs, have %d", want, runs.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}
}
