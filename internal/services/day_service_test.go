package services

import (
	"errors"
	"testing"
	"time"

	"github.com/koe-app/koe/internal/models"
	"github.com/koe-app/koe/internal/validation"
)

func TestUpsertMergesAndPreservesUnsetFields(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	clock := newManualClock(time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC))
	service := NewDayService(store, time.UTC, clock.Now)

	first, err := service.Upsert("2026-08-27", models.DayLogPatch{
		SleepQuality: intPointer(4),
		Note:         stringPointer("rough morning"),
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.CreatedAt == 0 || first.UpdatedAt == 0 {
		t.Fatalf("timestamps not set: %+v", first)
	}

	clock.Advance(time.Hour)
	second, err := service.Upsert("2026-08-27", models.DayLogPatch{
		FatigueLevel: intPointer(2),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.SleepQuality == nil || *second.SleepQuality != 4 {
		t.Fatalf("sleep quality lost on merge: %+v", second)
	}
	if second.Note != "rough morning" {
		t.Fatalf("note lost on merge: %q", second.Note)
	}
	if second.FatigueLevel == nil || *second.FatigueLevel != 2 {
		t.Fatalf("patched field missing: %+v", second)
	}
	if second.CreatedAt != first.CreatedAt {
		t.Fatalf("CreatedAt changed: %d -> %d", first.CreatedAt, second.CreatedAt)
	}
	if second.UpdatedAt <= first.UpdatedAt {
		t.Fatalf("UpdatedAt did not increase: %d -> %d", first.UpdatedAt, second.UpdatedAt)
	}
}

func TestUpsertUpdatedAtStrictlyIncreasesUnderFrozenClock(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	clock := newManualClock(time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC))
	service := NewDayService(store, time.UTC, clock.Now)

	previous := int64(0)
	for i := 0; i < 3; i++ {
		entry, err := service.Upsert("2026-08-27", models.DayLogPatch{Note: stringPointer("same millisecond")})
		if err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
		if entry.UpdatedAt <= previous {
			t.Fatalf("UpdatedAt %d not greater than previous %d", entry.UpdatedAt, previous)
		}
		previous = entry.UpdatedAt
	}
}

func TestUpsertRejectsInvalidMergedRecord(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	service := NewDayService(store, time.UTC, nil)

	if _, err := service.Upsert("2026-08-27", models.DayLogPatch{Note: stringPointer("fine")}); err != nil {
		t.Fatalf("seed upsert: %v", err)
	}

	_, err := service.Upsert("2026-08-27", models.DayLogPatch{SleepQuality: intPointer(6)})
	var validationErr *validation.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	entry, _, err := service.Fetch("2026-08-27")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if entry.SleepQuality != nil {
		t.Fatal("rejected patch leaked into storage")
	}
	if entry.Note != "fine" {
		t.Fatalf("prior state damaged: %+v", entry)
	}

	if _, err := service.Upsert("today", models.DayLogPatch{}); err == nil {
		t.Fatal("malformed date accepted")
	}
}

func TestLogNapWritesEventAndDayTotalTogether(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	clock := newManualClock(time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC))
	service := NewDayService(store, time.UTC, clock.Now)

	event, err := service.LogNap(clock.Now(), 40)
	if err != nil {
		t.Fatalf("first nap: %v", err)
	}
	if event.Type != models.EventTypeNap || event.Severity != 40 {
		t.Fatalf("nap event = %+v", event)
	}

	clock.Advance(3 * time.Hour)
	if _, err := service.LogNap(clock.Now(), 25); err != nil {
		t.Fatalf("second nap: %v", err)
	}

	entry, found, err := service.Fetch("2026-08-27")
	if err != nil || !found {
		t.Fatalf("fetch day: found=%v err=%v", found, err)
	}
	if entry.NapDuration == nil || *entry.NapDuration != 65 {
		t.Fatalf("nap total = %v, want 65", entry.NapDuration)
	}

	events, err := store.EventLogs().ListByDate("2026-08-27")
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("%d nap events stored, want 2", len(events))
	}

	if _, err := service.LogNap(clock.Now(), 0); err == nil {
		t.Fatal("zero-minute nap accepted")
	}
	if _, err := service.LogNap(clock.Now(), 481); err == nil {
		t.Fatal("over-long nap accepted")
	}
}

func TestFetchLastDaysWindow(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	clock := newManualClock(time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC))
	service := NewDayService(store, time.UTC, clock.Now)

	for _, date := range []string{"2026-08-19", "2026-08-21", "2026-08-27"} {
		if _, err := service.Upsert(date, models.DayLogPatch{Note: stringPointer("entry")}); err != nil {
			t.Fatalf("seed %s: %v", date, err)
		}
	}

	window, err := service.FetchLastDays(7)
	if err != nil {
		t.Fatalf("fetch window: %v", err)
	}
	if len(window) != 2 {
		t.Fatalf("window has %d entries, want 2 (2026-08-21 and 2026-08-27)", len(window))
	}
	if window[0].ID != "2026-08-21" || window[1].ID != "2026-08-27" {
		t.Fatalf("window contents: %+v", window)
	}
}
