package services

import (
	"testing"
	"time"

	"github.com/koe-app/koe/internal/models"
)

func TestDeclarePhaseKeepsSingleActiveRecord(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	clock := newManualClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	service := NewRegimenService(store, time.UTC, clock.Now)

	first, err := service.DeclarePhase(models.RegimenMaintenance, "2024-01-01", "maintenance start")
	if err != nil {
		t.Fatalf("declare first: %v", err)
	}
	if !first.IsActive {
		t.Fatal("declared phase is not active")
	}

	clock.Advance(9 * 24 * time.Hour)
	second, err := service.DeclarePhase(models.RegimenTapering, "2024-01-10", "begin taper")
	if err != nil {
		t.Fatalf("declare second: %v", err)
	}

	active, found, err := service.Active()
	if err != nil || !found {
		t.Fatalf("active: found=%v err=%v", found, err)
	}
	if active.ID != second.ID || active.Type != models.RegimenTapering {
		t.Fatalf("active = %+v, want the tapering phase", active)
	}

	history, err := service.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d records, want 2", len(history))
	}
	activeCount := 0
	for _, record := range history {
		if record.IsActive {
			activeCount++
		}
	}
	if activeCount != 1 {
		t.Fatalf("%d active records after declare, want exactly 1", activeCount)
	}
}

func TestDeclarePhaseValidatesInput(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	service := NewRegimenService(store, time.UTC, nil)

	if _, err := service.DeclarePhase("pause", "2024-01-01", "x"); err == nil {
		t.Fatal("unknown phase type accepted")
	}
	if _, err := service.DeclarePhase(models.RegimenMaintenance, "january", "x"); err == nil {
		t.Fatal("malformed start date accepted")
	}

	history, err := service.History()
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatal("rejected declare left records behind")
	}
}

func TestCurrentPhaseDay(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	clock := newManualClock(time.Date(2026, 8, 27, 14, 0, 0, 0, time.UTC))
	service := NewRegimenService(store, time.UTC, clock.Now)

	if _, _, err := service.Active(); err != nil {
		t.Fatalf("active on empty store: %v", err)
	}
	if _, found, _ := service.CurrentPhaseDay(); found {
		t.Fatal("phase day reported with no active phase")
	}

	// Started today: day 1.
	if _, err := service.DeclarePhase(models.RegimenTitration, "2026-08-27", "up-titration"); err != nil {
		t.Fatalf("declare: %v", err)
	}
	day, found, err := service.CurrentPhaseDay()
	if err != nil || !found {
		t.Fatalf("phase day: found=%v err=%v", found, err)
	}
	if day != 1 {
		t.Fatalf("phase day = %d, want 1 for a phase started today", day)
	}

	// Started seven days ago: day 8.
	if _, err := service.DeclarePhase(models.RegimenTitration, "2026-08-20", "restated start"); err != nil {
		t.Fatalf("redeclare: %v", err)
	}
	day, _, err = service.CurrentPhaseDay()
	if err != nil {
		t.Fatalf("phase day: %v", err)
	}
	if day != 8 {
		t.Fatalf("phase day = %d, want 8 for a phase started seven days ago", day)
	}
}

func TestActiveToleratesMultipleActiveRecords(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	service := NewRegimenService(store, time.UTC, nil)

	// Simulate a hand-edited import that left two active records.
	older := models.RegimenHistory{StartDate: "2026-01-01", Type: models.RegimenMaintenance, Description: "old", IsActive: true, CreatedAt: 100}
	newer := models.RegimenHistory{StartDate: "2026-02-01", Type: models.RegimenTapering, Description: "new", IsActive: true, CreatedAt: 200}
	if err := store.Regimens().BulkPut([]models.RegimenHistory{older, newer}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	active, found, err := service.Active()
	if err != nil || !found {
		t.Fatalf("active: found=%v err=%v", found, err)
	}
	if active.Description != "new" {
		t.Fatalf("active = %+v, want the most recently created record", active)
	}
}
