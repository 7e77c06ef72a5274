package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/koe-app/koe/internal/db"
	"github.com/koe-app/koe/internal/livequery"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return db.NewStore(database, livequery.NewHub())
}

// manualClock is a settable clock for services that take time from a
// function.
type manualClock struct {
	now time.Time
}

func newManualClock(now time.Time) *manualClock {
	return &manualClock{now: now}
}

func (clock *manualClock) Now() time.Time {
	return clock.now
}

func (clock *manualClock) Advance(duration time.Duration) {
	clock.now = clock.now.Add(duration)
}

func intPointer(value int) *int {
	return &value
}

func stringPointer(value string) *string {
	return &value
}
