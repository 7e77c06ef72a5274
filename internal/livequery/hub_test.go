package livequery

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func waitForResult(t *testing.T, subscription *Subscription) Result {
	t.Helper()
	select {
	case result := <-subscription.Updates():
		return result
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscription result")
		return Result{}
	}
}

func TestSubscribeRunsImmediately(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	subscription := hub.Subscribe([]string{"event_logs"}, func(ctx context.Context) (any, error) {
		return 42, nil
	})
	defer subscription.Cancel()

	result := waitForResult(t, subscription)
	if result.Err != nil {
		t.Fatalf("initial run failed: %v", result.Err)
	}
	if result.Value != 42 {
		t.Fatalf("initial run value = %v, want 42", result.Value)
	}
}

func TestPublishTriggersOnlyIntersectingSubscriptions(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	var eventRuns, clinicRuns atomic.Int32

	eventsSub := hub.Subscribe([]string{"event_logs"}, func(ctx context.Context) (any, error) {
		return eventRuns.Add(1), nil
	})
	defer eventsSub.Cancel()
	clinicsSub := hub.Subscribe([]string{"clinics"}, func(ctx context.Context) (any, error) {
		return clinicRuns.Add(1), nil
	})
	defer clinicsSub.Cancel()

	waitForResult(t, eventsSub)
	waitForResult(t, clinicsSub)

	hub.Publish("clinics")
	result := waitForResult(t, clinicsSub)
	if result.Value != int32(2) {
		t.Fatalf("clinics subscription run count = %v, want 2", result.Value)
	}

	// The event subscription declared no interest in clinics and must stay
	// silent.
	select {
	case result := <-eventsSub.Updates():
		t.Fatalf("event subscription re-ran on clinics write: %v", result.Value)
	case <-time.After(200 * time.Millisecond):
	}
	if count := eventRuns.Load(); count != 1 {
		t.Fatalf("event subscription ran %d times, want 1", count)
	}
}

func TestBurstOfWritesCoalesces(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	var runs atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	subscription := hub.Subscribe([]string{"day_logs"}, func(ctx context.Context) (any, error) {
		count := runs.Add(1)
		if count == 2 {
			close(started)
			<-release
		}
		return count, nil
	})
	defer subscription.Cancel()

	waitForResult(t, subscription)

	// Start a recompute, then pile up writes while it is in flight.
	hub.Publish("day_logs")
	<-started
	hub.Publish("day_logs")
	hub.Publish("day_logs")
	hub.Publish("day_logs")
	close(release)

	// The burst must collapse into exactly one trailing run: three runs
	// total, counting the initial one.
	deadline := time.After(2 * time.Second)
	for runs.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("trailing run never happened, runs = %d", runs.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}
	time.Sleep(200 * time.Millisecond)
	if count := runs.Load(); count != 3 {
		t.Fatalf("burst produced %d runs, want 3", count)
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	subscription := hub.Subscribe([]string{"settings"}, func(ctx context.Context) (any, error) {
		return "value", nil
	})
	waitForResult(t, subscription)

	subscription.Cancel()
	hub.Publish("settings")

	select {
	case <-subscription.Done():
	default:
		t.Fatal("Done channel should be closed after Cancel")
	}
	select {
	case result := <-subscription.Updates():
		t.Fatalf("delivery after cancel: %v", result.Value)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestLatestResultWins(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	var runs atomic.Int32
	subscription := hub.Subscribe([]string{"medicines"}, func(ctx context.Context) (any, error) {
		return runs.Add(1), nil
	})
	defer subscription.Cancel()

	// Let the initial result sit undelivered, then force another run; the
	// stale result must be replaced, not queued behind.
	time.Sleep(100 * time.Millisecond)
	hub.Publish("medicines")
	time.Sleep(100 * time.Millisecond)

	result := waitForResult(t, subscription)
	if result.Value != int32(2) {
		t.Fatalf("delivered value = %v, want latest run (2)", result.Value)
	}
}
