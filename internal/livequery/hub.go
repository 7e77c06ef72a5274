// Package livequery re-runs registered read computations after committed
// writes touch the tables they depend on. Dependencies are declared
// explicitly at subscription time: the original reactive layer inferred
// them by observing table access at runtime, which made the contract
// invisible and under-tracked conditional reads. Declaring the table set up
// front is statically checkable; the cost is that callers must keep the
// declaration in sync with their read logic.
package livequery

import (
	"context"
	"sync"
)

// ReadFunc is a read-only computation over the store. It must not write;
// a write from inside a read would feed back into the notification cycle.
type ReadFunc func(ctx context.Context) (any, error)

// Result is one delivery to a subscriber. Consumers see nothing on the
// channel until the first run resolves; absence of a result means loading,
// not empty.
type Result struct {
	Value any
	Err   error
}

// Hub fans committed-write notifications out to live subscriptions.
type Hub struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscription]struct{})}
}

// Publish signals that a committed write touched the given tables. Every
// subscription whose declared set intersects is scheduled for one re-run;
// re-runs requested while a run is in flight coalesce into a single
// trailing run.
func (hub *Hub) Publish(tables ...string) {
	if len(tables) == 0 {
		return
	}
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for subscription := range hub.subs {
		if subscription.dependsOnAny(tables) {
			subscription.schedule()
		}
	}
}

// Subscribe registers a read over the declared tables. The read runs once
// immediately; its result, and every subsequent re-run's result, arrives on
// Updates with latest-wins delivery. Cancel stops all future deliveries,
// including runs already scheduled.
func (hub *Hub) Subscribe(tables []string, read ReadFunc) *Subscription {
	subscription := &Subscription{
		hub:     hub,
		tables:  make(map[string]struct{}, len(tables)),
		read:    read,
		trigger: make(chan struct{}, 1),
		updates: make(chan Result, 1),
		done:    make(chan struct{}),
	}
	for _, table := range tables {
		subscription.tables[table] = struct{}{}
	}

	hub.mu.Lock()
	hub.subs[subscription] = struct{}{}
	hub.mu.Unlock()

	subscription.schedule()
	go subscription.loop()
	return subscription
}

func (hub *Hub) remove(subscription *Subscription) {
	hub.mu.Lock()
	delete(hub.subs, subscription)
	hub.mu.Unlock()
}

// Subscription is one registered live read.
type Subscription struct {
	hub     *Hub
	tables  map[string]struct{}
	read    ReadFunc
	trigger chan struct{}
	updates chan Result
	done    chan struct{}
	cancel  sync.Once
}

// Updates delivers the latest result of each completed run. The channel is
// never closed; select against the subscription's cancellation instead.
func (subscription *Subscription) Updates() <-chan Result {
	return subscription.updates
}

// Done is closed when the subscription is cancelled.
func (subscription *Subscription) Done() <-chan struct{} {
	return subscription.done
}

// Cancel unsubscribes. No result is delivered afterwards, even from a run
// that was already scheduled or in flight, and the hub drops all state for
// this subscription.
func (subscription *Subscription) Cancel() {
	subscription.cancel.Do(func() {
		subscription.hub.remove(subscription)
		close(subscription.done)
	})
}

func (subscription *Subscription) dependsOnAny(tables []string) bool {
	for _, table := range tables {
		if _, ok := subscription.tables[table]; ok {
			return true
		}
	}
	return false
}

func (subscription *Subscription) schedule() {
	select {
	case subscription.trigger <- struct{}{}:
	default:
		// A run is already pending; the write coalesces into it.
	}
}

// loop serializes runs: the read function is never invoked concurrently
// with itself.
func (subscription *Subscription) loop() {
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()
	go func() {
		<-subscription.done
		cancelCtx()
	}()

	for {
		select {
		case <-subscription.done:
			return
		case <-subscription.trigger:
		}

		value, err := subscription.read(ctx)
		subscription.deliver(Result{Value: value, Err: err})
	}
}

// deliver replaces any undelivered stale result with the fresh one, and
// drops the result entirely if the subscription was cancelled mid-run.
func (subscription *Subscription) deliver(result Result) {
	select {
	case <-subscription.done:
		return
	default:
	}

	for {
		select {
		case <-subscription.done:
			return
		case subscription.updates <- result:
			return
		default:
			select {
			case <-subscription.updates:
			default:
			}
		}
	}
}
