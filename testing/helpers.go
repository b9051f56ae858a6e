// Package testing provides test utilities for signalz.
package testing

import (
	"sync"
	"testing"
	"time"

	signalz "github.com/zoobzio/signalz"
)

// RecordedSignal is one observed signal together with the clock time at
// which it was delivered.
type RecordedSignal[T any] struct {
	At     time.Time
	Signal signalz.Notification[T]
}

// Recorder observes a stream and records every signal with a timestamp from
// the supplied Clock. Pair it with a fake clock to assert delivery times
// deterministically. A Recorder is meant for a single subscription; it is
// safe for concurrent delivery.
type Recorder[T any] struct {
	mu       sync.Mutex
	clock    signalz.Clock
	signals  []RecordedSignal[T]
	terminal chan struct{}
}

// NewRecorder creates a Recorder stamping signals with clock.
func NewRecorder[T any](clock signalz.Clock) *Recorder[T] {
	return &Recorder[T]{clock: clock, terminal: make(chan struct{})}
}

// Observer returns the observer to subscribe with.
func (r *Recorder[T]) Observer() signalz.Observer[T] {
	return signalz.Observer[T]{
		OnValue: func(v T) {
			r.record(signalz.NewValue(v))
		},
		OnError: func(err error) {
			r.record(signalz.NewError[T](err))
			close(r.terminal)
		},
		OnComplete: func() {
			r.record(signalz.NewComplete[T]())
			close(r.terminal)
		},
	}
}

func (r *Recorder[T]) record(n signalz.Notification[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, RecordedSignal[T]{At: r.clock.Now(), Signal: n})
}

// Signals returns a copy of everything recorded so far, in delivery order.
func (r *Recorder[T]) Signals() []RecordedSignal[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedSignal[T], len(r.signals))
	copy(out, r.signals)
	return out
}

// Values returns the recorded values, in delivery order.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	var values []T
	for _, s := range r.signals {
		if s.Signal.IsValue() {
			values = append(values, s.Signal.Value())
		}
	}
	return values
}

// Err returns the recorded terminal error, or nil if none arrived.
func (r *Recorder[T]) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.signals {
		if s.Signal.IsError() {
			return s.Signal.Err()
		}
	}
	return nil
}

// Completed reports whether the completion signal arrived.
func (r *Recorder[T]) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.signals {
		if s.Signal.IsComplete() {
			return true
		}
	}
	return false
}

// AwaitTerminal blocks until a terminal signal is recorded, failing the test
// after timeout.
func (r *Recorder[T]) AwaitTerminal(t *testing.T, timeout time.Duration) {
	t.Helper()

	select {
	case <-r.terminal:
	case <-time.After(timeout):
		t.Fatal("timeout waiting for terminal signal")
	}
}

// EmitAll pushes values into the subject in order.
func EmitAll[T any](subject *signalz.Subject[T], values []T) {
	for _, v := range values {
		subject.Emit(v)
	}
}

// CollectNotifications drains a ToChannel bridge with a timeout, returning
// everything received before the channel closed or the timeout elapsed.
func CollectNotifications[T any](t *testing.T, ch <-chan signalz.Notification[T], timeout time.Duration) []signalz.Notification[T] {
	t.Helper()

	var notifications []signalz.Notification[T]
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return notifications
			}
			notifications = append(notifications, n)
		case <-timer.C:
			return notifications
		}
	}
}

// CollectValues drains a ToChannel bridge with a timeout and returns only
// the values, ignoring terminal signals.
func CollectValues[T any](t *testing.T, ch <-chan signalz.Notification[T], timeout time.Duration) []T {
	t.Helper()

	notifications := CollectNotifications(t, ch, timeout)
	values := make([]T, 0, len(notifications))
	for _, n := range notifications {
		if n.IsValue() {
			values = append(values, n.Value())
		}
	}
	return values
}

// AssertValues verifies the recorded values match expected, in order.
func AssertValues[T comparable](t *testing.T, got, expected []T) {
	t.Helper()

	if len(got) != len(expected) {
		t.Errorf("expected %d values, got %d (%v)", len(expected), len(got), got)
		return
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("value %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}
