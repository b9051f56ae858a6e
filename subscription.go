package signalz

import "sync/atomic"

// subscription runs a one-shot dispose action guarded by an atomic flag.
type subscription struct {
	onDispose func()
	disposed  atomic.Bool
}

// NewSubscription creates a Subscription that runs onDispose exactly once,
// on the first call to Dispose. A nil onDispose is allowed; the subscription
// then only tracks disposal state.
//
// When to use:
//   - Returning a cancellation handle from a custom NewStream subscribe function
//   - Tying external resources (tickers, goroutines) to observer lifetime
//
// Example:
//
//	stop := make(chan struct{})
//	go pump(stop, obs)
//	return signalz.NewSubscription(func() { close(stop) })
func NewSubscription(onDispose func()) Subscription {
	return &subscription{onDispose: onDispose}
}

func (s *subscription) Dispose() {
	if !s.disposed.CompareAndSwap(false, true) {
		return
	}
	if s.onDispose != nil {
		s.onDispose()
	}
}

func (s *subscription) IsDisposed() bool {
	return s.disposed.Load()
}

// closedSubscription is inert: already disposed, nothing to release.
type closedSubscription struct{}

// ClosedSubscription returns a Subscription that is already disposed.
// Streams that terminate synchronously inside subscribe return it, since
// there is nothing left to cancel.
func ClosedSubscription() Subscription {
	return closedSubscription{}
}

func (closedSubscription) Dispose() {}

func (closedSubscription) IsDisposed() bool { return true }
