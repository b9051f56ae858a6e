package signalz

import "sync/atomic"

// Stream is a push-based sequence of values ending in at most one terminal
// signal (error or completion). A Stream does nothing until subscribed; each
// Subscribe call runs the stream's subscribe function, which registers the
// observer with a producer and returns a handle that cancels exactly that
// registration.
type Stream[T any] struct {
	subscribe func(Observer[T]) Subscription
}

// NewStream creates a Stream from a subscribe function. The function runs
// once per Subscribe call; it delivers signals to the observer it receives
// and returns a Subscription that stops delivery when disposed.
//
// Subscribe wraps every observer in a terminal guard, so the subscribe
// function only has to be correct about resource release, not about signal
// ordering after termination.
//
// When to use:
//   - Adapting an external callback API into a Stream
//   - Building custom sources with their own cancellation
//
// Example:
//
//	events := signalz.NewStream(func(obs signalz.Observer[Event]) signalz.Subscription {
//		id := bus.Register(obs.OnValue)
//		return signalz.NewSubscription(func() { bus.Deregister(id) })
//	})
func NewStream[T any](subscribe func(Observer[T]) Subscription) *Stream[T] {
	return &Stream[T]{subscribe: subscribe}
}

// Subscribe registers the observer and starts delivery. The observer is
// guarded: after its first terminal signal every further signal is dropped,
// so no observer ever sees two terminal signals or a value after one.
// Dispose the returned Subscription to stop delivery and release whatever
// the producer holds for this registration.
func (s *Stream[T]) Subscribe(obs Observer[T]) Subscription {
	var terminated atomic.Bool

	guarded := Observer[T]{
		OnValue: func(v T) {
			if terminated.Load() {
				return
			}
			obs.value(v)
		},
		OnError: func(err error) {
			if terminated.CompareAndSwap(false, true) {
				obs.fail(err)
			}
		},
		OnComplete: func() {
			if terminated.CompareAndSwap(false, true) {
				obs.complete()
			}
		},
	}

	return s.subscribe(guarded)
}
