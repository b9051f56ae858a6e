// Package signalz provides type-safe, push-based signal streams built on
// observer callbacks and disposable subscriptions, enabling event-driven
// pipelines where delivery is a function call rather than a channel send.
//
// The core abstractions are Stream, a subscribable sequence of values ending
// in at most one terminal signal, and Subject, a multicast sink that
// broadcasts pushed signals to every registered observer. On top of them the
// package ships BufferWhileRunning, a serialization combinator: while an
// asynchronous selection is running, incoming values accumulate in a buffer
// instead of starting overlapping work, and the next selection starts over
// the whole accumulated batch the moment the running one completes.
//
// Basic usage:
//
//	updates := signalz.NewSubject[int]()
//
//	// Coalesce bursts: while a flush is running, new values buffer and
//	// drain into the next flush as one batch.
//	receipts := signalz.BufferWhileRunning(updates.Stream(), func(batch []int) *signalz.Stream[string] {
//		return signalz.Just(fmt.Sprintf("wrote %d updates", len(batch)))
//	})
//
//	sub := receipts.Subscribe(signalz.Observer[string]{
//		OnValue:    func(r string) { fmt.Println(r) },
//		OnComplete: func() { fmt.Println("done") },
//	})
//	defer sub.Dispose()
//
//	updates.Emit(1)
//	updates.Emit(2)
//	updates.Complete()
//
// The package provides the pieces such pipelines are built from:
//   - Streams and observers with guarded terminal delivery
//   - Subjects for multicast with terminal replay to late subscribers
//   - Sources: Just, Empty, Never, Fail, FromChannel, Interval, After
//   - Channel bridges: ToChannel and Collect for mixing with channel code
//   - BufferWhileRunning for serialized, buffered selection pipelines
package signalz

// Observer receives the signals of a stream. Handlers may be nil, in which
// case the corresponding signal is ignored. A stream invokes OnValue zero or
// more times, then at most one of OnError or OnComplete; nothing follows a
// terminal signal.
type Observer[T any] struct {
	// OnValue is invoked once per emitted value, in emission order.
	OnValue func(value T)

	// OnError is invoked when the stream fails. The error is the producer's
	// original error value, undecorated.
	OnError func(err error)

	// OnComplete is invoked when the stream finishes normally.
	OnComplete func()
}

// value invokes OnValue if set.
func (o Observer[T]) value(v T) {
	if o.OnValue != nil {
		o.OnValue(v)
	}
}

// fail invokes OnError if set.
func (o Observer[T]) fail(err error) {
	if o.OnError != nil {
		o.OnError(err)
	}
}

// complete invokes OnComplete if set.
func (o Observer[T]) complete() {
	if o.OnComplete != nil {
		o.OnComplete()
	}
}

// Subscription is an observer's registration with a stream. Producers return
// one from every subscribe so the observer can stop delivery and release
// whatever the producer holds for it. Implementations must be safe for
// concurrent use and safe to dispose from inside a notification callback.
type Subscription interface {
	// Dispose cancels the registration. It is idempotent: the first call
	// releases resources and stops further delivery (best effort for
	// notifications already in flight on another goroutine); later calls do
	// nothing.
	Dispose()

	// IsDisposed reports whether Dispose has been called.
	IsDisposed() bool
}
