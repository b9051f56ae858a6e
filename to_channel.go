package signalz

import (
	"context"
	"sync"
)

// ToChannel subscribes to s and forwards every signal into the returned
// channel as a Notification. The channel closes after the terminal
// notification has been delivered, or without one when ctx is canceled
// first. The upstream subscription is disposed either way.
//
// Signals are queued internally, so producers are never blocked by a slow
// channel consumer and sources that deliver everything inside Subscribe
// cannot deadlock against an unread channel.
//
// When to use:
//   - Feeding stream output into select-based channel pipelines
//   - Collecting signals in tests without callback bookkeeping
//
// Example:
//
//	for n := range signalz.ToChannel(ctx, receipts) {
//		switch {
//		case n.IsValue():
//			fmt.Println("receipt:", n.Value())
//		case n.IsError():
//			return n.Err()
//		}
//	}
func ToChannel[T any](ctx context.Context, s *Stream[T]) <-chan Notification[T] {
	out := make(chan Notification[T])
	done := make(chan struct{})
	wake := make(chan struct{}, 1)

	var mu sync.Mutex
	var queue []Notification[T]

	push := func(n Notification[T]) {
		mu.Lock()
		queue = append(queue, n)
		mu.Unlock()
		select {
		case wake <- struct{}{}:
		default:
		}
	}

	go func() {
		defer close(out)
		defer close(done)
		for {
			mu.Lock()
			pending := queue
			queue = nil
			mu.Unlock()

			for _, n := range pending {
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
				if !n.IsValue() {
					return
				}
			}

			select {
			case <-wake:
			case <-ctx.Done():
				return
			}
		}
	}()

	sub := s.Subscribe(Observer[T]{
		OnValue:    func(v T) { push(NewValue(v)) },
		OnError:    func(err error) { push(NewError[T](err)) },
		OnComplete: func() { push(NewComplete[T]()) },
	})

	go func() {
		<-done
		sub.Dispose()
	}()

	return out
}

// Collect subscribes to s and blocks until it terminates, returning the
// emitted values. On stream failure it returns the values collected so far
// and the stream's error; on ctx cancellation, the values so far and
// ctx.Err().
func Collect[T any](ctx context.Context, s *Stream[T]) ([]T, error) {
	var values []T
	for n := range ToChannel(ctx, s) {
		switch {
		case n.IsValue():
			values = append(values, n.Value())
		case n.IsError():
			return values, n.Err()
		default:
			return values, nil
		}
	}
	return values, ctx.Err()
}
