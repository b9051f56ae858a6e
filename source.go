package signalz

import "context"

// Just creates a stream that delivers the given values synchronously inside
// Subscribe, in argument order, then completes. With no arguments it
// behaves like Empty.
//
// When to use:
//   - Fixed payloads in tests and examples
//   - Selector results that are already computed
//
// Example:
//
//	receipt := signalz.Just(Receipt{Count: len(batch)})
func Just[T any](values ...T) *Stream[T] {
	return NewStream(func(obs Observer[T]) Subscription {
		for _, v := range values {
			obs.value(v)
		}
		obs.complete()
		return ClosedSubscription()
	})
}

// Empty creates a stream that completes immediately without emitting.
func Empty[T any]() *Stream[T] {
	return NewStream(func(obs Observer[T]) Subscription {
		obs.complete()
		return ClosedSubscription()
	})
}

// Never creates a stream that emits nothing and never terminates.
// Subscribers only stop by disposing.
func Never[T any]() *Stream[T] {
	return NewStream(func(Observer[T]) Subscription {
		return NewSubscription(nil)
	})
}

// Fail creates a stream that fails immediately with err.
func Fail[T any](err error) *Stream[T] {
	return NewStream(func(obs Observer[T]) Subscription {
		obs.fail(err)
		return ClosedSubscription()
	})
}

// FromChannel creates a stream that delivers values received from ch.
// Channel close completes the stream. Disposing the subscription or
// canceling ctx stops the pump without a terminal signal.
//
// Each Subscribe starts its own pump, so concurrent subscribers compete for
// channel values rather than sharing them; multicast through a Subject to
// share one channel.
//
// Example:
//
//	lines := make(chan string)
//	stream := signalz.FromChannel(ctx, lines)
//	sub := stream.Subscribe(signalz.Observer[string]{
//		OnValue:    handleLine,
//		OnComplete: func() { fmt.Println("input closed") },
//	})
//	defer sub.Dispose()
func FromChannel[T any](ctx context.Context, ch <-chan T) *Stream[T] {
	return NewStream(func(obs Observer[T]) Subscription {
		stop := make(chan struct{})

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-stop:
					return
				case v, ok := <-ch:
					if !ok {
						obs.complete()
						return
					}
					select {
					case <-stop:
						return
					default:
					}
					obs.value(v)
				}
			}
		}()

		return NewSubscription(func() { close(stop) })
	})
}
