package signalz

import "time"

// Interval creates a stream that emits a monotonically increasing counter,
// starting at 0, every interval. It never completes; disposing the
// subscription stops the ticker. Each subscriber runs its own ticker, so
// counters are per-subscription.
//
// When to use:
//   - Driving periodic work through a stream pipeline
//   - Simulating steady input in tests (with a fake clock)
//
// Example:
//
//	ticks := signalz.Interval(100*time.Millisecond, signalz.RealClock)
//	sub := ticks.Subscribe(signalz.Observer[int64]{
//		OnValue: func(n int64) { fmt.Println("tick", n) },
//	})
//	defer sub.Dispose()
//
// Parameters:
//   - every: The tick interval
//   - clock: Clock interface for time operations
func Interval(every time.Duration, clock Clock) *Stream[int64] {
	return NewStream(func(obs Observer[int64]) Subscription {
		ticker := clock.NewTicker(every)
		stop := make(chan struct{})

		go func() {
			defer ticker.Stop()
			var n int64
			for {
				select {
				case <-stop:
					return
				case <-ticker.C():
					select {
					case <-stop:
						return
					default:
					}
					obs.value(n)
					n++
				}
			}
		}()

		return NewSubscription(func() { close(stop) })
	})
}

// After creates a stream that emits the firing time once d has elapsed,
// then completes. Disposing the subscription before it fires stops the
// timer and nothing is delivered.
//
// Parameters:
//   - d: The delay before the single emission
//   - clock: Clock interface for time operations
func After(d time.Duration, clock Clock) *Stream[time.Time] {
	return NewStream(func(obs Observer[time.Time]) Subscription {
		timer := clock.NewTimer(d)
		stop := make(chan struct{})

		go func() {
			defer timer.Stop()
			select {
			case <-stop:
			case t := <-timer.C():
				select {
				case <-stop:
					return
				default:
				}
				obs.value(t)
				obs.complete()
			}
		}()

		return NewSubscription(func() { close(stop) })
	})
}
