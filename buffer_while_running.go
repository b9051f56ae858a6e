package signalz

import "sync"

// gateState tracks whether a selection is in flight.
type gateState int

const (
	gateIdle gateState = iota
	gateRunning
)

// BufferWhileRunning turns source into a serialized selection pipeline. Each
// trigger flushes everything buffered since the last start into one selector
// call; the selector returns a stream whose values are relayed downstream
// unchanged. At most one selection is ever active: values arriving while one
// runs are buffered, and the moment it completes the next selection starts
// synchronously over the whole accumulated batch. The result is a
// backpressure primitive for pipelines where the downstream work is
// expensive relative to the arrival rate and must never overlap itself.
//
// The source is subscribed eagerly, when BufferWhileRunning is called. The
// selector, however, is only invoked while the returned stream has at least
// one observer, and never with an empty batch; triggers that find no
// observer leave the buffer in place for the next one. Values buffered while
// unobserved are lost if the source terminates before an observer attaches.
//
// Termination: source completion completes the output immediately, even
// while a selection is running (its remaining values are discarded). An
// error on the source or on any selection stream terminates the output with
// that exact error. All owned subscriptions are released on every terminal
// path, and remaining buffered values are discarded.
//
// When to use:
//   - Coalescing bursts into batched work (bulk writes, redraws, syncs)
//   - Serializing an expensive operation that must never run concurrently
//   - Conflating updates where each run should see everything since the last
//
// Example:
//
//	// Updates arriving during a flush accumulate; each flush writes
//	// everything buffered since the previous one, and flushes never overlap.
//	receipts := signalz.BufferWhileRunning(updates, func(batch []Update) *signalz.Stream[Receipt] {
//		return store.BulkWrite(batch)
//	})
//
//	sub := receipts.Subscribe(signalz.Observer[Receipt]{
//		OnValue: func(r Receipt) { log.Printf("wrote %d", r.Count) },
//		OnError: func(err error) { log.Printf("flush failed: %v", err) },
//	})
//	defer sub.Dispose()
//
// Parameters:
//   - source: The stream of values to buffer and batch
//   - selector: Maps each flushed batch to the stream of results to relay
func BufferWhileRunning[In, Out any](source *Stream[In], selector func(batch []In) *Stream[Out]) *Stream[Out] {
	g := &gate[In, Out]{
		selector: selector,
		out:      NewSubject[Out](),
	}
	g.attachSource(source)
	return g.out.Stream()
}

// gate is the operator's unit of state: the buffer, the Idle/Running flag,
// the owned subscriptions, and the output subject. All transitions happen
// under mu; mu is never held while invoking the selector, subscribing,
// disposing, or delivering to the subject.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type gate[In, Out any] struct {
	mu        sync.Mutex
	buf       []In
	state     gateState
	active    *selectionHandle
	sourceSub Subscription
	done      bool

	selector func(batch []In) *Stream[Out]
	out      *Subject[Out]
}

// selectionHandle identifies one selector invocation. Selection callbacks
// compare their handle against gate.active so signals from a selection that
// was already released during teardown are ignored. finished marks handles
// whose stream terminated before Subscribe returned their subscription.
type selectionHandle struct {
	sub      Subscription
	finished bool
}

func (g *gate[In, Out]) attachSource(source *Stream[In]) {
	sub := source.Subscribe(Observer[In]{
		OnValue:    g.sourceValue,
		OnError:    g.sourceError,
		OnComplete: g.sourceComplete,
	})

	g.mu.Lock()
	if g.done {
		g.mu.Unlock()
		sub.Dispose()
		return
	}
	g.sourceSub = sub
	g.mu.Unlock()
}

func (g *gate[In, Out]) sourceValue(v In) {
	g.mu.Lock()
	if g.done {
		g.mu.Unlock()
		return
	}
	g.buf = append(g.buf, v)
	if g.state == gateRunning {
		g.mu.Unlock()
		return
	}
	g.startNext()
}

// startNext starts selections until the gate cannot start another: it is
// terminal, a selection is already running, the buffer is empty, or the
// output has no observers (the buffer is kept for the next trigger in that
// case). Called with g.mu held; releases it before returning.
//
// The loop also absorbs selectors whose streams terminate synchronously
// inside Subscribe: their completion callback marks the handle finished and
// returns, and the iteration here continues with whatever buffered in the
// meantime. Back-to-back synchronous selections are iterative, not
// recursive.
func (g *gate[In, Out]) startNext() {
	for {
		if g.done || g.state == gateRunning || len(g.buf) == 0 || !g.out.HasObservers() {
			g.mu.Unlock()
			return
		}

		batch := g.buf
		g.buf = nil
		g.state = gateRunning
		h := &selectionHandle{}
		g.active = h
		g.mu.Unlock()

		sub := g.selector(batch).Subscribe(Observer[Out]{
			OnValue:    g.selectionValue(h),
			OnError:    g.selectionError(h),
			OnComplete: g.selectionComplete(h),
		})

		g.mu.Lock()
		if g.done {
			g.mu.Unlock()
			sub.Dispose()
			return
		}
		if h.finished {
			g.mu.Unlock()
			sub.Dispose()
			g.mu.Lock()
			continue
		}
		h.sub = sub
		g.mu.Unlock()
		return
	}
}

func (g *gate[In, Out]) selectionValue(h *selectionHandle) func(Out) {
	return func(v Out) {
		g.mu.Lock()
		if g.done || g.active != h {
			g.mu.Unlock()
			return
		}
		g.mu.Unlock()
		g.out.Emit(v)
	}
}

func (g *gate[In, Out]) selectionComplete(h *selectionHandle) func() {
	return func() {
		g.mu.Lock()
		if g.done || g.active != h {
			g.mu.Unlock()
			return
		}
		g.active = nil
		g.state = gateIdle
		h.finished = true
		sub := h.sub
		if sub == nil {
			// Completed inside Subscribe; the startNext loop that launched
			// this selection resumes the scan itself.
			g.mu.Unlock()
			return
		}
		g.mu.Unlock()
		sub.Dispose()

		g.mu.Lock()
		g.startNext()
	}
}

func (g *gate[In, Out]) selectionError(h *selectionHandle) func(error) {
	return func(err error) {
		g.mu.Lock()
		if g.done || g.active != h {
			g.mu.Unlock()
			return
		}
		g.done = true
		g.active = nil
		g.buf = nil
		h.finished = true
		srcSub := g.sourceSub
		g.sourceSub = nil
		selSub := h.sub
		g.mu.Unlock()

		if srcSub != nil {
			srcSub.Dispose()
		}
		if selSub != nil {
			selSub.Dispose()
		}
		g.out.Fail(err)
	}
}

func (g *gate[In, Out]) sourceComplete() {
	g.mu.Lock()
	if g.done {
		g.mu.Unlock()
		return
	}
	g.done = true
	g.buf = nil
	srcSub := g.sourceSub
	g.sourceSub = nil
	var selSub Subscription
	if g.active != nil {
		selSub = g.active.sub
		g.active.finished = true
		g.active = nil
	}
	g.mu.Unlock()

	g.out.Complete()
	if srcSub != nil {
		srcSub.Dispose()
	}
	if selSub != nil {
		selSub.Dispose()
	}
}

func (g *gate[In, Out]) sourceError(err error) {
	g.mu.Lock()
	if g.done {
		g.mu.Unlock()
		return
	}
	g.done = true
	g.buf = nil
	srcSub := g.sourceSub
	g.sourceSub = nil
	var selSub Subscription
	if g.active != nil {
		selSub = g.active.sub
		g.active.finished = true
		g.active = nil
	}
	g.mu.Unlock()

	if srcSub != nil {
		srcSub.Dispose()
	}
	g.out.Fail(err)
	if selSub != nil {
		selSub.Dispose()
	}
}
