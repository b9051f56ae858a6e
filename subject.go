package signalz

import (
	"sync"
	"sync/atomic"
)

// Subject is a multicast sink: values pushed with Emit are delivered to
// every observer subscribed at that moment, and the first terminal signal
// (Fail or Complete) ends the subject for all of them. A subject keeps no
// history, so a new observer sees nothing emitted before it subscribed, but
// the terminal signal is replayed: an observer subscribing after
// termination immediately receives that signal and an already-disposed
// subscription.
//
// Emit, Fail, and Complete may be called from any goroutine. Delivery
// passes are serialized, so per-observer order matches emission order and
// no observer sees a value after its terminal signal. Callbacks may
// subscribe and dispose reentrantly, but must not push into the same
// subject from inside its own delivery.
//
//nolint:govet // fieldalignment: struct layout optimized for readability
type Subject[T any] struct {
	// deliverMu serializes delivery passes.
	deliverMu sync.Mutex

	// regMu guards the observer list and the terminal record.
	regMu      sync.Mutex
	observers  []*subjectEntry[T]
	terminated bool
	termErr    error
}

// subjectEntry pins one registration. The disposed flag is checked before
// each delivery so a disposal racing a delivery pass takes effect without
// waiting for list removal.
type subjectEntry[T any] struct {
	obs      Observer[T]
	disposed atomic.Bool
}

// NewSubject creates an empty, unterminated Subject.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Emit broadcasts value to all currently subscribed observers. Emissions
// after the subject has terminated are ignored.
func (s *Subject[T]) Emit(value T) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	for _, e := range s.snapshot() {
		if e.disposed.Load() {
			continue
		}
		e.obs.value(value)
	}
}

// Fail terminates the subject with err. The first terminal signal wins;
// later Fail and Complete calls are ignored.
func (s *Subject[T]) Fail(err error) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	entries, ok := s.terminate(err)
	if !ok {
		return
	}
	for _, e := range entries {
		if e.disposed.Load() {
			continue
		}
		e.obs.fail(err)
	}
}

// Complete terminates the subject normally. The first terminal signal wins;
// later Fail and Complete calls are ignored.
func (s *Subject[T]) Complete() {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	entries, ok := s.terminate(nil)
	if !ok {
		return
	}
	for _, e := range entries {
		if e.disposed.Load() {
			continue
		}
		e.obs.complete()
	}
}

// Subscribe registers obs with the subject. After termination it replays
// the terminal signal immediately and returns an inert subscription.
func (s *Subject[T]) Subscribe(obs Observer[T]) Subscription {
	s.regMu.Lock()
	if s.terminated {
		err := s.termErr
		s.regMu.Unlock()
		if err != nil {
			obs.fail(err)
		} else {
			obs.complete()
		}
		return ClosedSubscription()
	}
	e := &subjectEntry[T]{obs: obs}
	s.observers = append(s.observers, e)
	s.regMu.Unlock()

	return NewSubscription(func() {
		e.disposed.Store(true)
		s.remove(e)
	})
}

// Stream returns the subject's read side. Each Subscribe on the returned
// stream registers directly with the subject.
func (s *Subject[T]) Stream() *Stream[T] {
	return NewStream(s.Subscribe)
}

// HasObservers reports whether at least one observer is currently
// subscribed. Always false after termination.
func (s *Subject[T]) HasObservers() bool {
	s.regMu.Lock()
	defer s.regMu.Unlock()
	return len(s.observers) > 0
}

// ObserverCount returns the number of currently subscribed observers.
func (s *Subject[T]) ObserverCount() int {
	s.regMu.Lock()
	defer s.regMu.Unlock()
	return len(s.observers)
}

// snapshot copies the observer list for one delivery pass, or returns nil
// once the subject has terminated.
func (s *Subject[T]) snapshot() []*subjectEntry[T] {
	s.regMu.Lock()
	defer s.regMu.Unlock()
	if s.terminated {
		return nil
	}
	entries := make([]*subjectEntry[T], len(s.observers))
	copy(entries, s.observers)
	return entries
}

// terminate records the terminal signal and detaches all observers,
// returning them for the final delivery pass. Returns false if the subject
// already terminated.
func (s *Subject[T]) terminate(err error) ([]*subjectEntry[T], bool) {
	s.regMu.Lock()
	defer s.regMu.Unlock()
	if s.terminated {
		return nil, false
	}
	s.terminated = true
	s.termErr = err
	entries := s.observers
	s.observers = nil
	return entries, true
}

// remove deregisters a disposed entry.
func (s *Subject[T]) remove(target *subjectEntry[T]) {
	s.regMu.Lock()
	defer s.regMu.Unlock()
	for i, e := range s.observers {
		if e == target {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}
