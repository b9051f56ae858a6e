package signalz

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestToChannel_ForwardsValuesAndCompletion(t *testing.T) {
	ctx := context.Background()

	out := ToChannel(ctx, Just(1, 2, 3))

	for want := 1; want <= 3; want++ {
		n := <-out
		if !n.IsValue() || n.Value() != want {
			t.Errorf("expected value %d, got %v (kind %v)", want, n, n.Kind())
		}
	}

	n := <-out
	if !n.IsComplete() {
		t.Errorf("expected completion, got kind %v", n.Kind())
	}

	// Channel should be closed after the terminal notification.
	_, ok := <-out
	if ok {
		t.Error("expected channel to be closed")
	}
}

func TestToChannel_ForwardsError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	out := ToChannel(ctx, Fail[int](boom))

	n := <-out
	if !n.IsError() {
		t.Fatalf("expected error notification, got kind %v", n.Kind())
	}
	if !errors.Is(n.Err(), boom) {
		t.Errorf("expected error %v, got %v", boom, n.Err())
	}

	_, ok := <-out
	if ok {
		t.Error("expected channel to be closed")
	}
}

func TestToChannel_ContextCancelClosesWithoutTerminal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	out := ToChannel(ctx, Never[int]())
	cancel()

	select {
	case n, ok := <-out:
		if ok {
			t.Errorf("expected bare close, got notification kind %v", n.Kind())
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}

func TestToChannel_DisposesUpstreamWhenDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	subject := NewSubject[int]()
	out := ToChannel(ctx, subject.Stream())

	subject.Emit(1)
	n := <-out
	if !n.IsValue() || n.Value() != 1 {
		t.Fatalf("expected value 1, got %v", n)
	}

	cancel()
	for range out {
	}

	// The bridge releases its registration once the forwarder exits.
	deadline := time.After(time.Second)
	for subject.HasObservers() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for upstream dispose")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestCollect_GathersValues(t *testing.T) {
	ctx := context.Background()

	values, err := Collect(ctx, Just("a", "b", "c"))
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if len(values) != 3 || values[0] != "a" || values[1] != "b" || values[2] != "c" {
		t.Errorf("expected [a b c], got %v", values)
	}
}

func TestCollect_ReturnsStreamError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	// Synchronous delivery: the bridge must not deadlock against a source
	// that pushes everything inside Subscribe.
	source := NewStream(func(obs Observer[int]) Subscription {
		obs.value(1)
		obs.value(2)
		obs.fail(boom)
		return ClosedSubscription()
	})

	values, err := Collect(ctx, source)
	if !errors.Is(err, boom) {
		t.Errorf("expected error %v, got %v", boom, err)
	}
	if len(values) != 2 || values[0] != 1 || values[1] != 2 {
		t.Errorf("expected values [1 2] before failure, got %v", values)
	}
}

func TestCollect_ReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Collect(ctx, Never[int]())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
