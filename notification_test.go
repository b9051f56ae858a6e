package signalz

import (
	"errors"
	"testing"
)

func TestNotification_Kinds(t *testing.T) {
	boom := errors.New("boom")

	value := NewValue(42)
	if !value.IsValue() || value.IsError() || value.IsComplete() {
		t.Errorf("expected value kind, got %v", value.Kind())
	}
	if value.Value() != 42 {
		t.Errorf("expected value 42, got %d", value.Value())
	}
	if value.Err() != nil {
		t.Errorf("expected nil error on value, got %v", value.Err())
	}

	failure := NewError[int](boom)
	if !failure.IsError() || failure.IsValue() || failure.IsComplete() {
		t.Errorf("expected error kind, got %v", failure.Kind())
	}
	if !errors.Is(failure.Err(), boom) {
		t.Errorf("expected error %v, got %v", boom, failure.Err())
	}

	done := NewComplete[int]()
	if !done.IsComplete() || done.IsValue() || done.IsError() {
		t.Errorf("expected complete kind, got %v", done.Kind())
	}
	if done.Err() != nil {
		t.Errorf("expected nil error on completion, got %v", done.Err())
	}
}

func TestNotification_ValuePanicsOnTerminal(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic calling Value() on completion")
		}
	}()

	NewComplete[int]().Value()
}

func TestNotificationKind_String(t *testing.T) {
	if KindValue.String() != "value" || KindError.String() != "error" || KindComplete.String() != "complete" {
		t.Errorf("unexpected kind names: %v %v %v", KindValue, KindError, KindComplete)
	}
}
