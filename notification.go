package signalz

// NotificationKind identifies which signal a Notification carries.
type NotificationKind int

// Notification kinds.
const (
	// KindValue is an emitted value.
	KindValue NotificationKind = iota
	// KindError is the failure terminal signal.
	KindError
	// KindComplete is the normal-completion terminal signal.
	KindComplete
)

// String returns the kind name for debugging.
func (k NotificationKind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindError:
		return "error"
	case KindComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Notification is a stream signal reified as a value: exactly one of an
// emitted value, a terminal error, or terminal completion. Channel bridges
// use it to carry all three signal kinds through a single channel.
type Notification[T any] struct {
	value T
	err   error
	kind  NotificationKind
}

// NewValue creates a value Notification.
func NewValue[T any](value T) Notification[T] {
	return Notification[T]{kind: KindValue, value: value}
}

// NewError creates an error Notification.
func NewError[T any](err error) Notification[T] {
	return Notification[T]{kind: KindError, err: err}
}

// NewComplete creates a completion Notification.
func NewComplete[T any]() Notification[T] {
	return Notification[T]{kind: KindComplete}
}

// Kind returns which signal this Notification carries.
func (n Notification[T]) Kind() NotificationKind {
	return n.kind
}

// IsValue returns true if this Notification carries an emitted value.
func (n Notification[T]) IsValue() bool {
	return n.kind == KindValue
}

// IsError returns true if this Notification is the failure terminal signal.
func (n Notification[T]) IsError() bool {
	return n.kind == KindError
}

// IsComplete returns true if this Notification is the completion terminal signal.
func (n Notification[T]) IsComplete() bool {
	return n.kind == KindComplete
}

// Value returns the carried value.
// Panics if called on a non-value Notification - always check IsValue() first.
func (n Notification[T]) Value() T {
	if n.kind != KindValue {
		panic("called Value() on Notification without a value")
	}
	return n.value
}

// Err returns the carried error. Returns nil for value and completion
// Notifications.
func (n Notification[T]) Err() error {
	return n.err
}
