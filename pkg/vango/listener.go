package vango

// Listener is anything that can be notified when a dependency changes.
// Components implement it to learn that they must render again.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies has changed.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication during batch processing.
	ID() uint64
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc struct {
	id uint64
	fn func()
}

// NewListenerFunc wraps fn as a Listener with a fresh ID.
func NewListenerFunc(fn func()) *ListenerFunc {
	return &ListenerFunc{id: nextID(), fn: fn}
}

// MarkDirty implements Listener.
func (l *ListenerFunc) MarkDirty() { l.fn() }

// ID implements Listener.
func (l *ListenerFunc) ID() uint64 { return l.id }
