package vango

import (
	"sync"
	"sync/atomic"
)

// Owner represents a component scope.
// When an Owner is disposed, its child owners are disposed first (last
// created first) and then its own cleanups run in reverse order.
//
// Owners form a hierarchy mirroring the component tree. Context values are
// looked up from the current owner towards the root.
type Owner struct {
	id uint64

	parent *Owner

	children   []*Owner
	childrenMu sync.Mutex

	// cleanups are registered via OnCleanup and run on Dispose.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// rendered hooks run after every render of this owner.
	rendered   []func()
	renderedMu sync.Mutex

	// values stores context values for this scope.
	values   map[any]any
	valuesMu sync.RWMutex

	// listener is subscribed to signals read while this owner renders.
	listener Listener

	disposed atomic.Bool

	// Hook slots give hooks a stable identity across renders.
	hookSlots   []any
	hookSlotIdx int
}

// NewOwner creates a new Owner registered as a child of parent.
// If parent is nil, creates a root Owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil if this is a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether Dispose has been called.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

// SetListener sets the listener subscribed during Render.
func (o *Owner) SetListener(l Listener) {
	o.listener = l
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// OnCleanup registers fn to run when this Owner is disposed.
// On an already disposed owner fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// OnRendered registers fn to run at the end of every Render of this owner.
func (o *Owner) OnRendered(fn func()) {
	o.renderedMu.Lock()
	defer o.renderedMu.Unlock()
	o.rendered = append(o.rendered, fn)
}

// SetValue stores a context value on this owner.
func (o *Owner) SetValue(key, value any) {
	o.valuesMu.Lock()
	defer o.valuesMu.Unlock()
	if o.values == nil {
		o.values = make(map[any]any)
	}
	o.values[key] = value
}

// GetValue looks key up on this owner and then on its ancestors.
func (o *Owner) GetValue(key any) (any, bool) {
	for cur := o; cur != nil; cur = cur.parent {
		cur.valuesMu.RLock()
		v, ok := cur.values[key]
		cur.valuesMu.RUnlock()
		if ok {
			return v, true
		}
	}
	return nil, false
}

// Dispose disposes this Owner and all its children.
// After disposal, the Owner cannot be used.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.renderedMu.Lock()
	o.rendered = nil
	o.renderedMu.Unlock()
}

// UseHookSlot returns the value stored in the current hook slot, or nil on
// the first render. The slot index advances on every call.
//
// Usage pattern:
//
//	slot := owner.UseHookSlot()
//	if slot != nil {
//	    return slot.(*T)
//	}
//	instance := &T{}
//	owner.SetHookSlot(instance)
//	return instance
func (o *Owner) UseHookSlot() any {
	idx := o.hookSlotIdx
	o.hookSlotIdx++

	if idx < len(o.hookSlots) {
		return o.hookSlots[idx]
	}
	return nil
}

// SetHookSlot stores a value in the slot UseHookSlot just returned nil for.
func (o *Owner) SetHookSlot(value any) {
	o.hookSlots = append(o.hookSlots, value)
}

// Expander is implemented by render results holding deferred subtrees.
type Expander interface {
	Expand()
}

// Render runs fn as a render of o: o becomes the current owner, its
// listener is tracked, hook slots restart at zero, and the OnRendered
// hooks run once fn returns. A result implementing Expander is expanded
// while o is still current.
func Render[T any](o *Owner, fn func() T) T {
	var out T
	o.hookSlotIdx = 0

	WithOwner(o, func() {
		WithListener(o.listener, func() {
			out = fn()
			if e, ok := any(out).(Expander); ok {
				e.Expand()
			}
		})
	})

	o.renderedMu.Lock()
	hooks := make([]func(), len(o.rendered))
	copy(hooks, o.rendered)
	o.renderedMu.Unlock()

	for _, hook := range hooks {
		hook()
	}
	return out
}
