package vdom

import "fmt"

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "input" becomes "oninput").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnInput handles input events (fires on every keystroke).
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events.
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnSubmit handles form submission.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnReset handles form reset.
func OnReset(handler any) EventHandler { return event("reset", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventHandler { return event("blur", handler) }

// Event is a DOM event delivered to a handler.
type Event struct {
	// Type is the event name without the "on" prefix ("input", "blur", ...).
	Type string

	// Value is the target element's value (event.target.value).
	Value any

	defaultPrevented bool
}

// NewEvent creates an event of the given type carrying the target value.
func NewEvent(typ string, value any) *Event {
	return &Event{Type: typ, Value: value}
}

// TargetValue returns the target element's value.
func (e *Event) TargetValue() any {
	if e == nil {
		return nil
	}
	return e.Value
}

// PreventDefault suppresses the host's default action (navigation on submit).
func (e *Event) PreventDefault() {
	if e != nil {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e != nil && e.defaultPrevented
}

// Dispatch invokes handler with ev. Supported handler shapes are
// func(), func(*Event), func(string), func(any) and func(*Event) error.
// A nil handler is a no-op.
func Dispatch(handler any, ev *Event) error {
	switch h := handler.(type) {
	case nil:
		return nil
	case func():
		h()
	case func(*Event):
		h(ev)
	case func(*Event) error:
		return h(ev)
	case func(string):
		v := ev.TargetValue()
		if v == nil {
			h("")
		} else {
			h(fmt.Sprint(v))
		}
	case func(any):
		h(ev)
	default:
		return fmt.Errorf("vdom: unsupported handler type %T", handler)
	}
	return nil
}
