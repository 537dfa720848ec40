package form

import (
	"github.com/vango-dev/formkit/pkg/vdom"
)

// Binding connects one named field to a controller. Mount registers the
// field's rules; Unmount removes the field and its state.
type Binding struct {
	c       *Controller
	name    string
	rules   []Rule
	mounted bool
	seen    bool
}

// Bind creates an unmounted binding for name.
func Bind(c *Controller, name string, rules ...Rule) *Binding {
	return &Binding{c: c, name: name, rules: rules}
}

// Name returns the field name.
func (b *Binding) Name() string { return b.name }

// Rules returns the current rules.
func (b *Binding) Rules() []Rule { return b.rules }

// Mounted reports whether the field is registered.
func (b *Binding) Mounted() bool { return b.mounted }

// Mount registers the field. Mounting twice is a no-op.
func (b *Binding) Mount() {
	if b.mounted {
		return
	}
	b.c.Register(b.name, b.rules)
	b.mounted = true
}

// Unmount unregisters the field and purges its state.
func (b *Binding) Unmount() {
	if !b.mounted {
		return
	}
	b.c.Unregister(b.name)
	b.mounted = false
}

// SetRules replaces the rules. A mounted field is re-registered when the
// new slice is not the same slice as the current one.
func (b *Binding) SetRules(rules []Rule) {
	if sameRules(b.rules, rules) {
		return
	}
	b.rules = rules
	if b.mounted {
		b.c.Register(b.name, rules)
	}
}

// sameRules compares slice identity, not contents.
func sameRules(a, b []Rule) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return (a == nil) == (b == nil)
	}
	return &a[0] == &b[0]
}

// Value returns the field value, or "" when unset. The read is tracked.
func (b *Binding) Value() any {
	if v := b.c.Value(b.name); v != nil {
		return v
	}
	return ""
}

// Error returns the visible error: the message when touched, else "".
func (b *Binding) Error() string {
	return b.c.FieldError(b.name)
}

// Change writes a new value. v is either the raw value or an event whose
// TargetValue is used.
func (b *Binding) Change(v any) {
	if ev, ok := v.(interface{ TargetValue() any }); ok {
		v = ev.TargetValue()
	}
	b.c.SetFieldValue(b.name, v)
}

// Blur marks the field touched, which validates it.
func (b *Binding) Blur() {
	b.c.SetFieldTouched(b.name, true)
}

// Decorate returns a copy of child wired to the field: its value, a name
// when child has none, and input, change and blur handlers that update
// the controller before forwarding to child's own handlers.
func (b *Binding) Decorate(child *vdom.VNode) *vdom.VNode {
	if child == nil || child.Kind != vdom.KindElement {
		return child
	}

	out := vdom.Clone(child)
	if _, ok := out.Props["name"]; !ok {
		out.Props["name"] = b.name
	}
	out.Props["value"] = b.Value()

	origInput := child.Props.Handler("oninput")
	origChange := child.Props.Handler("onchange")
	origBlur := child.Props.Handler("onblur")

	out.Props["oninput"] = func(ev *vdom.Event) error {
		b.Change(ev)
		return vdom.Dispatch(origInput, ev)
	}
	out.Props["onchange"] = func(ev *vdom.Event) error {
		b.Change(ev)
		return vdom.Dispatch(origChange, ev)
	}
	out.Props["onblur"] = func(ev *vdom.Event) error {
		b.Blur()
		return vdom.Dispatch(origBlur, ev)
	}
	return out
}
