package form

import (
	"fmt"

	ferrors "github.com/vango-dev/formkit/internal/errors"
	"github.com/vango-dev/formkit/pkg/vango"
	"github.com/vango-dev/formkit/pkg/vdom"
)

var controllerContext = vango.CreateContext[*Controller](nil).Named("form controller")

// UseController returns the controller of the current component,
// creating it with opts on the first render, and provides it to the rest
// of the render. Options are ignored after the first render.
//
// It panics with F001 outside of a render.
func UseController(opts ...Option) *Controller {
	owner := vango.CurrentOwner()
	if owner == nil {
		panic(ferrors.New("F001").WithDetail("form.UseController was called outside of a render."))
	}

	var c *Controller
	if slot := owner.UseHookSlot(); slot != nil {
		c = slot.(*Controller)
	} else {
		c = New(opts...)
		owner.SetHookSlot(c)
	}
	Provide(c)
	return c
}

// Provide makes c the controller for Item calls in the rest of the
// current render and in descendant components. Fields rendered through
// Item are unmounted when a render no longer produces them and when the
// owner is disposed.
//
// It panics with F001 outside of a render.
func Provide(c *Controller) {
	owner := vango.CurrentOwner()
	if owner == nil {
		panic(ferrors.New("F001").WithDetail("form.Provide was called outside of a render."))
	}
	controllerContext.Provide(c)
	c.attach(owner)
}

// FromContext returns the provided controller, if any.
func FromContext() (*Controller, bool) {
	c, ok := controllerContext.Lookup()
	return c, ok && c != nil
}

func (c *Controller) attach(owner *vango.Owner) {
	c.mu.Lock()
	if c.attached[owner] {
		c.mu.Unlock()
		return
	}
	c.attached[owner] = true
	c.mu.Unlock()

	owner.OnRendered(c.sweep)
	owner.OnCleanup(func() {
		c.mu.Lock()
		delete(c.attached, owner)
		items := c.items
		c.items = make(map[string]*Binding)
		c.mu.Unlock()

		for _, b := range items {
			b.Unmount()
		}
	})
}

// item returns the binding for name, creating it on first use, and marks
// it as rendered.
func (c *Controller) item(name string, rules []Rule) *Binding {
	c.mu.Lock()
	b, ok := c.items[name]
	if !ok {
		b = Bind(c, name, rules...)
		c.items[name] = b
	}
	b.seen = true
	c.mu.Unlock()

	b.SetRules(rules)
	b.Mount()
	return b
}

// sweep unmounts items that the last render did not produce.
func (c *Controller) sweep() {
	c.mu.Lock()
	var gone []*Binding
	for name, b := range c.items {
		if !b.seen {
			gone = append(gone, b)
			delete(c.items, name)
			continue
		}
		b.seen = false
	}
	c.mu.Unlock()

	for _, b := range gone {
		b.Unmount()
	}
}

// FieldProps configures Item.
type FieldProps struct {
	// Name binds the field. Without a name the child is rendered as is.
	Name string

	// Label is rendered above the field.
	Label string

	// Required shows the required marker. A Required rule shows it too.
	Required bool

	// Rules are registered for Name.
	Rules []Rule

	// Class is added to the wrapper.
	Class string
}

// Item renders a form field: an optional label, child wired to the
// provided controller, and the error message once the field is touched.
//
// Fields are keyed by name. A name that a render no longer produces is
// unmounted at the end of that render, which purges its state. Use
// vdom.When rather than vdom.If for conditional fields so that hidden
// fields are not built at all.
//
// It panics with F001 when no controller is provided.
func Item(props FieldProps, child *vdom.VNode) *vdom.VNode {
	c, ok := FromContext()
	if !ok {
		detail := "form.Item was rendered without a controller."
		if props.Name != "" {
			detail = fmt.Sprintf("form.Item(%q) was rendered without a controller.", props.Name)
		}
		panic(ferrors.New("F001").
			WithDetail(detail).
			WithSuggestion("Call form.UseController() at the top of the form component"))
	}

	class := "form-item"
	if props.Class != "" {
		class += " " + props.Class
	}

	if props.Name == "" {
		return vdom.Div(vdom.Class(class), label(props, ""), child)
	}

	b := c.item(props.Name, props.Rules)
	msg := b.Error()
	errID := props.Name + "-error"

	field := b.Decorate(child)
	if field != nil && field.Kind == vdom.KindElement {
		if _, ok := field.Props["id"]; !ok {
			field.Props["id"] = props.Name
		}
	}
	if msg != "" {
		if field != nil && field.Kind == vdom.KindElement {
			existing, _ := field.Props["class"].(string)
			if existing != "" {
				field.Props["class"] = existing + " field-error"
			} else {
				field.Props["class"] = "field-error"
			}
			field.Props["aria-invalid"] = true
			field.Props["aria-describedby"] = errID
		}
		class += " has-error"
	}

	return vdom.Div(
		vdom.Class(class),
		vdom.Data("field", props.Name),
		label(props, props.Name),
		field,
		vdom.When(msg != "", func() *vdom.VNode {
			return vdom.Div(
				vdom.Class("form-item-error"),
				vdom.ID(errID),
				vdom.Role("alert"),
				msg,
			)
		}),
	)
}

func label(props FieldProps, name string) *vdom.VNode {
	if props.Label == "" {
		return nil
	}
	return vdom.Label(
		vdom.Class("form-item-label"),
		forAttr(name),
		props.Label,
		vdom.When(props.Required || HasRequired(props.Rules), func() *vdom.VNode {
			return vdom.Span(vdom.Class("form-item-required"), "*")
		}),
	)
}

func forAttr(name string) vdom.Attr {
	if name == "" {
		return vdom.Attr{}
	}
	return vdom.For(name)
}
