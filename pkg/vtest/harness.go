package vtest

import (
	"testing"

	"github.com/vango-dev/formkit/pkg/vango"
	"github.com/vango-dev/formkit/pkg/vdom"
)

// Harness keeps a component mounted under its own owner.
type Harness struct {
	t       testing.TB
	owner   *vango.Owner
	render  func() *vdom.VNode
	tree    *vdom.VNode
	renders int
}

// Mount renders fn once and returns a harness for driving it.
// The owner is disposed when the test finishes.
func Mount(t testing.TB, fn func() *vdom.VNode) *Harness {
	t.Helper()
	h := &Harness{
		t:      t,
		owner:  vango.NewOwner(nil),
		render: fn,
	}
	t.Cleanup(h.Unmount)
	h.Rerender()
	return h
}

// Owner returns the harness owner.
func (h *Harness) Owner() *vango.Owner { return h.owner }

// Tree returns the most recently rendered tree.
func (h *Harness) Tree() *vdom.VNode { return h.tree }

// HTML renders the current tree to a string.
func (h *Harness) HTML() string { return RenderToString(h.tree) }

// Renders returns how many times the component has rendered.
func (h *Harness) Renders() int { return h.renders }

// Rerender runs the component again and returns the new tree.
func (h *Harness) Rerender() *vdom.VNode {
	h.renders++
	h.tree = vango.Render(h.owner, h.render)
	return h.tree
}

// Unmount disposes the owner. It is safe to call more than once.
func (h *Harness) Unmount() {
	h.owner.Dispose()
}

// Field returns the element named name, failing the test when absent.
func (h *Harness) Field(name string) *vdom.VNode {
	h.t.Helper()
	node := vdom.FindByName(h.tree, name)
	if node == nil {
		h.t.Fatalf("no element named %q in:\n%s", name, truncate(h.HTML(), 500))
	}
	return node
}

// Input fires an input event carrying value on the named field, falling
// back to onchange for elements without an oninput handler.
func (h *Harness) Input(name string, value any) {
	h.t.Helper()
	node := h.Field(name)
	handler := node.Props.Handler("oninput")
	typ := "input"
	if handler == nil {
		handler = node.Props.Handler("onchange")
		typ = "change"
	}
	h.fire(handler, vdom.NewEvent(typ, value))
}

// Blur fires a blur event on the named field.
func (h *Harness) Blur(name string) {
	h.t.Helper()
	node := h.Field(name)
	h.fire(node.Props.Handler("onblur"), vdom.NewEvent("blur", nil))
}

// Submit fires a submit event on the first form in the tree and returns
// the event and the handler's error.
func (h *Harness) Submit() (*vdom.Event, error) {
	h.t.Helper()
	form := vdom.FindByTag(h.tree, "form")
	if form == nil {
		h.t.Fatalf("no form in:\n%s", truncate(h.HTML(), 500))
	}
	ev := vdom.NewEvent("submit", nil)
	err := vdom.Dispatch(form.Props.Handler("onsubmit"), ev)
	h.Rerender()
	return ev, err
}

func (h *Harness) fire(handler any, ev *vdom.Event) {
	h.t.Helper()
	if err := vdom.Dispatch(handler, ev); err != nil {
		h.t.Fatalf("%s handler: %v", ev.Type, err)
	}
	h.Rerender()
}
