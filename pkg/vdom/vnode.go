package vdom

import "strings"

// VKind tells what a VNode holds.
type VKind uint8

const (
	KindElement   VKind = iota // <form>, <input>, <label>...
	KindText                   // escaped text
	KindFragment               // children without a wrapper element
	KindComponent              // rendered through Comp, see Expand
	KindRaw                    // trusted HTML, written unescaped
)

// String implements fmt.Stringer.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is one node of a rendered view. Trees are rebuilt on every render
// and never mutated after the render returns, except for HID which the
// renderer assigns.
type VNode struct {
	Kind     VKind
	Tag      string
	Props    Props // attributes, plus "on<event>" handlers
	Children []*VNode
	Key      string // set by the "key" attribute
	Text     string // KindText and KindRaw
	Comp     Component
	HID      string // handler id, assigned by the renderer
}

// Props maps attribute names to values. Handler entries use the "on"
// prefix and hold functions.
type Props map[string]any

// Handler returns the event handler stored under name ("oninput", ...).
func (p Props) Handler(name string) any {
	if p == nil {
		return nil
	}
	return p[name]
}

// IsInteractive reports whether v carries an event handler and so
// needs a HID.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement {
		return false
	}
	for key := range v.Props {
		if strings.HasPrefix(key, "on") {
			return true
		}
	}
	return false
}

// Attr is a single attribute. An Attr with an empty Key is ignored.
type Attr struct {
	Key   string
	Value any
}

// EventHandler attaches Handler to the "on"-prefixed Event.
type EventHandler struct {
	Event   string
	Handler any
}

// Component renders a subtree when the renderer reaches it.
type Component interface {
	Render() *VNode
}

type funcComponent func() *VNode

func (f funcComponent) Render() *VNode { return f() }

// Func adapts a render function to Component.
func Func(render func() *VNode) Component {
	return funcComponent(render)
}

// Expand renders every component node under v in place, turning it into
// a fragment holding the rendered subtree. vango.Render calls it before
// the owner's OnRendered hooks run, so components see the same owner and
// context as the tree that contains them.
func (v *VNode) Expand() {
	if v == nil {
		return
	}
	if v.Kind == KindComponent {
		comp := v.Comp
		v.Kind = KindFragment
		v.Comp = nil
		v.Children = nil
		if comp != nil {
			if sub := comp.Render(); sub != nil {
				v.Children = []*VNode{sub}
			}
		}
	}
	for _, child := range v.Children {
		child.Expand()
	}
}
