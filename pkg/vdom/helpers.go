package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0),
	}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		case Component:
			node.Children = append(node.Children, &VNode{
				Kind: KindComponent,
				Comp: v,
			})
		}
	}

	return node
}

// If returns the node if condition is true, nil otherwise.
// The node is built eagerly; use When for components with side effects
// such as form fields.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// When is like If but only calls fn when condition is true.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Clone returns a shallow copy of v with its own Props map and Children
// slice, so the copy can be decorated without touching the original.
func Clone(v *VNode) *VNode {
	if v == nil {
		return nil
	}
	c := *v
	c.Props = make(Props, len(v.Props))
	for k, val := range v.Props {
		c.Props[k] = val
	}
	c.Children = make([]*VNode, len(v.Children))
	copy(c.Children, v.Children)
	return &c
}

// Walk visits v and its descendants depth-first. Returning false from fn
// stops the walk. Component nodes are not expanded.
func Walk(v *VNode, fn func(*VNode) bool) bool {
	if v == nil {
		return true
	}
	if !fn(v) {
		return false
	}
	for _, child := range v.Children {
		if !Walk(child, fn) {
			return false
		}
	}
	return true
}

// Find returns the first node matching pred, or nil.
func Find(v *VNode, pred func(*VNode) bool) *VNode {
	var found *VNode
	Walk(v, func(n *VNode) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindByName returns the first element whose name attribute equals name.
func FindByName(v *VNode, name string) *VNode {
	return Find(v, func(n *VNode) bool {
		if n.Kind != KindElement {
			return false
		}
		s, _ := n.Props["name"].(string)
		return s == name
	})
}

// FindByTag returns the first element with the given tag.
func FindByTag(v *VNode, tag string) *VNode {
	return Find(v, func(n *VNode) bool {
		return n.Kind == KindElement && n.Tag == tag
	})
}

// TextContent concatenates the text of v and its descendants.
func TextContent(v *VNode) string {
	var out []byte
	Walk(v, func(n *VNode) bool {
		if n.Kind == KindText {
			out = append(out, n.Text...)
		}
		return true
	})
	return string(out)
}
