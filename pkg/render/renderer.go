package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/formkit/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Development only.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer renders VNode trees to HTML and collects their event handlers.
// A Renderer is not safe for concurrent use.
type Renderer struct {
	config     RendererConfig
	hidCounter uint32
	handlers   map[string]map[string]any
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{
		config:   config,
		handlers: make(map[string]map[string]any),
	}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// Handler returns the handler registered for hid and event ("onblur"),
// or nil.
func (r *Renderer) Handler(hid, event string) any {
	return r.handlers[hid][event]
}

// HIDs returns the handler IDs assigned during the last render, sorted.
func (r *Renderer) HIDs() []string {
	hids := make([]string, 0, len(r.handlers))
	for hid := range r.handlers {
		hids = append(hids, hid)
	}
	sort.Strings(hids)
	return hids
}

// Reset clears the HID counter and handler registry for reuse.
func (r *Renderer) Reset() {
	r.hidCounter = 0
	r.handlers = make(map[string]map[string]any)
}

func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		if node.Comp != nil {
			return r.renderNode(w, node.Comp.Render(), depth)
		}
		return nil
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := io.WriteString(w, "<"+tag); err != nil {
		return err
	}
	node.HID = ""
	if node.IsInteractive() {
		r.hidCounter++
		node.HID = fmt.Sprintf("h%d", r.hidCounter)
		r.registerHandlers(node)
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}
	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	// A textarea carries its value as content.
	if tag == "textarea" {
		if v, ok := node.Props["value"]; ok {
			if _, err := io.WriteString(w, escapeHTML(attrToString(v))); err != nil {
				return err
			}
		}
	}

	block := len(node.Children) > 0 && !isInlineElement(tag)
	if r.config.Pretty && block {
		io.WriteString(w, "\n")
	}
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}
	if r.config.Pretty && block {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes writes attributes in sorted order, then the HID and
// one data-on-<event> marker per handler.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if node.Props == nil {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var events []string
	for _, key := range keys {
		value := node.Props[key]

		if strings.HasPrefix(key, "_") {
			continue
		}
		if isEventKey(key) {
			events = append(events, strings.ToLower(key[2:]))
			continue
		}
		if key == "value" && node.Tag == "textarea" {
			continue
		}

		if b, ok := value.(bool); ok && isBooleanAttr(key) {
			if b {
				if _, err := fmt.Fprintf(w, " %s", key); err != nil {
					return err
				}
			}
			continue
		}

		// Inputs always carry their value so a cleared field renders as empty.
		s := attrToString(value)
		if s == "" && key != "value" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(s)); err != nil {
			return err
		}
	}

	if node.HID != "" {
		if _, err := fmt.Fprintf(w, ` data-hid="%s"`, node.HID); err != nil {
			return err
		}
	}
	for _, ev := range events {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, ev); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) registerHandlers(node *vdom.VNode) {
	m := make(map[string]any)
	for key, value := range node.Props {
		if isEventKey(key) && value != nil {
			m[key] = value
		}
	}
	r.handlers[node.HID] = m
}

// isEventKey reports whether a prop key names an event handler.
func isEventKey(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on")
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

var booleanAttrs = map[string]bool{
	"disabled":   true,
	"checked":    true,
	"selected":   true,
	"readonly":   true,
	"required":   true,
	"multiple":   true,
	"autofocus":  true,
	"novalidate": true,
	"hidden":     true,
}

func isBooleanAttr(key string) bool {
	return booleanAttrs[key]
}

var inlineElements = map[string]bool{
	"span":   true,
	"label":  true,
	"button": true,
	"small":  true,
	"option": true,
	"title":  true,
	"p":      true,
	"h1":     true,
	"h2":     true,
	"li":     true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}
