// Package demo defines the forms served by the formkit demo host.
package demo

import (
	"fmt"
	"sort"

	"github.com/vango-dev/formkit/pkg/features/form"
	"github.com/vango-dev/formkit/pkg/vdom"
)

// Definition describes one demo form.
type Definition struct {
	// Name identifies the form in URLs, logs and metrics.
	Name string

	// Title is the page heading.
	Title string

	// View renders the form for c. It runs inside a render with c
	// provided.
	View func(c *form.Controller) *vdom.VNode

	// Rules lists the rules each field is rendered with.
	Rules map[string][]form.Rule
}

var definitions = map[string]Definition{
	"login": {
		Name:  "login",
		Title: "Log in",
		View:  loginView,
		Rules: map[string][]form.Rule{"username": usernameRules, "password": passwordRules},
	},
	"register": {
		Name:  "register",
		Title: "Create an account",
		View:  registerView,
		Rules: registerRules,
	},
}

// Forms returns all definitions sorted by name.
func Forms() []Definition {
	out := make([]Definition, 0, len(definitions))
	for _, d := range definitions {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the definition named name.
func Lookup(name string) (Definition, bool) {
	d, ok := definitions[name]
	return d, ok
}

// Check validates every rule of d.
func (d Definition) Check() error {
	names := make([]string, 0, len(d.Rules))
	for name := range d.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for i, r := range d.Rules[name] {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("%s.%s rule %d: %w", d.Name, name, i, err)
			}
		}
	}
	return nil
}

// Component returns a render function showing d bound to c.
func Component(d Definition, c *form.Controller) func() *vdom.VNode {
	return func() *vdom.VNode {
		form.Provide(c)
		return d.View(c)
	}
}

// shell wraps fields in the form element with submit and reset buttons.
func shell(c *form.Controller, title, submit string, fields ...any) *vdom.VNode {
	args := []any{
		vdom.Class("form"),
		vdom.Data("form", c.Name()),
		vdom.Novalidate(),
		vdom.OnSubmit(c.HandleSubmit()),
		vdom.OnReset(c.HandleReset()),
		vdom.H2(title),
	}
	args = append(args, fields...)
	args = append(args, vdom.Div(
		vdom.Class("form-actions"),
		vdom.Button(vdom.Type("submit"), vdom.DisabledIf(c.Submitting()), submit),
		vdom.Button(vdom.Type("reset"), "Reset"),
	))
	return vdom.Form(args...)
}
