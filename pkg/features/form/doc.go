// Package form is a form-state and validation engine for formkit
// components.
//
// # Overview
//
// A Controller owns the shared state of one form: the values map, the
// per-field error messages, the touched set and the registry of rules.
// Fields join and leave the form dynamically through bindings; only the
// rules of mounted fields take part in validation.
//
// # Basic Usage
//
//	func LoginForm() *vdom.VNode {
//	    ctrl := form.UseController(
//	        form.WithOnFinish(func(ctx context.Context, v form.Values) error {
//	            return login(ctx, v["username"], v["password"])
//	        }),
//	    )
//
//	    return vdom.Form(vdom.OnSubmit(ctrl.HandleSubmit()),
//	        form.Item(form.FieldProps{
//	            Name:  "username",
//	            Label: "Username",
//	            Rules: []form.Rule{form.Required(), form.MinLength(3)},
//	        }, vdom.Input(vdom.Type("text"))),
//	        vdom.Button(vdom.Type("submit"), "Log in"),
//	    )
//	}
//
// # Validation
//
// Rules are evaluated in order and the first failure wins. Every rule
// except Required is skipped while the value is blank (nil or only
// whitespace), so an optional field is never reported as malformed.
//
//   - Required: value must not be blank
//   - Pattern: string form must match a regular expression
//   - MinLength/MaxLength: bound on the number of characters
//   - Min/Max: numeric bound; non-numeric values fail
//   - Custom: predicate over the value and a copy of all values
//
// A field is re-validated on every change once it has been touched
// (blurred). Errors are only surfaced for touched fields. Submit validates
// every registered field, marks them all touched and calls either the
// OnFinish or the OnFinishFailed callback.
//
// # Imperative Access
//
// Code outside the render cycle drives the form through an Instance:
//
//	h := form.NewInstance()
//	ctrl := form.New(form.WithInstance(h))
//	h.SetFieldsValue(form.Values{"username": "ada"})
//	values, err := h.ValidateFields(ctx)
package form
