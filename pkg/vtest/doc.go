// Package vtest provides testing helpers for formkit components.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, LoginForm(), "Username")
//	vtest.ExpectNotContains(t, LoginForm(), "field-error")
//
// # Mounting Components
//
// Mount renders a component under its own owner and keeps it mounted for
// the rest of the test. Events are fired by field name and the component
// is re-rendered after each one, the way a live host would:
//
//	h := vtest.Mount(t, LoginForm)
//	h.Input("username", "ada")
//	h.Blur("password")
//	ev, err := h.Submit()
//	if err != nil {
//	    t.Fatalf("submit: %v", err)
//	}
//	vtest.ExpectContains(t, h.Tree(), "password is required")
//
// The harness is disposed through t.Cleanup, which unmounts every field.
package vtest
