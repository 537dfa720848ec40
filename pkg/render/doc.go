// Package render renders vdom trees to HTML.
//
// Interactive elements (those with event handlers) get a data-hid
// attribute and a data-on-<event> marker per handler. The renderer keeps
// the handlers in a registry keyed by HID so that a host receiving
// "input on h3" from the browser can dispatch it to the right function.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(page)
//	handler := r.Handler("h3", "oninput")
package render
