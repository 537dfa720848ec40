// Package vdom provides the virtual DOM nodes formkit renders forms into.
//
// Elements are built from variadic arguments: attributes (Attr), event
// handlers (EventHandler), child nodes and plain strings.
//
//	vdom.Form(vdom.Novalidate(), vdom.OnSubmit(submit),
//	    vdom.Label(vdom.For("email"), "Email"),
//	    vdom.Input(vdom.ID("email"), vdom.Type("email")),
//	    vdom.Button(vdom.Type("submit"), "Send"),
//	)
//
// Event handlers are stored in Props under their "on"-prefixed name and are
// invoked with Dispatch, which accepts the handler shapes components use
// in practice (func(), func(*Event), func(string), func(any)).
package vdom
