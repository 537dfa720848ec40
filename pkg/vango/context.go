package vango

import "fmt"

// Context provides dependency injection through the owner hierarchy.
// Create a context with CreateContext, provide values with Provide, and
// consume them from any descendant render with Use or MustUse.
//
// Example:
//
//	var ThemeContext = vango.CreateContext("light")
//
//	func App() *vdom.VNode {
//	    ThemeContext.Provide("dark")
//	    return Page()
//	}
//
//	func Page() *vdom.VNode {
//	    theme := ThemeContext.Use()
//	    return vdom.Div(vdom.Class("theme-" + theme))
//	}
type Context[T any] struct {
	key          any
	name         string
	defaultValue T
}

// contextKey wraps Context to create a unique key type.
type contextKey[T any] struct {
	ctx *Context[T]
}

// CreateContext creates a new context with the given default value.
func CreateContext[T any](defaultValue T) *Context[T] {
	ctx := &Context[T]{defaultValue: defaultValue}
	ctx.key = contextKey[T]{ctx: ctx}
	return ctx
}

// Named sets a name used in MustUse panics and returns the context.
func (c *Context[T]) Named(name string) *Context[T] {
	c.name = name
	return c
}

// Provide stores value on the current owner so that it is visible to the
// rest of this render and to every descendant owner.
// It panics when called outside of a render.
func (c *Context[T]) Provide(value T) {
	owner := getCurrentOwner()
	if owner == nil {
		panic(fmt.Sprintf("vango: %s provided outside of a render", c.label()))
	}
	owner.SetValue(c.key, value)
}

// Lookup returns the nearest provided value and whether one was found.
func (c *Context[T]) Lookup() (T, bool) {
	owner := getCurrentOwner()
	if owner != nil {
		if value, ok := owner.GetValue(c.key); ok {
			if typed, ok := value.(T); ok {
				return typed, true
			}
		}
	}
	return c.defaultValue, false
}

// Use returns the nearest provided value, or the default value.
func (c *Context[T]) Use() T {
	v, _ := c.Lookup()
	return v
}

// MustUse returns the nearest provided value and panics when there is none.
func (c *Context[T]) MustUse() T {
	v, ok := c.Lookup()
	if !ok {
		panic(fmt.Sprintf("vango: %s used outside of its provider", c.label()))
	}
	return v
}

// Default returns the default value for this context.
func (c *Context[T]) Default() T {
	return c.defaultValue
}

func (c *Context[T]) label() string {
	if c.name != "" {
		return "context " + c.name
	}
	return "context"
}
