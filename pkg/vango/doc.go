// Package vango provides the reactive core used by formkit.
//
// Reading a Signal while a listener is being tracked (a component render)
// subscribes that listener to the signal. Writing the signal marks every
// subscriber dirty, so the host knows which components must render again.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes current listener)
//	count.Set(5)          // Write (notifies subscribers)
//	count.Update(func(n int) int { return n + 1 })
//
// Owner is a component scope. It owns cleanups, hook slots and context
// values, and disposing it runs the cleanups of the whole subtree.
//
// Context[T] passes a value from an ancestor owner to its descendants:
//
//	var ThemeContext = CreateContext("light")
//	ThemeContext.Provide("dark")     // inside the ancestor's render
//	theme := ThemeContext.Use()      // inside any descendant's render
//
// # Batching
//
// Multiple signal updates can be batched to trigger a single notification:
//
//	Batch(func() {
//	    a.Set(1)
//	    b.Set(2)
//	})  // Single notification after all updates
//
// # Thread Safety
//
// Signals are safe for concurrent use. The tracking context (current owner,
// current listener, batch depth) is per-goroutine, so work started on a new
// goroutine must re-establish it via WithOwner.
package vango
