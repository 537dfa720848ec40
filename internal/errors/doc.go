// Package errors provides structured, actionable error messages for formkit.
//
// Every error has a code that maps to a short message, a longer
// explanation and a documentation URL. Codes are grouped by category:
//   - runtime (F0xx): misuse of the form engine (controller outside its
//     provider, instance bound twice, invalid rules)
//   - protocol (P0xx): malformed live-session messages
//   - config (C0xx): unreadable or invalid formkit.json
//   - cli (X0xx): command-line usage errors
//
// # Usage
//
//	err := errors.New("F001").
//	    WithDetail("form.Item(\"email\") rendered without a controller").
//	    WithSuggestion("Call form.UseController() at the top of the form component")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR F001: Form controller used outside its provider
//	//
//	//   form.Item("email") rendered without a controller
//	//
//	//   Hint: Call form.UseController() at the top of the form component
//	//
//	//   Learn more: https://formkit.dev/docs/errors/F001
package errors
