package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (F001-F099)
	// ============================================

	"F001": {
		Category: CategoryRuntime,
		Message:  "Form controller used outside its provider",
		Detail:   "form.Item and form.UseController.Instance need a controller provided by an enclosing render. Call form.UseController (or form.Provide) before rendering fields.",
		DocURL:   "https://formkit.dev/docs/errors/F001",
	},
	"F002": {
		Category: CategoryRuntime,
		Message:  "Form instance bound to more than one controller",
		Detail:   "An Instance created with form.NewInstance can back exactly one controller. Create one instance per form.",
		DocURL:   "https://formkit.dev/docs/errors/F002",
	},
	"F003": {
		Category: CategoryRuntime,
		Message:  "Form instance used before it was bound",
		Detail:   "Pass the instance to form.New with form.WithInstance before calling its methods.",
		DocURL:   "https://formkit.dev/docs/errors/F003",
	},
	"F004": {
		Category: CategoryRuntime,
		Message:  "Invalid validation rule",
		Detail:   "A rule is missing its argument: pattern rules need a regular expression and custom rules need a predicate.",
		DocURL:   "https://formkit.dev/docs/errors/F004",
	},
	"F005": {
		Category: CategoryValidation,
		Message:  "Unknown rule in tag",
		Detail:   "A validate tag names a rule that does not exist. Known rules: required, min, max, minlen, maxlen, pattern, regex, email.",
		DocURL:   "https://formkit.dev/docs/errors/F005",
	},

	// ============================================
	// Protocol Errors (P001-P099)
	// ============================================

	"P001": {
		Category: CategoryProtocol,
		Message:  "Malformed client message",
		Detail:   "The live-session message could not be decoded as JSON.",
		DocURL:   "https://formkit.dev/docs/errors/P001",
	},
	"P002": {
		Category: CategoryProtocol,
		Message:  "Unknown event type",
		Detail:   "Supported event types are input, change, blur, submit, reset and set.",
		DocURL:   "https://formkit.dev/docs/errors/P002",
	},
	"P003": {
		Category: CategoryProtocol,
		Message:  "Handler not found",
		Detail:   "No handler is registered for this element and event. The form may have re-rendered without the field.",
		DocURL:   "https://formkit.dev/docs/errors/P003",
	},
	"P004": {
		Category: CategoryProtocol,
		Message:  "Unknown form",
		Detail:   "The requested form is not registered with the server.",
		DocURL:   "https://formkit.dev/docs/errors/P004",
	},
	"P005": {
		Category: CategoryProtocol,
		Message:  "Event handler panicked",
		Detail:   "A handler panicked while processing a live-session event. The session stays open.",
		DocURL:   "https://formkit.dev/docs/errors/P005",
	},

	// ============================================
	// Config Errors (C001-C099)
	// ============================================

	"C001": {
		Category: CategoryConfig,
		Message:  "Invalid formkit.json",
		Detail:   "The configuration file could not be parsed. Check for trailing commas and unquoted keys.",
		DocURL:   "https://formkit.dev/docs/errors/C001",
	},
	"C002": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range or has the wrong format.",
		DocURL:   "https://formkit.dev/docs/errors/C002",
	},

	// ============================================
	// CLI Errors (X001-X099)
	// ============================================

	"X001": {
		Category: CategoryCLI,
		Message:  "Port in use",
		Detail:   "The server port is already in use. Pass --port or change server.port in formkit.json.",
		DocURL:   "https://formkit.dev/docs/errors/X001",
	},
	"X002": {
		Category: CategoryCLI,
		Message:  "Unknown error code",
		Detail:   "formkit explain only knows registered error codes. Run formkit explain --list to see them.",
		DocURL:   "https://formkit.dev/docs/errors/X002",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
