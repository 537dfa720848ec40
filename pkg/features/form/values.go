package form

import (
	"sort"
	"strconv"
	"strings"
)

// Values maps field names to their current scalar values.
type Values map[string]any

// Clone returns a shallow copy of v. The copy of a nil map is empty.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Names returns the field names in v, sorted.
func (v Values) Names() []string {
	names := make([]string, 0, len(v))
	for k := range v {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Errors maps field names to a single error message.
// A name without an entry has no error.
type Errors map[string]string

// Clone returns a copy of e.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, msg := range e {
		out[k] = msg
	}
	return out
}

// Names returns the failing field names, sorted.
func (e Errors) Names() []string {
	names := make([]string, 0, len(e))
	for k := range e {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Touched records which fields have been blurred or submitted.
type Touched map[string]bool

// Clone returns a copy of t.
func (t Touched) Clone() Touched {
	out := make(Touched, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// FieldData is one entry of Controller.SetFields.
type FieldData struct {
	Name string

	// Value is applied when non-nil.
	Value any

	// Errors is applied when non-nil: the first message becomes the
	// field's error and an empty slice clears it.
	Errors []string
}

// ValidationError is returned by ValidateFields when at least one field
// fails. It carries every failing field.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	names := e.Errors.Names()
	if len(names) == 1 {
		return "form: " + names[0] + ": " + e.Errors[names[0]]
	}
	return "form: " + strconv.Itoa(len(names)) + " fields failed validation: " + strings.Join(names, ", ")
}
