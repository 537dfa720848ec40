package form

import (
	"fmt"
	"regexp"

	ferrors "github.com/vango-dev/formkit/internal/errors"
)

// Kind discriminates the rule variants.
type Kind uint8

const (
	KindRequired Kind = iota + 1
	KindPattern
	KindMinLength
	KindMaxLength
	KindMin
	KindMax
	KindCustom
)

// String returns the tag name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRequired:
		return "required"
	case KindPattern:
		return "pattern"
	case KindMinLength:
		return "minlen"
	case KindMaxLength:
		return "maxlen"
	case KindMin:
		return "min"
	case KindMax:
		return "max"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Predicate is a custom check. It returns an empty string when the value
// passes and the error message otherwise. values is a copy and may be
// read freely.
type Predicate func(value any, values Values) string

// Rule is one declarative check. Only the field matching Kind is used.
type Rule struct {
	Kind Kind

	// Message replaces the default message of the kind. For custom rules
	// it replaces the message returned by the predicate.
	Message string

	// Pattern is the expression for KindPattern.
	Pattern *regexp.Regexp

	// Length is the character bound for KindMinLength and KindMaxLength.
	Length int

	// Bound is the numeric bound for KindMin and KindMax.
	Bound float64

	// Func is the predicate for KindCustom.
	Func Predicate
}

// Default messages.
const (
	MsgRequired  = "this field is required"
	MsgPattern   = "invalid format"
	MsgMinLength = "must be at least %d characters"
	MsgMaxLength = "must be at most %d characters"
	MsgMin       = "value must be at least %v"
	MsgMax       = "value must be at most %v"
)

// Required fails on blank values.
func Required() Rule { return Rule{Kind: KindRequired} }

// Pattern requires the string form of the value to match re.
func Pattern(re *regexp.Regexp) Rule { return Rule{Kind: KindPattern, Pattern: re} }

// MatchString compiles expr and returns a pattern rule.
// It panics with F004 when expr does not compile.
func MatchString(expr string) Rule {
	re, err := regexp.Compile(expr)
	if err != nil {
		panic(ferrors.New("F004").
			WithDetail(fmt.Sprintf("pattern %q does not compile", expr)).
			Wrap(err))
	}
	return Pattern(re)
}

// MinLength requires at least n characters.
func MinLength(n int) Rule { return Rule{Kind: KindMinLength, Length: n} }

// MaxLength allows at most n characters.
func MaxLength(n int) Rule { return Rule{Kind: KindMaxLength, Length: n} }

// Min requires a numeric value of at least bound.
func Min(bound float64) Rule { return Rule{Kind: KindMin, Bound: bound} }

// Max requires a numeric value of at most bound.
func Max(bound float64) Rule { return Rule{Kind: KindMax, Bound: bound} }

// Custom wraps a predicate.
func Custom(fn Predicate) Rule { return Rule{Kind: KindCustom, Func: fn} }

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is a pattern rule for common email addresses.
func Email() Rule {
	return Rule{Kind: KindPattern, Pattern: emailPattern, Message: "invalid email address"}
}

// EqualTo requires the value to equal the value of another field, as
// compared by their string forms.
func EqualTo(field string) Rule {
	return Custom(func(value any, values Values) string {
		if stringify(value) != stringify(values[field]) {
			return "must match " + field
		}
		return ""
	})
}

// WithMessage returns a copy of r with its message replaced.
func (r Rule) WithMessage(msg string) Rule {
	r.Message = msg
	return r
}

// Validate reports whether the rule is usable.
func (r Rule) Validate() error {
	switch r.Kind {
	case KindRequired, KindMin, KindMax:
		return nil
	case KindMinLength, KindMaxLength:
		if r.Length < 0 {
			return ferrors.New("F004").WithDetail(fmt.Sprintf("%s rule has a negative length %d", r.Kind, r.Length))
		}
		return nil
	case KindPattern:
		if r.Pattern == nil {
			return ferrors.New("F004").WithDetail("pattern rule has no regular expression")
		}
		return nil
	case KindCustom:
		if r.Func == nil {
			return ferrors.New("F004").WithDetail("custom rule has no predicate")
		}
		return nil
	default:
		return ferrors.New("F004").WithDetail(fmt.Sprintf("unknown rule %s", r.Kind))
	}
}

// HasRequired reports whether any rule is a required rule.
func HasRequired(rules []Rule) bool {
	for _, r := range rules {
		if r.Kind == KindRequired {
			return true
		}
	}
	return false
}

func (r Rule) message(def string) string {
	if r.Message != "" {
		return r.Message
	}
	return def
}
