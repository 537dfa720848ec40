package form

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Evaluate runs rules against value in order and returns the first
// failure message. ok is true when every rule passes.
//
// Non-required rules are skipped while the value is blank. Custom
// predicates receive a copy of values.
func Evaluate(value any, values Values, rules []Rule) (msg string, ok bool) {
	blank := IsBlank(value)
	var snapshot Values

	for _, r := range rules {
		if r.Kind == KindRequired {
			if blank {
				return r.message(MsgRequired), false
			}
			continue
		}
		if blank {
			continue
		}

		switch r.Kind {
		case KindPattern:
			if r.Pattern != nil && !r.Pattern.MatchString(stringify(value)) {
				return r.message(MsgPattern), false
			}
		case KindMinLength:
			if utf8.RuneCountInString(stringify(value)) < r.Length {
				return r.message(fmt.Sprintf(MsgMinLength, r.Length)), false
			}
		case KindMaxLength:
			if utf8.RuneCountInString(stringify(value)) > r.Length {
				return r.message(fmt.Sprintf(MsgMaxLength, r.Length)), false
			}
		case KindMin:
			if n, numeric := toFloat(value); !numeric || n < r.Bound {
				return r.message(fmt.Sprintf(MsgMin, r.Bound)), false
			}
		case KindMax:
			if n, numeric := toFloat(value); !numeric || n > r.Bound {
				return r.message(fmt.Sprintf(MsgMax, r.Bound)), false
			}
		case KindCustom:
			if r.Func == nil {
				continue
			}
			if snapshot == nil {
				snapshot = values.Clone()
			}
			if m := r.Func(value, snapshot); m != "" {
				return r.message(m), false
			}
		}
	}
	return "", true
}

// IsBlank reports whether value is nil or its string form is only
// whitespace. Zero numbers and false are not blank.
func IsBlank(value any) bool {
	if value == nil {
		return true
	}
	return strings.TrimSpace(stringify(value)) == ""
}

// stringify converts a value to the string the rules see.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// toFloat coerces value to a number. Strings are parsed after trimming.
func toFloat(value any) (float64, bool) {
	var f float64
	switch v := value.(type) {
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
