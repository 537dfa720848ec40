package form

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	ferrors "github.com/vango-dev/formkit/internal/errors"
)

// ParseRules expands a validate tag into rules:
//
//	required,minlen=3,maxlen=20,min=18,max=100,email,pattern=^[a-z]+$
//
// pattern (or regex) consumes the rest of the tag, so it may contain
// commas but must come last.
func ParseRules(tag string) ([]Rule, error) {
	var rules []Rule

	rest := strings.TrimSpace(tag)
	for rest != "" {
		var part string
		part, rest, _ = strings.Cut(rest, ",")
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, arg, _ := strings.Cut(part, "=")
		switch name {
		case "pattern", "regex":
			if rest != "" {
				arg = arg + "," + rest
				rest = ""
			}
			r, err := patternRule(arg)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
			continue
		}

		r, err := ruleFromTag(name, arg)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
		rest = strings.TrimSpace(rest)
	}

	return rules, nil
}

// MustParseRules is like ParseRules but panics on error.
func MustParseRules(tag string) []Rule {
	rules, err := ParseRules(tag)
	if err != nil {
		panic(err)
	}
	return rules
}

func ruleFromTag(name, arg string) (Rule, error) {
	switch name {
	case "required":
		return Required(), nil
	case "email":
		return Email(), nil
	case "min", "max":
		n, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Rule{}, fmt.Errorf("form: rule %s=%q: %w", name, arg, err)
		}
		if name == "min" {
			return Min(n), nil
		}
		return Max(n), nil
	case "minlen", "minlength", "maxlen", "maxlength":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Rule{}, fmt.Errorf("form: rule %s=%q: %w", name, arg, err)
		}
		if strings.HasPrefix(name, "min") {
			return MinLength(n), nil
		}
		return MaxLength(n), nil
	default:
		return Rule{}, ferrors.New("F005").WithDetail(fmt.Sprintf("unknown rule %q in validate tag", name))
	}
}

func patternRule(expr string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, ferrors.New("F004").
			WithDetail(fmt.Sprintf("pattern %q does not compile", expr)).
			Wrap(err)
	}
	return Pattern(re), nil
}

// StructRules reads the form and validate tags of a struct type:
//
//	type Signup struct {
//	    Email string `form:"email" validate:"required,email"`
//	    Age   int    `form:"age" validate:"min=18"`
//	}
//
// Fields without a form tag use their lowercased Go name; form:"-" skips
// the field. Only top-level exported fields are read.
func StructRules(v any) (map[string][]Rule, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("form: StructRules needs a struct, got %T", v)
	}

	out := make(map[string][]Rule)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldName(field)
		if name == "-" {
			continue
		}
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		rules, err := ParseRules(tag)
		if err != nil {
			return nil, fmt.Errorf("form: field %s: %w", field.Name, err)
		}
		out[name] = rules
	}
	return out, nil
}

// StructValues returns the exported fields of a struct as Values, keyed
// the same way as StructRules. It is meant for initial values.
func StructValues(v any) Values {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Values{}
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Values{}
	}

	t := rv.Type()
	out := make(Values, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := fieldName(field)
		if name == "-" {
			continue
		}
		out[name] = rv.Field(i).Interface()
	}
	return out
}

func fieldName(field reflect.StructField) string {
	if tag := field.Tag.Get("form"); tag != "" {
		return tag
	}
	return strings.ToLower(field.Name)
}
