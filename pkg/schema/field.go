package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the primitive type a field is coerced into before its rules run.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
)

type rule struct {
	tag     string
	message string
}

// Field declares the constraints of a single input key.
type Field struct {
	name        string
	label       string
	kind        Kind
	required    bool
	requiredMsg string
	hasDefault  bool
	def         interface{}
	lower       bool
	rules       []rule
}

// String declares a trimmed string field.
func String(name string) *Field { return newField(name, KindString) }

// Bool declares a boolean field. Form values "true", "false", "1", "0" and "on" are accepted.
func Bool(name string) *Field { return newField(name, KindBool) }

// Int declares an integer field. Numeric strings are accepted.
func Int(name string) *Field { return newField(name, KindInt) }

func newField(name string, kind Kind) *Field {
	return &Field{name: name, label: humanize(name), kind: kind}
}

// Name returns the input key of the field.
func (f *Field) Name() string { return f.name }

// Label overrides the human readable name used in default messages.
func (f *Field) Label(label string) *Field {
	f.label = label
	return f
}

// Required marks the field mandatory. An empty string counts as missing.
func (f *Field) Required(message ...string) *Field {
	f.required = true
	if len(message) > 0 {
		f.requiredMsg = message[0]
	}
	return f
}

// Default applies value when the key is absent or empty.
func (f *Field) Default(value interface{}) *Field {
	f.hasDefault = true
	f.def = value
	return f
}

// Lower lowercases string input after trimming.
func (f *Field) Lower() *Field {
	f.lower = true
	return f
}

// Rule appends a validator tag evaluated against the coerced value.
func (f *Field) Rule(tag, message string) *Field {
	if message == "" {
		message = fmt.Sprintf("%s is invalid", f.label)
	}
	f.rules = append(f.rules, rule{tag: tag, message: message})
	return f
}

func (f *Field) Min(n int, message string) *Field {
	if message == "" {
		message = f.boundMessage("at least", n)
	}
	return f.Rule("min="+strconv.Itoa(n), message)
}

func (f *Field) Max(n int, message string) *Field {
	if message == "" {
		message = f.boundMessage("at most", n)
	}
	return f.Rule("max="+strconv.Itoa(n), message)
}

func (f *Field) Email(message string) *Field {
	if message == "" {
		message = "Please provide a valid email"
	}
	return f.Rule("email", message)
}

func (f *Field) Phone(message string) *Field {
	if message == "" {
		message = fmt.Sprintf("%s must be exactly 10 digits", f.label)
	}
	return f.Rule("phone", message)
}

func (f *Field) ObjectID(message string) *Field {
	if message == "" {
		message = fmt.Sprintf("Invalid %s format", f.label)
	}
	return f.Rule("objectid", message)
}

// Date requires a calendar date in YYYY-MM-DD form.
func (f *Field) Date(message string) *Field {
	if message == "" {
		message = fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", f.label)
	}
	return f.Rule("datetime=2006-01-02", message)
}

func (f *Field) URL(message string) *Field {
	if message == "" {
		message = fmt.Sprintf("%s must be a valid URL", f.label)
	}
	return f.Rule("url", message)
}

// OneOf restricts the value to an enumerated set.
func (f *Field) OneOf(values []string, message string) *Field {
	if message == "" {
		message = fmt.Sprintf("%s must be one of: %s", f.label, strings.Join(values, ", "))
	}
	return f.Rule("oneof="+strings.Join(values, " "), message)
}

func (f *Field) boundMessage(qualifier string, n int) string {
	if f.kind == KindString {
		return fmt.Sprintf("%s must be %s %d characters", f.label, qualifier, n)
	}
	return fmt.Sprintf("%s must be %s %d", f.label, qualifier, n)
}

func (f *Field) clone() *Field {
	c := *f
	c.rules = append([]rule(nil), f.rules...)
	return &c
}

// check coerces raw and evaluates the rules in declaration order.
// present is false when the key should be left out of the normalized document.
func (f *Field) check(raw interface{}, supplied bool) (value interface{}, present bool, violation *Violation) {
	if supplied {
		coerced, empty, err := f.coerce(raw)
		if err != nil {
			return nil, false, &Violation{Field: f.name, Message: err.Error()}
		}
		if !empty {
			for _, r := range f.rules {
				if verr := Validator().Var(coerced, r.tag); verr != nil {
					return nil, false, &Violation{Field: f.name, Message: r.message}
				}
			}
			return coerced, true, nil
		}
	}

	switch {
	case f.required:
		msg := f.requiredMsg
		if msg == "" {
			msg = fmt.Sprintf("%s is required", f.label)
		}
		return nil, false, &Violation{Field: f.name, Message: msg}
	case f.hasDefault:
		return f.def, true, nil
	default:
		return nil, false, nil
	}
}

func (f *Field) coerce(raw interface{}) (value interface{}, empty bool, err error) {
	if raw == nil {
		return nil, true, nil
	}
	if list, ok := raw.([]string); ok {
		if len(list) == 0 {
			return nil, true, nil
		}
		raw = list[0]
	}

	switch f.kind {
	case KindString:
		var s string
		switch v := raw.(type) {
		case string:
			s = v
		case float64:
			s = strconv.FormatFloat(v, 'f', -1, 64)
		case json.Number:
			s = v.String()
		case int:
			s = strconv.Itoa(v)
		default:
			return nil, false, fmt.Errorf("%s must be a string", f.label)
		}
		s = strings.TrimSpace(s)
		if f.lower {
			s = strings.ToLower(s)
		}
		return s, s == "", nil

	case KindBool:
		switch v := raw.(type) {
		case bool:
			return v, false, nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "":
				return nil, true, nil
			case "true", "1", "on", "yes":
				return true, false, nil
			case "false", "0", "off", "no":
				return false, false, nil
			}
		}
		return nil, false, fmt.Errorf("%s must be a boolean", f.label)

	case KindInt:
		switch v := raw.(type) {
		case int:
			return v, false, nil
		case int64:
			return int(v), false, nil
		case float64:
			if v == math.Trunc(v) {
				return int(v), false, nil
			}
		case json.Number:
			if n, perr := strconv.Atoi(v.String()); perr == nil {
				return n, false, nil
			}
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				return nil, true, nil
			}
			if n, perr := strconv.Atoi(trimmed); perr == nil {
				return n, false, nil
			}
		}
		return nil, false, fmt.Errorf("%s must be a whole number", f.label)
	}

	return nil, false, fmt.Errorf("%s has an unsupported type", f.label)
}

// humanize turns camelCase keys into "Camel case" labels.
func humanize(name string) string {
	var b strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		if i == 0 && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
