// Package schema provides declarative, composable validation for loosely typed
// request input. A Schema validates every field, collects all violations and
// returns a normalized Document with strings trimmed, defaults applied and
// unknown keys dropped.
package schema

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Document is a normalized payload produced by a successful validation.
type Document map[string]interface{}

// Violation describes one failing field.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Violations is the full set of failures for one input.
type Violations []Violation

// Error joins every message so the list can travel as a single error.
func (v Violations) Error() string {
	msgs := make([]string, len(v))
	for i, item := range v {
		msgs[i] = item.Message
	}
	return strings.Join(msgs, ", ")
}

// Refinement is a cross-field check evaluated only after every field passed.
type Refinement func(doc Document) Violations

// Schema is an ordered set of fields plus refinements.
type Schema struct {
	fields      []*Field
	refinements []Refinement
}

// Object builds a schema from fields. A repeated name replaces the earlier field.
func Object(fields ...*Field) *Schema {
	s := &Schema{}
	for _, f := range fields {
		s.put(f)
	}
	return s
}

// Merge composes schemas left to right. Later fields with the same name win and
// refinements are concatenated.
func Merge(schemas ...*Schema) *Schema {
	out := &Schema{}
	for _, s := range schemas {
		if s == nil {
			continue
		}
		for _, f := range s.fields {
			out.put(f.clone())
		}
		out.refinements = append(out.refinements, s.refinements...)
	}
	return out
}

// Refine returns a copy with an extra cross-field check.
func (s *Schema) Refine(r Refinement) *Schema {
	out := Merge(s)
	out.refinements = append(out.refinements, r)
	return out
}

// Partial returns a copy where no field is required and no default is applied,
// for updates that only touch the supplied keys.
func (s *Schema) Partial() *Schema {
	out := Merge(s)
	for _, f := range out.fields {
		f.required = false
		f.hasDefault = false
		f.def = nil
	}
	out.refinements = nil
	return out
}

// Fields lists the declared keys in order.
func (s *Schema) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Validate checks input against every field. Each field reports at most its
// first failing rule. Refinements run only when no field failed.
func (s *Schema) Validate(input map[string]interface{}) (Document, Violations) {
	doc := make(Document, len(s.fields))
	var violations Violations

	for _, f := range s.fields {
		raw, supplied := input[f.name]
		value, present, violation := f.check(raw, supplied)
		if violation != nil {
			violations = append(violations, *violation)
			continue
		}
		if present {
			doc[f.name] = value
		}
	}

	if len(violations) > 0 {
		return nil, violations
	}

	for _, refine := range s.refinements {
		violations = append(violations, refine(doc)...)
	}
	if len(violations) > 0 {
		return nil, violations
	}

	return doc, nil
}

func (s *Schema) put(f *Field) {
	for i, existing := range s.fields {
		if existing.name == f.name {
			s.fields[i] = f
			return
		}
	}
	s.fields = append(s.fields, f)
}

// RequiredWhen requires field to be non-empty when flag equals want.
func RequiredWhen(field, flag string, want bool, message string) Refinement {
	if message == "" {
		message = fmt.Sprintf("%s is required", humanize(field))
	}
	return func(doc Document) Violations {
		current, ok := doc[flag].(bool)
		if !ok || current != want {
			return nil
		}
		if value, exists := doc[field]; exists {
			if str, isString := value.(string); !isString || str != "" {
				return nil
			}
		}
		return Violations{{Field: field, Message: message}}
	}
}

// FromValues flattens url.Values style input into a validation input.
func FromValues(values map[string][]string) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for key, list := range values {
		if len(list) == 0 {
			continue
		}
		out[key] = list[0]
	}
	return out
}

// Decode copies a normalized document into a struct using its json tags.
func Decode(doc Document, dst interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Squash:           true,
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(map[string]interface{}(doc)); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
