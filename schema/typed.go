package schema

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"strings"
)

// Option configures a typed schema.
type Option func(*typedOptions)

type typedOptions struct {
	lenient bool
}

// Lenient makes a typed schema ignore keys the target type does not declare.
func Lenient() Option {
	return func(o *typedOptions) { o.lenient = true }
}

// Typed decodes inputs into T and validates the result against its struct tags.
//
// Accepted inputs are a T, a *T, nil (the zero T), raw JSON ([]byte or
// json.RawMessage), and any value that encoding/json can encode, such as
// the maps and slices of a decoded body. Decoding follows encoding/json
// rules: embedded structs are flattened, json.Unmarshaler is honoured and
// json.Number values keep their full precision.
type Typed[T any] struct {
	lenient bool
}

// Of returns a typed schema for T. Unknown keys are rejected unless Lenient is given.
func Of[T any](opts ...Option) *Typed[T] {
	var o typedOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Typed[T]{lenient: o.lenient}
}

// Parse implements Schema.
func (s *Typed[T]) Parse(input any) (any, error) {
	return s.ParseTyped(input)
}

// ParseTyped is Parse with a typed result.
func (s *Typed[T]) ParseTyped(input any) (T, error) {
	out, err := s.decode(input)
	if err != nil {
		var zero T
		return zero, err
	}
	if issues := validateValue(out); len(issues) > 0 {
		var zero T
		return zero, &Error{Issues: issues}
	}
	return out, nil
}

func (s *Typed[T]) decode(input any) (T, error) {
	var out T
	if v, ok := input.(T); ok {
		return v, nil
	}
	if p, ok := input.(*T); ok {
		if p != nil {
			out = *p
		}
		return out, nil
	}

	switch v := input.(type) {
	case nil:
		return out, nil
	case json.RawMessage:
		return out, s.decodeJSON(v, &out)
	case []byte:
		return out, s.decodeJSON(v, &out)
	}

	data, err := json.Marshal(input)
	if err != nil {
		return out, Fail("", "decode", err.Error())
	}
	return out, s.decodeJSON(data, &out)
}

func (s *Typed[T]) decodeJSON(data []byte, out *T) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if !s.lenient {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(out); err != nil {
		return &Error{Issues: Issues{decodeIssue(err)}}
	}
	return nil
}

// decodeIssue maps an encoding/json error to an issue with a json path.
func decodeIssue(err error) Issue {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return Issue{Path: typeErr.Field, Code: "type", Message: err.Error()}
	}
	msg := err.Error()
	if name, ok := strings.CutPrefix(msg, "json: unknown field "); ok {
		return Issue{Path: strings.Trim(name, `"`), Code: "unknown_key", Message: msg}
	}
	return Issue{Code: "decode", Message: msg}
}
