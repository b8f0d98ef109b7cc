package schema

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
)

// Schema validates an input value and returns its parsed form.
type Schema interface {
	Parse(input any) (any, error)
}

// Issue describes a single validation failure.
type Issue struct {
	// Path locates the offending value using json field names ("" for the root).
	Path string `json:"path,omitempty"`
	// Code is a short machine-readable reason ("required", "unknown_key", ...).
	Code string `json:"code"`
	// Message is a human-readable description.
	Message string `json:"message"`
}

// String formats the issue as "path: message".
func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// Issues is the payload attached to a failed Parse.
type Issues []Issue

// String joins all issues with "; ".
func (is Issues) String() string {
	parts := make([]string, len(is))
	for i, issue := range is {
		parts[i] = issue.String()
	}
	return strings.Join(parts, "; ")
}

// Error is returned by the schemas in this package when Parse fails.
type Error struct {
	Issues Issues
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return "schema: invalid input"
	}
	return "schema: " + e.Issues.String()
}

// Fail builds an *Error holding a single issue.
func Fail(path, code, message string) *Error {
	return &Error{Issues: Issues{{Path: path, Code: code, Message: message}}}
}

// IssuesOf extracts the issues carried by err. Errors that are not a *Error
// are reported as a single opaque issue.
func IssuesOf(err error) Issues {
	if err == nil {
		return nil
	}
	var se *Error
	if stderrors.As(err, &se) {
		return se.Issues
	}
	return Issues{{Code: "invalid", Message: err.Error()}}
}

// FuncSchema adapts a parse function into a Schema.
type FuncSchema[T any] func(input any) (T, error)

// Func wraps fn as a Schema.
func Func[T any](fn func(input any) (T, error)) FuncSchema[T] {
	return FuncSchema[T](fn)
}

// Parse implements Schema.
func (f FuncSchema[T]) Parse(input any) (any, error) {
	return f(input)
}

type anySchema struct{}

// Any returns a Schema that accepts every input unchanged.
func Any() Schema { return anySchema{} }

func (anySchema) Parse(input any) (any, error) { return input, nil }

type stringSchema struct{}

// String returns a Schema accepting string or []byte input and producing a string.
func String() Schema { return stringSchema{} }

func (stringSchema) Parse(input any) (any, error) {
	switch v := input.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return nil, Fail("", "type", fmt.Sprintf("expected string, got %T", input))
	}
}

type emptySchema struct{}

// Empty returns a Schema that accepts nil or blank text and produces struct{}{}.
// It suits endpoints answering 204 No Content.
func Empty() Schema { return emptySchema{} }

func (emptySchema) Parse(input any) (any, error) {
	switch v := input.(type) {
	case nil:
		return struct{}{}, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return struct{}{}, nil
		}
	}
	return nil, Fail("", "unexpected_body", "expected an empty body")
}

type optionalSchema struct {
	inner Schema
}

// Optional returns a Schema that passes nil, including typed nil pointers,
// through and delegates anything else to s.
func Optional(s Schema) Schema { return optionalSchema{inner: s} }

func (o optionalSchema) Parse(input any) (any, error) {
	if isNil(input) {
		return nil, nil
	}
	return o.inner.Parse(input)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
