// Package schema provides the runtime validators used by contract endpoints.
//
// A Schema is anything exposing Parse(input) (output, error). The call
// pipeline treats schemas as opaque: a failed Parse that returns a *Error
// contributes its structured Issues, any other error is attached as-is.
//
// # Typed Schemas
//
// Of decodes inputs into a Go type using the `json` tag names, rejects keys
// the type does not declare, and runs `validate` struct tags:
//
//	type CreateUser struct {
//	    Name  string `json:"name" validate:"required,min=2"`
//	    Email string `json:"email" validate:"required,email"`
//	}
//
//	s := schema.Of[CreateUser]()
//	v, err := s.ParseTyped(map[string]any{"name": "Al", "email": "al@example.com"})
//
// Response bodies from servers that add fields over time are usually parsed
// with schema.Of[T](schema.Lenient()).
//
// # Other Schemas
//
//   - Func: wrap any parse function
//   - String: accept text
//   - Any: accept everything unchanged
//   - Empty: accept an absent or blank body
//   - Optional: let nil through, delegate the rest
package schema
