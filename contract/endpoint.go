package contract

import "github.com/kbukum/apicontract/schema"

// AuthMode declares whether an endpoint needs credentials.
type AuthMode int

const (
	// Public endpoints are called without auth headers.
	Public AuthMode = iota
	// Required endpoints get headers from the call's auth override or the client default.
	Required
)

// String returns the mode name.
func (m AuthMode) String() string {
	switch m {
	case Public:
		return "public"
	case Required:
		return "required"
	default:
		return "unknown"
	}
}

// ContentType declares how an endpoint's request body is encoded.
type ContentType int

const (
	// ContentDefault resolves to JSON when the endpoint declares a body schema, else NoBody.
	ContentDefault ContentType = iota
	// JSON bodies are encoded with the client codec.
	JSON
	// Text bodies are sent as their string form.
	Text
	// NoBody endpoints never send a body.
	NoBody
)

// String returns the content type name.
func (c ContentType) String() string {
	switch c {
	case ContentDefault:
		return "default"
	case JSON:
		return "json"
	case Text:
		return "text"
	case NoBody:
		return "none"
	default:
		return "unknown"
	}
}

// MIME returns the Content-Type header value for the encoding, empty for NoBody.
func (c ContentType) MIME() string {
	switch c {
	case JSON:
		return "application/json"
	case Text:
		return "text/plain; charset=utf-8"
	default:
		return ""
	}
}

// Endpoint is the definition of a single callable endpoint.
type Endpoint struct {
	// Auth declares whether credentials are attached. Zero value is Public.
	Auth AuthMode

	// Params validates path parameters.
	Params schema.Schema
	// Query validates the query mapping.
	Query schema.Schema
	// Body validates the request body.
	Body schema.Schema
	// Headers validates call headers.
	Headers schema.Schema
	// Response validates a 2xx response body. Mandatory.
	Response schema.Schema
	// Error parses a non-2xx response body when it matches.
	Error schema.Schema

	// ContentType selects the body encoding.
	ContentType ContentType

	// Summary is a short description used in logs and Describe.
	Summary string
}

// withDefaults resolves ContentDefault.
func (e Endpoint) withDefaults() Endpoint {
	if e.ContentType == ContentDefault {
		if e.Body != nil {
			e.ContentType = JSON
		} else {
			e.ContentType = NoBody
		}
	}
	return e
}
