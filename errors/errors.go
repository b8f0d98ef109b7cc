package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/kbukum/apicontract/schema"
)

// Kind tells which side of a call failed validation.
type Kind string

const (
	// KindRequest marks a caller-supplied input that failed its schema.
	KindRequest Kind = "request"
	// KindResponse marks a 2xx response body that failed its schema.
	KindResponse Kind = "response"
)

// Field names the request input a validation failure belongs to.
type Field string

// Request fields, in the order they are validated.
const (
	FieldParams  Field = "params"
	FieldQuery   Field = "query"
	FieldBody    Field = "body"
	FieldHeaders Field = "headers"
)

// ValidationError reports a schema failure on a request input or on the
// response body. It is never produced after a failed dispatch.
type ValidationError struct {
	// Kind is request or response.
	Kind Kind
	// Field is set for request failures only.
	Field Field
	// Key is the endpoint key of the call.
	Key string
	// URL is the resolved URL, empty when the failure precedes URL construction.
	URL string
	// Issues is the structured payload returned by the schema.
	Issues schema.Issues
	// Cause is the error the schema returned.
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	side := string(e.Kind)
	if e.Field != "" {
		side += " " + string(e.Field)
	}
	return fmt.Sprintf("validation: %s invalid for %s: %s", side, e.Key, e.Issues)
}

// Unwrap returns the schema error.
func (e *ValidationError) Unwrap() error { return e.Cause }

// Code returns INVALID_REQUEST or INVALID_RESPONSE.
func (e *ValidationError) Code() ErrorCode {
	if e.Kind == KindResponse {
		return ErrCodeInvalidResponse
	}
	return ErrCodeInvalidRequest
}

// NewRequestValidation creates a request-side ValidationError for field.
func NewRequestValidation(key, url string, field Field, cause error) *ValidationError {
	return &ValidationError{
		Kind:   KindRequest,
		Field:  field,
		Key:    key,
		URL:    url,
		Issues: schema.IssuesOf(cause),
		Cause:  cause,
	}
}

// NewResponseValidation creates a response-side ValidationError.
func NewResponseValidation(key, url string, cause error) *ValidationError {
	return &ValidationError{
		Kind:   KindResponse,
		Key:    key,
		URL:    url,
		Issues: schema.IssuesOf(cause),
		Cause:  cause,
	}
}

// APIError reports a non-2xx response. The raw body is always attached so
// callers can inspect payloads that did not match the error schema.
type APIError struct {
	// Status is the HTTP status code returned by the transport.
	Status int
	// Key is the endpoint key of the call.
	Key string
	// URL is the URL the request was sent to.
	URL string
	// RawText is the exact response body.
	RawText string
	// RawJSON is the decoded body, nil when the body was not JSON.
	RawJSON any
	// ParsedError is the error schema's output, valid only when HasParsed is true.
	ParsedError any
	// HasParsed reports whether the error schema matched the decoded body.
	HasParsed bool
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s returned HTTP %d (%s)", e.Key, e.Status, e.Code())
}

// Code classifies the status.
func (e *APIError) Code() ErrorCode { return ClassifyStatus(e.Status) }

// Temporary reports whether the status is 429 or 5xx.
func (e *APIError) Temporary() bool { return IsTemporaryStatus(e.Status) }

// ContractError reports a caller defect detected before any network activity.
type ContractError struct {
	// Code identifies the defect.
	Code ErrorCode
	// Key is the endpoint key involved.
	Key string
	// Message describes the defect.
	Message string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("contract: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("contract: %s: %q: %s", e.Code, e.Key, e.Message)
}

// Is matches another *ContractError with the same code, so callers can test
// errors.Is(err, &ContractError{Code: ErrCodeUnknownEndpoint}).
func (e *ContractError) Is(target error) bool {
	t, ok := target.(*ContractError)
	return ok && t.Code == e.Code && (t.Key == "" || t.Key == e.Key)
}

// --- Contract error constructors ---

// UnknownEndpoint creates a ContractError for a key absent from the contract.
func UnknownEndpoint(key string) *ContractError {
	return &ContractError{Code: ErrCodeUnknownEndpoint, Key: key, Message: "endpoint is not declared in the contract"}
}

// MalformedKey creates a ContractError for a key without a method/path separator.
func MalformedKey(key string) *ContractError {
	return &ContractError{Code: ErrCodeMalformedKey, Key: key, Message: `key must be of the form "METHOD /path"`}
}

// AuthModeMismatch creates a ContractError for auth supplied to a public
// endpoint or missing for a required one.
func AuthModeMismatch(key, reason string) *ContractError {
	return &ContractError{Code: ErrCodeAuthModeMismatch, Key: key, Message: reason}
}

// ResponseType creates a ContractError for a parsed response of the wrong Go type.
func ResponseType(key string, want, got any) *ContractError {
	return &ContractError{
		Code:    ErrCodeResponseType,
		Key:     key,
		Message: fmt.Sprintf("response schema produced %T, caller expects %T", got, want),
	}
}

// InvalidContract creates a ContractError for an unusable endpoint definition.
func InvalidContract(key, reason string) *ContractError {
	return &ContractError{Code: ErrCodeInvalidContract, Key: key, Message: reason}
}

// --- Predicates ---

// IsValidation checks if an error is a ValidationError of either kind.
func IsValidation(err error) bool {
	_, ok := AsValidationError(err)
	return ok
}

// IsRequestValidation checks if an error is a request-side ValidationError.
func IsRequestValidation(err error) bool {
	v, ok := AsValidationError(err)
	return ok && v.Kind == KindRequest
}

// IsResponseValidation checks if an error is a response-side ValidationError.
func IsResponseValidation(err error) bool {
	v, ok := AsValidationError(err)
	return ok && v.Kind == KindResponse
}

// IsAPIError checks if an error is an APIError.
func IsAPIError(err error) bool {
	_, ok := AsAPIError(err)
	return ok
}

// IsContractError checks if an error is a ContractError, optionally with one of codes.
func IsContractError(err error, codes ...ErrorCode) bool {
	if len(codes) == 0 {
		var ce *ContractError
		return stderrors.As(err, &ce)
	}
	for _, c := range codes {
		if stderrors.Is(err, &ContractError{Code: c}) {
			return true
		}
	}
	return false
}

// AsValidationError converts an error to a ValidationError if possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var v *ValidationError
	if stderrors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// AsAPIError converts an error to an APIError if possible.
func AsAPIError(err error) (*APIError, bool) {
	var a *APIError
	if stderrors.As(err, &a) {
		return a, true
	}
	return nil, false
}

// AsContractError converts an error to a ContractError if possible.
func AsContractError(err error) (*ContractError, bool) {
	var c *ContractError
	if stderrors.As(err, &c) {
		return c, true
	}
	return nil, false
}

// StatusOf returns the HTTP status carried by an APIError, or 0.
func StatusOf(err error) int {
	if a, ok := AsAPIError(err); ok {
		return a.Status
	}
	return 0
}
