package errors

import "net/http"

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Contract errors (caller defects, never retryable)
const (
	// ErrCodeUnknownEndpoint indicates the key is not part of the contract.
	ErrCodeUnknownEndpoint ErrorCode = "UNKNOWN_ENDPOINT"
	// ErrCodeMalformedKey indicates the key is not of the form "METHOD /path".
	ErrCodeMalformedKey ErrorCode = "MALFORMED_KEY"
	// ErrCodeAuthModeMismatch indicates auth was supplied to a public endpoint
	// or is missing for an endpoint that requires it.
	ErrCodeAuthModeMismatch ErrorCode = "AUTH_MODE_MISMATCH"
	// ErrCodeResponseType indicates the parsed response is not of the requested Go type.
	ErrCodeResponseType ErrorCode = "RESPONSE_TYPE"
	// ErrCodeInvalidContract indicates an endpoint definition is unusable.
	ErrCodeInvalidContract ErrorCode = "INVALID_CONTRACT"
)

// Validation errors
const (
	// ErrCodeInvalidRequest indicates a request input failed its schema.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeInvalidResponse indicates the response body failed its schema.
	ErrCodeInvalidResponse ErrorCode = "INVALID_RESPONSE"
)

// Remote status errors
const (
	// ErrCodeUnauthorized indicates the remote answered 401.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates the remote answered 403.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeNotFound indicates the remote answered 404.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeRateLimited indicates the remote answered 429.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeClientError indicates any other 4xx answer.
	ErrCodeClientError ErrorCode = "CLIENT_ERROR"
	// ErrCodeServerError indicates a 5xx answer.
	ErrCodeServerError ErrorCode = "SERVER_ERROR"
	// ErrCodeUnexpectedStatus indicates a non-2xx answer outside 4xx/5xx.
	ErrCodeUnexpectedStatus ErrorCode = "UNEXPECTED_STATUS"
)

// ClassifyStatus maps a non-2xx HTTP status to an error code.
func ClassifyStatus(status int) ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case status == http.StatusForbidden:
		return ErrCodeForbidden
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case status >= 400 && status < 500:
		return ErrCodeClientError
	case status >= 500:
		return ErrCodeServerError
	default:
		return ErrCodeUnexpectedStatus
	}
}

// IsTemporaryStatus reports whether a status usually clears on its own
// (429 and 5xx). Nothing in this module retries; callers may.
func IsTemporaryStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}
