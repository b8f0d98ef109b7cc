package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
)

// ErrBodyConsumed is returned by Response.Text after the body was read once.
var ErrBodyConsumed = errors.New("transport: response body already consumed")

// Transport sends a single request.
type Transport interface {
	Do(ctx context.Context, url string, req *Request) (Response, error)
}

// Func adapts a function to Transport.
type Func func(ctx context.Context, url string, req *Request) (Response, error)

// Do implements Transport.
func (f Func) Do(ctx context.Context, url string, req *Request) (Response, error) {
	return f(ctx, url, req)
}

// Request describes an outgoing request.
type Request struct {
	// Method is the upper-case HTTP method.
	Method string
	// Header holds request headers.
	Header http.Header
	// Body is the encoded body, nil when none is sent.
	Body []byte
	// Native carries transport-specific options, ignored by transports that
	// do not recognise them.
	Native []any
}

// Clone returns a deep copy of r.
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	out := &Request{Method: r.Method, Header: r.Header.Clone()}
	if out.Header == nil {
		out.Header = http.Header{}
	}
	if r.Body != nil {
		out.Body = append([]byte{}, r.Body...)
	}
	if r.Native != nil {
		out.Native = append([]any{}, r.Native...)
	}
	return out
}

// Response is the result of a dispatched request.
type Response interface {
	// StatusCode returns the HTTP status.
	StatusCode() int
	// OK reports whether the status is 2xx.
	OK() bool
	// Header returns the first value of a header, matched case-insensitively.
	Header(name string) string
	// Headers returns all response headers.
	Headers() http.Header
	// Text reads the full body. It may be called once; later calls return
	// ErrBodyConsumed.
	Text() (string, error)
}

type response struct {
	status int
	header http.Header

	mu   sync.Mutex
	body io.ReadCloser
	read bool
}

// NewResponse wraps a status, headers and a body stream. The body is closed
// by Text.
func NewResponse(status int, header http.Header, body io.ReadCloser) Response {
	if header == nil {
		header = http.Header{}
	}
	return &response{status: status, header: header, body: body}
}

// TextResponse builds a Response whose body is text.
func TextResponse(status int, header http.Header, text string) Response {
	return NewResponse(status, header, io.NopCloser(strings.NewReader(text)))
}

func (r *response) StatusCode() int { return r.status }

func (r *response) OK() bool { return IsSuccess(r.status) }

func (r *response) Header(name string) string { return r.header.Get(name) }

func (r *response) Headers() http.Header { return r.header }

func (r *response) Text() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.read {
		return "", ErrBodyConsumed
	}
	r.read = true
	if r.body == nil {
		return "", nil
	}
	defer func() { _ = r.body.Close() }()
	data, err := io.ReadAll(r.body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// IsSuccess returns true if the status code is 2xx.
func IsSuccess(status int) bool {
	return status >= 200 && status < 300
}
