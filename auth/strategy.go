package auth

import (
	"context"
	"encoding/base64"
)

// Kind identifies a strategy.
type Kind int

const (
	// KindDefault is the UseDefault sentinel.
	KindDefault Kind = iota
	// KindBearer sends a bearer token.
	KindBearer
	// KindCookie relies on transport-level cookies.
	KindCookie
	// KindHeaders sends caller-produced headers.
	KindHeaders
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindBearer:
		return "bearer"
	case KindCookie:
		return "cookie"
	case KindHeaders:
		return "headers"
	default:
		return "unknown"
	}
}

// HeaderAuthorization is the header set by the bearer strategy.
const HeaderAuthorization = "Authorization"

// Strategy produces the auth headers of one call.
type Strategy interface {
	Kind() Kind
	Headers(ctx context.Context) (map[string]string, error)
}

// TokenSource returns the current bearer token.
type TokenSource func(ctx context.Context) (string, error)

// HeaderFunc returns headers to attach verbatim.
type HeaderFunc func(ctx context.Context) (map[string]string, error)

// UseDefault is the override telling a call to use the client's default strategy.
var UseDefault Strategy = useDefault{}

type useDefault struct{}

func (useDefault) Kind() Kind { return KindDefault }

func (useDefault) Headers(context.Context) (map[string]string, error) { return nil, nil }

// IsDefault reports whether s is nil or UseDefault.
func IsDefault(s Strategy) bool {
	return s == nil || s.Kind() == KindDefault
}

type bearer struct {
	source TokenSource
}

// Bearer returns a strategy sending the token produced by source.
func Bearer(source TokenSource) Strategy {
	return bearer{source: source}
}

// BearerToken returns a strategy sending a fixed token.
func BearerToken(token string) Strategy {
	return Bearer(func(context.Context) (string, error) { return token, nil })
}

func (bearer) Kind() Kind { return KindBearer }

func (b bearer) Headers(ctx context.Context) (map[string]string, error) {
	if b.source == nil {
		return map[string]string{}, nil
	}
	token, err := b.source(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return map[string]string{}, nil
	}
	return map[string]string{HeaderAuthorization: "Bearer " + token}, nil
}

type cookie struct{}

// Cookie returns a strategy that sends no headers. Pair it with a transport
// holding a cookie jar, such as nethttp.WithCookieJar.
func Cookie() Strategy { return cookie{} }

func (cookie) Kind() Kind { return KindCookie }

func (cookie) Headers(context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

type headers struct {
	fn HeaderFunc
}

// Headers returns a strategy sending the headers produced by fn.
func Headers(fn HeaderFunc) Strategy {
	return headers{fn: fn}
}

// StaticHeaders returns a strategy sending a fixed set of headers.
func StaticHeaders(h map[string]string) Strategy {
	fixed := make(map[string]string, len(h))
	for k, v := range h {
		fixed[k] = v
	}
	return Headers(func(context.Context) (map[string]string, error) { return fixed, nil })
}

// Basic returns a strategy sending HTTP Basic credentials.
func Basic(username, password string) Strategy {
	cred := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return StaticHeaders(map[string]string{HeaderAuthorization: "Basic " + cred})
}

// APIKey returns a strategy sending key in header. An empty header defaults to X-API-Key.
func APIKey(header, key string) Strategy {
	if header == "" {
		header = "X-API-Key"
	}
	return StaticHeaders(map[string]string{header: key})
}

func (headers) Kind() Kind { return KindHeaders }

func (h headers) Headers(ctx context.Context) (map[string]string, error) {
	if h.fn == nil {
		return map[string]string{}, nil
	}
	out, err := h.fn(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(out))
	for k, v := range out {
		result[k] = v
	}
	return result, nil
}

// Select returns the strategy that applies to a call: override unless it is
// nil or UseDefault, in which case fallback. The result may be nil.
func Select(override, fallback Strategy) Strategy {
	if IsDefault(override) {
		if IsDefault(fallback) {
			return nil
		}
		return fallback
	}
	return override
}

// Resolve computes the headers for a call. A nil result strategy yields an
// empty mapping.
func Resolve(ctx context.Context, override, fallback Strategy) (map[string]string, error) {
	s := Select(override, fallback)
	if s == nil {
		return map[string]string{}, nil
	}
	return s.Headers(ctx)
}
