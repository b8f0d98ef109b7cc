package client

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/apicontract/auth"
	"github.com/kbukum/apicontract/logger"
	"github.com/kbukum/apicontract/observability"
	"github.com/kbukum/apicontract/transport"
)

// BaseURLFunc resolves the base URL for each call.
type BaseURLFunc func(ctx context.Context) (string, error)

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL     string
	baseURLFunc BaseURLFunc
	transport   transport.Transport
	auth        auth.Strategy
	codec       Codec
	pre         []PreRequestHook
	post        []PostResponseHook
	headers     http.Header
	userAgent   string
	log         *logger.Logger
	tracer      trace.Tracer
	propagator  propagation.TextMapPropagator
	metrics     *observability.CallMetrics
}

// WithBaseURL sets a fixed base URL.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
		o.baseURLFunc = nil
	}
}

// WithBaseURLFunc resolves the base URL per call. Its error aborts the call unwrapped.
func WithBaseURLFunc(fn BaseURLFunc) Option {
	return func(o *options) { o.baseURLFunc = fn }
}

// WithTransport sets the transport. Defaults to a net/http transport.
func WithTransport(t transport.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithAuth sets the default strategy for endpoints requiring auth.
func WithAuth(s auth.Strategy) Option {
	return func(o *options) { o.auth = s }
}

// WithCodec replaces the JSON codec.
func WithCodec(c Codec) Option {
	return func(o *options) { o.codec = c }
}

// WithPreRequest appends pre-request hooks.
func WithPreRequest(hooks ...PreRequestHook) Option {
	return func(o *options) { o.pre = append(o.pre, hooks...) }
}

// WithPostResponse appends post-response hooks.
func WithPostResponse(hooks ...PostResponseHook) Option {
	return func(o *options) { o.post = append(o.post, hooks...) }
}

// WithHeaders adds default headers. Call and auth headers override them.
func WithHeaders(h map[string]string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = http.Header{}
		}
		for k, v := range h {
			o.headers.Set(k, v)
		}
	}
}

// WithUserAgent replaces the default User-Agent.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithLogger sets the logger. Calls are logged at debug level.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTracer records one client span per call and injects trace context
// into outgoing headers.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) { o.tracer = t }
}

// WithTracing is WithTracer with a named tracer from the global provider.
func WithTracing(name string) Option {
	if name == "" {
		name = observability.TracerName
	}
	return WithTracer(observability.Tracer(name))
}

// WithPropagator replaces the W3C trace context and baggage propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(o *options) { o.propagator = p }
}

// WithMetrics records call metrics.
func WithMetrics(m *observability.CallMetrics) Option {
	return func(o *options) { o.metrics = m }
}
