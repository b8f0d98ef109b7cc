package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/propagation"

	"github.com/kbukum/apicontract/auth"
	"github.com/kbukum/apicontract/contract"
	apierrors "github.com/kbukum/apicontract/errors"
	"github.com/kbukum/apicontract/logger"
	"github.com/kbukum/apicontract/observability"
	"github.com/kbukum/apicontract/transport"
	"github.com/kbukum/apicontract/transport/nethttp"
	"github.com/kbukum/apicontract/version"
)

// Args are the inputs of one call.
type Args struct {
	// Params fills the :name segments of the path template.
	Params any
	// Query is encoded into the query string.
	Query any
	// Body is encoded according to the endpoint's content type.
	Body any
	// Headers are sent with the request.
	Headers any
	// Auth overrides the client strategy. Nil means no indication;
	// auth.UseDefault asks for the client strategy explicitly.
	Auth auth.Strategy
	// Native carries transport-specific options.
	Native []any
}

// Client dispatches calls against a contract. It holds no mutable state
// and is safe for concurrent use.
type Client struct {
	contract *contract.Contract
	opts     options
	log      *logger.Logger
}

// New creates a Client for c. Without WithTransport the client uses a
// net/http transport with default settings.
func New(c *contract.Contract, opts ...Option) (*Client, error) {
	if c == nil {
		return nil, fmt.Errorf("client: contract is required")
	}

	o := options{
		codec:      JSONCodec{},
		log:        logger.Nop(),
		userAgent:  version.UserAgent(),
		propagator: observability.Propagator(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.codec == nil {
		o.codec = JSONCodec{}
	}
	if o.log == nil {
		o.log = logger.Nop()
	}
	if o.propagator == nil {
		o.propagator = observability.Propagator()
	}
	if o.transport == nil {
		t, err := nethttp.New(nethttp.Config{})
		if err != nil {
			return nil, fmt.Errorf("client: default transport: %w", err)
		}
		o.transport = t
	}

	return &Client{
		contract: c,
		opts:     o,
		log:      o.log.WithComponent("client"),
	}, nil
}

// Contract returns the client's contract.
func (c *Client) Contract() *contract.Contract {
	return c.contract
}

// Transport returns the transport calls are dispatched through.
func (c *Client) Transport() transport.Transport {
	return c.opts.transport
}

// callState collects what a call learned for logging and tracing.
type callState struct {
	method string
	url    string
	status int
}

// Do calls the endpoint declared under key and returns the response
// schema's output.
func (c *Client) Do(ctx context.Context, key string, args Args) (any, error) {
	start := time.Now()

	ep, method, path, err := c.endpoint(key)
	if err != nil {
		c.logCall(ctx, key, callState{}, start, err)
		return nil, err
	}

	ctx, call := observability.StartCall(ctx, c.opts.tracer, c.opts.metrics, key, method)
	state := callState{method: method}
	result, err := c.run(ctx, key, ep, path, args, &state)

	if state.url != "" {
		call.SetURL(state.url)
	}
	if state.status != 0 {
		call.SetStatus(state.status)
	}
	call.End(ctx, outcomeOf(err), err)
	c.logCall(ctx, key, state, start, err)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// endpoint performs lookup and key parsing.
func (c *Client) endpoint(key string) (contract.Endpoint, string, string, error) {
	ep, err := c.contract.Lookup(key)
	if err != nil {
		return contract.Endpoint{}, "", "", err
	}
	method, path, err := contract.ParseKey(key)
	if err != nil {
		return contract.Endpoint{}, "", "", err
	}
	if ep.Response == nil {
		return contract.Endpoint{}, "", "", apierrors.InvalidContract(key, "endpoint declares no response schema")
	}
	return ep, method, path, nil
}

func (c *Client) run(ctx context.Context, key string, ep contract.Endpoint, path string, args Args, state *callState) (any, error) {
	if err := checkAuthMode(key, ep, args.Auth, c.opts.auth); err != nil {
		return nil, err
	}

	in, err := validateInputs(key, ep, path, args)
	if err != nil {
		return nil, err
	}

	url, err := c.buildURL(ctx, key, path, in)
	if err != nil {
		return nil, err
	}
	state.url = url

	req, err := c.buildRequest(ctx, key, state.method, url, ep, in, args)
	if err != nil {
		return nil, err
	}

	pre := &PreRequest{Key: key, URL: url, Request: req, Context: ctx}
	if err := runPreRequest(ctx, c.opts.pre, pre); err != nil {
		return nil, err
	}
	if pre.Request == nil {
		pre.Request = req
	}
	if pre.Request.Header == nil {
		pre.Request.Header = http.Header{}
	}
	state.url = pre.URL
	if c.opts.tracer != nil {
		c.opts.propagator.Inject(ctx, propagation.HeaderCarrier(pre.Request.Header))
	}
	if pre.Context != nil {
		ctx = pre.Context
	}

	resp, err := c.opts.transport.Do(ctx, pre.URL, pre.Request)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("client: transport returned no response for %s", key)
	}

	post := &PostResponse{Key: key, URL: pre.URL, Request: pre.Request, Response: resp}
	if err := runPostResponse(ctx, c.opts.post, post); err != nil {
		return nil, err
	}
	state.status = post.Response.StatusCode()

	return c.classify(key, pre.URL, ep, post.Response)
}

// checkAuthMode rejects auth supplied to a public endpoint and a required
// endpoint with nothing to authenticate with.
func checkAuthMode(key string, ep contract.Endpoint, override, fallback auth.Strategy) error {
	switch ep.Auth {
	case contract.Public:
		if override != nil {
			return apierrors.AuthModeMismatch(key, "auth supplied for a public endpoint")
		}
	case contract.Required:
		if auth.Select(override, fallback) == nil {
			return apierrors.AuthModeMismatch(key, "endpoint requires auth and the client has no default strategy")
		}
	default:
		return apierrors.InvalidContract(key, fmt.Sprintf("unknown auth mode %d", ep.Auth))
	}
	return nil
}

func (c *Client) baseURL(ctx context.Context) (string, error) {
	if c.opts.baseURLFunc != nil {
		return c.opts.baseURLFunc(ctx)
	}
	return c.opts.baseURL, nil
}
