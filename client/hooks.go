package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/kbukum/apicontract/transport"
)

// HeaderRequestID is the header set by RequestIDHook.
const HeaderRequestID = "X-Request-ID"

// PreRequest is passed to pre-request hooks. Hooks see the modifications of
// earlier hooks and may rewrite URL in place. Context carries the call's
// cancellation; a hook may replace it, for example to add a deadline, and
// the replacement is used for dispatch and the rest of the call.
type PreRequest struct {
	Key     string
	URL     string
	Request *transport.Request
	Context context.Context
}

// PreRequestHook inspects the outgoing request. A non-nil result replaces
// the request; nil keeps it. An error aborts the call before dispatch.
type PreRequestHook func(ctx context.Context, p *PreRequest) (*transport.Request, error)

// PostResponse is passed to post-response hooks.
type PostResponse struct {
	Key      string
	URL      string
	Request  *transport.Request
	Response transport.Response
}

// PostResponseHook inspects the response. A non-nil result replaces the
// response; nil keeps it. An error aborts the call.
type PostResponseHook func(ctx context.Context, p *PostResponse) (transport.Response, error)

// runPreRequest folds hooks over the request in registration order. Each
// hook receives the context left by the previous one.
func runPreRequest(ctx context.Context, hooks []PreRequestHook, p *PreRequest) error {
	for _, hook := range hooks {
		if p.Context != nil {
			ctx = p.Context
		}
		req, err := hook(ctx, p)
		if err != nil {
			return err
		}
		if req != nil {
			p.Request = req
		}
	}
	return nil
}

// runPostResponse folds hooks over the response in registration order.
func runPostResponse(ctx context.Context, hooks []PostResponseHook, p *PostResponse) error {
	for _, hook := range hooks {
		resp, err := hook(ctx, p)
		if err != nil {
			return err
		}
		if resp != nil {
			p.Response = resp
		}
	}
	return nil
}

// RequestIDHook sets X-Request-ID to a random UUID unless the request already carries one.
func RequestIDHook() PreRequestHook {
	return func(_ context.Context, p *PreRequest) (*transport.Request, error) {
		if p.Request.Header.Get(HeaderRequestID) == "" {
			p.Request.Header.Set(HeaderRequestID, uuid.NewString())
		}
		return nil, nil
	}
}

// HeaderHook sets a header on every request unless it is already present.
func HeaderHook(name, value string) PreRequestHook {
	return func(_ context.Context, p *PreRequest) (*transport.Request, error) {
		if p.Request.Header.Get(name) == "" {
			p.Request.Header.Set(name, value)
		}
		return nil, nil
	}
}
