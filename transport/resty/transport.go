// Package resty is a transport backed by go-resty/resty/v2.
//
// Native options of type func(*resty.Request) are applied to each request
// before it is executed. The resty client's own retry settings are left
// untouched; a client created by NewDefault performs no retries.
package resty

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kbukum/apicontract/transport"
)

// Transport adapts resty.Client to transport.Transport.
type Transport struct {
	client *resty.Client
}

var _ transport.Transport = (*Transport)(nil)

// New wraps an existing resty client.
func New(c *resty.Client) *Transport {
	if c == nil {
		c = resty.New()
	}
	return &Transport{client: c}
}

// NewDefault creates a transport over a fresh resty client with the given timeout.
func NewDefault(timeout time.Duration) *Transport {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &Transport{client: c}
}

// Do executes req against url.
func (t *Transport) Do(ctx context.Context, url string, req *transport.Request) (transport.Response, error) {
	r := t.client.R().SetContext(ctx)
	if len(req.Header) > 0 {
		r.SetHeaderMultiValues(req.Header)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}
	for _, opt := range req.Native {
		if fn, ok := opt.(func(*resty.Request)); ok {
			fn(r)
		}
	}

	resp, err := r.Execute(req.Method, url)
	if err != nil {
		return nil, err
	}
	return transport.TextResponse(resp.StatusCode(), resp.Header(), string(resp.Body())), nil
}

// Client exposes the resty client for callers needing to tune it.
func (t *Transport) Client() *resty.Client {
	return t.client
}
