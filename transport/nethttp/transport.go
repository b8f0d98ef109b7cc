package nethttp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"

	"golang.org/x/net/publicsuffix"

	"github.com/kbukum/apicontract/transport"
)

// Option configures a Transport.
type Option func(*Transport)

// WithCookieJar stores cookies set by responses and replays them on later
// requests, which is what the cookie auth strategy relies on.
func WithCookieJar() Option {
	return func(t *Transport) {
		// cookiejar.New only fails on a nil PublicSuffixList misuse.
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		t.httpClient.Jar = jar
	}
}

// WithJar installs an existing cookie jar.
func WithJar(jar http.CookieJar) Option {
	return func(t *Transport) { t.httpClient.Jar = jar }
}

// WithHTTPClient replaces the underlying client. Config is ignored for the
// fields the client already carries.
func WithHTTPClient(c *http.Client) Option {
	return func(t *Transport) {
		if c != nil {
			t.httpClient = c
		}
	}
}

// Transport sends requests with net/http.
type Transport struct {
	httpClient *http.Client
	config     Config
}

var _ transport.Transport = (*Transport)(nil)

// New creates a net/http transport with the given configuration.
func New(cfg Config, opts ...Option) (*Transport, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rt := http.DefaultTransport.(*http.Transport).Clone()
	rt.MaxIdleConns = cfg.MaxIdleConns
	if cfg.MaxIdleConnsPerHost > 0 {
		rt.MaxIdleConnsPerHost = cfg.MaxIdleConnsPerHost
	}

	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		rt.TLSClientConfig = tlsCfg
	}

	t := &Transport{
		httpClient: &http.Client{Transport: rt, Timeout: cfg.Timeout},
		config:     cfg,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Do sends req to url. Network failures are returned as net/http reports them.
func (t *Transport) Do(ctx context.Context, url string, req *transport.Request) (transport.Response, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	for _, opt := range req.Native {
		if fn, ok := opt.(func(*http.Request)); ok {
			fn(httpReq)
		}
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	return transport.NewResponse(resp.StatusCode, resp.Header, resp.Body), nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (t *Transport) Unwrap() *http.Client {
	return t.httpClient
}

// Jar returns the cookie jar, nil unless one was installed.
func (t *Transport) Jar() http.CookieJar {
	return t.httpClient.Jar
}

// Close releases idle connections.
func (t *Transport) Close(_ context.Context) error {
	t.httpClient.CloseIdleConnections()
	return nil
}

// GetConfig returns the transport's configuration.
func (t *Transport) GetConfig() Config {
	return t.config
}
