// Package nethttp is the net/http transport.
//
//	tr, err := nethttp.New(nethttp.Config{
//	    Timeout: 10 * time.Second,
//	    TLS:     &security.TLSConfig{CAFile: "/etc/ssl/internal-ca.pem"},
//	}, nethttp.WithCookieJar())
//
// Native options of type func(*http.Request) are applied to each request
// just before it is sent.
package nethttp
