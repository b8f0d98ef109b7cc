// Package transporttest provides in-memory transports for tests.
//
//	rec := transporttest.NewRecorder(transporttest.ReplyJSON(200, `{"id":1}`))
//	c := client.New(users, client.WithTransport(rec))
//	...
//	if rec.Count() != 1 { ... }
package transporttest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/kbukum/apicontract/transport"
)

// Responder produces the response for one dispatch.
type Responder func(url string, req *transport.Request) (transport.Response, error)

// Call is a recorded dispatch.
type Call struct {
	URL     string
	Request *transport.Request
}

// Recorder records every dispatch and answers with scripted responders, used
// in order. The last responder repeats once the script is exhausted.
type Recorder struct {
	mu         sync.Mutex
	calls      []Call
	responders []Responder
}

var _ transport.Transport = (*Recorder)(nil)

// NewRecorder creates a Recorder. Without responders it answers 200 with an empty body.
func NewRecorder(responders ...Responder) *Recorder {
	return &Recorder{responders: responders}
}

// Do implements transport.Transport.
func (r *Recorder) Do(ctx context.Context, url string, req *transport.Request) (transport.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	idx := len(r.calls)
	r.calls = append(r.calls, Call{URL: url, Request: req.Clone()})
	var responder Responder
	switch {
	case len(r.responders) == 0:
		responder = Reply(http.StatusOK, "")
	case idx < len(r.responders):
		responder = r.responders[idx]
	default:
		responder = r.responders[len(r.responders)-1]
	}
	r.mu.Unlock()

	return responder(url, req)
}

// Count returns the number of dispatches.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

// Calls returns a copy of all recorded dispatches.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Last returns the most recent dispatch, or a zero Call.
func (r *Recorder) Last() Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Call{}
	}
	return r.calls[len(r.calls)-1]
}

// Reset forgets recorded dispatches and restarts the script.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Reply answers with status and body. headers are name/value pairs.
func Reply(status int, body string, headers ...string) Responder {
	return func(string, *transport.Request) (transport.Response, error) {
		h := http.Header{}
		for i := 0; i+1 < len(headers); i += 2 {
			h.Add(headers[i], headers[i+1])
		}
		return transport.TextResponse(status, h, body), nil
	}
}

// ReplyJSON answers with status, body and Content-Type: application/json.
func ReplyJSON(status int, body string) Responder {
	return Reply(status, body, "Content-Type", "application/json")
}

// Fail answers with err instead of a response.
func Fail(err error) Responder {
	return func(string, *transport.Request) (transport.Response, error) {
		return nil, err
	}
}

// Echoed is the body returned by Echo.
type Echoed struct {
	Method string            `json:"method"`
	URL    string            `json:"url"`
	Header map[string]string `json:"header"`
	Body   string            `json:"body"`
}

// Echo answers 200 with a JSON Echoed document describing the request it received.
func Echo() Responder {
	return func(url string, req *transport.Request) (transport.Response, error) {
		e := Echoed{Method: req.Method, URL: url, Header: map[string]string{}, Body: string(req.Body)}
		for k := range req.Header {
			e.Header[k] = req.Header.Get(k)
		}
		data, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		return ReplyJSON(http.StatusOK, string(data))(url, req)
	}
}

// EchoTransport is a stateless transport that echoes every request.
func EchoTransport() transport.Transport {
	echo := Echo()
	return transport.Func(func(_ context.Context, url string, req *transport.Request) (transport.Response, error) {
		return echo(url, req)
	})
}
