package client

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/apicontract/auth"
	"github.com/kbukum/apicontract/contract"
	apierrors "github.com/kbukum/apicontract/errors"
	"github.com/kbukum/apicontract/schema"
	"github.com/kbukum/apicontract/transport"
	"github.com/kbukum/apicontract/transport/transporttest"
	"github.com/kbukum/apicontract/version"
)

const testBase = "https://api.example.com"

type searchQuery struct {
	Q string `json:"q" validate:"required"`
}

type itemParams struct {
	ID string `json:"id" validate:"required"`
}

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type newItem struct {
	Name string `json:"name" validate:"required,min=2"`
}

type apiProblem struct {
	Code    string `json:"code" validate:"required"`
	Message string `json:"message"`
}

type traceHeaders struct {
	Trace string `json:"X-Trace" validate:"required"`
}

func testContract() *contract.Contract {
	return contract.New(map[string]contract.Endpoint{
		"GET /search": {
			Query:    schema.Of[searchQuery](),
			Response: schema.Any(),
		},
		"GET /items/id/:id": {
			Params:   schema.Of[itemParams](),
			Response: schema.Of[item](schema.Lenient()),
			Error:    schema.Of[apiProblem](schema.Lenient()),
		},
		"POST /items": {
			Auth:     contract.Required,
			Body:     schema.Of[newItem](),
			Response: schema.Of[item](schema.Lenient()),
		},
		"GET /me": {
			Auth:     contract.Required,
			Response: schema.Any(),
		},
		"GET /raw/:id": {
			Response: schema.String(),
		},
		"PUT /notes/:id": {
			ContentType: contract.Text,
			Response:    schema.Empty(),
		},
		"GET /headers": {
			Headers:  schema.Of[traceHeaders](),
			Response: schema.Any(),
		},
		"GET /secure": {
			Auth:     contract.Required,
			Headers:  schema.Any(),
			Response: schema.Any(),
		},
		"GET /broken": {},
		"health":      {Response: schema.Any()},
	})
}

func newTestClient(t *testing.T, rec transport.Transport, opts ...Option) *Client {
	t.Helper()
	all := append([]Option{WithBaseURL(testBase), WithTransport(rec)}, opts...)
	c, err := New(testContract(), all...)
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	return c
}

func echoed(t *testing.T, out any) map[string]any {
	t.Helper()
	m, ok := out.(map[string]any)
	if !ok {
		t.Fatalf("expected echoed document, got %T", out)
	}
	return m
}

func TestNew_RequiresContract(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil contract")
	}
	c, err := New(testContract())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Transport() == nil {
		t.Error("expected default transport")
	}
}

func TestDo_RequestValidationSkipsDispatch(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		args  Args
		field apierrors.Field
	}{
		{"params", "GET /items/id/:id", Args{Params: map[string]any{"id": ""}}, apierrors.FieldParams},
		{"query", "GET /search", Args{Query: map[string]any{"q": ""}}, apierrors.FieldQuery},
		{"body", "POST /items", Args{Body: newItem{Name: "a"}}, apierrors.FieldBody},
		{"headers", "GET /headers", Args{Headers: map[string]string{}}, apierrors.FieldHeaders},
		{"unknown query key", "GET /search", Args{Query: map[string]any{"q": "x", "page": 2}}, apierrors.FieldQuery},
		{"undeclared query", "GET /me", Args{Query: map[string]any{"q": "x"}}, apierrors.FieldQuery},
		{"undeclared body", "GET /me", Args{Body: map[string]any{"x": 1}}, apierrors.FieldBody},
		{"undeclared params", "GET /search", Args{Params: map[string]any{"id": 1}, Query: map[string]any{"q": "x"}}, apierrors.FieldParams},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := transporttest.NewRecorder(transporttest.Echo())
			c := newTestClient(t, rec, WithAuth(auth.BearerToken("T")))

			_, err := c.Do(context.Background(), tc.key, tc.args)
			verr, ok := apierrors.AsValidationError(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Kind != apierrors.KindRequest {
				t.Errorf("expected request kind, got %s", verr.Kind)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %s, got %s", tc.field, verr.Field)
			}
			if len(verr.Issues) == 0 {
				t.Error("expected issues")
			}
			if rec.Count() != 0 {
				t.Errorf("expected zero dispatches, got %d", rec.Count())
			}
		})
	}
}

func TestDo_FirstFailingFieldWins(t *testing.T) {
	rec := transporttest.NewRecorder()
	c := newTestClient(t, rec)

	_, err := c.Do(context.Background(), "GET /items/id/:id", Args{
		Params: map[string]any{"id": ""},
		Query:  map[string]any{"q": "x"},
	})
	verr, ok := apierrors.AsValidationError(err)
	if !ok || verr.Field != apierrors.FieldParams {
		t.Fatalf("expected params failure first, got %v", err)
	}
}

func TestDo_APIError(t *testing.T) {
	body := `{"code":"not_found","message":"item is gone"}`
	rec := transporttest.NewRecorder(transporttest.ReplyJSON(404, body))
	c := newTestClient(t, rec)

	_, err := c.Do(context.Background(), "GET /items/id/:id", Args{Params: map[string]any{"id": "1"}})
	apiErr, ok := apierrors.AsAPIError(err)
	if !ok {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != 404 {
		t.Errorf("expected status 404, got %d", apiErr.Status)
	}
	if apiErr.RawText != body {
		t.Errorf("expected raw text %q, got %q", body, apiErr.RawText)
	}
	if apiErr.URL != testBase+"/items/id/1" {
		t.Errorf("unexpected url %q", apiErr.URL)
	}
	if !apiErr.HasParsed {
		t.Fatal("expected parsed error")
	}
	want := apiProblem{Code: "not_found", Message: "item is gone"}
	if diff := cmp.Diff(want, apiErr.ParsedError); diff != "" {
		t.Errorf("parsed error mismatch (-want +got):\n%s", diff)
	}
	problem, ok := ParsedError[apiProblem](err)
	if !ok || problem.Code != "not_found" {
		t.Errorf("expected typed parsed error, got %+v, %v", problem, ok)
	}
	if apiErr.Code() != apierrors.ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", apiErr.Code())
	}
}

func TestDo_APIErrorWithoutMatchingSchema(t *testing.T) {
	tests := []struct {
		name     string
		reply    transporttest.Responder
		raw      string
		wantJSON bool
	}{
		{"json not matching", transporttest.Reply(500, `{"unexpected":true}`, "Content-Type", "application/json"), `{"unexpected":true}`, true},
		{"sniffed json", transporttest.Reply(503, ` [1,2] `), ` [1,2] `, true},
		{"plain text", transporttest.Reply(502, "bad gateway"), "bad gateway", false},
		{"broken json", transporttest.ReplyJSON(500, `{"code":`), `{"code":`, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, transporttest.NewRecorder(tc.reply))
			_, err := c.Do(context.Background(), "GET /items/id/:id", Args{Params: itemParams{ID: "1"}})
			apiErr, ok := apierrors.AsAPIError(err)
			if !ok {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.HasParsed {
				t.Errorf("expected no parsed error, got %+v", apiErr.ParsedError)
			}
			if _, ok := ParsedError[apiProblem](err); ok {
				t.Error("expected ParsedError to report absence")
			}
			if apiErr.RawText != tc.raw {
				t.Errorf("expected raw text %q, got %q", tc.raw, apiErr.RawText)
			}
			if (apiErr.RawJSON != nil) != tc.wantJSON {
				t.Errorf("expected raw json present=%v, got %v", tc.wantJSON, apiErr.RawJSON)
			}
		})
	}
}

func TestDo_ResponseValidation(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.ReplyJSON(200, `{"id":5}`))
	c := newTestClient(t, rec)

	_, err := c.Do(context.Background(), "GET /items/id/:id", Args{Params: map[string]any{"id": "5"}})
	if !apierrors.IsResponseValidation(err) {
		t.Fatalf("expected response ValidationError, got %v", err)
	}
	verr, _ := apierrors.AsValidationError(err)
	if verr.URL != testBase+"/items/id/5" {
		t.Errorf("unexpected url %q", verr.URL)
	}
	if rec.Count() != 1 {
		t.Errorf("expected one dispatch, got %d", rec.Count())
	}
}

func TestDo_QueryRoundTrip(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.Echo())
	c := newTestClient(t, rec)

	out, err := c.Do(context.Background(), "GET /search", Args{Query: map[string]any{"q": "x"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	url, _ := echoed(t, out)["url"].(string)
	if url != testBase+"/search?q=x" {
		t.Errorf("expected url ending in exactly ?q=x, got %q", url)
	}
	if strings.Count(url, "=") != 1 {
		t.Errorf("expected a single query entry, got %q", url)
	}
}

func TestDo_PathInterpolation(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.ReplyJSON(200, `{"id":"1","name":"one","extra":true}`))
	c := newTestClient(t, rec)

	got, err := Call[item](context.Background(), c, "GET /items/id/:id", Args{Params: map[string]any{"id": "1"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Last().URL != testBase+"/items/id/1" {
		t.Errorf("expected path /items/id/1, got %q", rec.Last().URL)
	}
	if diff := cmp.Diff(item{ID: "1", Name: "one"}, got); diff != "" {
		t.Errorf("item mismatch (-want +got):\n%s", diff)
	}
	if rec.Last().Request.Method != "GET" {
		t.Errorf("expected GET, got %q", rec.Last().Request.Method)
	}
}

func TestDo_MissingPathParam(t *testing.T) {
	rec := transporttest.NewRecorder()
	c := newTestClient(t, rec)

	for name, args := range map[string]Args{
		"no params":  {},
		"absent key": {Params: map[string]any{"other": "1"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := c.Do(context.Background(), "GET /raw/:id", args)
			verr, ok := apierrors.AsValidationError(err)
			if !ok || verr.Kind != apierrors.KindRequest || verr.Field != apierrors.FieldParams {
				t.Fatalf("expected request params ValidationError, got %v", err)
			}
			if verr.Issues[0].Code != IssueMissingParam || verr.Issues[0].Path != "id" {
				t.Errorf("unexpected issues %+v", verr.Issues)
			}
		})
	}
	if rec.Count() != 0 {
		t.Errorf("expected zero dispatches, got %d", rec.Count())
	}
}

func TestDo_TextResponse(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.Reply(200, "plain body"))
	c := newTestClient(t, rec)

	got, err := Call[string](context.Background(), c, "GET /raw/:id", Args{Params: map[string]any{"id": 9}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "plain body" {
		t.Errorf("expected raw text, got %q", got)
	}
	if rec.Last().URL != testBase+"/raw/9" {
		t.Errorf("unexpected url %q", rec.Last().URL)
	}
}

func TestDo_Auth(t *testing.T) {
	tests := []struct {
		name     string
		fallback auth.Strategy
		override auth.Strategy
		want     string
	}{
		{"bearer default", auth.BearerToken("T"), nil, "Bearer T"},
		{"use default sentinel", auth.BearerToken("T"), auth.UseDefault, "Bearer T"},
		{"override wins", auth.BearerToken("T"), auth.BearerToken("U"), "Bearer U"},
		{"cookie", auth.Cookie(), nil, ""},
		{"cookie override", auth.BearerToken("T"), auth.Cookie(), ""},
		{"empty token", auth.BearerToken(""), nil, ""},
		{"basic", auth.Basic("u", "p"), nil, "Basic dTpw"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := transporttest.NewRecorder(transporttest.Echo())
			c := newTestClient(t, rec, WithAuth(tc.fallback))

			if _, err := c.Do(context.Background(), "GET /me", Args{Auth: tc.override}); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := rec.Last().Request.Header.Get("Authorization"); got != tc.want {
				t.Errorf("expected Authorization %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDo_PublicEndpointSendsNoAuth(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.Echo())
	c := newTestClient(t, rec, WithAuth(auth.BearerToken("T")))

	if _, err := c.Do(context.Background(), "GET /search", Args{Query: searchQuery{Q: "x"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Last().Request.Header.Get("Authorization"); got != "" {
		t.Errorf("expected no Authorization on public endpoint, got %q", got)
	}
}

func TestDo_AuthModeMismatch(t *testing.T) {
	rec := transporttest.NewRecorder()

	public := newTestClient(t, rec, WithAuth(auth.BearerToken("T")))
	_, err := public.Do(context.Background(), "GET /search", Args{
		Query: map[string]any{"q": "x"},
		Auth:  auth.BearerToken("U"),
	})
	if !apierrors.IsContractError(err, apierrors.ErrCodeAuthModeMismatch) {
		t.Errorf("expected AUTH_MODE_MISMATCH for public endpoint, got %v", err)
	}

	anonymous := newTestClient(t, rec)
	for _, override := range []auth.Strategy{nil, auth.UseDefault} {
		_, err = anonymous.Do(context.Background(), "GET /me", Args{Auth: override})
		if !apierrors.IsContractError(err, apierrors.ErrCodeAuthModeMismatch) {
			t.Errorf("expected AUTH_MODE_MISMATCH without any strategy, got %v", err)
		}
	}

	if rec.Count() != 0 {
		t.Errorf("expected zero dispatches, got %d", rec.Count())
	}
}

func TestDo_AuthSourceError(t *testing.T) {
	boom := errors.New("token service down")
	rec := transporttest.NewRecorder()
	c := newTestClient(t, rec, WithAuth(auth.Bearer(func(context.Context) (string, error) {
		return "", boom
	})))

	_, err := c.Do(context.Background(), "GET /me", Args{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected token error, got %v", err)
	}
	if rec.Count() != 0 {
		t.Errorf("expected zero dispatches, got %d", rec.Count())
	}
}

func TestDo_Idempotent(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.Echo())
	c := newTestClient(t, rec, WithAuth(auth.BearerToken("T")))
	args := Args{Query: map[string]any{"q": "same"}}

	first, err := c.Do(context.Background(), "GET /search", args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.Do(context.Background(), "GET /search", args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("results differ (-first +second):\n%s", diff)
	}
	calls := rec.Calls()
	if calls[0].URL != calls[1].URL {
		t.Errorf("urls differ: %q vs %q", calls[0].URL, calls[1].URL)
	}
	if diff := cmp.Diff(calls[0].Request.Header, calls[1].Request.Header); diff != "" {
		t.Errorf("headers differ (-first +second):\n%s", diff)
	}
}

func TestDo_ContractErrors(t *testing.T) {
	rec := transporttest.NewRecorder()
	c := newTestClient(t, rec)

	tests := []struct {
		key  string
		code apierrors.ErrorCode
	}{
		{"GET /missing", apierrors.ErrCodeUnknownEndpoint},
		{"health", apierrors.ErrCodeMalformedKey},
		{"GET /broken", apierrors.ErrCodeInvalidContract},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			_, err := c.Do(context.Background(), tc.key, Args{})
			ce, ok := apierrors.AsContractError(err)
			if !ok {
				t.Fatalf("expected ContractError, got %v", err)
			}
			if ce.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, ce.Code)
			}
			if ce.Key != tc.key {
				t.Errorf("expected key %q, got %q", tc.key, ce.Key)
			}
		})
	}
	if rec.Count() != 0 {
		t.Errorf("expected zero dispatches, got %d", rec.Count())
	}
}

func TestDo_JSONBody(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.ReplyJSON(201, `{"id":"9","name":"Widget"}`))
	c := newTestClient(t, rec, WithAuth(auth.BearerToken("T")))

	got, err := Call[item](context.Background(), c, "POST /items", Args{Body: map[string]any{"name": "Widget"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "9" {
		t.Errorf("unexpected item %+v", got)
	}
	req := rec.Last().Request
	if string(req.Body) != `{"name":"Widget"}` {
		t.Errorf("unexpected body %q", req.Body)
	}
	if ct := req.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %q", ct)
	}
	if req.Method != "POST" {
		t.Errorf("expected POST, got %q", req.Method)
	}
}

func TestDo_TextBody(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.Reply(204, ""))
	c := newTestClient(t, rec)

	out, err := c.Do(context.Background(), "PUT /notes/:id", Args{
		Params: map[string]any{"id": 3},
		Body:   "remember the milk",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != (struct{}{}) {
		t.Errorf("expected empty result, got %v", out)
	}
	req := rec.Last().Request
	if string(req.Body) != "remember the milk" {
		t.Errorf("unexpected body %q", req.Body)
	}
	if ct := req.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("expected text/plain, got %q", ct)
	}
}

func TestDo_NoBodyEndpointSendsNothing(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.Echo())
	c := newTestClient(t, rec, WithAuth(auth.BearerToken("T")))

	if _, err := c.Do(context.Background(), "GET /me", Args{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	req := rec.Last().Request
	if req.Body != nil {
		t.Errorf("expected no body, got %q", req.Body)
	}
	if ct := req.Header.Get("Content-Type"); ct != "" {
		t.Errorf("expected no Content-Type, got %q", ct)
	}
}

func TestDo_HeaderPrecedence(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.Echo())
	c := newTestClient(t, rec,
		WithAuth(auth.BearerToken("T")),
		WithHeaders(map[string]string{"X-Env": "staging", "X-Trace": "client", "Authorization": "Bearer default"}),
	)

	_, err := c.Do(context.Background(), "GET /secure", Args{
		Headers: map[string]any{"X-Trace": "call", "Authorization": "Bearer call", "X-Tags": []string{"a", "b"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := rec.Last().Request.Header
	if got := h.Get("X-Env"); got != "staging" {
		t.Errorf("expected default header, got %q", got)
	}
	if got := h.Get("X-Trace"); got != "call" {
		t.Errorf("expected call header to override default, got %q", got)
	}
	if got := h.Get("Authorization"); got != "Bearer T" {
		t.Errorf("expected auth header to win, got %q", got)
	}
	if diff := cmp.Diff([]string{"a", "b"}, h.Values("X-Tags")); diff != "" {
		t.Errorf("multi-value header mismatch (-want +got):\n%s", diff)
	}
	if got := h.Get("User-Agent"); got != version.UserAgent() {
		t.Errorf("expected default user agent, got %q", got)
	}
}

func TestDo_HeadersSchema(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.Echo())
	c := newTestClient(t, rec, WithUserAgent("billing/2.0"))

	if _, err := c.Do(context.Background(), "GET /headers", Args{Headers: traceHeaders{Trace: "abc"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	h := rec.Last().Request.Header
	if got := h.Get("X-Trace"); got != "abc" {
		t.Errorf("expected X-Trace from schema output, got %q", got)
	}
	if got := h.Get("User-Agent"); got != "billing/2.0" {
		t.Errorf("expected custom user agent, got %q", got)
	}
}

func TestDo_TransportErrorUnwrapped(t *testing.T) {
	boom := errors.New("connection refused")
	c := newTestClient(t, transporttest.NewRecorder(transporttest.Fail(boom)))

	_, err := c.Do(context.Background(), "GET /raw/:id", Args{Params: map[string]any{"id": 1}})
	if err != boom {
		t.Fatalf("expected transport error unwrapped, got %v", err)
	}
}

func TestDo_Cancellation(t *testing.T) {
	rec := transporttest.NewRecorder()
	c := newTestClient(t, rec)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Do(ctx, "GET /raw/:id", Args{Params: map[string]any{"id": 1}})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if outcomeOf(err) != OutcomeCanceled {
		t.Errorf("expected canceled outcome, got %s", outcomeOf(err))
	}
}

func TestDo_BaseURLFunc(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.Reply(200, "ok"))
	c := newTestClient(t, rec, WithBaseURLFunc(func(context.Context) (string, error) {
		return "https://eu.example.com/v2/", nil
	}))
	if _, err := c.Do(context.Background(), "GET /raw/:id", Args{Params: map[string]any{"id": "a b"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := rec.Last().URL; got != "https://eu.example.com/v2/raw/a%20b" {
		t.Errorf("unexpected url %q", got)
	}

	boom := errors.New("discovery failed")
	failing := newTestClient(t, rec, WithBaseURLFunc(func(context.Context) (string, error) {
		return "", boom
	}))
	rec.Reset()
	if _, err := failing.Do(context.Background(), "GET /raw/:id", Args{Params: map[string]any{"id": 1}}); err != boom {
		t.Fatalf("expected resolver error unwrapped, got %v", err)
	}
	if rec.Count() != 0 {
		t.Errorf("expected zero dispatches, got %d", rec.Count())
	}
}

func TestDo_NativeOptions(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.Reply(200, "ok"))
	c := newTestClient(t, rec)
	marker := struct{ name string }{"marker"}

	if _, err := c.Do(context.Background(), "GET /raw/:id", Args{Params: map[string]any{"id": 1}, Native: []any{marker}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	native := rec.Last().Request.Native
	if len(native) != 1 || native[0] != any(marker) {
		t.Errorf("expected native option passed through, got %v", native)
	}
}

func TestCall_ResponseTypeMismatch(t *testing.T) {
	c := newTestClient(t, transporttest.NewRecorder(transporttest.Echo()))

	_, err := Call[item](context.Background(), c, "GET /search", Args{Query: map[string]any{"q": "x"}})
	if !apierrors.IsContractError(err, apierrors.ErrCodeResponseType) {
		t.Fatalf("expected RESPONSE_TYPE, got %v", err)
	}
}

func TestBind(t *testing.T) {
	rec := transporttest.NewRecorder(transporttest.ReplyJSON(200, `{"id":"2","name":"two"}`))
	c := newTestClient(t, rec)
	getItem := Bind[item](c, "GET /items/id/:id")

	got, err := getItem(context.Background(), Args{Params: itemParams{ID: "2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "two" {
		t.Errorf("unexpected item %+v", got)
	}

	missing := Bind[item](c, "GET /nowhere")
	if _, err := missing(context.Background(), Args{}); !apierrors.IsContractError(err, apierrors.ErrCodeUnknownEndpoint) {
		t.Errorf("expected UNKNOWN_ENDPOINT, got %v", err)
	}
}

func TestIsJSONContentType(t *testing.T) {
	tests := map[string]bool{
		"application/json":                  true,
		"application/json; charset=utf-8":   true,
		"Application/JSON":                  true,
		"application/problem+json":          true,
		"application/vnd.api+json; v=2":     true,
		"text/plain":                        false,
		"text/html; charset=utf-8":          false,
		"":                                  false,
		"application/json;;broken":          true,
		"application/x-www-form-urlencoded": false,
	}
	for ct, want := range tests {
		if got := IsJSONContentType(ct); got != want {
			t.Errorf("IsJSONContentType(%q) = %v, want %v", ct, got, want)
		}
	}
}
