package nethttp

import (
	"context"
	"encoding/pem"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kbukum/apicontract/security"
	"github.com/kbukum/apicontract/transport"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()
	if cfg.Timeout != defaultTimeout {
		t.Errorf("expected default timeout, got %v", cfg.Timeout)
	}
	if cfg.MaxIdleConns != defaultMaxIdleConns {
		t.Errorf("expected default idle conns, got %d", cfg.MaxIdleConns)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero timeout", Config{}},
		{"negative per host", Config{Timeout: time.Second, MaxIdleConnsPerHost: -1}},
		{"bad tls", Config{Timeout: time.Second, TLS: &security.TLSConfig{CertFile: "c"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestTransport_Do(t *testing.T) {
	var gotMethod, gotHeader, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Get("X-Custom")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	tr, err := New(Config{Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resp, err := tr.Do(context.Background(), srv.URL+"/items", &transport.Request{
		Method: http.MethodPost,
		Header: http.Header{"X-Custom": {"v"}},
		Body:   []byte(`{"name":"a"}`),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotMethod != http.MethodPost || gotHeader != "v" || gotBody != `{"name":"a"}` {
		t.Errorf("server saw method=%q header=%q body=%q", gotMethod, gotHeader, gotBody)
	}
	if resp.StatusCode() != http.StatusCreated || !resp.OK() {
		t.Errorf("unexpected status %d", resp.StatusCode())
	}
	if resp.Header("content-type") != "application/json" {
		t.Errorf("unexpected content type %q", resp.Header("content-type"))
	}
	text, err := resp.Text()
	if err != nil || text != `{"ok":true}` {
		t.Errorf("unexpected body %q, %v", text, err)
	}
}

func TestTransport_NativeOptions(t *testing.T) {
	var user string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, _ = r.BasicAuth()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr, _ := New(Config{})
	_, err := tr.Do(context.Background(), srv.URL, &transport.Request{
		Method: http.MethodGet,
		Native: []any{
			func(r *http.Request) { r.SetBasicAuth("native", "x") },
			"ignored",
		},
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if user != "native" {
		t.Errorf("expected native option to run, got user %q", user)
	}
}

func TestTransport_CookieJar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "s3cr3t", Path: "/"})
			w.WriteHeader(http.StatusNoContent)
		case "/me":
			c, err := r.Cookie("session")
			if err != nil {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(c.Value))
		}
	}))
	defer srv.Close()

	tr, _ := New(Config{}, WithCookieJar())
	if tr.Jar() == nil {
		t.Fatal("expected a cookie jar")
	}
	ctx := context.Background()
	if _, err := tr.Do(ctx, srv.URL+"/login", &transport.Request{Method: http.MethodPost}); err != nil {
		t.Fatalf("login: %v", err)
	}
	resp, err := tr.Do(ctx, srv.URL+"/me", &transport.Request{Method: http.MethodGet})
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	text, _ := resp.Text()
	if resp.StatusCode() != http.StatusOK || text != "s3cr3t" {
		t.Errorf("expected cookie to be replayed, got %d %q", resp.StatusCode(), text)
	}

	plain, _ := New(Config{})
	resp, _ = plain.Do(ctx, srv.URL+"/me", &transport.Request{Method: http.MethodGet})
	if resp.StatusCode() != http.StatusUnauthorized {
		t.Errorf("expected 401 without a jar, got %d", resp.StatusCode())
	}
}

func TestTransport_Cancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	tr, _ := New(Config{})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := tr.Do(ctx, srv.URL, &transport.Request{Method: http.MethodGet})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline error to propagate, got %v", err)
	}
}

func TestTransport_TLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("secure"))
	}))
	defer srv.Close()

	caPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: srv.Certificate().Raw})
	tr, err := New(Config{TLS: &security.TLSConfig{CAPEM: string(caPEM)}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	resp, err := tr.Do(context.Background(), srv.URL, &transport.Request{Method: http.MethodGet})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if text, _ := resp.Text(); text != "secure" {
		t.Errorf("unexpected body %q", text)
	}

	untrusted, _ := New(Config{})
	if _, err := untrusted.Do(context.Background(), srv.URL, &transport.Request{Method: http.MethodGet}); err == nil {
		t.Error("expected certificate error without the CA")
	}
}

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	tr, _ := New(Config{}, WithHTTPClient(custom))
	if tr.Unwrap() != custom {
		t.Error("expected custom client")
	}
	if err := tr.Close(context.Background()); err != nil {
		t.Errorf("Close: %v", err)
	}
}
