// Package jwt mints signed JWTs for the bearer auth strategy.
//
//	src, err := jwt.NewSource(&jwt.Config{
//	    Secret:   os.Getenv("SERVICE_SECRET"),
//	    Issuer:   "billing",
//	    Audience: []string{"ledger"},
//	})
//	c := client.New(api, client.WithAuth(auth.Bearer(src.Token)))
//
// Tokens are cached and renewed shortly before they expire, so concurrent
// calls share one token.
package jwt

import (
	"context"
	"fmt"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ClaimsFunc adds custom claims to every minted token.
type ClaimsFunc func(ctx context.Context, claims gojwt.MapClaims)

// Source mints and caches tokens. It is safe for concurrent use.
type Source struct {
	cfg    Config
	claims ClaimsFunc
	now    func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
	minted  int
}

// Option configures a Source.
type Option func(*Source)

// WithClaims adds custom claims.
func WithClaims(fn ClaimsFunc) Option {
	return func(s *Source) { s.claims = fn }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Source) { s.now = now }
}

// NewSource creates a token source.
func NewSource(cfg *Config, opts ...Option) (*Source, error) {
	c := *cfg
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s := &Source{cfg: c, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Token returns a valid token, minting a new one when the cached token is
// missing or about to expire. Its signature matches auth.TokenSource.
func (s *Source) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.token != "" && now.Before(s.expires.Add(-s.cfg.RefreshBefore)) {
		return s.token, nil
	}

	token, expires, err := s.mint(ctx, now)
	if err != nil {
		return "", err
	}
	s.token, s.expires = token, expires
	s.minted++
	return token, nil
}

// Invalidate drops the cached token, e.g. after the remote rejected it.
func (s *Source) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expires = time.Time{}
}

// Minted returns how many tokens were signed so far.
func (s *Source) Minted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.minted
}

func (s *Source) mint(ctx context.Context, now time.Time) (string, time.Time, error) {
	expires := now.Add(s.cfg.TTL)
	claims := gojwt.MapClaims{
		"iat": gojwt.NewNumericDate(now),
		"nbf": gojwt.NewNumericDate(now),
		"exp": gojwt.NewNumericDate(expires),
		"jti": uuid.NewString(),
	}
	if s.cfg.Issuer != "" {
		claims["iss"] = s.cfg.Issuer
	}
	if s.cfg.Subject != "" {
		claims["sub"] = s.cfg.Subject
	}
	if len(s.cfg.Audience) > 0 {
		claims["aud"] = gojwt.ClaimStrings(s.cfg.Audience)
	}
	if s.claims != nil {
		s.claims(ctx, claims)
	}

	token := gojwt.NewWithClaims(s.cfg.signingMethod(), claims)
	if s.cfg.KeyID != "" {
		token.Header["kid"] = s.cfg.KeyID
	}
	signed, err := token.SignedString(s.cfg.signKey())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("jwt: sign token: %w", err)
	}
	return signed, expires, nil
}
