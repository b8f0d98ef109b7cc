package client

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kbukum/apicontract/auth"
	"github.com/kbukum/apicontract/config"
	"github.com/kbukum/apicontract/contract"
	"github.com/kbukum/apicontract/logger"
	"github.com/kbukum/apicontract/security"
	"github.com/kbukum/apicontract/transport/nethttp"
)

const defaultTimeout = 30 * time.Second

// Config configures a client built by NewFromConfig.
type Config struct {
	// Name identifies the client in logs and derives the environment prefix.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is prepended to every endpoint path.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds a whole exchange. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// UserAgent replaces the default User-Agent.
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`

	// TLS configures the net/http transport.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Token enables a bearer strategy as the client default.
	Token string `yaml:"token" mapstructure:"token"`

	// CookieJar makes the transport keep cookies across calls.
	CookieJar bool `yaml:"cookie_jar" mapstructure:"cookie_jar"`

	// Logging configures the client logger.
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	c.Logging.ApplyDefaults()
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("client: base_url must be an absolute URL (got: %s)", c.BaseURL)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("client: timeout must be positive")
	}
	if err := c.TLS.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// LoadConfig reads a Config for name from <name>.yml, config/<name>.yml or
// config.yml, an optional .env file and <NAME>_* environment variables.
func LoadConfig(name string, opts ...config.LoaderOption) (Config, error) {
	cfg := Config{Name: name}
	if err := config.Load(name, &cfg, opts...); err != nil {
		return Config{}, err
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFromConfig builds a Client over a net/http transport. opts are applied
// after the configured settings and override them.
func NewFromConfig(cfg Config, c *contract.Contract, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var transportOpts []nethttp.Option
	if cfg.CookieJar {
		transportOpts = append(transportOpts, nethttp.WithCookieJar())
	}
	t, err := nethttp.New(nethttp.Config{Timeout: cfg.Timeout, TLS: cfg.TLS}, transportOpts...)
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithTransport(t),
		WithBaseURL(cfg.BaseURL),
		WithLogger(logger.New(&cfg.Logging, cfg.Name)),
	}
	if len(cfg.Headers) > 0 {
		base = append(base, WithHeaders(cfg.Headers))
	}
	if cfg.UserAgent != "" {
		base = append(base, WithUserAgent(cfg.UserAgent))
	}
	if cfg.Token != "" {
		base = append(base, WithAuth(auth.BearerToken(cfg.Token)))
	}
	return New(c, append(base, opts...)...)
}
