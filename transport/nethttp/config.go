package nethttp

import (
	"fmt"
	"time"

	"github.com/kbukum/apicontract/security"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxIdleConns = 100
)

// Config configures the net/http transport.
type Config struct {
	// Timeout bounds a whole exchange including reading the body. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TLS configures certificate verification and client certificates.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// MaxIdleConns caps idle keep-alive connections. Defaults to 100.
	MaxIdleConns int `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`

	// MaxIdleConnsPerHost caps idle connections per host. Zero keeps the net/http default.
	MaxIdleConnsPerHost int `yaml:"max_idle_conns_per_host" mapstructure:"max_idle_conns_per_host"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = defaultMaxIdleConns
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("nethttp: timeout must be positive")
	}
	if c.MaxIdleConnsPerHost < 0 {
		return fmt.Errorf("nethttp: max_idle_conns_per_host must not be negative")
	}
	return c.TLS.Validate()
}
