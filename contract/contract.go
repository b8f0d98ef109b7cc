package contract

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"

	apierrors "github.com/kbukum/apicontract/errors"
	"github.com/kbukum/apicontract/route"
)

// Contract is an immutable mapping from endpoint key to Endpoint.
type Contract struct {
	endpoints map[string]Endpoint
}

// New builds a Contract from defs. The map is copied, so later changes to
// defs do not affect the Contract. Keys are not checked here; use Validate.
func New(defs map[string]Endpoint) *Contract {
	endpoints := make(map[string]Endpoint, len(defs))
	for key, def := range defs {
		endpoints[key] = def.withDefaults()
	}
	return &Contract{endpoints: endpoints}
}

// Lookup returns the endpoint declared under key.
func (c *Contract) Lookup(key string) (Endpoint, error) {
	if c != nil {
		if ep, ok := c.endpoints[key]; ok {
			return ep, nil
		}
	}
	return Endpoint{}, apierrors.UnknownEndpoint(key)
}

// Has reports whether key is declared.
func (c *Contract) Has(key string) bool {
	if c == nil {
		return false
	}
	_, ok := c.endpoints[key]
	return ok
}

// Len returns the number of endpoints.
func (c *Contract) Len() int {
	if c == nil {
		return 0
	}
	return len(c.endpoints)
}

// Keys returns all endpoint keys in ascending order.
func (c *Contract) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.endpoints))
	for k := range c.endpoints {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate reports every malformed key, missing response schema and body
// schema declared on a NoBody endpoint. It returns nil for a usable contract.
func (c *Contract) Validate() error {
	var errs []error
	for _, key := range c.Keys() {
		ep := c.endpoints[key]
		if _, _, err := ParseKey(key); err != nil {
			errs = append(errs, err)
		}
		if ep.Response == nil {
			errs = append(errs, apierrors.InvalidContract(key, "response schema is required"))
		}
		if ep.Body != nil && ep.ContentType == NoBody {
			errs = append(errs, apierrors.InvalidContract(key, "body schema declared on an endpoint without a body"))
		}
		if ep.Auth != Public && ep.Auth != Required {
			errs = append(errs, apierrors.InvalidContract(key, fmt.Sprintf("unknown auth mode %d", ep.Auth)))
		}
	}
	return stderrors.Join(errs...)
}

// Describe returns one line per endpoint, sorted by key.
func (c *Contract) Describe() []string {
	lines := make([]string, 0, c.Len())
	for _, key := range c.Keys() {
		ep := c.endpoints[key]
		line := fmt.Sprintf("%s [%s]", key, ep.Auth)
		if _, path, err := ParseKey(key); err == nil {
			if segs := route.Segments(path); len(segs) > 0 {
				line += " params=" + strings.Join(segs, ",")
			}
		}
		if ep.Summary != "" {
			line += " " + ep.Summary
		}
		lines = append(lines, line)
	}
	return lines
}

// ParseKey splits an endpoint key at its first space into an upper-cased
// HTTP method and a path template.
func ParseKey(key string) (method, path string, err error) {
	method, path, ok := strings.Cut(key, " ")
	if !ok || method == "" || strings.TrimSpace(path) == "" {
		return "", "", apierrors.MalformedKey(key)
	}
	return strings.ToUpper(method), path, nil
}
