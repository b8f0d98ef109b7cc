// Package transport defines the single-request primitive a client
// dispatches through.
//
// Implementations live in subpackages:
//   - nethttp: net/http with TLS, timeouts and an optional cookie jar
//   - resty: go-resty/resty/v2
//   - transporttest: recording and scripted fakes for tests
//
// A Transport sends exactly one request per Do call and never retries.
// Errors it returns are passed to the caller unchanged.
package transport
