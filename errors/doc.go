// Package errors defines the failures a contract call can produce.
//
// A call fails with exactly one of:
//   - *ValidationError when a request input or the response body does not
//     satisfy its schema,
//   - *APIError when the remote endpoint answers with a non-2xx status,
//   - *ContractError when the caller references an endpoint the contract
//     cannot serve (unknown key, malformed key, auth mode mismatch).
//
// Transport and hook errors are returned as-is and never wrapped here.
package errors
