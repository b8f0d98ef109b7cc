package client

import (
	"context"

	apierrors "github.com/kbukum/apicontract/errors"
)

// Call is Do with the result asserted to T. A response schema output of
// another type fails with a RESPONSE_TYPE ContractError. A nil output
// yields the zero T.
func Call[T any](ctx context.Context, c *Client, key string, args Args) (T, error) {
	var zero T
	out, err := c.Do(ctx, key, args)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	v, ok := out.(T)
	if !ok {
		return zero, apierrors.ResponseType(key, zero, out)
	}
	return v, nil
}

// Func is a typed call bound to one endpoint.
type Func[T any] func(ctx context.Context, args Args) (T, error)

// Bind returns a typed function calling key. Lookup happens per call, so an
// unknown key surfaces on the first call.
func Bind[T any](c *Client, key string) Func[T] {
	return func(ctx context.Context, args Args) (T, error) {
		return Call[T](ctx, c, key, args)
	}
}

// ParsedError returns the error schema's output of an APIError in err as E.
func ParsedError[E any](err error) (E, bool) {
	var zero E
	apiErr, ok := apierrors.AsAPIError(err)
	if !ok || !apiErr.HasParsed {
		return zero, false
	}
	v, ok := apiErr.ParsedError.(E)
	return v, ok
}
