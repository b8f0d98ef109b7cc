// Package client dispatches typed calls against a contract.
//
// A Client holds a contract and read-only options. Each call looks up the
// endpoint, validates the inputs, builds the URL, resolves auth, encodes the
// body, runs the pre-request hooks, dispatches exactly once through the
// transport, runs the post-response hooks and classifies the result:
//
//	c, err := client.New(users,
//	    client.WithBaseURL("https://api.example.com"),
//	    client.WithAuth(auth.BearerToken(token)),
//	)
//	user, err := client.Call[User](ctx, c, "GET /users/:id", client.Args{
//	    Params: map[string]any{"id": 7},
//	})
//
// Failures are *errors.ValidationError, *errors.APIError, *errors.ContractError,
// or the error returned by the transport, a hook, the base URL resolver or an
// auth strategy, unwrapped.
package client
