// Package auth turns an authentication strategy into request headers.
//
// Three strategies exist:
//
//   - Bearer: a TokenSource is asked for a token on every call and sent as
//     "Authorization: Bearer <token>". An empty token sends nothing.
//   - Cookie: no headers; credentials travel with the transport's cookie jar.
//   - Headers: a HeaderFunc returns the headers to send verbatim.
//
// Basic and APIKey build Headers strategies for the common cases, and the
// jwt subpackage provides a TokenSource minting signed tokens.
//
// A client holds one default strategy. A call may override it with any
// Strategy, or pass UseDefault to state explicitly that the default applies:
//
//	c := client.New(api, client.WithAuth(auth.BearerToken(os.Getenv("API_TOKEN"))))
//	c.Do(ctx, "GET /me", client.Args{Auth: auth.UseDefault})
//	c.Do(ctx, "GET /me", client.Args{Auth: auth.BearerToken(impersonationToken)})
package auth
