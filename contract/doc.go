// Package contract declares the endpoints a client may call.
//
// A Contract maps endpoint keys of the form "METHOD /path/:param" to
// Endpoint definitions. Both are immutable once New returns and may be
// shared by any number of clients and goroutines.
//
//	users := contract.New(map[string]contract.Endpoint{
//	    "GET /users/:id": {
//	        Params:   schema.Of[UserID](),
//	        Response: schema.Of[User](schema.Lenient()),
//	    },
//	    "POST /users": {
//	        Auth:     contract.Required,
//	        Body:     schema.Of[CreateUser](),
//	        Response: schema.Of[User](schema.Lenient()),
//	        Error:    schema.Of[apierrors.ErrorResponse](schema.Lenient()),
//	    },
//	})
package contract
