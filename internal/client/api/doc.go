// Package api is the MapMe backend HTTP client.
//
// # Overview
//
// Client.Call sends one JSON request to APIBase+path with the caller's ID
// token in the Authorization header and decodes the JSON answer. The typed
// helpers cover the endpoints the client uses:
//
//	GET  /user      -> Profile
//	PUT  /user      <- {name, avatarUrl}
//	GET  /searches  -> []SearchRecord
//	POST /searches  <- {query}
//
// # Error Handling
//
// A non-2xx answer is returned as *Error, which matches common.ErrAPI with
// errors.Is. Transport failures match ErrUnavailable; a missing session
// matches common.ErrUnauthenticated. Nothing is retried or cached.
package api
