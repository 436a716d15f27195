// Package transport implements the http.RoundTripper that carries the session
// bearer token on outgoing requests and signs the user out when the backend
// answers `401 Unauthorized`.
//
// Every outgoing request gets `Authorization: Bearer <token>` when the token
// store holds a token. A 401 response clears the store and navigates to the
// login route once per request, guarded by a retry guard carried in the
// request context. Responses are always passed through to the caller.
package transport
