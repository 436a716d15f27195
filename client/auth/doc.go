// Package auth contains the session functions of the application client.
//
// A Session exchanges credentials for a bearer token at `POST /auth/login`,
// keeps the token in a store.Store, and ends the session by clearing the store
// and navigating to the login route. The bearer token is attached to requests
// and 401 responses are handled by the RoundTripper from the `transport`
// sub-package.
package auth
