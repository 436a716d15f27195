// Package authclient provides high-level helpers for building the session aware
// HTTP clients of an application front end.
//
// The package glues the building blocks of the client sub-packages together:
//  1. a cookie backed token store (client/auth/store),
//  2. the bearer/401 round tripper (client/auth/transport),
//  3. three client handles: the application backend (credentials forwarded),
//     the GitHub public API and an internal API (client),
//  4. the Login/Logout session functions (client/auth).
//
// Options can be populated from CLI flags, environment variables or a
// configuration file.
//
// Example:
//
//	options, _ := authclient.LoadOptions("")
//	srv, _ := authclient.New(ctx, options, nil)
//	body, err := srv.Login(ctx, "u@x.com", "pw")
package authclient
