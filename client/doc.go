// Package client implements reusable HTTP client handles bound to a base URL,
// default headers and a credential forwarding mode.
//
// It adds:
//   - Path resolution against the base URL (absolute URLs pass through).
//   - Default headers set on every request unless the caller set them.
//   - Cookie forwarding through a jar when credentials are enabled.
//   - Pluggable interceptors, typically the auth transport.RoundTripper that
//     injects the session bearer token and signs out on 401.
//   - JSON helpers that decode 2xx bodies and turn any other status into *Error.
//
// Example:
//
//	app, _ := client.New(&client.Config{BaseURL: "https://api.example.com", WithCredentials: true},
//		client.WithInterceptor(authTransport.Wrap))
//	var profile Profile
//	_, err := app.Get(ctx, "/me", &profile)
package client
