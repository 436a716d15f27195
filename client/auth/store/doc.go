// Package store keeps the bearer token of the current session.
//
// The token lives in a single cookie named auth_token, written into an
// http.CookieJar scoped to the application backend. The jar can be the
// in-memory cookiejar.Jar or a FileJar persisted with viant/afs so that a
// session survives process restarts the way a browser cookie survives page
// reloads. MemoryStore is provided for tests and anonymous tools.
package store
