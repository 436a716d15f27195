// Package cli implements the authclient command line: sign in against the
// application backend, inspect the session, issue authenticated requests and
// sign out. The cookie jar is persisted between runs so a session lasts as
// long as its token cookie.
package cli
