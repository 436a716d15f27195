package store

import "errors"

// ErrEmptyToken is returned when an empty token is stored.
var ErrEmptyToken = errors.New("token is empty")

// Store is a pluggable holder for the session bearer token.
// Absence of a token is a valid state (anonymous requests).
type Store interface {
	// Get returns the current token, false when none is set
	Get() (string, bool)
	// Set replaces the current token
	Set(token string) error
	// Remove deletes the current token, removing an absent token is a no-op
	Remove() error
}
