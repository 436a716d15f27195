// Package mock provides an in-process application backend that facilitates
// testing of the session aware clients.
//
// The backend issues HS256 signed JWTs from POST /auth/login and protects
// GET /me with bearer authentication, answering 401 with a JSON error payload
// the way a real backend does.
package mock
