// Package navigation abstracts the client side redirect performed when a
// session ends, so request-issuing code never touches a real page or browser
// directly and tests can assert on navigations.
package navigation
