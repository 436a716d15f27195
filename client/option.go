package client

import (
	"log/slog"
	"net/http"
)

// Interceptor wraps the client round tripper
type Interceptor func(next http.RoundTripper) http.RoundTripper

// Option represents option
type Option func(c *Client)

// WithTransport sets the base transport, http.DefaultTransport by default
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithCookieJar sets the jar used when credentials are forwarded
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithInterceptor adds an interceptor, the first added runs first
func WithInterceptor(interceptor Interceptor) Option {
	return func(c *Client) {
		c.interceptors = append(c.interceptors, interceptor)
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}
