package transport

import (
	"log/slog"
	"net/http"

	"github.com/viant/authclient/client/auth/navigation"
	"github.com/viant/authclient/client/auth/store"
)

type Option func(*RoundTripper)

// WithStore sets token store
func WithStore(store store.Store) Option {
	return func(t *RoundTripper) {
		t.store = store
	}
}

// WithNavigator sets navigator used on authorization failure
func WithNavigator(navigator navigation.Navigator) Option {
	return func(t *RoundTripper) {
		t.navigator = navigator
	}
}

// WithTransport sets the underlying transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		t.transport = transport
	}
}

// WithLoginRoute sets login route
func WithLoginRoute(route string) Option {
	return func(t *RoundTripper) {
		if route != "" {
			t.loginRoute = route
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(t *RoundTripper) {
		t.logger = logger
	}
}

// WithOrigin limits the token to requests sent to baseURL scheme and host
func WithOrigin(baseURL string) Option {
	return func(t *RoundTripper) {
		t.origin = baseURL
	}
}
