package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/viant/authclient/client/auth/navigation"
	"github.com/viant/authclient/client/auth/store"
	"golang.org/x/oauth2"
)

// RequestIDHeader carries the request correlation id
const RequestIDHeader = "X-Request-Id"

type RoundTripper struct {
	store      store.Store
	navigator  navigation.Navigator
	transport  http.RoundTripper
	loginRoute string
	origin     string
	logger     *slog.Logger
}

func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport:  http.DefaultTransport,
		store:      store.NewMemoryStore(),
		navigator:  navigation.Nop(),
		loginRoute: navigation.DefaultLoginRoute,
		logger:     slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.origin != "" {
		URL, err := url.Parse(ret.origin)
		if err != nil || URL.Host == "" {
			return nil, fmt.Errorf("invalid origin %q", ret.origin)
		}
		ret.origin = originOf(URL)
	}
	return ret, nil
}

func (r *RoundTripper) Store() store.Store {
	return r.store
}

// Wrap returns a copy of r delegating to next, so the round tripper can be used as a client interceptor
func (r *RoundTripper) Wrap(next http.RoundTripper) http.RoundTripper {
	ret := *r
	ret.transport = next
	return &ret
}

func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	outbound := r.authorize(req)
	resp, err := r.transport.RoundTrip(outbound)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	if !r.inScope(outbound) {
		r.logger.DebugContext(outbound.Context(), "unauthorized response from foreign origin",
			"requestId", outbound.Header.Get(RequestIDHeader), "url", outbound.URL.String())
		return resp, nil
	}
	r.signOut(outbound)
	return resp, nil
}

// inScope reports whether req targets the origin the token belongs to.
// The configured origin wins over the request context one; without either, every request is in scope.
func (r *RoundTripper) inScope(req *http.Request) bool {
	origin := r.origin
	if origin == "" {
		origin = requestOrigin(req.Context())
	}
	if origin == "" {
		return true
	}
	return originOf(req.URL) == origin
}

// authorize clones req adding the bearer token when one is stored, caller headers stay untouched
func (r *RoundTripper) authorize(req *http.Request) *http.Request {
	outbound := req.Clone(req.Context())
	if outbound.Header.Get(RequestIDHeader) == "" {
		outbound.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if !r.inScope(outbound) {
		return outbound
	}
	token, ok := r.store.Get()
	if !ok {
		return outbound
	}
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(outbound)
	return outbound
}

// signOut clears the session once per request and sends the user to the login route
func (r *RoundTripper) signOut(req *http.Request) {
	ctx := req.Context()
	requestID := req.Header.Get(RequestIDHeader)
	if !r.markAttempted(ctx) {
		r.logger.DebugContext(ctx, "unauthorized response, recovery already attempted",
			"requestId", requestID, "url", req.URL.String())
		return
	}
	if err := r.store.Remove(); err != nil {
		r.logger.WarnContext(ctx, "failed to remove token", "requestId", requestID, "error", err)
	}
	r.logger.InfoContext(ctx, "unauthorized response, signing out",
		"requestId", requestID, "url", req.URL.String(), "route", r.loginRoute)
	r.navigator.Navigate(ctx, r.loginRoute)
}

// markAttempted requests issued without a guard are treated as new
func (r *RoundTripper) markAttempted(ctx context.Context) bool {
	if getRetryGuard(ctx) == nil {
		return true
	}
	return MarkRetried(ctx)
}
