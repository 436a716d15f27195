package transport

import (
	"context"
	"net/url"
	"strings"
	"sync/atomic"
)

type (
	contextGuardKey  string
	contextOriginKey string
)

// ContextRetryGuardKey holds the per-request retry guard
const ContextRetryGuardKey contextGuardKey = "retryGuard"

// ContextOriginKey holds the scheme://host the session token belongs to
const ContextOriginKey contextOriginKey = "origin"

// retryGuard marks whether an authorization failure recovery was attempted for a request
type retryGuard struct {
	attempted atomic.Bool
}

// mark sets the guard, returns false when it was already set
func (g *retryGuard) mark() bool {
	return g.attempted.CompareAndSwap(false, true)
}

func getRetryGuard(ctx context.Context) *retryGuard {
	if value := ctx.Value(ContextRetryGuardKey); value != nil {
		guard, _ := value.(*retryGuard)
		return guard
	}
	return nil
}

// WithRetryGuard attaches an unset retry guard unless ctx already carries one
func WithRetryGuard(ctx context.Context) context.Context {
	if getRetryGuard(ctx) != nil {
		return ctx
	}
	return context.WithValue(ctx, ContextRetryGuardKey, &retryGuard{})
}

// RetryAttempted reports whether recovery was already attempted for the request owning ctx
func RetryAttempted(ctx context.Context) bool {
	if guard := getRetryGuard(ctx); guard != nil {
		return guard.attempted.Load()
	}
	return false
}

// MarkRetried sets the retry guard carried by ctx, it returns true when the guard was set by this call
func MarkRetried(ctx context.Context) bool {
	if guard := getRetryGuard(ctx); guard != nil {
		return guard.mark()
	}
	return false
}

// WithRequestOrigin scopes the session token to baseURL scheme and host unless ctx is already scoped
func WithRequestOrigin(ctx context.Context, baseURL string) context.Context {
	if requestOrigin(ctx) != "" {
		return ctx
	}
	URL, err := url.Parse(baseURL)
	if err != nil || URL.Host == "" {
		return ctx
	}
	return context.WithValue(ctx, ContextOriginKey, originOf(URL))
}

func requestOrigin(ctx context.Context) string {
	origin, _ := ctx.Value(ContextOriginKey).(string)
	return origin
}

func originOf(URL *url.URL) string {
	return strings.ToLower(URL.Scheme + "://" + URL.Host)
}
