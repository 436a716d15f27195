package navigation

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// DefaultLoginRoute is the route users are sent to when signed out.
const DefaultLoginRoute = "/login"

// Navigator performs a client side navigation to route.
// Navigating repeatedly to the same route must be harmless.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// Func adapts a function to Navigator
type Func func(ctx context.Context, route string)

func (f Func) Navigate(ctx context.Context, route string) {
	f(ctx, route)
}

type nop struct{}

func (nop) Navigate(context.Context, string) {}

// Nop returns a navigator that does nothing
func Nop() Navigator {
	return nop{}
}

// Recorder records navigations, it is safe for concurrent use
type Recorder struct {
	mu     sync.Mutex
	routes []string
}

func (r *Recorder) Navigate(_ context.Context, route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

// Routes returns recorded routes in navigation order
func (r *Recorder) Routes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.routes...)
}

// Count returns how many times route was navigated to
func (r *Recorder) Count(route string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, candidate := range r.routes {
		if candidate == route {
			count++
		}
	}
	return count
}

// Reset clears recorded routes
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = nil
}

// Log reports the redirect target instead of performing it, for headless clients.
type Log struct {
	FrontendURL string
	Logger      *slog.Logger
}

func (l *Log) Navigate(ctx context.Context, route string) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "session ended, sign in again", "location", Location(l.FrontendURL, route))
}

// Location resolves route against the frontend base URL
func Location(frontendURL, route string) string {
	if frontendURL == "" {
		return route
	}
	return strings.TrimRight(frontendURL, "/") + "/" + strings.TrimLeft(route, "/")
}
