package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/authclient/client"
	"github.com/viant/authclient/client/auth/navigation"
	"github.com/viant/authclient/client/auth/store"
)

const (
	// DefaultLoginPath is the backend credential exchange endpoint
	DefaultLoginPath = "/auth/login"
	tokenField       = "token"
)

// Credentials represents login request body
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session performs login and logout against the application backend
type Session struct {
	client     *client.Client
	store      store.Store
	navigator  navigation.Navigator
	loginPath  string
	loginRoute string
	logger     *slog.Logger
}

// Store returns session token store
func (s *Session) Store() store.Store {
	return s.store
}

// Authenticated returns true if a token is stored
func (s *Session) Authenticated() bool {
	_, ok := s.store.Get()
	return ok
}

// Login exchanges credentials for a token, stores it and returns the full response body
func (s *Session) Login(ctx context.Context, email, password string) (map[string]interface{}, error) {
	body := map[string]interface{}{}
	if _, err := s.client.Post(ctx, s.loginPath, &Credentials{Email: email, Password: password}, &body); err != nil {
		return nil, err
	}
	token, _ := body[tokenField].(string)
	if token == "" {
		// nothing usable to keep, a previous token would belong to another login
		if err := s.store.Remove(); err != nil {
			s.logger.WarnContext(ctx, "failed to remove token", "error", err)
		}
		s.logger.WarnContext(ctx, "login response has no token", "email", email)
		return body, nil
	}
	if err := s.store.Set(token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	s.logger.DebugContext(ctx, "signed in", "email", email)
	return body, nil
}

// Logout clears the token and navigates to the login route
func (s *Session) Logout(ctx context.Context) {
	if err := s.store.Remove(); err != nil {
		s.logger.WarnContext(ctx, "failed to remove token", "error", err)
	}
	s.navigator.Navigate(ctx, s.loginRoute)
}

// SessionOption represents session option
type SessionOption func(s *Session)

// WithLoginPath sets credential exchange endpoint path
func WithLoginPath(path string) SessionOption {
	return func(s *Session) {
		if path != "" {
			s.loginPath = path
		}
	}
}

// WithLoginRoute sets the route navigated to on logout
func WithLoginRoute(route string) SessionOption {
	return func(s *Session) {
		if route != "" {
			s.loginRoute = route
		}
	}
}

func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session issuing requests with aClient
func NewSession(aClient *client.Client, aStore store.Store, navigator navigation.Navigator, options ...SessionOption) *Session {
	if navigator == nil {
		navigator = navigation.Nop()
	}
	ret := &Session{
		client:     aClient,
		store:      aStore,
		navigator:  navigator,
		loginPath:  DefaultLoginPath,
		loginRoute: navigation.DefaultLoginRoute,
		logger:     slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
