package authclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"

	"github.com/viant/authclient/client"
	"github.com/viant/authclient/client/auth"
	"github.com/viant/authclient/client/auth/navigation"
	"github.com/viant/authclient/client/auth/store"
	"github.com/viant/authclient/client/auth/transport"
)

// Service holds the configured client handles and the session of the application backend
type Service struct {
	options  *Options
	jar      http.CookieJar
	store    *store.CookieStore
	auth     *transport.RoundTripper
	app      *client.Client
	github   *client.Client
	internal *client.Client
	session  *auth.Session
}

// App returns the application backend client, bearer token and cookies are forwarded
func (s *Service) App() *client.Client { return s.app }

// GitHub returns the GitHub public API client
func (s *Service) GitHub() *client.Client { return s.github }

// Internal returns the internal API client
func (s *Service) Internal() *client.Client { return s.internal }

// Session returns session functions
func (s *Service) Session() *auth.Session { return s.session }

// Store returns the token store
func (s *Service) Store() store.Store { return s.store }

// Options returns service options
func (s *Service) Options() *Options { return s.options }

// Login exchanges credentials for a session token
func (s *Service) Login(ctx context.Context, email, password string) (map[string]interface{}, error) {
	return s.session.Login(ctx, email, password)
}

// Logout ends the session
func (s *Service) Logout(ctx context.Context) {
	s.session.Logout(ctx)
}

// New creates a service, a nil navigator logs login redirects
func New(ctx context.Context, options *Options, navigator navigation.Navigator) (*Service, error) {
	if options == nil {
		return nil, fmt.Errorf("options were nil")
	}
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	logger := slog.Default()
	if navigator == nil {
		navigator = &navigation.Log{FrontendURL: options.FrontendURL, Logger: logger}
	}
	ret := &Service{options: options}
	var err error
	if ret.jar, err = newCookieJar(ctx, options.CookieJarURL, logger); err != nil {
		return nil, err
	}
	if ret.store, err = store.NewCookieStore(ret.jar, options.APIBaseURL,
		store.WithProduction(func() bool { return ret.options.Production })); err != nil {
		return nil, err
	}
	if ret.auth, err = transport.New(
		transport.WithStore(ret.store),
		transport.WithNavigator(navigator),
		transport.WithLoginRoute(options.LoginRoute),
		transport.WithOrigin(options.APIBaseURL),
		transport.WithLogger(logger),
	); err != nil {
		return nil, err
	}
	if ret.app, err = client.New(&client.Config{
		BaseURL:         options.APIBaseURL,
		Headers:         client.JSONHeaders(),
		WithCredentials: true,
		Timeout:         options.Timeout,
	}, client.WithCookieJar(ret.jar), client.WithInterceptor(ret.auth.Wrap), client.WithLogger(logger)); err != nil {
		return nil, fmt.Errorf("failed to create app client: %w", err)
	}
	if ret.github, err = client.New(&client.Config{BaseURL: options.GitHubURL, Timeout: options.Timeout}, client.WithLogger(logger)); err != nil {
		return nil, fmt.Errorf("failed to create github client: %w", err)
	}
	if ret.internal, err = client.New(&client.Config{BaseURL: options.InternalURL, Timeout: options.Timeout}, client.WithLogger(logger)); err != nil {
		return nil, fmt.Errorf("failed to create internal client: %w", err)
	}
	ret.session = auth.NewSession(ret.app, ret.store, navigator, auth.WithLoginRoute(options.LoginRoute), auth.WithLogger(logger))
	return ret, nil
}

func newCookieJar(ctx context.Context, URL string, logger *slog.Logger) (http.CookieJar, error) {
	if URL == "" {
		return cookiejar.New(nil)
	}
	jar, err := store.NewFileJar(ctx, URL, store.WithJarLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open cookie jar %v: %w", URL, err)
	}
	return jar, nil
}
