package store

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	// TokenCookieName is the cookie holding the bearer token.
	TokenCookieName = "auth_token"
	// TokenTTL is the token cookie lifetime.
	TokenTTL = 7 * 24 * time.Hour
	// RootPath is the token cookie path.
	RootPath = "/"
)

// CookieAttributes represents attributes written with the token cookie
type CookieAttributes struct {
	TTL      time.Duration
	Secure   bool
	SameSite http.SameSite
	Path     string
}

// DefaultCookieAttributes returns token cookie attributes, secure only in production builds.
func DefaultCookieAttributes(production bool) CookieAttributes {
	return CookieAttributes{
		TTL:      TokenTTL,
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
		Path:     RootPath,
	}
}

// NewCookie builds a cookie carrying value with the supplied attributes.
func NewCookie(name, value string, attrs CookieAttributes, now time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     attrs.Path,
		Expires:  now.Add(attrs.TTL),
		Secure:   attrs.Secure,
		SameSite: attrs.SameSite,
	}
}

// CookieStore keeps the token in a cookie jar, scoped to the application base URL.
type CookieStore struct {
	mu         sync.Mutex
	jar        http.CookieJar
	baseURL    *url.URL
	name       string
	production func() bool
	now        func() time.Time
}

// CookieStoreOption represents cookie store option
type CookieStoreOption func(s *CookieStore)

// WithCookieName overrides the token cookie name
func WithCookieName(name string) CookieStoreOption {
	return func(s *CookieStore) {
		if name != "" {
			s.name = name
		}
	}
}

// WithProduction sets production flag provider, evaluated on every Set
func WithProduction(production func() bool) CookieStoreOption {
	return func(s *CookieStore) {
		s.production = production
	}
}

// WithClock sets time provider
func WithClock(now func() time.Time) CookieStoreOption {
	return func(s *CookieStore) {
		s.now = now
	}
}

// Jar returns the underlying cookie jar
func (s *CookieStore) Jar() http.CookieJar {
	return s.jar
}

// Get returns token cookie value visible for the base URL
func (s *CookieStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cookie := range s.jar.Cookies(s.baseURL) {
		if cookie.Name == s.name && cookie.Value != "" {
			return cookie.Value, true
		}
	}
	return "", false
}

// Set writes the token cookie
func (s *CookieStore) Set(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	attrs := DefaultCookieAttributes(s.production())
	s.jar.SetCookies(s.baseURL, []*http.Cookie{NewCookie(s.name, token, attrs, s.now())})
	return nil
}

// Remove expires the token cookie at the root path
func (s *CookieStore) Remove() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jar.SetCookies(s.baseURL, []*http.Cookie{{
		Name:   s.name,
		Path:   RootPath,
		MaxAge: -1,
	}})
	return nil
}

// NewCookieStore creates a token store backed by jar for the application base URL
func NewCookieStore(jar http.CookieJar, baseURL string, options ...CookieStoreOption) (*CookieStore, error) {
	if jar == nil {
		return nil, fmt.Errorf("cookie jar was nil")
	}
	URL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if (URL.Scheme != "http" && URL.Scheme != "https") || URL.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: expected http(s)://host", baseURL)
	}
	ret := &CookieStore{
		jar:        jar,
		baseURL:    &url.URL{Scheme: URL.Scheme, Host: URL.Host, Path: RootPath},
		name:       TokenCookieName,
		production: func() bool { return false },
		now:        time.Now,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret, nil
}
