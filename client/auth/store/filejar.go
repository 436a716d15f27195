package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/viant/afs"
)

// FileJar is a cookiejar.Jar that persists its cookies through afs on every
// update and reloads them on startup, so a session outlives the process.
type FileJar struct {
	mu      sync.RWMutex
	inner   *cookiejar.Jar
	fs      afs.Service
	URL     string
	cookies map[string]*persistedCookie
	now     func() time.Time
	logger  *slog.Logger
}

type persistedCookie struct {
	Host     string        `json:"host"`
	Scheme   string        `json:"scheme"`
	Name     string        `json:"name"`
	Value    string        `json:"value"`
	Domain   string        `json:"domain,omitempty"`
	Path     string        `json:"path"`
	Expires  time.Time     `json:"expires,omitempty"`
	Secure   bool          `json:"secure,omitempty"`
	HttpOnly bool          `json:"httpOnly,omitempty"`
	SameSite http.SameSite `json:"sameSite,omitempty"`
}

func (c *persistedCookie) key() string {
	domain := c.Domain
	if domain == "" {
		domain = c.Host
	}
	return domain + "|" + c.Path + "|" + c.Name
}

func (c *persistedCookie) expired(now time.Time) bool {
	return !c.Expires.IsZero() && !now.Before(c.Expires)
}

func (c *persistedCookie) cookie() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Domain:   c.Domain,
		Path:     c.Path,
		Expires:  c.Expires,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
		SameSite: c.SameSite,
	}
}

type jarSnapshot struct {
	Cookies []*persistedCookie `json:"cookies"`
}

// Cookies returns cookies to send for u
func (j *FileJar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner.Cookies(u)
}

// SetCookies stores cookies received from u and persists the jar
func (j *FileJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if len(cookies) == 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	j.inner.SetCookies(u, cookies)
	now := j.now()
	for _, c := range cookies {
		pc := &persistedCookie{
			Host:     u.Hostname(),
			Scheme:   u.Scheme,
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
			SameSite: c.SameSite,
		}
		if pc.Path == "" {
			pc.Path = defaultPath(u.Path)
		}
		switch {
		case c.MaxAge < 0:
			pc.Expires = now
		case c.MaxAge > 0:
			pc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}
		if pc.expired(now) {
			delete(j.cookies, pc.key())
			continue
		}
		j.cookies[pc.key()] = pc
	}
	if err := j.save(context.Background()); err != nil {
		j.logger.Warn("failed to persist cookies", "url", j.URL, "error", err)
	}
}

// defaultPath mirrors RFC 6265 section 5.1.4 default-path
func defaultPath(p string) string {
	if p == "" || p[0] != '/' {
		return "/"
	}
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			if i == 0 {
				return "/"
			}
			return p[:i]
		}
	}
	return "/"
}

func (j *FileJar) save(ctx context.Context) error {
	snap := jarSnapshot{}
	now := j.now()
	for key, pc := range j.cookies {
		if pc.expired(now) {
			delete(j.cookies, key)
			continue
		}
		snap.Cookies = append(snap.Cookies, pc)
	}
	sort.Slice(snap.Cookies, func(i, k int) bool {
		return snap.Cookies[i].key() < snap.Cookies[k].key()
	})
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return j.fs.Upload(ctx, j.URL, 0o600, bytes.NewReader(data))
}

// Load rehydrates the jar from its persisted snapshot, skipping expired cookies
func (j *FileJar) Load(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	ok, err := j.fs.Exists(ctx, j.URL)
	if err != nil || !ok {
		return err
	}
	data, err := j.fs.DownloadWithURL(ctx, j.URL)
	if err != nil {
		return fmt.Errorf("failed to download cookies %v: %w", j.URL, err)
	}
	var snap jarSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to decode cookies %v: %w", j.URL, err)
	}
	now := j.now()
	for _, pc := range snap.Cookies {
		if pc == nil || pc.Host == "" || pc.expired(now) {
			continue
		}
		scheme := pc.Scheme
		if scheme == "" {
			scheme = "http"
			if pc.Secure {
				scheme = "https"
			}
		}
		u := &url.URL{Scheme: scheme, Host: pc.Host, Path: pc.Path}
		j.inner.SetCookies(u, []*http.Cookie{pc.cookie()})
		j.cookies[pc.key()] = pc
	}
	return nil
}

// FileJarOption represents file jar option
type FileJarOption func(j *FileJar)

// WithFileService sets afs service used for persistence
func WithFileService(fs afs.Service) FileJarOption {
	return func(j *FileJar) {
		j.fs = fs
	}
}

// WithJarClock sets jar time provider
func WithJarClock(now func() time.Time) FileJarOption {
	return func(j *FileJar) {
		j.now = now
	}
}

// WithJarLogger sets logger reporting persistence failures
func WithJarLogger(logger *slog.Logger) FileJarOption {
	return func(j *FileJar) {
		if logger != nil {
			j.logger = logger
		}
	}
}

// NewFileJar creates a cookie jar persisted at URL (any afs supported location)
func NewFileJar(ctx context.Context, URL string, options ...FileJarOption) (*FileJar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	ret := &FileJar{
		inner:   inner,
		fs:      afs.New(),
		URL:     URL,
		cookies: map[string]*persistedCookie{},
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if err = ret.Load(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}
