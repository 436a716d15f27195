package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	neturl "net/url"
	"strings"

	"github.com/viant/afs/url"
	"github.com/viant/authclient/client/auth/transport"
)

// Client is a reusable HTTP client handle
type Client struct {
	config       Config
	httpClient   *http.Client
	transport    http.RoundTripper
	jar          http.CookieJar
	interceptors []Interceptor
	logger       *slog.Logger
}

// BaseURL returns client base URL
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// WithCredentials returns true if cookies are forwarded
func (c *Client) WithCredentials() bool {
	return c.config.WithCredentials
}

// Jar returns the cookie jar, nil when credentials are not forwarded
func (c *Client) Jar() http.CookieJar {
	return c.jar
}

// HTTPClient returns the underlying http client
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// URL resolves path against the base URL
func (c *Client) URL(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	query := ""
	if index := strings.IndexAny(path, "?#"); index != -1 {
		path, query = path[:index], path[index:]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return c.config.BaseURL + query
	}
	return url.Join(c.config.BaseURL, path) + query
}

// NewRequest creates a request with default headers, body is JSON encoded unless it is []byte or io.Reader
func (c *Client) NewRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	isJSON := false
	switch actual := body.(type) {
	case nil:
	case io.Reader:
		reader = actual
	case []byte:
		reader = bytes.NewReader(actual)
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
		isJSON = true
	}
	req, err := http.NewRequestWithContext(c.scope(ctx), method, c.URL(path), reader)
	if err != nil {
		return nil, err
	}
	for name, value := range c.config.Headers {
		if req.Header.Get(name) == "" {
			req.Header.Set(name, value)
		}
	}
	if isJSON && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Send dispatches req, the request context gets a retry guard and the client origin when it has none
func (c *Client) Send(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if scoped := c.scope(ctx); scoped != ctx {
		req = req.WithContext(scoped)
	}
	return c.httpClient.Do(req)
}

// scope binds the session token of ctx to the client base URL, redirects and absolute URLs elsewhere go without it
func (c *Client) scope(ctx context.Context) context.Context {
	return transport.WithRequestOrigin(transport.WithRetryGuard(ctx), c.config.BaseURL)
}

// Do sends a request and decodes a 2xx JSON body into result.
// The returned response body is already consumed and closed; non 2xx statuses are returned as *Error.
func (c *Client) Do(ctx context.Context, method, path string, body, result interface{}) (*http.Response, error) {
	req, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.Send(req)
	if err != nil {
		c.logger.DebugContext(ctx, "request failed", "method", method, "url", req.URL.String(), "error", err)
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, fmt.Errorf("failed to read response %v: %w", req.URL, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.DebugContext(ctx, "request rejected", "method", method, "url", req.URL.String(), "status", resp.StatusCode)
		return resp, newError(resp, data)
	}
	if result == nil || len(data) == 0 {
		return resp, nil
	}
	switch actual := result.(type) {
	case *[]byte:
		*actual = data
	default:
		if err = json.Unmarshal(data, result); err != nil {
			return resp, fmt.Errorf("failed to decode response %v: %w", req.URL, err)
		}
	}
	return resp, nil
}

func (c *Client) Get(ctx context.Context, path string, result interface{}) (*http.Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, result)
}

func (c *Client) Post(ctx context.Context, path string, body, result interface{}) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, result)
}

func (c *Client) Put(ctx context.Context, path string, body, result interface{}) (*http.Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, result)
}

func (c *Client) Delete(ctx context.Context, path string, result interface{}) (*http.Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, result)
}

// New creates a client handle
func New(config *Config, options ...Option) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("client config was nil")
	}
	baseURL, err := neturl.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", config.BaseURL, err)
	}
	if baseURL.Scheme == "" || baseURL.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: expected scheme://host", config.BaseURL)
	}
	ret := &Client{
		config:    *config,
		transport: http.DefaultTransport,
		logger:    slog.Default(),
	}
	ret.config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	ret.config.Headers = map[string]string{}
	for name, value := range config.Headers {
		ret.config.Headers[name] = value
	}
	for _, opt := range options {
		opt(ret)
	}

	roundTripper := ret.transport
	if ret.config.WithCredentials {
		if ret.jar == nil {
			if ret.jar, err = cookiejar.New(nil); err != nil {
				return nil, err
			}
		}
		roundTripper = transport.WrapWithCookieJar(roundTripper, ret.jar)
	} else {
		ret.jar = nil
	}
	for i := len(ret.interceptors) - 1; i >= 0; i-- {
		roundTripper = ret.interceptors[i](roundTripper)
	}
	ret.httpClient = &http.Client{Transport: roundTripper, Timeout: ret.config.Timeout}
	return ret, nil
}
