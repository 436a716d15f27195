package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/authclient/client/auth/store"
	"github.com/viant/authclient/client/auth/transport"
)

type captured struct {
	Method  string
	Path    string
	Query   string
	Headers http.Header
	Body    string
}

type captureServer struct {
	*httptest.Server
	mu       sync.Mutex
	requests []captured
}

func newCaptureServer(handler http.HandlerFunc) *captureServer {
	ret := &captureServer{}
	ret.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		ret.mu.Lock()
		ret.requests = append(ret.requests, captured{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Headers: r.Header.Clone(), Body: string(data)})
		ret.mu.Unlock()
		handler(w, r)
	}))
	return ret
}

func (c *captureServer) last() captured {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requests[len(c.requests)-1]
}

func TestNew_Validation(t *testing.T) {
	var testCases = []struct {
		description string
		config      *Config
		expectError bool
	}{
		{description: "nil config", config: nil, expectError: true},
		{description: "missing scheme", config: &Config{BaseURL: "api.github.com"}, expectError: true},
		{description: "empty base URL", config: &Config{}, expectError: true},
		{description: "valid", config: &Config{BaseURL: "https://api.github.com/"}, expectError: false},
	}
	for _, testCase := range testCases {
		aClient, err := New(testCase.config)
		if testCase.expectError {
			assert.Error(t, err, testCase.description)
			continue
		}
		if assert.NoError(t, err, testCase.description) {
			assert.EqualValues(t, "https://api.github.com", aClient.BaseURL(), testCase.description)
		}
	}
}

func TestClient_URL(t *testing.T) {
	aClient, err := New(&Config{BaseURL: "https://my-api.com/v1/"})
	if !assert.NoError(t, err) {
		return
	}
	var testCases = []struct {
		description string
		path        string
		expect      string
	}{
		{description: "leading slash", path: "/auth/login", expect: "https://my-api.com/v1/auth/login"},
		{description: "relative", path: "users", expect: "https://my-api.com/v1/users"},
		{description: "query", path: "/users?page=2", expect: "https://my-api.com/v1/users?page=2"},
		{description: "empty", path: "", expect: "https://my-api.com/v1"},
		{description: "absolute", path: "https://api.github.com/user", expect: "https://api.github.com/user"},
	}
	for _, testCase := range testCases {
		assert.EqualValues(t, testCase.expect, aClient.URL(testCase.path), testCase.description)
	}
}

func TestClient_DefaultHeadersAndJSON(t *testing.T) {
	server := newCaptureServer(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"name":"widget"}`))
	})
	defer server.Close()

	aClient, err := New(&Config{BaseURL: server.URL, Headers: map[string]string{"Content-Type": "application/json", "X-App": "web"}})
	if !assert.NoError(t, err) {
		return
	}
	var result struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	resp, err := aClient.Post(context.Background(), "/items", map[string]string{"name": "widget"}, &result)
	if !assert.NoError(t, err) {
		return
	}
	assert.EqualValues(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 7, result.ID)
	assert.EqualValues(t, "widget", result.Name)

	last := server.last()
	assert.EqualValues(t, http.MethodPost, last.Method)
	assert.EqualValues(t, "/items", last.Path)
	assert.EqualValues(t, "application/json", last.Headers.Get("Content-Type"))
	assert.EqualValues(t, "web", last.Headers.Get("X-App"))
	assert.JSONEq(t, `{"name":"widget"}`, last.Body)

	req, err := aClient.NewRequest(context.Background(), http.MethodGet, "/items", nil)
	if assert.NoError(t, err) {
		req.Header.Set("X-App", "override")
		resp, err = aClient.Send(req)
		if assert.NoError(t, err) {
			resp.Body.Close()
		}
		assert.EqualValues(t, "override", server.last().Headers.Get("X-App"))
	}
}

func TestClient_ErrorResponse(t *testing.T) {
	server := newCaptureServer(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "item not found"})
		case "/broken":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		}
	})
	defer server.Close()

	aClient, _ := New(&Config{BaseURL: server.URL})
	resp, err := aClient.Get(context.Background(), "/missing", nil)
	assert.Error(t, err)
	if assert.NotNil(t, resp) {
		assert.EqualValues(t, http.StatusNotFound, resp.StatusCode)
	}
	var respErr *Error
	if assert.True(t, errors.As(err, &respErr)) {
		assert.EqualValues(t, http.StatusNotFound, respErr.StatusCode)
		assert.EqualValues(t, "item not found", respErr.Payload["error"])
		assert.EqualValues(t, "item not found", respErr.Message())
		assert.Contains(t, respErr.Error(), "404")
	}
	assert.False(t, IsUnauthorized(err))
	assert.EqualValues(t, http.StatusNotFound, StatusCode(err))

	_, err = aClient.Get(context.Background(), "/broken", nil)
	if assert.True(t, errors.As(err, &respErr)) {
		assert.Nil(t, respErr.Payload)
		assert.EqualValues(t, "upstream down", string(respErr.Body))
	}
}

type failingTransport struct{ err error }

func (f *failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, f.err
}

func TestClient_TransportError(t *testing.T) {
	expect := errors.New("network unreachable")
	aClient, _ := New(&Config{BaseURL: "http://localhost"}, WithTransport(&failingTransport{err: expect}))
	resp, err := aClient.Get(context.Background(), "/", nil)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, expect)
	assert.EqualValues(t, 0, StatusCode(err))
}

func TestClient_Credentials(t *testing.T) {
	server := newCaptureServer(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session_id", Value: "s1", Path: "/"})
	})
	defer server.Close()

	var testCases = []struct {
		description     string
		withCredentials bool
		expectCookie    string
	}{
		{description: "credentials forwarded", withCredentials: true, expectCookie: "session_id=s1"},
		{description: "credentials omitted", withCredentials: false, expectCookie: ""},
	}
	for _, testCase := range testCases {
		jar, _ := cookiejar.New(nil)
		aClient, err := New(&Config{BaseURL: server.URL, WithCredentials: testCase.withCredentials}, WithCookieJar(jar))
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		for i := 0; i < 2; i++ {
			_, err = aClient.Get(context.Background(), "/ping", nil)
			assert.NoError(t, err, testCase.description)
		}
		assert.EqualValues(t, testCase.expectCookie, server.last().Headers.Get("Cookie"), testCase.description)
		assert.EqualValues(t, testCase.withCredentials, aClient.Jar() != nil, testCase.description)
		target, _ := url.Parse(server.URL)
		if !testCase.withCredentials {
			assert.Empty(t, jar.Cookies(target), testCase.description)
		}
	}
}

func TestClient_InterceptorsAndRetryGuard(t *testing.T) {
	server := newCaptureServer(func(w http.ResponseWriter, r *http.Request) {})
	defer server.Close()

	var order []string
	var guarded []bool
	interceptor := func(name string) Interceptor {
		return func(next http.RoundTripper) http.RoundTripper {
			return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				guarded = append(guarded, !transport.RetryAttempted(req.Context()) && transport.MarkRetried(req.Context()))
				return next.RoundTrip(req)
			})
		}
	}
	aClient, _ := New(&Config{BaseURL: server.URL}, WithInterceptor(interceptor("first")), WithInterceptor(interceptor("second")))
	_, err := aClient.Get(context.Background(), "/", nil)
	assert.NoError(t, err)
	assert.EqualValues(t, []string{"first", "second"}, order)
	assert.EqualValues(t, []bool{true, false}, guarded, "every request carries its own retry guard")

	_, err = aClient.Get(context.Background(), "/", nil)
	assert.NoError(t, err)
	assert.EqualValues(t, []bool{true, false, true, false}, guarded)
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestClient_TokenScopedToBaseURL(t *testing.T) {
	foreign := newCaptureServer(func(w http.ResponseWriter, r *http.Request) {})
	defer foreign.Close()
	app := newCaptureServer(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/download":
			http.Redirect(w, r, foreign.URL+"/files", http.StatusFound)
		case "/moved":
			http.Redirect(w, r, "/files", http.StatusFound)
		}
	})
	defer app.Close()

	var testCases = []struct {
		description string
		path        string
		server      *captureServer
		expectPath  string
		expect      string
	}{
		{description: "redirect to another host", path: "/download", server: foreign, expectPath: "/files", expect: ""},
		{description: "absolute URL to another host", path: foreign.URL + "/steal", server: foreign, expectPath: "/steal", expect: ""},
		{description: "redirect within base URL", path: "/moved", server: app, expectPath: "/files", expect: "Bearer secret"},
		{description: "absolute URL within base URL", path: app.URL + "/files", server: app, expectPath: "/files", expect: "Bearer secret"},
	}

	rt, err := transport.New(transport.WithStore(store.NewMemoryStore("secret")))
	if !assert.NoError(t, err) {
		return
	}
	aClient, err := New(&Config{BaseURL: app.URL}, WithInterceptor(rt.Wrap))
	if !assert.NoError(t, err) {
		return
	}
	for _, testCase := range testCases {
		_, err := aClient.Get(context.Background(), testCase.path, nil)
		if !assert.NoError(t, err, testCase.description) {
			continue
		}
		last := testCase.server.last()
		assert.EqualValues(t, testCase.expectPath, last.Path, testCase.description)
		assert.EqualValues(t, testCase.expect, last.Headers.Get("Authorization"), testCase.description)
	}
}
