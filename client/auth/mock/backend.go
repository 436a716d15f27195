package mock

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// SessionCookieName is the backend session cookie set on login
	SessionCookieName = "session_id"
	issuer            = "authclient-mock"
)

// Backend is a test application backend
type Backend struct {
	*httptest.Server
	Secret []byte
	TTL    time.Duration

	mu        sync.Mutex
	users     map[string]string
	requests  []*http.Request
	omitToken bool
}

// OmitToken makes login answer without a token field
func (b *Backend) OmitToken(omit bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.omitToken = omit
}

// credentials represents login request body
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddUser registers email with password
func (b *Backend) AddUser(email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[email] = password
}

// Requests returns requests received so far (bodies are not retained)
func (b *Backend) Requests() []*http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*http.Request{}, b.requests...)
}

// LastRequest returns the most recent request
func (b *Backend) LastRequest() *http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return nil
	}
	return b.requests[len(b.requests)-1]
}

// IssueToken creates a signed token for email
func (b *Backend) IssueToken(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(b.Secret)
}

// Verify validates a bearer token and returns its subject
func (b *Backend) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return b.Secret, nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("token is not valid")
	}
	return claims.Subject, nil
}

func (b *Backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.requests = append(b.requests, r.Clone(r.Context()))
	b.mu.Unlock()
	switch r.URL.Path {
	case "/auth/login":
		b.login(w, r)
	case "/me":
		b.me(w, r)
	case "/public":
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "public resource"})
	default:
		writeJSON(w, http.StatusNotFound, map[string]interface{}{"error": "not found"})
	}
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]interface{}{"error": "method not allowed"})
		return
	}
	var cred credentials
	if err := json.NewDecoder(r.Body).Decode(&cred); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid request body"})
		return
	}
	b.mu.Lock()
	password, ok := b.users[cred.Email]
	omitToken := b.omitToken
	b.mu.Unlock()
	if !ok || password != cred.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"error": "invalid credentials"})
		return
	}
	token, err := b.IssueToken(cred.Email, b.TTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": err.Error()})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookieName, Value: uuid.NewString(), Path: "/", HttpOnly: true})
	response := map[string]interface{}{
		"user": map[string]interface{}{"email": cred.Email},
	}
	if !omitToken {
		response["token"] = token
	}
	writeJSON(w, http.StatusOK, response)
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"error": "missing bearer token"})
		return
	}
	subject, err := b.Verify(tokenString)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{"error": "invalid token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"email": subject})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// NewBackend starts a backend with a single user u@x.com / pw
func NewBackend() *Backend {
	ret := &Backend{
		Secret: []byte(uuid.NewString()),
		TTL:    time.Hour,
		users:  map[string]string{"u@x.com": "pw"},
	}
	ret.Server = httptest.NewServer(ret)
	return ret
}
