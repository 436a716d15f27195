package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Error represents a non 2xx response
type Error struct {
	StatusCode int
	Status     string
	Body       []byte
	// Payload holds the decoded JSON error body, nil when the body is not a JSON object
	Payload map[string]interface{}
}

func (e *Error) Error() string {
	if message := e.Message(); message != "" {
		return fmt.Sprintf("%s: %s", e.Status, message)
	}
	return e.Status
}

// Message returns server supplied error message
func (e *Error) Message() string {
	for _, key := range []string{"error", "message", "detail"} {
		if value, ok := e.Payload[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func newError(resp *http.Response, body []byte) *Error {
	ret := &Error{StatusCode: resp.StatusCode, Status: resp.Status, Body: body}
	if ret.Status == "" {
		ret.Status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if len(body) > 0 {
		payload := map[string]interface{}{}
		if err := json.Unmarshal(body, &payload); err == nil {
			ret.Payload = payload
		}
	}
	return ret
}

// StatusCode returns response status carried by err, 0 when err is not a response error
func StatusCode(err error) int {
	var respErr *Error
	if errors.As(err, &respErr) {
		return respErr.StatusCode
	}
	return 0
}

// IsUnauthorized returns true if err is a 401 response
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}
