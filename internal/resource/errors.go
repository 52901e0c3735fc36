package resource

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNetwork marks a request that never produced an HTTP response.
var ErrNetwork = errors.New("network error")

// HTTPError is a non-2xx upstream response. Message carries the server's
// own message when the body had one.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}

func newHTTPError(statusCode int, body []byte) *HTTPError {
	var parsed struct {
		Message string `json:"message"`
		Cause   string `json:"cause"`
	}

	message := ""
	if err := json.Unmarshal(body, &parsed); err == nil {
		message = parsed.Message
		if message == "" {
			message = parsed.Cause
		}
	}

	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func errorIsRetryable(err error) bool {
	if errors.Is(err, ErrNetwork) {
		return true
	}

	var httpError *HTTPError
	if errors.As(err, &httpError) {
		return httpError.StatusCode >= 500
	}

	return false
}
