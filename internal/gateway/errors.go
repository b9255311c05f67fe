package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is matched by TransportErrors carrying a 404
var ErrNotFound = errors.New("food not found")

// TransportError is any failure talking to the backend: network errors,
// non-2xx responses and bodies that cannot be decoded.
type TransportError struct {
	Op     string // list, create, update, delete
	Method string
	URL    string
	Status int    // 0 when no response was received
	Body   string // response body, truncated
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		msg := fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Status, http.StatusText(e.Status))
		if e.Body != "" {
			msg += ": " + e.Body
		}
		return msg
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses
func (e *TransportError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Temporary reports whether retrying could help (no response, or 5xx)
func (e *TransportError) Temporary() bool {
	return e.Status == 0 || e.Status >= 500
}

// IsSuccessStatus returns true if status code is 2xx
func IsSuccessStatus(status int) bool {
	return status >= 200 && status < 300
}
