package restapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed request.
type Kind string

const (
	KindNetwork Kind = "network"
	KindStatus  Kind = "http_status"
	KindDecode  Kind = "decode"
	KindEncode  Kind = "encode"
)

// Error is returned by every Client call that does not succeed.
type Error struct {
	Kind       Kind
	Method     string
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("%s %s: request failed: %s", e.Method, e.URL, e.Status)
	default:
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind from err, or "" when err did not come from a Client.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	var re *Error
	return errors.As(err, &re) && re.Kind == KindStatus && re.StatusCode == http.StatusNotFound
}

// idempotent reports whether repeating method cannot create a second record.
// POST and PATCH are sent once regardless of MaxRetries.
func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

func retryable(err *Error) bool {
	switch err.Kind {
	case KindNetwork:
		return true
	case KindStatus:
		return err.StatusCode == http.StatusTooManyRequests || err.StatusCode >= 500
	}
	return false
}
