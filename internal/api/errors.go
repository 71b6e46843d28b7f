package api

import (
	"errors"
	"fmt"
)

var (
	ErrTransport = errors.New("request failed")
	ErrStatus    = errors.New("unexpected status")
	ErrDecode    = errors.New("invalid response body")
)

// Error describes a failed call against the bookmark API.
type Error struct {
	Op         string // "list", "create", "update", "delete"
	Method     string
	Path       string
	StatusCode int   // 0 when no response was received
	Err        error // one of the sentinels above, possibly wrapping the cause
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s %s: %v (status %d)", e.Op, e.Method, e.Path, e.Err, e.StatusCode)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Op, e.Method, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
