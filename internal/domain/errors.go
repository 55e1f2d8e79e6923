package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingMarker means the cookie has no "mfsession=" fragment.
	ErrMissingMarker = errors.New("session marker not found in cookie")
	// ErrMissingDelimiter means the session fragment is not terminated by ';'.
	ErrMissingDelimiter = errors.New("session value is not terminated")
	// ErrNoCookieHeader means the landing page response carried no Set-Cookie header.
	ErrNoCookieHeader = errors.New("no set-cookie header in response")
	// ErrMalformedContent means a report body does not have the expected shape.
	ErrMalformedContent = errors.New("malformed report content")
)

// FetchError reports a failed HTTP exchange with the content service.
type FetchError struct {
	Op         string // "cookie", "BMS" or "BMR"
	URL        string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// WriteError reports a filesystem failure while persisting an artifact.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
