package domain

import (
	"fmt"
	"strings"
)

const (
	sessionMarker    = "mfsession="
	sessionDelimiter = ";"
)

// HasSessionMarker reports whether a Set-Cookie header carries the session
// cookie that DecodeSessionToken reads.
func HasSessionMarker(cookie string) bool {
	return strings.Contains(cookie, sessionMarker)
}

// DecodeSessionToken extracts the session value from a Set-Cookie header and
// returns the bearer token derived from it.
func DecodeSessionToken(cookie string) (string, error) {
	_, rest, found := strings.Cut(cookie, sessionMarker)
	if !found {
		return "", ErrMissingMarker
	}
	value, _, found := strings.Cut(rest, sessionDelimiter)
	if !found {
		return "", fmt.Errorf("%w: no %q after %q", ErrMissingDelimiter, sessionDelimiter, sessionMarker)
	}
	return Rot13(value), nil
}

// Rot13 rotates ASCII letters by 13 places within their case. Anything else is
// left as is. Rot13(Rot13(s)) == s.
func Rot13(s string) string {
	return strings.Map(rot13Rune, s)
}

func rot13Rune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return 'a' + (r-'a'+13)%26
	case r >= 'A' && r <= 'Z':
		return 'A' + (r-'A'+13)%26
	default:
		return r
	}
}
