package bitunix

import (
	"errors"
	"fmt"
)

// ErrUnregistered is returned before any network call when no API
// credentials are on file for the requesting user.
var ErrUnregistered = errors.New("no Bitunix API credentials registered for user")

// TransportError covers failures below the application envelope: a
// timed-out or failed connection (Status 0) or a non-200 HTTP status.
// Excerpt holds at most 400 characters of the response body and never
// contains credentials.
type TransportError struct {
	Status  int
	Excerpt string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("bitunix: request failed: %v", e.Err)
	}
	return fmt.Sprintf("bitunix: HTTP %d: %s", e.Status, e.Excerpt)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponse means the response body was not valid JSON.
type MalformedResponse struct {
	Excerpt string
}

func (e *MalformedResponse) Error() string {
	return fmt.Sprintf("bitunix: invalid JSON response: %s", e.Excerpt)
}

// UnexpectedShape means the body parsed but was not the keyed object the
// envelope contract requires.
type UnexpectedShape struct {
	Detail string
}

func (e *UnexpectedShape) Error() string {
	return fmt.Sprintf("bitunix: unexpected response shape: %s", e.Detail)
}

// ExchangeError is an application-level rejection: the envelope's code
// field was not the success sentinel. Code keeps the field's textual
// form since the exchange sends it as either a number or a string.
type ExchangeError struct {
	Code    string
	Message string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("bitunix: code=%s msg=%s", e.Code, e.Message)
}

const maxExcerpt = 400

func excerpt(body []byte) string {
	s := string(body)
	if len(s) > maxExcerpt {
		return s[:maxExcerpt]
	}
	return s
}
