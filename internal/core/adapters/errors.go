// Package adapters holds the HTTP plumbing shared by the upstream clients
// of core: the error kinds every adapter reports and a resty client that
// unwraps the {content, error} envelope.
package adapters

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the closed set of failures an adapter reports.
type ErrorKind string

const (
	NotFound   ErrorKind = "not-found"
	BadRequest ErrorKind = "bad_request"
	Forbidden  ErrorKind = "forbidden"
	Conflict   ErrorKind = "conflict"
	Unknown    ErrorKind = "unknown"
)

func (k ErrorKind) Error() string { return string(k) }

// ParseKind reads a kind tag from an upstream error body. The underscore
// spelling "not_found" is folded into NotFound; unrecognised tags are
// Unknown.
func ParseKind(tag string) ErrorKind {
	switch tag {
	case "not-found", "not_found":
		return NotFound
	case string(BadRequest):
		return BadRequest
	case string(Forbidden), "unauthorized":
		return Forbidden
	case string(Conflict):
		return Conflict
	}
	return Unknown
}

// KindFromStatus maps an upstream HTTP status to a kind.
func KindFromStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return BadRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		return Forbidden
	case http.StatusNotFound:
		return NotFound
	case http.StatusConflict:
		return Conflict
	}
	return Unknown
}

// KindOf extracts the kind carried by err, or Unknown.
func KindOf(err error) ErrorKind {
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind
	}
	var upstream *Error
	if errors.As(err, &upstream) {
		return upstream.Kind
	}
	return Unknown
}

// Error is a failed upstream call.
type Error struct {
	Kind     ErrorKind
	Upstream string
	Status   int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %s", e.Upstream, e.Kind, e.Status, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Upstream, e.Kind, msg)
}

// Is matches an ErrorKind target so callers can write errors.Is(err, NotFound).
func (e *Error) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == e.Kind
}

func (e *Error) Unwrap() error { return e.Err }
