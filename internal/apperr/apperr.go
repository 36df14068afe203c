// Package apperr defines the error taxonomy shared by all handlers and maps
// each kind onto an HTTP status and a stable JSON body. Handlers convert
// collaborator failures (store errors, token failures, ownership violations)
// into exactly one of these kinds before responding; internal detail is never
// surfaced to the client.
package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Kind partitions every client-visible failure.
type Kind int

const (
	// Validation covers missing or empty required fields. 400.
	Validation Kind = iota
	// Authentication covers requests with no credential at all. 401.
	Authentication
	// Authorization covers invalid/expired tokens and non-owner access. 403.
	Authorization
	// NotFound covers unknown resource ids. 404.
	NotFound
	// Conflict covers duplicate usernames. Rendered as 400 to match the wire
	// contract existing clients expect.
	Conflict
)

// Error is a classified, client-safe failure with a stable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// New builds a classified error with the given message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Status returns the HTTP status code for a kind.
func Status(k Kind) int {
	switch k {
	case Validation, Conflict:
		return http.StatusBadRequest
	case Authentication:
		return http.StatusUnauthorized
	case Authorization:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Respond renders err as a JSON `{"message": ...}` body. Errors outside the
// taxonomy collapse to a generic 500 so no internal state leaks.
func Respond(c echo.Context, err error) error {
	var ae *Error
	if errors.As(err, &ae) {
		return c.JSON(Status(ae.Kind), echo.Map{"message": ae.Message})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Internal server error"})
}
