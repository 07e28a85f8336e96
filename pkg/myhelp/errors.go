package myhelp

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound matches errors of the MyHelp API responded with 404.
	ErrNotFound = errors.New("myhelp: not found")

	// ErrUnauthorized matches errors of the MyHelp API responded with 401.
	ErrUnauthorized = errors.New("myhelp: unauthorized")
)

// Error is a failure reported by the MyHelp API: a non-2xx status,
// or a 2xx response whose envelope status is not "success" or whose body is not decodable.
type Error struct {
	StatusCode int

	// Message is the message of the error envelope, or the response body
	// when it is not an envelope.
	Message string

	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("myhelp: %s (status code = %d)", e.Message, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Enveloped reports whether the API answered 2xx with the failure in its body.
func (e *Error) Enveloped() bool {
	return RangeOf(e.StatusCode) == Status2xx
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	default:
		return false
	}
}

// AsError extracts *Error from err.
func AsError(err error) (*Error, bool) {
	var merr *Error
	if errors.As(err, &merr) {
		return merr, true
	}
	return nil, false
}
