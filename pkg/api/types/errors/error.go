package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
	"github.com/labstack/echo/v4"
)

// ErrorMessage is the payload of error responses.
//
// It is serialized as the error envelope of the MyHelp API:
//
//	{"status": "error", "message": "<Reason>", "advice": "<Advice>"}
type ErrorMessage struct {
	Reason string
	Advice string
	Cause  error
}

func (em ErrorMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Advice  string `json:"advice,omitempty"`
	}{
		Status:  polyclinic.StatusError,
		Message: em.Reason,
		Advice:  em.Advice,
	})
}

func (em *ErrorMessage) UnmarshalJSON(bytes []byte) error {
	f := new(struct {
		Status  *string `json:"status"`
		Message *string `json:"message"`
		Advice  *string `json:"advice,omitempty"`
	})
	if err := json.Unmarshal(bytes, f); err != nil {
		return err
	}

	if f.Message == nil {
		return fmt.Errorf(`required field missing: "message"`)
	}
	em.Reason = *f.Message

	if f.Advice != nil {
		em.Advice = *f.Advice
	}
	return nil
}

func (e ErrorMessage) String() string {
	lines := []string{e.Reason}
	if e.Advice != "" {
		lines = append(lines, e.Advice)
	}
	if e.Cause != nil {
		lines = append(lines, fmt.Sprint(" caused by:", e.Cause.Error()))
	}
	return strings.Join(lines, "\n")
}

func (e ErrorMessage) Error() string {
	return e.String()
}

func (e ErrorMessage) Unwrap() error {
	return e.Cause
}

type ErrorMessageOption func(in *ErrorMessage) *ErrorMessage

func WithAdvice(advice string) ErrorMessageOption {
	return func(in *ErrorMessage) *ErrorMessage {
		if advice != "" {
			in.Advice = advice
		}
		return in
	}
}

func WithError(err error) ErrorMessageOption {
	return func(in *ErrorMessage) *ErrorMessage {
		if err != nil {
			in.Cause = err
		}
		return in
	}
}

func NewErrorMessage(code int, reason string, opts ...ErrorMessageOption) *echo.HTTPError {
	msg := ErrorMessage{Reason: reason}
	for _, opt := range opts {
		msg = *opt(&msg)
	}

	return echo.NewHTTPError(code, msg).SetInternal(msg)
}

// Reason extracts the human readable message from an error returned by handlers.
func Reason(err error) string {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return err.Error()
	}
	switch m := he.Message.(type) {
	case ErrorMessage:
		return m.Reason
	case string:
		return m
	case error:
		return m.Error()
	default:
		return fmt.Sprint(m)
	}
}

func BadRequest(reason string, err error) *echo.HTTPError {
	return NewErrorMessage(http.StatusBadRequest, reason, WithError(err))
}

func Unauthorized(reason string, err error) *echo.HTTPError {
	return NewErrorMessage(http.StatusUnauthorized, reason, WithError(err))
}

func Forbidden(reason string) *echo.HTTPError {
	return NewErrorMessage(http.StatusForbidden, reason)
}

func NotFound(reason string) *echo.HTTPError {
	return NewErrorMessage(http.StatusNotFound, reason)
}

func InternalServerError(reason string, err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusInternalServerError,
		reason,
		WithError(err),
	)
}

func BadGateway(err error) *echo.HTTPError {
	return NewErrorMessage(
		http.StatusBadGateway,
		"Сервис временно недоступен",
		WithAdvice("try again later."),
		WithError(err),
	)
}

// WithStatus builds an error response with arbitrary status code,
// for relaying statuses of the backend.
func WithStatus(code int, reason string, err error) *echo.HTTPError {
	if code < 400 {
		code = http.StatusInternalServerError
	}
	return NewErrorMessage(code, reason, WithError(err))
}

// FromBackend converts an error of the MyHelp client into an error response.
//
// Errors reported by the API keep their status code and message.
// fallback is used when the API says nothing.
// Other errors mean the API is unreachable, and become 502.
func FromBackend(err error, fallback string) *echo.HTTPError {
	if err == nil {
		return nil
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he
	}
	if merr, ok := myhelp.AsError(err); ok {
		reason := merr.Message
		if reason == "" {
			reason = fallback
		}
		return WithStatus(merr.StatusCode, reason, err)
	}
	return BadGateway(err)
}
