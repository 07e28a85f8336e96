package myhelp

import (
	"fmt"
	"net/http"
)

// StatusCodeRange is the class of HTTP status codes answered by the MyHelp API.
type StatusCodeRange int

const (
	StatusUnknown StatusCodeRange = iota
	Status1xx
	Status2xx
	Status3xx
	Status4xx
	Status5xx
)

// String is used as the message of *Error when neither the API nor the caller tells one.
func (sc StatusCodeRange) String() string {
	switch sc {
	case Status1xx:
		return "unexpected interim response"
	case Status2xx:
		return "request failed"
	case Status3xx:
		return "unexpected redirect"
	case Status4xx:
		return "request is rejected"
	case Status5xx:
		return "server error"
	default:
		return fmt.Sprintf("unknown status (%d)", sc)
	}
}

// RangeOf classifies a status code.
func RangeOf(code int) StatusCodeRange {
	switch {
	case code < 100 || 600 <= code:
		return StatusUnknown
	case code < 200:
		return Status1xx
	case code < 300:
		return Status2xx
	case code < 400:
		return Status3xx
	case code < 500:
		return Status4xx
	default:
		return Status5xx
	}
}

func StatusCodeRangeOf(resp *http.Response) StatusCodeRange {
	return RangeOf(resp.StatusCode)
}
