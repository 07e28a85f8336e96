package myhelp

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
)

type MessageFor map[StatusCodeRange]string

// unmarshal http response which is an envelope of the MyHelp API.
//
// args:
//   - resp: http response to be processed.
//   - v: where the data of the envelope is decoded into. If nil, data is discarded
//     and 2xx responses without JSON body are accepted.
//   - messageFor: fallback message for status code range,
//     used when the server does not tell why it failed.
//
// return:
//
//	*Error if...
//	- status code is not 2xx
//	- status of the envelope is not "success"
//	- response is 2xx but its body is not shaped of envelope (or v)
//
//	other error if response body can not be read.
func unmarshalEnvelope[T any](resp *http.Response, v *T, messageFor MessageFor) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	scr := StatusCodeRangeOf(resp)
	env := polyclinic.RawEnvelope{}
	jsonErr := json.Unmarshal(body, &env)

	if scr != Status2xx {
		message := ""
		if jsonErr == nil {
			message = env.Message
		} else {
			message = strings.TrimSpace(string(body))
		}
		if message == "" {
			message = fallbackMessage(scr, messageFor)
		}
		return &Error{StatusCode: resp.StatusCode, Message: message}
	}

	if jsonErr != nil {
		if v == nil {
			return nil
		}
		return malformed(resp, jsonErr)
	}

	if env.Status != "" && !env.Ok() {
		message := env.Message
		if message == "" {
			message = fallbackMessage(scr, messageFor)
		}
		return &Error{StatusCode: resp.StatusCode, Message: message}
	}

	if v == nil || !polyclinic.HasData(env) {
		return nil
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return malformed(resp, err)
	}
	return nil
}

// MessageMalformed is the message of *Error for a 2xx response which can not be decoded.
const MessageMalformed = "malformed response"

func malformed(resp *http.Response, cause error) error {
	return &Error{StatusCode: resp.StatusCode, Message: MessageMalformed, cause: cause}
}

func fallbackMessage(scr StatusCodeRange, messageFor MessageFor) string {
	if m, ok := messageFor[scr]; ok {
		return m
	}
	return scr.String()
}

func discard(resp *http.Response, messageFor MessageFor) error {
	return unmarshalEnvelope[struct{}](resp, nil, messageFor)
}
