package polyclinic

import "encoding/json"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the shape of every response of the MyHelp API and of the
// JSON routes served by this front-end.
type Envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

func (e Envelope[T]) Ok() bool {
	return e.Status == StatusSuccess
}

func Success[T any](data T) Envelope[T] {
	return Envelope[T]{Status: StatusSuccess, Data: data}
}

func SuccessWithMessage[T any](message string, data T) Envelope[T] {
	return Envelope[T]{Status: StatusSuccess, Message: message, Data: data}
}

// RawEnvelope keeps data undecoded, so that callers can check status first.
type RawEnvelope = Envelope[json.RawMessage]

// HasData reports whether the envelope carries a non-null data field.
func HasData(e RawEnvelope) bool {
	return len(e.Data) != 0 && string(e.Data) != "null"
}
