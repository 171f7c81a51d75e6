package meetingapi

import (
	"errors"
	"fmt"
)

// ErrDecode marks a response body that could not be decoded into the
// expected document shape.
var ErrDecode = errors.New("invalid json response")

// StatusError is a non-2xx response status. The client never retries,
// a failed attempt propagates immediately.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// RequestError is the single error kind surfaced to callers. It
// carries the failing url and wraps the transport or decode cause.
type RequestError struct {
	Url string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed for %s: %s", e.Url, e.Err.Error())
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
