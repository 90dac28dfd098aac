package gateway

import (
	"fmt"
	"net/http"
)

// TransportError means the request never produced an HTTP response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: request failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the response body did not have the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: could not decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ApplicationError is an HTTP response with a status the operation does not
// accept, including 2xx statuses other than 204 for deletes.
type ApplicationError struct {
	Op     string
	Status int
}

func (e *ApplicationError) Error() string {
	text := http.StatusText(e.Status)
	if text == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.Status, text)
}
