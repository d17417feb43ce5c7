package httpclient

import (
	"errors"
	"net/http"
)

const (
	MessageUnreachable = "unable to reach server"
	MessageFailed      = "request failed"
)

var ErrUnauthorized = errors.New("unauthorized")

// RequestError is the one failure shape callers see: an HTTP status (0 when
// the backend never answered) and a human-readable message.
type RequestError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func (e *RequestError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Message extracts the display string from any error returned by Do.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return err.Error()
}
