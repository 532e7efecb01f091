package domain

import (
	"errors"
	"fmt"
)

// Errors returned by the public API. Check them with errors.Is.
var (
	// ErrInvalidRequest is returned when a request has no method or URL,
	// or its URL cannot be resolved.
	ErrInvalidRequest = errors.New("logbridge: invalid request")

	// ErrTransport covers connection refused, DNS failures, timeouts and
	// broken response bodies.
	ErrTransport = errors.New("logbridge: transport error")

	// ErrProtocol is returned for non-2xx responses. The concrete error is
	// a *StatusError.
	ErrProtocol = errors.New("logbridge: protocol error")

	// ErrEmptyResponse is returned when the round trip succeeded but the
	// body is empty.
	ErrEmptyResponse = errors.New("logbridge: empty response")

	// ErrAlreadyRunning is returned when Start() is called on a running bridge.
	ErrAlreadyRunning = errors.New("logbridge: already running")

	// ErrNotRunning is returned when work is submitted to, or Stop() is
	// called on, a stopped bridge.
	ErrNotRunning = errors.New("logbridge: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("logbridge: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("logbridge: invalid configuration")

	// ErrUnknownExport is returned when calling a name missing from the export table.
	ErrUnknownExport = errors.New("logbridge: unknown export")

	// ErrArity is returned when an export is called with the wrong number of arguments.
	ErrArity = errors.New("logbridge: wrong number of arguments")

	// ErrArgType is returned when an export argument has the wrong type.
	ErrArgType = errors.New("logbridge: wrong argument type")

	// ErrInvalidDate is returned for dates that do not exist on the calendar.
	ErrInvalidDate = errors.New("logbridge: invalid date")
)

// StatusError describes a response with a non-2xx status code.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server returned %d", e.Code)
	}
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
}

// Unwrap makes errors.Is(err, ErrProtocol) hold for every StatusError.
func (e *StatusError) Unwrap() error { return ErrProtocol }

// IsNotFound reports whether err is a 404 StatusError.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == 404
}
