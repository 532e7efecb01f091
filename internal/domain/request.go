package domain

import "fmt"

// ContentTypeJSON is sent with every bridged request.
const ContentTypeJSON = "application/json"

// Request is a single bridged call. Payload is sent as-is, usually
// pre-serialized JSON, and may be empty.
type Request struct {
	Method  string
	URL     string
	Payload string
}

// Validate checks that the request names a method and a URL.
func (r Request) Validate() error {
	if r.Method == "" {
		return fmt.Errorf("%w: method is required", ErrInvalidRequest)
	}
	if r.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidRequest)
	}
	return nil
}

// Response is the text produced by one Request.
type Response struct {
	Body string
}

// Result is what an asynchronous call hands back.
type Result struct {
	Response Response
	Err      error
}
