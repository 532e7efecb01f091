package http

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// NewClient returns an *http.Client with a cookie jar, so cookies set by the
// host are sent back on later calls. A zero timeout never times out.
func NewClient(timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
	}, nil
}
