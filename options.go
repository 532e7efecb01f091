package logbridge

import (
	"github.com/bft-labs/logbridge/internal/ports"
	"github.com/bft-labs/logbridge/pkg/log"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = log.Logger

// Option configures optional behavior of a Bridge.
type Option func(*options)

type options struct {
	httpClient ports.HTTPClient
	logger     log.Logger
}

// WithHTTPClient sets the HTTP client. The default client has a cookie jar
// and the configured timeout; a custom client is responsible for both.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a logger. Without it nothing is logged.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
