package ports

import (
	"context"
	"net/http"

	"github.com/bft-labs/logbridge/internal/domain"
)

// HTTPClient executes prepared HTTP requests. *http.Client satisfies it;
// tests substitute recorders or failing clients.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Transport performs a single blocking request.
type Transport interface {
	// Do sends req and waits for the response. The returned Response holds
	// whatever body was received even when err is non-nil, so callers that
	// ignore errors still get the text the server produced.
	Do(ctx context.Context, req domain.Request) (domain.Response, error)
}
