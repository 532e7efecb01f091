package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/bft-labs/logbridge/internal/domain"
	"github.com/bft-labs/logbridge/internal/ports"
	"github.com/bft-labs/logbridge/pkg/log"
)

const (
	userAgent       = "logbridge/1"
	requestIDHeader = "X-Request-Id"
)

// Transport implements ports.Transport on top of an HTTP client.
type Transport struct {
	client  ports.HTTPClient
	logger  log.Logger
	baseURL *url.URL

	mu    sync.RWMutex
	token string
}

// NewTransport creates a transport. Relative request URLs are resolved
// against baseURL; an empty baseURL only accepts absolute URLs.
func NewTransport(client ports.HTTPClient, baseURL string, logger log.Logger) (*Transport, error) {
	t := &Transport{
		client: client,
		logger: logger,
	}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		if !u.IsAbs() {
			return nil, fmt.Errorf("base url %q is not absolute", baseURL)
		}
		t.baseURL = u
	}
	return t, nil
}

// SetToken replaces the bearer token sent with every request.
// An empty token disables the Authorization header.
func (t *Transport) SetToken(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

// Token returns the current bearer token.
func (t *Transport) Token() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token
}

// Do sends req and blocks until the response body has been read.
func (t *Transport) Do(ctx context.Context, req domain.Request) (domain.Response, error) {
	if err := req.Validate(); err != nil {
		return domain.Response{}, err
	}

	target, err := t.resolve(req.URL)
	if err != nil {
		return domain.Response{}, err
	}

	var body io.Reader = http.NoBody
	if req.Payload != "" {
		body = strings.NewReader(req.Payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, strings.ToUpper(req.Method), target, body)
	if err != nil {
		return domain.Response{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	id := uuid.NewString()
	httpReq.Header.Set("Content-Type", domain.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set(requestIDHeader, id)
	if tok := t.Token(); tok != "" {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.Debug("bridged request failed",
			log.String("request_id", id),
			log.String("method", httpReq.Method),
			log.String("url", target),
			log.Err(err))
		return domain.Response{}, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	out := domain.Response{Body: string(data)}
	if err != nil {
		return out, fmt.Errorf("%w: read body: %w", domain.ErrTransport, err)
	}

	t.logger.Debug("bridged request",
		log.String("request_id", id),
		log.String("method", httpReq.Method),
		log.String("url", target),
		log.Int("status", resp.StatusCode),
		log.Int("bytes", len(data)))

	if resp.StatusCode/100 != 2 {
		return out, &domain.StatusError{Code: resp.StatusCode, Body: out.Body}
	}
	if len(data) == 0 {
		return out, domain.ErrEmptyResponse
	}
	return out, nil
}

func (t *Transport) resolve(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if t.baseURL == nil {
		return "", fmt.Errorf("%w: relative url %q without base url", domain.ErrInvalidRequest, raw)
	}
	return t.baseURL.ResolveReference(u).String(), nil
}

var _ ports.Transport = (*Transport)(nil)
