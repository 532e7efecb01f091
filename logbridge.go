package logbridge

import (
	"context"
	"time"

	"github.com/bft-labs/logbridge/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/logbridge/internal/adapters/http"
	"github.com/bft-labs/logbridge/internal/app"
	"github.com/bft-labs/logbridge/internal/domain"
	"github.com/bft-labs/logbridge/internal/exports"
	"github.com/bft-labs/logbridge/pkg/log"
)

// Re-exported domain types.
type (
	Request      = domain.Request
	Response     = domain.Response
	Result       = domain.Result
	Date         = domain.Date
	LogEntry     = domain.LogEntry
	YearOverview = domain.YearOverview
	StatusError  = domain.StatusError
	Export       = exports.Export
)

// Errors returned by the bridge. Check them with errors.Is.
var (
	ErrInvalidRequest = domain.ErrInvalidRequest
	ErrTransport      = domain.ErrTransport
	ErrProtocol       = domain.ErrProtocol
	ErrEmptyResponse  = domain.ErrEmptyResponse
	ErrAlreadyRunning = domain.ErrAlreadyRunning
	ErrNotRunning     = domain.ErrNotRunning
	ErrUnknownExport  = domain.ErrUnknownExport
	ErrArity          = domain.ErrArity
	ErrArgType        = domain.ErrArgType
)

// Config configures a Bridge.
type Config struct {
	// BaseURL resolves relative request URLs. Empty means only absolute
	// URLs are accepted.
	BaseURL string

	// AuthToken is sent as a bearer token with every request.
	AuthToken string

	// TokenFile, when set, is watched after Start and its first line
	// replaces AuthToken whenever it changes.
	TokenFile string

	// HTTPTimeout bounds each request. Zero waits indefinitely.
	HTTPTimeout time.Duration

	// QueueSize bounds requests waiting for the worker. Default: 16
	QueueSize int
}

// Bridge is the embeddable request bridge. Create one with New.
type Bridge struct {
	bridge    *app.Bridge
	transport *httpAdapter.Transport
	exports   *exports.Table
	repo      *app.OnlineRepository
	watcher   *fs.TokenWatcher
	logger    log.Logger
}

// New builds a stopped Bridge. Blocking calls work immediately; Start
// moves them onto the worker goroutine and starts the token watcher.
func New(cfg Config, opts ...Option) (*Bridge, error) {
	o := options{logger: log.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	client := o.httpClient
	if client == nil {
		c, err := httpAdapter.NewClient(cfg.HTTPTimeout)
		if err != nil {
			return nil, err
		}
		client = c
	}

	transport, err := httpAdapter.NewTransport(client, cfg.BaseURL, o.logger)
	if err != nil {
		return nil, err
	}
	transport.SetToken(cfg.AuthToken)

	bridge := app.NewBridge(transport, o.logger, app.BridgeConfig{QueueSize: cfg.QueueSize})

	var watcher *fs.TokenWatcher
	if cfg.TokenFile != "" {
		watcher = fs.NewTokenWatcher(cfg.TokenFile, transport.SetToken, o.logger)
	}

	return &Bridge{
		bridge:    bridge,
		transport: transport,
		exports:   exports.NewDefault(bridge),
		repo:      app.NewOnlineRepository(bridge, o.logger),
		watcher:   watcher,
		logger:    o.logger,
	}, nil
}

// Start launches the worker goroutine and, if configured, the token watcher.
func (b *Bridge) Start(ctx context.Context) error {
	if err := b.bridge.Start(ctx); err != nil {
		return err
	}
	if b.watcher != nil {
		if err := b.watcher.Start(ctx); err != nil {
			_ = b.bridge.Stop()
			return err
		}
	}
	return nil
}

// Stop stops the token watcher and the worker.
func (b *Bridge) Stop() error {
	if b.watcher != nil {
		b.watcher.Stop()
	}
	return b.bridge.Stop()
}

// Send performs a blocking request and returns the response body, or
// whatever text was received when the request failed.
func (b *Bridge) Send(method, url, payload string) string {
	return b.bridge.Send(method, url, payload)
}

// Do performs a blocking request and classifies failures.
func (b *Bridge) Do(ctx context.Context, req Request) (Response, error) {
	return b.bridge.Do(ctx, req)
}

// SendAsync hands req to the worker and returns a channel receiving one Result.
func (b *Bridge) SendAsync(ctx context.Context, req Request) <-chan Result {
	return b.bridge.SendAsync(ctx, req)
}

// SetToken replaces the bearer token.
func (b *Bridge) SetToken(token string) {
	b.transport.SetToken(token)
}

// Exports lists the names of all exported functions, sorted.
func (b *Bridge) Exports() []string {
	return b.exports.Names()
}

// Lookup returns the export registered under name.
func (b *Bridge) Lookup(name string) (Export, bool) {
	return b.exports.Lookup(name)
}

// Register adds or replaces an export.
func (b *Bridge) Register(e Export) error {
	return b.exports.Register(e)
}

// Call invokes an export by name.
func (b *Bridge) Call(ctx context.Context, name string, args ...any) (any, error) {
	return b.exports.Call(ctx, name, args...)
}

// CallStrings invokes an export with text arguments converted to the
// declared parameter kinds.
func (b *Bridge) CallStrings(ctx context.Context, name string, args []string) (any, error) {
	return b.exports.CallStrings(ctx, name, args)
}

// Overview fetches the year overview from the host.
func (b *Bridge) Overview(ctx context.Context, year int) (YearOverview, error) {
	return b.repo.Overview(ctx, year)
}

// ReadLog fetches the entry for date. The bool is false when none exists.
func (b *Bridge) ReadLog(ctx context.Context, date Date) (LogEntry, bool, error) {
	return b.repo.Read(ctx, date)
}

// WriteLog stores entry on the host.
func (b *Bridge) WriteLog(ctx context.Context, entry LogEntry) error {
	return b.repo.Write(ctx, entry)
}

// RemoveLog deletes the entry for date on the host.
func (b *Bridge) RemoveLog(ctx context.Context, date Date) error {
	return b.repo.Remove(ctx, date)
}
