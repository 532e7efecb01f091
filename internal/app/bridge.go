package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/logbridge/internal/domain"
	"github.com/bft-labs/logbridge/internal/ports"
	"github.com/bft-labs/logbridge/pkg/log"
)

// DefaultQueueSize is the number of requests that may wait for the worker.
const DefaultQueueSize = 16

// BridgeConfig configures a Bridge.
type BridgeConfig struct {
	// QueueSize bounds requests waiting for the worker goroutine.
	// Default: 16
	QueueSize int
}

type job struct {
	ctx    context.Context
	req    domain.Request
	result chan domain.Result
}

// Bridge is the request primitive exposed to the host. Every call blocks its
// caller until the response is available.
//
// A stopped Bridge performs requests on the calling goroutine. After Start,
// requests run on a dedicated worker goroutine and the caller waits on a
// channel handoff, which keeps shared loops free while the call still looks
// synchronous to the caller.
type Bridge struct {
	transport ports.Transport
	logger    log.Logger
	lifecycle *Lifecycle
	queueSize int
	// shutdownTimeout bounds how long Stop waits for the worker.
	shutdownTimeout time.Duration

	mu      sync.RWMutex
	queue   chan job
	done    <-chan struct{}
	cancel  context.CancelFunc
	senders sync.WaitGroup
}

// NewBridge creates a stopped Bridge.
func NewBridge(transport ports.Transport, logger log.Logger, cfg BridgeConfig) *Bridge {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	return &Bridge{
		transport: transport,
		logger:    logger,
		lifecycle:       NewLifecycle(logger),
		queueSize:       cfg.QueueSize,
		shutdownTimeout: ShutdownTimeout,
	}
}

// State returns the worker lifecycle state.
func (b *Bridge) State() State {
	return b.lifecycle.State()
}

// Start launches the worker goroutine. It stops when ctx is cancelled or
// Stop is called.
func (b *Bridge) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.lifecycle.State() != StateStopped {
		return domain.ErrAlreadyRunning
	}
	if err := b.lifecycle.TransitionTo(StateRunning, "Start() called"); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.done = runCtx.Done()
	b.queue = make(chan job, b.queueSize)

	b.lifecycle.AddWorker()
	go b.work(runCtx, b.queue)

	b.logger.Info("bridge worker started", log.Int("queue_size", b.queueSize))
	return nil
}

// Stop shuts the worker down. The request being executed is allowed to
// finish; queued requests fail with ErrNotRunning. Returns
// ErrShutdownTimeout if the worker does not exit within ShutdownTimeout.
func (b *Bridge) Stop() error {
	b.mu.Lock()
	if b.lifecycle.State() != StateRunning {
		b.mu.Unlock()
		return domain.ErrNotRunning
	}
	if err := b.lifecycle.TransitionTo(StateStopping, "Stop() called"); err != nil {
		b.mu.Unlock()
		return err
	}
	b.cancel()
	queue := b.queue
	b.mu.Unlock()

	// Callers blocked on a full queue see the closed done channel and give
	// up; anything they managed to enqueue is resolved by the drain below.
	b.senders.Wait()
	err := b.lifecycle.WaitWithTimeout(b.shutdownTimeout)
	drain(queue)

	b.mu.Lock()
	_ = b.lifecycle.TransitionTo(StateStopped, "worker exited")
	b.mu.Unlock()

	b.logger.Info("bridge worker stopped")
	return err
}

// Send performs method on url with payload and returns the response body.
// It blocks until the response arrives and never reports failure: on
// transport errors, non-2xx statuses or empty bodies it returns whatever
// text was received, possibly "". Use Do to tell these cases apart.
func (b *Bridge) Send(method, url, payload string) string {
	resp, err := b.Do(context.Background(), domain.Request{Method: method, URL: url, Payload: payload})
	if err != nil {
		b.logger.Debug("send returned error",
			log.String("method", method),
			log.String("url", url),
			log.Err(err))
	}
	return resp.Body
}

// Do performs req and blocks until the response arrives, classifying
// failures as ErrInvalidRequest, ErrTransport, ErrProtocol or
// ErrEmptyResponse. The response body is returned alongside any error.
func (b *Bridge) Do(ctx context.Context, req domain.Request) (domain.Response, error) {
	if b.lifecycle.State() != StateRunning {
		return b.call(ctx, req)
	}

	select {
	case r := <-b.SendAsync(ctx, req):
		if errors.Is(r.Err, domain.ErrNotRunning) {
			// Stopped between the state check and the handoff; the request
			// was never sent.
			return b.call(ctx, req)
		}
		return r.Response, r.Err
	case <-ctx.Done():
		return domain.Response{}, ctx.Err()
	}
}

// SendAsync queues req for the worker and returns a channel that receives
// exactly one Result. The Result carries ErrNotRunning if the bridge is not
// started or stops before the request is picked up.
func (b *Bridge) SendAsync(ctx context.Context, req domain.Request) <-chan domain.Result {
	result := make(chan domain.Result, 1)

	b.mu.RLock()
	if b.lifecycle.State() != StateRunning {
		b.mu.RUnlock()
		result <- domain.Result{Err: domain.ErrNotRunning}
		return result
	}
	queue, done := b.queue, b.done
	b.senders.Add(1)
	b.mu.RUnlock()
	defer b.senders.Done()

	select {
	case queue <- job{ctx: ctx, req: req, result: result}:
	case <-done:
		result <- domain.Result{Err: domain.ErrNotRunning}
	case <-ctx.Done():
		result <- domain.Result{Err: ctx.Err()}
	}
	return result
}

func (b *Bridge) work(ctx context.Context, queue chan job) {
	defer b.lifecycle.WorkerDone()

	for {
		select {
		case <-ctx.Done():
			drain(queue)
			return
		case j := <-queue:
			resp, err := b.call(j.ctx, j.req)
			j.result <- domain.Result{Response: resp, Err: err}
		}
	}
}

func drain(queue chan job) {
	for {
		select {
		case j := <-queue:
			j.result <- domain.Result{Err: domain.ErrNotRunning}
		default:
			return
		}
	}
}

// call runs the transport, turning a panic into ErrTransport so a broken
// transport cannot take the host down.
func (b *Bridge) call(ctx context.Context, req domain.Request) (resp domain.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("transport panicked", log.Any("panic", r))
			resp, err = domain.Response{}, fmt.Errorf("%w: panic: %v", domain.ErrTransport, r)
		}
	}()
	return b.transport.Do(ctx, req)
}
