package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/logbridge/pkg/log"
)

const defaultDebounce = 100 * time.Millisecond

// TokenWatcher keeps a bearer token in sync with a file on disk. The file
// holds the token on its first line; surrounding whitespace is dropped.
type TokenWatcher struct {
	path     string
	onChange func(token string)
	logger   log.Logger
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	last    string
	stopped bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// notifyMu serializes onChange calls so Stop can wait out one in progress.
	notifyMu sync.Mutex
}

// NewTokenWatcher creates a watcher for path. onChange is called whenever
// the token read from the file differs from the last one seen, starting
// with the load done by Start.
func NewTokenWatcher(path string, onChange func(token string), logger log.Logger) *TokenWatcher {
	return &TokenWatcher{
		path:     path,
		onChange: onChange,
		logger:   logger,
		debounce: defaultDebounce,
	}
}

// ReadToken reads the token from path.
func ReadToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	token, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(token), nil
}

// Start loads the current token and begins watching the file's directory.
// Watching the directory survives editors that replace the file on save.
func (w *TokenWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	w.stopped = false
	w.mu.Unlock()

	w.reload()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(watchCtx, watcher)
	return nil
}

// Stop ends watching and waits for the watch goroutine. onChange is not
// called after Stop returns.
func (w *TokenWatcher) Stop() {
	w.mu.Lock()
	w.stopped = true
	cancel := w.cancel
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()

	// A debounce timer that already fired may be inside onChange.
	w.notifyMu.Lock()
	w.notifyMu.Unlock()
}

func (w *TokenWatcher) loop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer w.wg.Done()
	defer watcher.Close()

	name := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("token watcher error", log.Err(err))
		}
	}
}

func (w *TokenWatcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		w.reload()
	})
}

func (w *TokenWatcher) reload() {
	token, err := ReadToken(w.path)
	if err != nil {
		w.logger.Warn("read token file", log.String("path", w.path), log.Err(err))
		return
	}

	w.notifyMu.Lock()
	defer w.notifyMu.Unlock()

	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	changed := token != w.last
	w.last = token
	w.mu.Unlock()

	if changed {
		w.logger.Info("bearer token loaded", log.String("path", w.path))
		w.onChange(token)
	}
}
