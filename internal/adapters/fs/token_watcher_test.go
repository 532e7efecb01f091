package fs

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/logbridge/pkg/log"
)

type tokenRecorder struct {
	mu     sync.Mutex
	tokens []string
}

func (r *tokenRecorder) set(tok string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = append(r.tokens, tok)
}

func (r *tokenRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

func (r *tokenRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.tokens) == 0 {
		return ""
	}
	return r.tokens[len(r.tokens)-1]
}

func TestReadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  abc123  \nignored\n"), 0o600))

	tok, err := ReadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok)

	_, err = ReadToken(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestTokenWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o600))

	rec := &tokenRecorder{}
	w := NewTokenWatcher(path, rec.set, log.NewNoopLogger())
	w.debounce = 10 * time.Millisecond

	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	assert.Equal(t, "first", rec.last())

	require.NoError(t, os.WriteFile(path, []byte("second\n"), 0o600))

	assert.Eventually(t, func() bool { return rec.last() == "second" }, 2*time.Second, 10*time.Millisecond)
}

func TestTokenWatcher_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "token")
	w := NewTokenWatcher(path, func(string) {}, log.NewNoopLogger())

	assert.Error(t, w.Start(context.Background()))
}

func TestTokenWatcher_NoCallbackAfterStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o600))

	rec := &tokenRecorder{}
	w := NewTokenWatcher(path, rec.set, log.NewNoopLogger())
	w.debounce = 10 * time.Millisecond

	require.NoError(t, w.Start(context.Background()))
	require.Equal(t, 1, rec.count())
	w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("second\n"), 0o600))

	// A debounce timer firing late lands in reload after Stop.
	w.reload()
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, rec.count())
	assert.Equal(t, "first", rec.last())
}
