package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/logbridge/internal/domain"
	"github.com/bft-labs/logbridge/internal/ports"
)

const entryExt = ".md"

// LogDir implements ports.LogRepository with one markdown file per day,
// laid out as <root>/<yyyy>/<mm>/<dd>.md.
type LogDir struct {
	root string
}

// NewLogDir creates a LogDir rooted at root. The directory is created on
// first write.
func NewLogDir(root string) *LogDir {
	return &LogDir{root: root}
}

// Read returns the entry for date, or false if the file does not exist.
func (r *LogDir) Read(ctx context.Context, date domain.Date) (domain.LogEntry, bool, error) {
	data, err := os.ReadFile(r.Path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.LogEntry{}, false, nil
		}
		return domain.LogEntry{}, false, err
	}
	return domain.LogEntry{Date: date, Content: string(data)}, true, nil
}

// Write stores the entry atomically (write to temp file, then rename).
func (r *LogDir) Write(ctx context.Context, entry domain.LogEntry) error {
	if !entry.Date.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDate, entry.Date)
	}

	path := r.Path(entry.Date)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	// Each writer gets its own temp file so concurrent writes of the same
	// date cannot truncate one another before the rename.
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.WriteString(entry.Content); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Remove deletes the entry for date. A missing entry is not an error.
func (r *LogDir) Remove(ctx context.Context, date domain.Date) error {
	if err := os.Remove(r.Path(date)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the file path of the entry for date.
func (r *LogDir) Path(date domain.Date) string {
	return filepath.Join(r.root,
		fmt.Sprintf("%04d", date.Year),
		fmt.Sprintf("%02d", date.Month),
		fmt.Sprintf("%02d%s", date.Day, entryExt))
}

var _ ports.LogRepository = (*LogDir)(nil)
