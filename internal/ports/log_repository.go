package ports

import (
	"context"

	"github.com/bft-labs/logbridge/internal/domain"
)

// LogRepository stores journal entries, one per day.
type LogRepository interface {
	// Read returns the entry for date. The bool is false when no entry exists.
	Read(ctx context.Context, date domain.Date) (domain.LogEntry, bool, error)

	// Write creates or replaces the entry for entry.Date.
	Write(ctx context.Context, entry domain.LogEntry) error

	// Remove deletes the entry for date. Removing a missing entry is not an error.
	Remove(ctx context.Context, date domain.Date) error
}
