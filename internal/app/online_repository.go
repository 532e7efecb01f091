package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bft-labs/logbridge/internal/domain"
	"github.com/bft-labs/logbridge/internal/ports"
	"github.com/bft-labs/logbridge/pkg/log"
)

// EntryPath returns the host API path of the entry for date.
func EntryPath(date domain.Date) string {
	return fmt.Sprintf("/api/logs/%04d/%02d/%02d", date.Year, date.Month, date.Day)
}

// OverviewPath returns the host API path of the overview for year.
func OverviewPath(year int) string {
	return fmt.Sprintf("/api/logs/%04d/overview", year)
}

// entryBody is the JSON exchanged for a single entry.
type entryBody struct {
	Content string `json:"content"`
}

// OnlineRepository is a ports.LogRepository backed by the web host,
// reached through a Transport (normally the Bridge).
type OnlineRepository struct {
	transport ports.Transport
	logger    log.Logger
}

// NewOnlineRepository creates a repository that talks to the host through transport.
func NewOnlineRepository(transport ports.Transport, logger log.Logger) *OnlineRepository {
	return &OnlineRepository{transport: transport, logger: logger}
}

// Overview fetches the year overview computed by the host.
func (r *OnlineRepository) Overview(ctx context.Context, year int) (domain.YearOverview, error) {
	resp, err := r.transport.Do(ctx, domain.Request{Method: http.MethodGet, URL: OverviewPath(year)})
	if err != nil {
		return domain.YearOverview{}, fmt.Errorf("fetch overview %d: %w", year, err)
	}

	var o domain.YearOverview
	if err := json.Unmarshal([]byte(resp.Body), &o); err != nil {
		return domain.YearOverview{}, fmt.Errorf("decode overview %d: %w", year, err)
	}
	if o.Year == 0 {
		o.Year = year
	}
	return o, nil
}

// Read fetches the entry for date. A 404 from the host means no entry.
func (r *OnlineRepository) Read(ctx context.Context, date domain.Date) (domain.LogEntry, bool, error) {
	resp, err := r.transport.Do(ctx, domain.Request{Method: http.MethodGet, URL: EntryPath(date)})
	switch {
	case domain.IsNotFound(err):
		return domain.LogEntry{}, false, nil
	case errors.Is(err, domain.ErrEmptyResponse):
		return domain.LogEntry{Date: date}, true, nil
	case err != nil:
		return domain.LogEntry{}, false, fmt.Errorf("read %s: %w", date, err)
	}

	var body entryBody
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		return domain.LogEntry{}, false, fmt.Errorf("decode %s: %w", date, err)
	}
	return domain.LogEntry{Date: date, Content: body.Content}, true, nil
}

// Write stores entry on the host.
func (r *OnlineRepository) Write(ctx context.Context, entry domain.LogEntry) error {
	payload, err := json.Marshal(entryBody{Content: entry.Content})
	if err != nil {
		return fmt.Errorf("encode %s: %w", entry.Date, err)
	}

	_, err = r.transport.Do(ctx, domain.Request{
		Method:  http.MethodPut,
		URL:     EntryPath(entry.Date),
		Payload: string(payload),
	})
	if err != nil && !errors.Is(err, domain.ErrEmptyResponse) {
		return fmt.Errorf("write %s: %w", entry.Date, err)
	}
	r.logger.Debug("entry written", log.String("date", entry.Date.String()))
	return nil
}

// Remove deletes the entry for date on the host.
func (r *OnlineRepository) Remove(ctx context.Context, date domain.Date) error {
	_, err := r.transport.Do(ctx, domain.Request{Method: http.MethodDelete, URL: EntryPath(date)})
	if err != nil && !errors.Is(err, domain.ErrEmptyResponse) && !domain.IsNotFound(err) {
		return fmt.Errorf("remove %s: %w", date, err)
	}
	return nil
}

var _ ports.LogRepository = (*OnlineRepository)(nil)
