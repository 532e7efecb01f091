package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/logbridge/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/logbridge/internal/adapters/http"
	"github.com/bft-labs/logbridge/internal/app"
	"github.com/bft-labs/logbridge/internal/domain"
	"github.com/bft-labs/logbridge/internal/server"
	"github.com/bft-labs/logbridge/pkg/log"
)

func newOnlineRepository(t *testing.T, token string) *app.OnlineRepository {
	t.Helper()
	host := server.New(server.Config{Repo: fs.NewLogDir(t.TempDir()), Token: token, SkipFirstLine: true})
	ts := httptest.NewServer(host.Handler())
	t.Cleanup(ts.Close)

	client, err := httpAdapter.NewClient(0)
	require.NoError(t, err)
	tr, err := httpAdapter.NewTransport(client, ts.URL, log.NewNoopLogger())
	require.NoError(t, err)
	tr.SetToken(token)

	bridge := app.NewBridge(tr, log.NewNoopLogger(), app.BridgeConfig{})
	require.NoError(t, bridge.Start(context.Background()))
	t.Cleanup(func() { _ = bridge.Stop() })

	return app.NewOnlineRepository(bridge, log.NewNoopLogger())
}

func TestOnlineRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newOnlineRepository(t, "secret")
	date := domain.Date{Year: 2024, Month: 5, Day: 17}

	_, ok, err := repo.Read(ctx, date)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Write(ctx, domain.LogEntry{Date: date, Content: "# Fri\n# Work\n* Deploy\n"}))

	entry, ok, err := repo.Read(ctx, date)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "# Fri\n# Work\n* Deploy\n", entry.Content)
	assert.Equal(t, date, entry.Date)

	o, err := repo.Overview(ctx, 2024)
	require.NoError(t, err)
	assert.True(t, o.LogAvailability.Has(date))
	assert.Equal(t, []string{"deploy"}, o.TagNames())
	assert.Equal(t, []string{"work"}, o.SectionNames())

	require.NoError(t, repo.Remove(ctx, date))
	require.NoError(t, repo.Remove(ctx, date))

	_, ok, err = repo.Read(ctx, date)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOnlineRepository_Unauthorized(t *testing.T) {
	host := server.New(server.Config{Repo: fs.NewLogDir(t.TempDir()), Token: "secret"})
	ts := httptest.NewServer(host.Handler())
	defer ts.Close()

	tr, err := httpAdapter.NewTransport(http.DefaultClient, ts.URL, log.NewNoopLogger())
	require.NoError(t, err)
	repo := app.NewOnlineRepository(tr, log.NewNoopLogger())

	_, _, err = repo.Read(context.Background(), domain.Date{Year: 2024, Month: 1, Day: 1})
	var se *domain.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.Code)
}

func TestCollectYear_OverLocalDir(t *testing.T) {
	ctx := context.Background()
	dir := fs.NewLogDir(t.TempDir())
	require.NoError(t, dir.Write(ctx, domain.LogEntry{Date: domain.Date{Year: 2023, Month: 12, Day: 31}, Content: "h\n* nye\n"}))

	o, err := app.CollectYear(ctx, dir, 2023, true)
	require.NoError(t, err)
	assert.Equal(t, []domain.Date{{Year: 2023, Month: 12, Day: 31}}, o.LogAvailability.Sorted())
	assert.Equal(t, []string{"nye"}, o.TagNames())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = app.CollectYear(cancelled, dir, 2023, true)
	assert.ErrorIs(t, err, context.Canceled)
}
