package main

import (
	"context"
	"fmt"

	"github.com/bft-labs/logbridge/internal/adapters/fs"
	"github.com/bft-labs/logbridge/internal/cliconfig"
	"github.com/bft-labs/logbridge/internal/server"
	"github.com/bft-labs/logbridge/pkg/log"
)

func serve(ctx context.Context, cfg cliconfig.Config, logger log.Logger) error {
	srv, stop, err := newHost(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stop()

	logger.Debug("serving journal",
		log.String("addr", cfg.ListenAddr),
		log.String("log_dir", cfg.LogDir),
		log.Bool("auth", cfg.AuthToken != "" || cfg.TokenFile != ""),
	)
	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}

// newHost builds the reference host. With a token file the required bearer
// token follows the file; stop ends that watch.
func newHost(ctx context.Context, cfg cliconfig.Config, logger log.Logger) (*server.Server, func(), error) {
	srv := server.New(server.Config{
		Repo:          fs.NewLogDir(cfg.LogDir),
		Token:         cfg.AuthToken,
		SkipFirstLine: cfg.SkipFirstLine,
		Logger:        logger,
	})
	if cfg.TokenFile == "" {
		return srv, func() {}, nil
	}

	watcher := fs.NewTokenWatcher(cfg.TokenFile, srv.SetToken, logger)
	if err := watcher.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("watch token file: %w", err)
	}
	return srv, watcher.Stop, nil
}
