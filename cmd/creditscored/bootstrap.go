package main

import (
	"context"
	"fmt"
	"log/slog"

	"creditscores/internal/config"
	"creditscores/internal/daemon"
	"creditscores/internal/logging"
	"creditscores/internal/scores"
)

// runServer opens the store, serves the API until ctx is cancelled, and then
// shuts everything down. onReady, when set, receives the listen address.
func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger, onReady func(addr string)) error {
	if logger == nil {
		logger = logging.NewNop()
	}

	store, err := scores.Open(cfg)
	if err != nil {
		logging.ErrorWithContext(logger, "open credit score store", "store_open",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check data_dir permissions"),
		)
		return fmt.Errorf("open store: %w", err)
	}

	d, err := daemon.New(cfg, store, logger)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		return err
	}
	if onReady != nil {
		onReady(d.Addr())
	}

	<-ctx.Done()
	logger.Info("creditscored shutting down")
	return nil
}
