package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/gofrs/flock"

	"creditscores/internal/api"
	"creditscores/internal/config"
	"creditscores/internal/logging"
	"creditscores/internal/preflight"
	"creditscores/internal/scores"
)

// Daemon owns the API server and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *scores.Store
	api    *apiServer

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	DatabasePath string
	LockFilePath string
	APIAddress   string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store *scores.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil {
		return nil, errors.New("daemon requires config and store")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	svc := api.NewCreditScoreService(store)
	srv, err := newAPIServer(cfg, svc, logging.NewComponentLogger(logger, "api-server"))
	if err != nil {
		return nil, err
	}

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		api:      srv,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and begins serving HTTP.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if check := preflight.CheckDirectoryAccess("Data directory", d.cfg.Paths.DataDir); !check.Passed {
		return fmt.Errorf("preflight: %s", check.Detail)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another creditscored instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.api.start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return fmt.Errorf("start api server: %w", err)
	}
	d.cancel = cancel

	d.running.Store(true)
	d.logger.Info("creditscored started",
		logging.String("lock", d.lockPath),
		logging.String("database", d.store.Path()),
		logging.String("address", d.api.address()),
	)
	return nil
}

// Stop shuts down the API server and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "daemon_lock",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove "+d.lockPath+" if no server is running"),
		)
	}
	d.running.Store(false)
	d.logger.Info("creditscored stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Status reports current daemon state.
func (d *Daemon) Status(context.Context) Status {
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		DatabasePath: d.store.Path(),
		LockFilePath: d.lockPath,
		APIAddress:   d.api.address(),
	}
}

// Addr returns the address the API server is listening on, or "" when stopped.
func (d *Daemon) Addr() string {
	return d.api.address()
}

// Handler exposes the HTTP routes without a listener.
func (d *Daemon) Handler() http.Handler {
	return d.api.engine
}
