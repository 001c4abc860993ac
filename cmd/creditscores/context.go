package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"creditscores/internal/client"
	"creditscores/internal/config"
	"creditscores/internal/logging"
	"creditscores/internal/view"
)

type commandContext struct {
	configFlag *string
	serverFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, serverFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		serverFlag: serverFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.serverFlag != nil {
			if server := strings.TrimRight(strings.TrimSpace(*c.serverFlag), "/"); server != "" {
				cfg.Client.ServerURL = server
				if err := cfg.Validate(); err != nil {
					c.configErr = err
					return
				}
			}
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// cliLogger writes to <log_dir>/creditscores.log so terminal output stays
// clean. It falls back to a no-op logger when the file cannot be opened.
func (c *commandContext) cliLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		c.logger = logging.NewNop()
		cfg, err := c.ensureConfig()
		if err != nil || cfg.Paths.LogDir == "" {
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			return
		}
		logPath := filepath.Join(cfg.Paths.LogDir, "creditscores.log")
		logger, err := logging.New(logging.Options{
			Level:            cfg.Logging.Level,
			Format:           cfg.Logging.Format,
			OutputPaths:      []string{logPath},
			ErrorOutputPaths: []string{logPath},
		})
		if err == nil {
			c.logger = logger
		}
	})
	return c.logger
}

func (c *commandContext) apiClient() (*client.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return client.NewFromConfig(cfg, client.WithLogger(c.cliLogger())), nil
}

func (c *commandContext) newBoard() (*view.Board, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	apiClient, err := c.apiClient()
	if err != nil {
		return nil, err
	}
	return view.NewBoard(apiClient,
		view.WithLogger(c.cliLogger()),
		view.WithNotificationLifetime(cfg.NotificationLifetime()),
	), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func parseRecordID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid credit score id %q", raw)
	}
	return id, nil
}
