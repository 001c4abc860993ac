package main

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"creditscores/internal/config"
	"creditscores/internal/logging"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var bindFlag string

	cmd := &cobra.Command{
		Use:           "creditscored",
		Short:         "Credit score API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := config.Load(strings.TrimSpace(configFlag))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if bind := strings.TrimSpace(bindFlag); bind != "" {
				cfg.Server.Bind = bind
				if err := cfg.Validate(); err != nil {
					return fmt.Errorf("validate config: %w", err)
				}
			}

			logger, err := logging.NewFromConfig(cfg, "creditscored")
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			gin.SetMode(gin.ReleaseMode)
			return runServer(cmd.Context(), cfg, logger, nil)
		},
	}

	cmd.Flags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVar(&bindFlag, "bind", "", "Override the listen address (host:port)")
	return cmd
}
