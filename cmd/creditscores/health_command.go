package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"creditscores/internal/preflight"
	"creditscores/internal/scores"
	"creditscores/internal/view"
)

type healthReport struct {
	Database scores.Health      `json:"database"`
	Checks   []preflight.Result `json:"checks"`
	Healthy  bool               `json:"healthy"`
}

func newHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var skipServer bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the local database and server reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := scores.Open(cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer store.Close()

			dbHealth, dbErr := store.Health(cmd.Context())
			report := healthReport{
				Database: dbHealth,
				Checks:   preflight.RunAll(cmd.Context(), cfg, skipServer),
				Healthy:  dbErr == nil && dbHealth.Healthy(),
			}
			for _, check := range report.Checks {
				if !check.Passed {
					report.Healthy = false
				}
			}

			if jsonOutput {
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				printHealthReport(cmd, report, dbErr)
			}

			if dbErr != nil {
				return fmt.Errorf("database health: %w", dbErr)
			}
			if !report.Healthy {
				return errors.New("health check failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&skipServer, "skip-server", false, "Do not contact the API server")
	return cmd
}

func printHealthReport(cmd *cobra.Command, report healthReport, dbErr error) {
	out := cmd.OutOrStdout()
	colorize := view.ShouldColorize(out)
	db := report.Database

	lines := renderSectionHeader("Database", colorize)
	lines = append(lines,
		renderStatusLine("Path", statusInfo, db.DatabasePath, colorize),
		renderStatusLine("Table", passFail(db.TablePresent), presentLabel(db.TablePresent), colorize),
		renderStatusLine("Schema", passFail(db.SchemaVersion == db.ExpectedSchema),
			fmt.Sprintf("v%d (expected v%d)", db.SchemaVersion, db.ExpectedSchema), colorize),
		renderStatusLine("Records", statusInfo, strconv.FormatInt(db.Records, 10), colorize),
		renderStatusLine("Integrity", passFail(strings.EqualFold(db.IntegrityCheck, "ok")), db.IntegrityCheck, colorize),
	)
	if dbErr != nil {
		lines = append(lines, renderStatusLine("Error", statusError, dbErr.Error(), colorize))
	}

	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Checks", colorize)...)
	for _, check := range report.Checks {
		lines = append(lines, renderStatusLine(check.Name, passFail(check.Passed), check.Detail, colorize))
	}

	fmt.Fprintln(out, strings.Join(lines, "\n"))
}

func presentLabel(ok bool) string {
	if ok {
		return "present"
	}
	return "missing"
}
