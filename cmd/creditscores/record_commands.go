package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"creditscores/internal/api"
	"creditscores/internal/client"
	"creditscores/internal/view"
)

func newRecordCommands(ctx *commandContext) []*cobra.Command {
	return []*cobra.Command{
		newListCommand(ctx),
		newShowCommand(ctx),
		newAddCommand(ctx),
		newEditCommand(ctx),
		newDeleteCommand(ctx),
	}
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List credit score records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				apiClient, err := ctx.apiClient()
				if err != nil {
					return err
				}
				records, err := apiClient.List(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd, api.CreditScoreListResponse{CreditScores: records})
			}

			board, err := ctx.newBoard()
			if err != nil {
				return err
			}
			mountErr := board.Mount(cmd.Context())
			out := cmd.OutOrStdout()
			if err := board.Render(out, view.ShouldColorize(out)); err != nil {
				return err
			}
			return mountErr
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one credit score record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			apiClient, err := ctx.apiClient()
			if err != nil {
				return err
			}
			record, err := apiClient.Get(cmd.Context(), id)
			if errors.Is(err, client.ErrNotFound) {
				return fmt.Errorf("credit score %d not found", id)
			}
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, api.CreditScoreResponse{CreditScore: *record})
			}
			fmt.Fprintln(cmd.OutOrStdout(), view.RecordsTable([]api.CreditScore{*record}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var score, userID string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a credit score record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := ctx.newBoard()
			if err != nil {
				return err
			}
			board.OpenAdd()
			board.SetScore(score)
			board.SetUserID(userID)
			submitErr := board.Submit(cmd.Context())
			printNotification(cmd, board)
			if submitErr != nil {
				return submitErr
			}
			if records := board.Records(); len(records) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), view.RecordsTable(records[len(records)-1:]))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&score, "score", "", "Credit score value")
	cmd.Flags().StringVar(&userID, "user-id", "", "User the score belongs to")
	_ = cmd.MarkFlagRequired("score")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var score string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the score of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			board, err := ctx.newBoard()
			if err != nil {
				return err
			}
			if err := board.Mount(cmd.Context()); err != nil {
				printNotification(cmd, board)
				return err
			}
			if err := board.OpenEdit(id); err != nil {
				return err
			}
			board.SetScore(score)
			submitErr := board.Submit(cmd.Context())
			printNotification(cmd, board)
			return submitErr
		},
	}
	cmd.Flags().StringVar(&score, "score", "", "New credit score value")
	_ = cmd.MarkFlagRequired("score")
	return cmd
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a credit score record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRecordID(args[0])
			if err != nil {
				return err
			}
			board, err := ctx.newBoard()
			if err != nil {
				return err
			}
			deleteErr := board.Delete(cmd.Context(), id)
			printNotification(cmd, board)
			return deleteErr
		},
	}
}

func printNotification(cmd *cobra.Command, board *view.Board) {
	out := cmd.OutOrStdout()
	if line := view.NotificationLine(board.Notification(), view.ShouldColorize(out)); line != "" {
		fmt.Fprintln(out, line)
	}
}
