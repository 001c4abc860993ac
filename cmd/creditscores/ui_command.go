package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"creditscores/internal/view"
)

const uiHelp = `Commands:
  add            open the add form
  edit <id>      open the edit form for a record
  delete <id>    delete a record
  refresh        reload records from the server
  help           show this help
  quit           leave
At a form prompt, enter "cancel" to close the form.`

func newUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Interactive credit score screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := ctx.newBoard()
			if err != nil {
				return err
			}
			session := &uiSession{
				board:    board,
				in:       bufio.NewScanner(cmd.InOrStdin()),
				out:      cmd.OutOrStdout(),
				colorize: view.ShouldColorize(cmd.OutOrStdout()),
			}
			return session.run(cmd)
		},
	}
}

type uiSession struct {
	board    *view.Board
	in       *bufio.Scanner
	out      io.Writer
	colorize bool
}

func (s *uiSession) run(cmd *cobra.Command) error {
	runCtx := cmd.Context()
	_ = s.board.Mount(runCtx)
	s.render()

	for {
		if err := runCtx.Err(); err != nil {
			return err
		}
		line, ok := s.prompt("> ")
		if !ok {
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprintln(s.out, uiHelp)
			continue
		case "refresh":
			_ = s.board.Mount(runCtx)
		case "add":
			s.board.OpenAdd()
			s.submitForm(runCtx, s.fillAddForm)
		case "edit":
			id, err := s.idArgument(fields)
			if err != nil {
				fmt.Fprintln(s.out, err)
				continue
			}
			if err := s.board.OpenEdit(id); err != nil {
				fmt.Fprintln(s.out, err)
				continue
			}
			s.submitForm(runCtx, s.fillEditForm)
		case "delete", "rm":
			id, err := s.idArgument(fields)
			if err != nil {
				fmt.Fprintln(s.out, err)
				continue
			}
			_ = s.board.Delete(runCtx, id)
		default:
			fmt.Fprintf(s.out, "unknown command %q (type help)\n", fields[0])
			continue
		}
		s.render()
	}
}

// submitForm keeps prompting while the form stays open. A failed submit
// leaves the form open so the operator can correct the input.
func (s *uiSession) submitForm(ctx context.Context, fill func() bool) {
	for s.board.Form().Open {
		if !fill() {
			s.board.CloseForm()
			return
		}
		if err := s.board.Submit(ctx); err != nil {
			if line := view.NotificationLine(s.board.Notification(), s.colorize); line != "" {
				fmt.Fprintln(s.out, line)
			}
		}
	}
}

// fillAddForm reads the add form fields. It returns false on cancel or EOF.
func (s *uiSession) fillAddForm() bool {
	score, ok := s.formField("Score: ")
	if !ok {
		return false
	}
	s.board.SetScore(score)
	userID, ok := s.formField("User ID: ")
	if !ok {
		return false
	}
	s.board.SetUserID(userID)
	return true
}

// fillEditForm reads a new score; an empty answer keeps the current value.
func (s *uiSession) fillEditForm() bool {
	current := s.board.Form().Score
	score, ok := s.formField(fmt.Sprintf("Score [%s]: ", current))
	if !ok {
		return false
	}
	if strings.TrimSpace(score) != "" {
		s.board.SetScore(score)
	}
	return true
}

func (s *uiSession) formField(label string) (string, bool) {
	value, ok := s.prompt(label)
	if !ok || strings.EqualFold(strings.TrimSpace(value), "cancel") {
		return "", false
	}
	return value, true
}

func (s *uiSession) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		fmt.Fprintln(s.out)
		return "", false
	}
	return s.in.Text(), true
}

func (s *uiSession) idArgument(fields []string) (int64, error) {
	if len(fields) < 2 {
		return 0, fmt.Errorf("usage: %s <id>", fields[0])
	}
	return parseRecordID(fields[1])
}

func (s *uiSession) render() {
	if err := s.board.Render(s.out, s.colorize); err != nil {
		fmt.Fprintln(s.out, err)
	}
}
