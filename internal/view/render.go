package view

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"creditscores/internal/api"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// Alignment selects column alignment for RenderTable.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// RenderTable draws rows under headers using the rounded table style.
func RenderTable(headers []string, rows [][]string, aligns []Alignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// RecordsTable renders records as Score, User ID, ID, Created.
func RecordsTable(records []api.CreditScore) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.FormatInt(rec.Score, 10),
			strconv.FormatInt(rec.UserID, 10),
			strconv.FormatInt(rec.ID, 10),
			rec.CreatedAt,
		})
	}
	return RenderTable(
		[]string{"Score", "User ID", "ID", "Created"},
		rows,
		[]Alignment{AlignRight, AlignRight, AlignRight, AlignLeft},
	)
}

// NotificationLine formats a notification as "[Severity] message".
func NotificationLine(n *Notification, colorize bool) string {
	if n == nil {
		return ""
	}
	label := cases.Title(language.Und).String(string(n.Severity))
	line := fmt.Sprintf("[%s] %s", label, n.Message)
	if !colorize {
		return line
	}
	switch n.Severity {
	case SeveritySuccess:
		return ansiGreen + line + ansiReset
	case SeverityError:
		return ansiRed + line + ansiReset
	default:
		return line
	}
}

// FormLine summarizes the open form, or returns "" when it is closed.
func FormLine(f Form) string {
	if !f.Open {
		return ""
	}
	if f.Mode == ModeUpdate {
		return fmt.Sprintf("Update credit score %d: score=%q user_id=%s", f.UpdateID, f.Score, f.UserID)
	}
	return fmt.Sprintf("Add credit score: score=%q user_id=%q", f.Score, f.UserID)
}

// Render writes the board: records table, notification, and form summary.
func (b *Board) Render(w io.Writer, colorize bool) error {
	records := b.Records()
	note := b.Notification()
	form := b.Form()

	var sb strings.Builder
	if len(records) == 0 {
		sb.WriteString("No credit scores.\n")
	} else {
		sb.WriteString(RecordsTable(records))
		sb.WriteString("\n")
	}
	if line := NotificationLine(note, colorize); line != "" {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if line := FormLine(form); line != "" {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// ShouldColorize reports whether writer is a terminal.
func ShouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
