// Package logging assembles structured slog loggers and formatting helpers used
// by the creditscores server and CLI.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so request handlers can tag log
// lines with the request correlation ID and the credit score record they touch.
// The package also provides a no-op logger for tests and wiring code that
// cannot fail.
package logging
