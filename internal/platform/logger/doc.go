// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package with a configurable level
// and either text or JSON output. Logs go to stderr because stdout belongs to
// the interactive drill. A logger can travel with a context.Context so every
// component of a session logs the same session ID.
package logger
