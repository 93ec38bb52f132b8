//go:build !dev

// Package mcplogdlog mirrors log records to a local mcplogd daemon in
// development builds (-tags dev). Release builds leave the handler untouched.
package mcplogdlog

import "log/slog"

// Wrap returns next unchanged.
func Wrap(next slog.Handler) slog.Handler {
	return next
}
