// Package logging is the structured logger shared by the goal bingo client
// and server.
package logging

import "context"

// Logger writes leveled records tagged with key/value attributes:
//
//	log.Info(ctx, "board saved", "board_id", id, "cells", n)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With binds attributes to every record of the returned logger.
	With(args ...any) Logger
}
