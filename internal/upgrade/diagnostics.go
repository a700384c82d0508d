package upgrade

import (
	"context"
	"log/slog"
)

// LevelTrace sits below slog.LevelDebug for per-item detail.
const LevelTrace = slog.LevelDebug - 4

// Diagnostics receives structured trace and debug output from the evaluator.
// It never influences a decision. *slog.Logger satisfies it.
type Diagnostics interface {
	Log(ctx context.Context, level slog.Level, msg string, args ...any)
}
