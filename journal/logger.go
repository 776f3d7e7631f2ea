package journal

import (
	"log/slog"
	"os"

	"github.com/phsym/console-slog"
)

var logger = slog.New(
	console.NewHandler(os.Stderr, &console.HandlerOptions{Level: slog.LevelWarn}),
)

// SetLogger replaces the package logger, which by default writes WARN and
// above to stderr.
func SetLogger(l *slog.Logger) {
	logger = l
}
