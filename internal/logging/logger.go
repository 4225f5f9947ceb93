package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON stdout logger at level as the slog default and
// returns its handler so it can be fanned out later.
func Setup(level slog.Level) slog.Handler {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	return handler
}
