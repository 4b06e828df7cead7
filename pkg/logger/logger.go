package logger

import (
	"log/slog"
	"os"
)

// Log is the process-wide logger. Usable before Init; Init replaces it
// with the level configured for the environment.
var Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init sets up the global JSON logger. Debug level everywhere except
// production, where Info cuts the noise.
func Init(env string) {
	level := slog.LevelDebug
	if env == "production" {
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler)
}
