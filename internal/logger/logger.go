package logger

import (
	"log/slog"
	"os"
	"sync"

	"notekeep/internal/config"
)

var (
	singleton *slog.Logger
	once      sync.Once
)

// Init builds the process-wide logger from config. The first successful call
// wins; later calls return the same instance.
func Init(cfg config.Config) (*slog.Logger, error) {
	once.Do(func() {
		opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

		var handler slog.Handler
		if cfg.LogFormat == "text" {
			handler = slog.NewTextHandler(os.Stdout, opts)
		} else {
			handler = slog.NewJSONHandler(os.Stdout, opts)
		}

		singleton = slog.New(handler)
	})

	return singleton, nil
}

// L returns the singleton logger. Init must be called first, otherwise
// this returns nil.
func L() *slog.Logger {
	return singleton
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
