package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls log level and the rotating file sink.
type Config struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	Level      string
}

var initOnce sync.Once

// Init sets up the process-wide logger once: line-oriented text output to
// stderr and to a size-rotated file. Later calls are no-ops; the logger is
// never torn down.
func Init(cfg Config) *slog.Logger {
	initOnce.Do(func() {
		sinks := []io.Writer{os.Stderr}
		if cfg.File != "" {
			sinks = append(sinks, &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSizeMB,
				MaxBackups: cfg.MaxBackups,
			})
		}
		handler := slog.NewTextHandler(io.MultiWriter(sinks...), &slog.HandlerOptions{
			Level: parseLevel(cfg.Level),
		})
		slog.SetDefault(slog.New(handler))
	})
	return slog.Default()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
