package main

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"word-explainer/internal/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogger creates a logger based on configuration. When stdoutReserved is
// set, a configured stdout output is redirected to stderr.
func setupLogger(cfg *config.Config, stdoutReserved bool) (*slog.Logger, func()) {
	var writers []io.Writer
	var closers []io.Closer

	for _, output := range strings.Split(cfg.Log.Output, ",") {
		output = strings.TrimSpace(output)
		if output == "" {
			continue
		}

		var w io.Writer
		switch output {
		case "stderr":
			w = os.Stderr
		case "stdout":
			if stdoutReserved {
				w = os.Stderr
			} else {
				w = os.Stdout
			}
		default:
			// Use lumberjack for log rotation
			l := &lumberjack.Logger{
				Filename:   output,
				MaxSize:    cfg.Log.Rotation.MaxSize,
				MaxBackups: cfg.Log.Rotation.MaxBackups,
				MaxAge:     cfg.Log.Rotation.MaxAge,
				Compress:   cfg.Log.Rotation.Compress,
			}
			w = l
			closers = append(closers, l)
		}
		writers = append(writers, w)
	}

	if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	multiWriter := io.MultiWriter(writers...)
	opts := &slog.HandlerOptions{Level: cfg.GetLogLevel()}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(multiWriter, opts)
	} else {
		handler = slog.NewTextHandler(multiWriter, opts)
	}

	cleanup := func() {
		for _, c := range closers {
			c.Close()
		}
	}

	return slog.New(handler), cleanup
}
