// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logging builds the process-wide slog logger from configuration.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/constants"
)

// Output formats accepted by LOG_FORMAT.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Options selects the handler, the minimum level and the destination.
type Options struct {
	Level  string
	Format string
	Writer io.Writer
}

// Init builds a logger from opts, installs it as the default and returns it.
func Init(opts Options) *slog.Logger {
	logger := New(opts).With(
		slog.String("app", constants.AppName),
		slog.String("version", constants.AppVersion),
	)
	slog.SetDefault(logger)
	return logger
}

// New builds a logger from opts without touching the global default.
func New(opts Options) *slog.Logger {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	handlerOptions := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	if strings.EqualFold(strings.TrimSpace(opts.Format), FormatText) {
		return slog.New(slog.NewTextHandler(writer, handlerOptions))
	}
	return slog.New(slog.NewJSONHandler(writer, handlerOptions))
}

// ParseLevel maps debug/info/warn/error to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
