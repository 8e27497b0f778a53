package logging

import (
	"context"
	"log/slog"
)

// Info, Warn and Error are no-ops on a nil logger so optional loggers can be
// passed straight through constructors.
func Info(logger *slog.Logger, msg string, args ...any) {
	log(logger, slog.LevelInfo, msg, args)
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	log(logger, slog.LevelWarn, msg, args)
}

func Debug(logger *slog.Logger, msg string, args ...any) {
	log(logger, slog.LevelDebug, msg, args)
}

// Error appends err under the "error" key when it is non-nil.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err)
	}
	log(logger, slog.LevelError, msg, args)
}

// ForTopic scopes logger to a topic slug.
func ForTopic(logger *slog.Logger, slug string) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	if slug == "" {
		return logger
	}
	return logger.With(FieldTopic, slug)
}

func log(logger *slog.Logger, level slog.Level, msg string, args []any) {
	if logger == nil {
		return
	}
	logger.Log(context.Background(), level, msg, args...)
}
