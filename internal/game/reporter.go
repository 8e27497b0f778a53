package game

import (
	"context"
	"log/slog"

	"github.com/makeadle/dle-service/internal/logging"
	"github.com/makeadle/dle-service/internal/providers"
)

// ErrorReporter receives scorer failures the controller recovered from.
type ErrorReporter interface {
	Report(ctx context.Context, op string, err error)
}

// ReporterFunc adapts a function to ErrorReporter.
type ReporterFunc func(ctx context.Context, op string, err error)

func (f ReporterFunc) Report(ctx context.Context, op string, err error) { f(ctx, op, err) }

type logReporter struct {
	logger *slog.Logger
}

// NewLogReporter reports failures as warnings tagged with their error kind.
func NewLogReporter(logger *slog.Logger) ErrorReporter {
	return logReporter{logger: logger}
}

func (r logReporter) Report(ctx context.Context, op string, err error) {
	logger := logging.FromContext(ctx, r.logger)
	logging.Warn(logger, "game scorer failure",
		logging.FieldOperation, op,
		logging.FieldErrorKind, providers.Kind(err),
		"err", err,
	)
}

// Recorder receives game metrics. *metrics.Recorder implements it.
type Recorder interface {
	RecordGuess(result string)
	RecordWin(modeKind string)
	RecordModeSwitch()
}

type nopRecorder struct{}

func (nopRecorder) RecordGuess(string) {}
func (nopRecorder) RecordWin(string)   {}
func (nopRecorder) RecordModeSwitch()  {}
