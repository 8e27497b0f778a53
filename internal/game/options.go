package game

import (
	"log/slog"

	"github.com/makeadle/dle-service/internal/domain/catalog"
)

// Config is the catalogue a session plays over.
type Config struct {
	Topic   catalog.Topic
	Modes   []catalog.Mode
	Answers []catalog.Answer
	// InitialModeID selects the starting mode; zero picks the first one.
	InitialModeID int64
	// HistoryOrder is the order the scorer returns attempt history in.
	HistoryOrder HistoryOrder
}

// Navigator is told the new path whenever the session switches mode.
type Navigator func(path string)

// Option customises a Session.
type Option func(*Session)

// WithReporter sets where recovered scorer failures are sent.
func WithReporter(r ErrorReporter) Option {
	return func(s *Session) {
		if r != nil {
			s.reporter = r
		}
	}
}

// WithNavigator registers a callback for path changes.
func WithNavigator(n Navigator) Option {
	return func(s *Session) { s.navigate = n }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics sink.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithStrict makes a guess for a non-candidate panic instead of returning
// ErrUnknownCandidate. Meant for development builds and tests.
func WithStrict(strict bool) Option {
	return func(s *Session) { s.strict = strict }
}
