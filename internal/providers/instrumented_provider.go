package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
	"github.com/makeadle/dle-service/internal/logging"
	"github.com/makeadle/dle-service/internal/metrics"
)

// instrumentedScorer logs and records metrics for every scorer call.
type instrumentedScorer struct {
	inner    Scorer
	logger   *slog.Logger
	metrics  *metrics.Recorder
	provider string
}

// NewInstrumentedScorer wraps inner with structured logging and call metrics.
func NewInstrumentedScorer(inner Scorer, logger *slog.Logger, recorder *metrics.Recorder, provider string) Scorer {
	return &instrumentedScorer{
		inner:    inner,
		logger:   logger,
		metrics:  recorder,
		provider: provider,
	}
}

func (s *instrumentedScorer) FetchTopicBySlug(ctx context.Context, slug string) (catalog.Topic, error) {
	return observe(ctx, s, OpFetchTopic, func() (catalog.Topic, error) {
		return s.inner.FetchTopicBySlug(ctx, slug)
	}, slog.String(logging.FieldTopic, slug))
}

func (s *instrumentedScorer) FetchModes(ctx context.Context, topicID int64) ([]catalog.Mode, error) {
	return observe(ctx, s, OpFetchModes, func() ([]catalog.Mode, error) {
		return s.inner.FetchModes(ctx, topicID)
	}, slog.Int64("topic_id", topicID))
}

func (s *instrumentedScorer) FetchAnswers(ctx context.Context, topicID int64) ([]catalog.Answer, error) {
	return observe(ctx, s, OpFetchAnswers, func() ([]catalog.Answer, error) {
		return s.inner.FetchAnswers(ctx, topicID)
	}, slog.Int64("topic_id", topicID))
}

func (s *instrumentedScorer) FetchDailyGame(ctx context.Context, modeID int64) (dailygame.DailyGame, error) {
	return observe(ctx, s, OpFetchDaily, func() (dailygame.DailyGame, error) {
		return s.inner.FetchDailyGame(ctx, modeID)
	}, slog.Int64(logging.FieldModeID, modeID))
}

func (s *instrumentedScorer) FetchAttemptHistory(ctx context.Context, dailyGameID string) ([]dailygame.Attempt, error) {
	return observe(ctx, s, OpFetchHistory, func() ([]dailygame.Attempt, error) {
		return s.inner.FetchAttemptHistory(ctx, dailyGameID)
	}, slog.String(logging.FieldDailyGameID, dailyGameID))
}

func (s *instrumentedScorer) SubmitGuess(ctx context.Context, dailyGameID string, answerID int64) (dailygame.GuessResult, error) {
	return observe(ctx, s, OpSubmitGuess, func() (dailygame.GuessResult, error) {
		return s.inner.SubmitGuess(ctx, dailyGameID, answerID)
	}, slog.String(logging.FieldDailyGameID, dailyGameID), slog.Int64(logging.FieldAnswerID, answerID))
}

func observe[T any](ctx context.Context, s *instrumentedScorer, op string, call func() (T, error), attrs ...any) (T, error) {
	start := time.Now()
	res, err := call()
	duration := time.Since(start)
	s.metrics.RecordScorerCall(s.provider, op, duration, err)

	logger := logging.FromContext(ctx, s.logger)
	if logger == nil {
		return res, err
	}
	args := append(attrs,
		slog.String(logging.FieldProvider, s.provider),
		slog.String(logging.FieldOperation, op),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	if err != nil {
		args = append(args, slog.String(logging.FieldErrorKind, Kind(err)), slog.Any("error", err))
		logger.Log(ctx, slog.LevelWarn, "scorer call failed", args...)
		return res, err
	}
	logger.Log(ctx, slog.LevelDebug, "scorer call", args...)
	return res, nil
}
