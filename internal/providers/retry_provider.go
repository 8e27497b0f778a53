package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
	"github.com/makeadle/dle-service/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 2 * time.Second
)

// retryingScorer wraps a Scorer with retry/backoff on idempotent reads.
// Guess submissions are never retried: a duplicate would be a second attempt.
type retryingScorer struct {
	inner       Scorer
	logger      *slog.Logger
	maxAttempts int
	newBackOff  func() backoff.BackOff
}

// NewRetryingScorer wraps the given scorer with retries. If maxAttempts/backoff are <= 0, defaults are used.
func NewRetryingScorer(inner Scorer, logger *slog.Logger, maxAttempts int, initial time.Duration) Scorer {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if initial <= 0 {
		initial = defaultBackoff
	}
	return &retryingScorer{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = initial
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			return b
		},
	}
}

func (r *retryingScorer) FetchTopicBySlug(ctx context.Context, slug string) (catalog.Topic, error) {
	return retryRead(ctx, r, OpFetchTopic, func() (catalog.Topic, error) {
		return r.inner.FetchTopicBySlug(ctx, slug)
	})
}

func (r *retryingScorer) FetchModes(ctx context.Context, topicID int64) ([]catalog.Mode, error) {
	return retryRead(ctx, r, OpFetchModes, func() ([]catalog.Mode, error) {
		return r.inner.FetchModes(ctx, topicID)
	})
}

func (r *retryingScorer) FetchAnswers(ctx context.Context, topicID int64) ([]catalog.Answer, error) {
	return retryRead(ctx, r, OpFetchAnswers, func() ([]catalog.Answer, error) {
		return r.inner.FetchAnswers(ctx, topicID)
	})
}

func (r *retryingScorer) FetchDailyGame(ctx context.Context, modeID int64) (dailygame.DailyGame, error) {
	return retryRead(ctx, r, OpFetchDaily, func() (dailygame.DailyGame, error) {
		return r.inner.FetchDailyGame(ctx, modeID)
	})
}

func (r *retryingScorer) FetchAttemptHistory(ctx context.Context, dailyGameID string) ([]dailygame.Attempt, error) {
	return retryRead(ctx, r, OpFetchHistory, func() ([]dailygame.Attempt, error) {
		return r.inner.FetchAttemptHistory(ctx, dailyGameID)
	})
}

func (r *retryingScorer) SubmitGuess(ctx context.Context, dailyGameID string, answerID int64) (dailygame.GuessResult, error) {
	return r.inner.SubmitGuess(ctx, dailyGameID, answerID)
}

func retryRead[T any](ctx context.Context, r *retryingScorer, op string, fetch func() (T, error)) (T, error) {
	attempt := 0
	operation := func() (T, error) {
		attempt++
		res, err := fetch()
		if err != nil && !Retryable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}
	notify := func(err error, delay time.Duration) {
		logger := logging.FromContext(ctx, r.logger)
		logging.Warn(logger, "scorer read retry",
			logging.FieldOperation, op,
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay_ms", delay.Milliseconds(),
			"err", err,
		)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), uint64(r.maxAttempts-1)), ctx)
	return backoff.RetryNotifyWithData[T](operation, policy, notify)
}
