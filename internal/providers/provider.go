package providers

import (
	"context"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
)

// CatalogProvider reads the topic data needed to open a game session.
type CatalogProvider interface {
	FetchTopicBySlug(ctx context.Context, slug string) (catalog.Topic, error)
	FetchModes(ctx context.Context, topicID int64) ([]catalog.Mode, error)
	FetchAnswers(ctx context.Context, topicID int64) ([]catalog.Answer, error)
}

// GameScorer is the authoritative remote scorer of daily games.
// FetchAttemptHistory returns attempts in the scorer's native order; callers
// normalize it.
type GameScorer interface {
	FetchDailyGame(ctx context.Context, modeID int64) (dailygame.DailyGame, error)
	FetchAttemptHistory(ctx context.Context, dailyGameID string) ([]dailygame.Attempt, error)
	SubmitGuess(ctx context.Context, dailyGameID string, answerID int64) (dailygame.GuessResult, error)
}

// Scorer combines all scorer capabilities.
type Scorer interface {
	CatalogProvider
	GameScorer
}

// Operation names used in logs, metrics and errors.
const (
	OpFetchTopic   = "FetchTopicBySlug"
	OpFetchModes   = "FetchModes"
	OpFetchAnswers = "FetchAnswers"
	OpFetchDaily   = "FetchDailyGame"
	OpFetchHistory = "FetchAttemptHistory"
	OpSubmitGuess  = "SubmitGuess"
)
