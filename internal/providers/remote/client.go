package remote

import (
	"context"
	"net/http"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
	"github.com/makeadle/dle-service/internal/providers"
)

// Config controls how the client reaches the scorer.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// Client talks to the remote scorer over its JSON RPC surface and maps replies
// to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
}

var _ providers.Scorer = (*Client)(nil)

// NewClient constructs a scorer client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// FetchTopicBySlug resolves a topic from its public slug.
func (c *Client) FetchTopicBySlug(ctx context.Context, slug string) (catalog.Topic, error) {
	var resp topicResponse
	if err := c.call(ctx, providers.OpFetchTopic, topicService, "GetTopicBySlug", slugRequest{Slug: slug}, &resp); err != nil {
		return catalog.Topic{}, err
	}
	return mapTopic(resp.Topic)
}

// FetchModes lists the modes of a topic in display order.
func (c *Client) FetchModes(ctx context.Context, topicID int64) ([]catalog.Mode, error) {
	var resp modesResponse
	if err := c.call(ctx, providers.OpFetchModes, modeService, "ListModesByTopicId", topicIDRequest{TopicID: topicID}, &resp); err != nil {
		return nil, err
	}
	return mapModes(resp.Modes)
}

// FetchAnswers lists every answer of a topic with its attributes.
func (c *Client) FetchAnswers(ctx context.Context, topicID int64) ([]catalog.Answer, error) {
	var resp answersResponse
	if err := c.call(ctx, providers.OpFetchAnswers, answerService, "ListDetailAnswersByTopicId", topicIDRequest{TopicID: topicID}, &resp); err != nil {
		return nil, err
	}
	return mapAnswers(resp.DetailAnswers)
}

// FetchDailyGame returns today's game for a mode.
func (c *Client) FetchDailyGame(ctx context.Context, modeID int64) (dailygame.DailyGame, error) {
	var resp dailyGameResponse
	if err := c.call(ctx, providers.OpFetchDaily, dailyGameService, "GetPublicDailyGame", modeIDRequest{ModeID: modeID}, &resp); err != nil {
		return dailygame.DailyGame{}, err
	}
	return mapDailyGame(resp.DailyGame, resp.Clues)
}

// FetchAttemptHistory returns the attempts already made against a daily game in
// the order the scorer stores them.
func (c *Client) FetchAttemptHistory(ctx context.Context, dailyGameID string) ([]dailygame.Attempt, error) {
	var resp historyResponse
	if err := c.call(ctx, providers.OpFetchHistory, dailyGameService, "ListAttemptsByDailyGameId", dailyGameRequest{DailyGameID: dailyGameID}, &resp); err != nil {
		return nil, err
	}
	attempts := make([]dailygame.Attempt, 0, len(resp.Attempts))
	for i := range resp.Attempts {
		a, err := mapAttempt(&resp.Attempts[i])
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

// SubmitGuess scores one guess against a daily game.
func (c *Client) SubmitGuess(ctx context.Context, dailyGameID string, answerID int64) (dailygame.GuessResult, error) {
	var resp attemptResponse
	req := attemptRequest{DailyGameID: dailyGameID, AnswerID: answerID}
	if err := c.call(ctx, providers.OpSubmitGuess, dailyGameService, "AttemptAnswer", req, &resp); err != nil {
		return dailygame.GuessResult{}, err
	}
	attempt, err := mapAttempt(resp.AttemptDetailAnswer)
	if err != nil {
		return dailygame.GuessResult{}, err
	}
	clues, err := mapClues(resp.Clues)
	if err != nil {
		return dailygame.GuessResult{}, err
	}
	return dailygame.GuessResult{Attempt: attempt, Clues: clues}, nil
}
