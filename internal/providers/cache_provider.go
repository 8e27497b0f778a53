package providers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
)

const defaultCatalogTTL = 5 * time.Minute

type cacheEntry struct {
	value   any
	expires time.Time
}

// cachingScorer keeps topic catalogue reads in memory for a short TTL and
// collapses concurrent identical reads into one upstream call. Daily games,
// history and guesses are per-player and always pass through.
type cachingScorer struct {
	inner Scorer
	ttl   time.Duration
	now   func() time.Time

	group   singleflight.Group
	mu      sync.Mutex
	entries map[string]cacheEntry
}

// NewCachingScorer wraps inner with a catalogue cache. A ttl <= 0 uses the default.
func NewCachingScorer(inner Scorer, ttl time.Duration) Scorer {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &cachingScorer{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *cachingScorer) FetchTopicBySlug(ctx context.Context, slug string) (catalog.Topic, error) {
	return cached(c, "topic:"+slug, func() (catalog.Topic, error) {
		return c.inner.FetchTopicBySlug(ctx, slug)
	})
}

func (c *cachingScorer) FetchModes(ctx context.Context, topicID int64) ([]catalog.Mode, error) {
	return cached(c, fmt.Sprintf("modes:%d", topicID), func() ([]catalog.Mode, error) {
		return c.inner.FetchModes(ctx, topicID)
	})
}

func (c *cachingScorer) FetchAnswers(ctx context.Context, topicID int64) ([]catalog.Answer, error) {
	return cached(c, fmt.Sprintf("answers:%d", topicID), func() ([]catalog.Answer, error) {
		return c.inner.FetchAnswers(ctx, topicID)
	})
}

func (c *cachingScorer) FetchDailyGame(ctx context.Context, modeID int64) (dailygame.DailyGame, error) {
	return c.inner.FetchDailyGame(ctx, modeID)
}

func (c *cachingScorer) FetchAttemptHistory(ctx context.Context, dailyGameID string) ([]dailygame.Attempt, error) {
	return c.inner.FetchAttemptHistory(ctx, dailyGameID)
}

func (c *cachingScorer) SubmitGuess(ctx context.Context, dailyGameID string, answerID int64) (dailygame.GuessResult, error) {
	return c.inner.SubmitGuess(ctx, dailyGameID, answerID)
}

func cached[T any](c *cachingScorer, key string, fetch func() (T, error)) (T, error) {
	if v, ok := c.lookup(key); ok {
		return v.(T), nil
	}
	v, err, _ := c.group.Do(key, func() (any, error) {
		res, err := fetch()
		if err != nil {
			return nil, err
		}
		c.store(key, res)
		return res, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *cachingScorer) lookup(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *cachingScorer) store(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expires: c.now().Add(c.ttl)}
}
