package providers

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
)

// stubScorer counts calls per operation and fails the first `failures` calls of each.
type stubScorer struct {
	mu       sync.Mutex
	calls    map[string]int
	failures int
	err      error
	delay    time.Duration
	inflight atomic.Int32
}

func newStubScorer(failures int, err error) *stubScorer {
	return &stubScorer{calls: map[string]int{}, failures: failures, err: err}
}

func (s *stubScorer) hit(op string) error {
	s.inflight.Add(1)
	defer s.inflight.Add(-1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	if s.calls[op] <= s.failures {
		return s.err
	}
	return nil
}

func (s *stubScorer) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubScorer) FetchTopicBySlug(ctx context.Context, slug string) (catalog.Topic, error) {
	if err := s.hit(OpFetchTopic); err != nil {
		return catalog.Topic{}, err
	}
	return catalog.Topic{ID: 1, Slug: slug, Title: "Mobiledle"}, nil
}

func (s *stubScorer) FetchModes(ctx context.Context, topicID int64) ([]catalog.Mode, error) {
	if err := s.hit(OpFetchModes); err != nil {
		return nil, err
	}
	return []catalog.Mode{{ID: 10, TopicID: topicID, Kind: catalog.KindWordle}}, nil
}

func (s *stubScorer) FetchAnswers(ctx context.Context, topicID int64) ([]catalog.Answer, error) {
	if err := s.hit(OpFetchAnswers); err != nil {
		return nil, err
	}
	return []catalog.Answer{{ID: 1, Name: "Layla"}}, nil
}

func (s *stubScorer) FetchDailyGame(ctx context.Context, modeID int64) (dailygame.DailyGame, error) {
	if err := s.hit(OpFetchDaily); err != nil {
		return dailygame.DailyGame{}, err
	}
	return dailygame.DailyGame{ID: "dg-1", ModeID: modeID}, nil
}

func (s *stubScorer) FetchAttemptHistory(ctx context.Context, dailyGameID string) ([]dailygame.Attempt, error) {
	if err := s.hit(OpFetchHistory); err != nil {
		return nil, err
	}
	return []dailygame.Attempt{}, nil
}

func (s *stubScorer) SubmitGuess(ctx context.Context, dailyGameID string, answerID int64) (dailygame.GuessResult, error) {
	if err := s.hit(OpSubmitGuess); err != nil {
		return dailygame.GuessResult{}, err
	}
	return dailygame.GuessResult{Attempt: dailygame.Attempt{Answer: catalog.Answer{ID: answerID}}}, nil
}
