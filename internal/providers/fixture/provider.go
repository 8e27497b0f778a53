package fixture

import (
	"context"
	"fmt"
	"hash/fnv"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
	"github.com/makeadle/dle-service/internal/providers"
	"github.com/makeadle/dle-service/internal/timeutil"
)

// Service error codes returned by the fixture scorer.
const (
	CodeDailyGameNotFound = "04"
	CodeUnknownAnswer     = "05"
	CodeAlreadyAttempted  = "06"
	CodeAlreadySolved     = "40"
)

// voiceAttribute names the attribute holding an answer's audio clue.
const voiceAttribute = "Voice"

type modeRef struct {
	mode  catalog.Mode
	topic *TopicData
}

type game struct {
	daily    dailygame.DailyGame
	mode     catalog.Mode
	secret   catalog.Answer
	topic    *TopicData
	attempts []dailygame.Attempt
	solved   bool
}

// Provider scores guesses locally against a Dataset. Each FetchDailyGame call
// issues a fresh token, so every caller plays its own copy of the day's game.
// History is returned oldest-first.
type Provider struct {
	mu       sync.Mutex
	bySlug   map[string]*TopicData
	byID     map[int64]*TopicData
	modes    map[int64]modeRef
	games    map[string]*game
	now      func() time.Time
	loc      *time.Location
	newToken func() string
}

var _ providers.Scorer = (*Provider)(nil)

// Option customises a Provider.
type Option func(*Provider)

// WithClock overrides the time source used to pick the day's secret.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLocation sets the zone in which daily games roll over.
func WithLocation(loc *time.Location) Option {
	return func(p *Provider) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// New creates a fixture scorer serving ds.
func New(ds *Dataset, opts ...Option) *Provider {
	p := &Provider{
		bySlug:   make(map[string]*TopicData),
		byID:     make(map[int64]*TopicData),
		modes:    make(map[int64]modeRef),
		games:    make(map[string]*game),
		now:      time.Now,
		loc:      time.UTC,
		newToken: uuid.NewString,
	}
	if ds != nil {
		for i := range ds.Topics {
			t := &ds.Topics[i]
			p.bySlug[t.Slug] = t
			p.byID[t.ID] = t
			for _, m := range t.Modes {
				p.modes[m.ID] = modeRef{mode: m, topic: t}
			}
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FetchTopicBySlug returns the topic with the given slug.
func (p *Provider) FetchTopicBySlug(ctx context.Context, slug string) (catalog.Topic, error) {
	t, ok := p.bySlug[slug]
	if !ok {
		return catalog.Topic{}, fmt.Errorf("topic %q: %w", slug, providers.ErrNotFound)
	}
	return t.Topic, nil
}

// FetchModes returns a topic's modes in display order.
func (p *Provider) FetchModes(ctx context.Context, topicID int64) ([]catalog.Mode, error) {
	t, ok := p.byID[topicID]
	if !ok {
		return nil, fmt.Errorf("topic %d: %w", topicID, providers.ErrNotFound)
	}
	modes := make([]catalog.Mode, len(t.Modes))
	for i, m := range t.Modes {
		m.AnswerTypes = slices.Clone(m.AnswerTypes)
		m.Categories = slices.Clone(m.Categories)
		modes[i] = m
	}
	return modes, nil
}

// FetchAnswers returns every answer of a topic.
func (p *Provider) FetchAnswers(ctx context.Context, topicID int64) ([]catalog.Answer, error) {
	t, ok := p.byID[topicID]
	if !ok {
		return nil, fmt.Errorf("topic %d: %w", topicID, providers.ErrNotFound)
	}
	answers := make([]catalog.Answer, len(t.Answers))
	for i, a := range t.Answers {
		answers[i] = publicAnswer(a)
	}
	return answers, nil
}

// FetchDailyGame opens a new play of today's game for a mode.
func (p *Provider) FetchDailyGame(ctx context.Context, modeID int64) (dailygame.DailyGame, error) {
	ref, ok := p.modes[modeID]
	if !ok {
		return dailygame.DailyGame{}, fmt.Errorf("mode %d: %w", modeID, providers.ErrNotFound)
	}
	day := timeutil.Day(p.now(), p.loc)
	secret, ok := pickSecret(ref.topic.Answers, ref.mode, day)
	if !ok {
		return dailygame.DailyGame{}, fmt.Errorf("mode %d has no eligible answers: %w", modeID, providers.ErrNotFound)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	g := &game{
		daily:  dailygame.DailyGame{ID: p.newToken(), ModeID: modeID, Date: day},
		mode:   ref.mode,
		secret: secret,
		topic:  ref.topic,
	}
	g.daily.Clues = clues(g)
	p.games[g.daily.ID] = g
	return g.daily, nil
}

// FetchAttemptHistory returns the attempts made against a daily game, oldest first.
func (p *Provider) FetchAttemptHistory(ctx context.Context, dailyGameID string) ([]dailygame.Attempt, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.games[dailyGameID]
	if !ok {
		return nil, &providers.ServiceError{Op: providers.OpFetchHistory, Code: CodeDailyGameNotFound, Desc: "daily game not found"}
	}
	return slices.Clone(g.attempts), nil
}

// SubmitGuess scores answerID against the daily game's secret.
func (p *Provider) SubmitGuess(ctx context.Context, dailyGameID string, answerID int64) (dailygame.GuessResult, error) {
	if err := ctx.Err(); err != nil {
		return dailygame.GuessResult{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	g, ok := p.games[dailyGameID]
	if !ok {
		return dailygame.GuessResult{}, &providers.ServiceError{Op: providers.OpSubmitGuess, Code: CodeDailyGameNotFound, Desc: "daily game not found"}
	}
	if g.solved {
		return dailygame.GuessResult{}, &providers.ServiceError{Op: providers.OpSubmitGuess, Code: CodeAlreadySolved, Desc: "daily game already solved"}
	}
	guess, ok := findAnswer(g.topic.Answers, answerID)
	if !ok || !g.mode.Accepts(guess.AnswerType) {
		return dailygame.GuessResult{}, &providers.ServiceError{Op: providers.OpSubmitGuess, Code: CodeUnknownAnswer, Desc: "answer not playable in this mode"}
	}
	for _, a := range g.attempts {
		if a.Answer.ID == answerID {
			return dailygame.GuessResult{}, &providers.ServiceError{Op: providers.OpSubmitGuess, Code: CodeAlreadyAttempted, Desc: "answer already attempted"}
		}
	}

	attempt := dailygame.Attempt{
		Answer:    publicAnswer(guess),
		IsCorrect: guess.ID == g.secret.ID,
	}
	if g.mode.Kind == catalog.KindWordle {
		attempt.Categories = score(attempt.Answer, g.secret, g.mode.Categories)
	}
	g.attempts = append(g.attempts, attempt)
	g.solved = attempt.IsCorrect

	return dailygame.GuessResult{Attempt: attempt, Clues: clues(g)}, nil
}

func clues(g *game) []dailygame.Clue {
	switch g.mode.Kind {
	case catalog.KindAudio:
		if v, ok := attributeValue(g.secret, voiceAttribute); ok {
			return []dailygame.Clue{{Name: voiceAttribute, Type: dailygame.ClueAudio, Value: v}}
		}
	case catalog.KindBlurred:
		if g.secret.IconURL != "" {
			return []dailygame.Clue{{Name: "Splash", Type: dailygame.ClueImage, Value: g.secret.IconURL}}
		}
	}
	return nil
}

// pickSecret chooses the day's answer deterministically from the answers the
// mode accepts.
func pickSecret(answers []catalog.Answer, mode catalog.Mode, day string) (catalog.Answer, bool) {
	eligible := make([]catalog.Answer, 0, len(answers))
	for _, a := range answers {
		if mode.Accepts(a.AnswerType) {
			eligible = append(eligible, a)
		}
	}
	if len(eligible) == 0 {
		return catalog.Answer{}, false
	}
	h := fnv.New32a()
	fmt.Fprintf(h, "%s/%d", day, mode.ID)
	return eligible[int(h.Sum32()%uint32(len(eligible)))], true
}

func findAnswer(answers []catalog.Answer, id int64) (catalog.Answer, bool) {
	for _, a := range answers {
		if a.ID == id {
			return a, true
		}
	}
	return catalog.Answer{}, false
}

// publicAnswer strips clue-only attributes before an answer leaves the scorer.
func publicAnswer(a catalog.Answer) catalog.Answer {
	attrs := make([]catalog.AttributeValue, 0, len(a.Attributes))
	for _, attr := range a.Attributes {
		if attr.Name == voiceAttribute {
			continue
		}
		attrs = append(attrs, attr)
	}
	a.Attributes = attrs
	return a
}
