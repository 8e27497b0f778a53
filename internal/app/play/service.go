package play

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/game"
	"github.com/makeadle/dle-service/internal/logging"
	"github.com/makeadle/dle-service/internal/providers"
	"github.com/makeadle/dle-service/internal/store"
)

var (
	// ErrSessionNotFound is returned for an unknown or evicted session id.
	ErrSessionNotFound = errors.New("play: session not found")
	// ErrNoStore is returned by Open on a service built without a store.
	ErrNoStore = errors.New("play: service does not host sessions")
)

// Store defines the contract for hosting sessions.
type Store interface {
	Add(slug string, s *game.Session) store.Entry
	Get(id string) (store.Entry, bool)
	Delete(id string) bool
	List() []store.Entry
}

// Catalog is everything a topic offers to play.
type Catalog struct {
	Topic   catalog.Topic
	Modes   []catalog.Mode
	Answers []catalog.Answer
}

// Options tune the sessions the service opens.
type Options struct {
	HistoryOrder game.HistoryOrder
	Strict       bool
	Logger       *slog.Logger
	Recorder     game.Recorder
	Reporter     game.ErrorReporter
}

// Service opens and hosts game sessions over a scorer.
type Service struct {
	scorer providers.Scorer
	store  Store
	opts   Options
}

// NewService constructs a Service. s may be nil when the caller only builds
// sessions with NewSession and owns them itself, as the terminal player does.
func NewService(scorer providers.Scorer, s Store, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &Service{scorer: scorer, store: s, opts: opts}
}

// Catalog loads a topic together with its modes and answers.
func (s *Service) Catalog(ctx context.Context, slug string) (Catalog, error) {
	topic, err := s.scorer.FetchTopicBySlug(ctx, strings.TrimSpace(slug))
	if err != nil {
		return Catalog{}, fmt.Errorf("fetch topic %q: %w", slug, err)
	}

	out := Catalog{Topic: topic}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		modes, err := s.scorer.FetchModes(gctx, topic.ID)
		if err != nil {
			return fmt.Errorf("fetch modes: %w", err)
		}
		out.Modes = modes
		return nil
	})
	g.Go(func() error {
		answers, err := s.scorer.FetchAnswers(gctx, topic.ID)
		if err != nil {
			return fmt.Errorf("fetch answers: %w", err)
		}
		out.Answers = answers
		return nil
	})
	if err := g.Wait(); err != nil {
		return Catalog{}, err
	}
	return out, nil
}

// NewSession builds an unstarted session for the mode at modePath; an empty
// path picks the topic's first mode.
func (s *Service) NewSession(ctx context.Context, slug, modePath string, extra ...game.Option) (*game.Session, error) {
	cat, err := s.Catalog(ctx, slug)
	if err != nil {
		return nil, err
	}
	mode, ok := catalog.ModeByPath(cat.Modes, modePath)
	if !ok {
		return nil, fmt.Errorf("mode %q of %s: %w", modePath, cat.Topic.Slug, game.ErrUnknownMode)
	}

	opts := []game.Option{
		game.WithLogger(logging.ForTopic(s.opts.Logger, cat.Topic.Slug)),
		game.WithStrict(s.opts.Strict),
		game.WithRecorder(s.opts.Recorder),
		game.WithReporter(s.opts.Reporter),
	}
	opts = append(opts, extra...)
	return game.NewSession(game.Config{
		Topic:         cat.Topic,
		Modes:         cat.Modes,
		Answers:       cat.Answers,
		InitialModeID: mode.ID,
		HistoryOrder:  s.opts.HistoryOrder,
	}, s.scorer, opts...)
}

// Open starts a session and hosts it. The session is hosted even when its
// first load fails, so the caller can reload it; that failure is returned
// alongside the entry.
func (s *Service) Open(ctx context.Context, slug, modePath string) (store.Entry, error) {
	if s.store == nil {
		return store.Entry{}, ErrNoStore
	}
	sess, err := s.NewSession(ctx, slug, modePath)
	if err != nil {
		return store.Entry{}, err
	}
	startErr := sess.Start(ctx)
	entry := s.store.Add(sess.Snapshot().Topic.Slug, sess)
	logging.Info(s.opts.Logger, "session opened",
		logging.FieldSessionID, entry.ID,
		logging.FieldTopic, entry.Slug,
		logging.FieldState, string(sess.State()),
	)
	return entry, startErr
}

// Session returns a hosted session.
func (s *Service) Session(id string) (store.Entry, error) {
	var (
		e  store.Entry
		ok bool
	)
	if s.store != nil {
		e, ok = s.store.Get(id)
	}
	if !ok {
		return store.Entry{}, fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	return e, nil
}

// Close stops hosting a session.
func (s *Service) Close(id string) error {
	if s.store == nil || !s.store.Delete(id) {
		return fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	return nil
}

// Sessions lists the hosted sessions.
func (s *Service) Sessions() []store.Entry {
	if s.store == nil {
		return nil
	}
	return s.store.List()
}
