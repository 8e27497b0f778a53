package game

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
	"github.com/makeadle/dle-service/internal/logging"
	"github.com/makeadle/dle-service/internal/providers"
)

// GuessOutcome reports how a submission ended. Err is set for Failed.
type GuessOutcome struct {
	Result  Result
	Attempt *dailygame.Attempt
	Err     error
}

// Session is the controller of one player's game over a topic. It is safe for
// concurrent use; the lock is never held while the scorer is called.
type Session struct {
	scorer   providers.GameScorer
	topic    catalog.Topic
	modes    []catalog.Mode
	answers  []catalog.Answer
	order    HistoryOrder
	strict   bool
	reporter ErrorReporter
	navigate Navigator
	logger   *slog.Logger
	recorder Recorder

	mu sync.Mutex
	// epoch increases on every mode switch and reload; in-flight calls from an
	// older epoch must not touch the session.
	epoch   uint64
	state   State
	mode    catalog.Mode
	target  catalog.Mode
	daily   dailygame.DailyGame
	fetched map[int64]dailygame.DailyGame
	ledger  *Ledger
	pool    Pool
	clues   []dailygame.Clue
	// pending is the answer in flight while Submitting.
	pending int64
	lastErr error
}

// NewSession builds a controller over cfg. Call Start to load the first mode.
func NewSession(cfg Config, scorer providers.GameScorer, opts ...Option) (*Session, error) {
	if scorer == nil {
		return nil, providers.ErrProviderUnavailable
	}
	if len(cfg.Modes) == 0 {
		return nil, fmt.Errorf("topic %q has no modes: %w", cfg.Topic.Slug, ErrUnknownMode)
	}
	order := cfg.HistoryOrder
	if order == "" {
		order = OldestFirst
	}

	s := &Session{
		scorer:   scorer,
		topic:    cfg.Topic,
		modes:    slices.Clone(cfg.Modes),
		answers:  slices.Clone(cfg.Answers),
		order:    order,
		logger:   logging.Discard(),
		recorder: nopRecorder{},
		state:    StateLoading,
		fetched:  make(map[int64]dailygame.DailyGame),
		ledger:   NewLedger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.reporter == nil {
		s.reporter = NewLogReporter(s.logger)
	}

	initial := s.modes[0]
	if cfg.InitialModeID != 0 {
		m, ok := s.findMode(cfg.InitialModeID)
		if !ok {
			return nil, fmt.Errorf("mode %d: %w", cfg.InitialModeID, ErrUnknownMode)
		}
		initial = m
	}
	s.mode = initial
	s.target = initial
	return s, nil
}

// Start loads the daily game and history of the current mode.
func (s *Session) Start(ctx context.Context) error {
	return s.Reload(ctx)
}

// Reload refetches the daily game and history of the mode being entered,
// typically after a failed load or a calendar rollover. It is refused while a
// guess is in flight.
func (s *Session) Reload(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return ErrNotReady
	}
	s.epoch++
	epoch := s.epoch
	target := s.target
	delete(s.fetched, target.ID)
	s.state = StateLoading
	s.lastErr = nil
	s.mu.Unlock()

	return s.enterMode(ctx, epoch, target, false)
}

// SwitchMode discards the current daily game and enters modeID.
func (s *Session) SwitchMode(ctx context.Context, modeID int64) error {
	mode, ok := s.findMode(modeID)
	if !ok {
		return fmt.Errorf("mode %d: %w", modeID, ErrUnknownMode)
	}

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.ledger = NewLedger()
	s.pool = Pool{}
	s.clues = nil
	s.daily = dailygame.DailyGame{}
	s.pending = 0
	s.lastErr = nil
	s.state = StateLoading
	s.target = mode
	s.mu.Unlock()

	s.recorder.RecordModeSwitch()
	s.logger.Debug("mode switch", logging.FieldModeID, mode.ID, logging.FieldTopic, s.topic.Slug)
	return s.enterMode(ctx, epoch, mode, true)
}

func (s *Session) enterMode(ctx context.Context, epoch uint64, mode catalog.Mode, navigate bool) error {
	s.mu.Lock()
	daily, ok := s.fetched[mode.ID]
	s.mu.Unlock()

	if !ok {
		var err error
		daily, err = s.scorer.FetchDailyGame(ctx, mode.ID)
		if err != nil {
			return s.failLoad(ctx, epoch, providers.OpFetchDaily, err)
		}
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return ErrStale
	}
	s.fetched[mode.ID] = daily
	s.daily = daily
	s.clues = slices.Clone(daily.Clues)
	changed := s.mode.ID != mode.ID
	s.mode = mode
	path := catalog.ModePath(s.topic.Slug, mode)
	nav := s.navigate
	s.mu.Unlock()

	if navigate && nav != nil && changed {
		nav(path)
	}

	history, err := s.scorer.FetchAttemptHistory(ctx, daily.ID)
	if err != nil {
		return s.failLoad(ctx, epoch, providers.OpFetchHistory, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return ErrStale
	}
	ledger := NewLedger()
	ledger.Load(history, s.order)
	s.ledger = ledger
	s.pool = DerivePool(s.answers, s.mode, s.ledger)
	s.state = StateReady
	if ledger.IsTerminal() {
		s.state = StateWon
	}
	s.logger.Debug("session loaded",
		logging.FieldDailyGameID, daily.ID,
		logging.FieldModeID, mode.ID,
		logging.FieldCount, ledger.Len(),
		logging.FieldState, string(s.state),
	)
	return nil
}

func (s *Session) failLoad(ctx context.Context, epoch uint64, op string, err error) error {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return ErrStale
	}
	s.state = StateError
	s.lastErr = err
	s.mu.Unlock()

	s.reporter.Report(ctx, op, err)
	return fmt.Errorf("load mode: %w", err)
}

// SubmitGuess sends answerID to the scorer. Any submission while another is
// in flight is Ignored. Scorer failures are reported and returned as a Failed
// outcome rather than an error; the error return is for guesses refused
// locally, including answers already guessed.
func (s *Session) SubmitGuess(ctx context.Context, answerID int64) (GuessOutcome, error) {
	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		s.recorder.RecordGuess(string(Ignored))
		return GuessOutcome{Result: Ignored}, nil
	}
	switch s.state {
	case StateWon:
		s.mu.Unlock()
		s.recorder.RecordGuess(resultRejected)
		return GuessOutcome{}, ErrGameWon
	case StateLoading, StateError:
		s.mu.Unlock()
		s.recorder.RecordGuess(resultRejected)
		return GuessOutcome{}, ErrNotReady
	}
	if !s.pool.Contains(answerID) {
		s.mu.Unlock()
		s.recorder.RecordGuess(resultRejected)
		if s.strict {
			panic(fmt.Sprintf("game: answer %d is not a candidate of mode %d", answerID, s.mode.ID))
		}
		return GuessOutcome{}, fmt.Errorf("answer %d: %w", answerID, ErrUnknownCandidate)
	}

	epoch := s.epoch
	daily := s.daily
	s.state = StateSubmitting
	s.pending = answerID
	s.pool = DerivePool(s.answers, s.mode, s.ledger, answerID)
	s.mu.Unlock()

	res, err := s.scorer.SubmitGuess(ctx, daily.ID, answerID)

	s.mu.Lock()
	if epoch != s.epoch || daily.ID != s.daily.ID {
		s.mu.Unlock()
		s.recorder.RecordGuess(string(Stale))
		s.logger.Debug("dropping stale guess result", logging.FieldDailyGameID, daily.ID, logging.FieldAnswerID, answerID)
		return GuessOutcome{Result: Stale}, nil
	}
	s.pending = 0

	if err != nil {
		s.state = StateReady
		s.lastErr = err
		s.pool = DerivePool(s.answers, s.mode, s.ledger)
		s.mu.Unlock()
		s.recorder.RecordGuess(string(Failed))
		s.reporter.Report(ctx, providers.OpSubmitGuess, err)
		return GuessOutcome{Result: Failed, Err: err}, nil
	}

	attempt := res.Attempt
	s.ledger.Append(attempt)
	if len(res.Clues) > 0 {
		s.clues = slices.Clone(res.Clues)
	}
	s.lastErr = nil
	s.pool = DerivePool(s.answers, s.mode, s.ledger)
	s.state = StateReady
	won := s.ledger.IsTerminal()
	if won {
		s.state = StateWon
	}
	kind := string(s.mode.Kind)
	s.mu.Unlock()

	s.recorder.RecordGuess(string(Applied))
	if won {
		s.recorder.RecordWin(kind)
	}
	return GuessOutcome{Result: Applied, Attempt: &attempt}, nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of everything the presentation layer renders.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := s.ledger.Attempts()
	columns := Columns(s.mode, attempts)
	snap := Snapshot{
		State:       s.state,
		Topic:       s.topic,
		Mode:        s.mode,
		Modes:       slices.Clone(s.modes),
		Path:        catalog.ModePath(s.topic.Slug, s.mode),
		DailyGameID: s.daily.ID,
		Attempts:    attempts,
		Candidates:  s.pool.Answers(),
		Columns:     columns,
		Board:       BuildBoard(columns, attempts),
		Clues:       slices.Clone(s.clues),
		Terminal:    s.ledger.IsTerminal(),
		Pending:     s.pending,
	}
	if s.target.ID != s.mode.ID {
		target := s.target
		snap.Entering = &target
	}
	if s.mode.Kind == catalog.KindBlurred {
		r := RevealFor(len(attempts), snap.Terminal)
		snap.Reveal = &r
	}
	if snap.Terminal {
		if next, ok := catalog.NextMode(s.modes, s.mode.ID); ok {
			snap.NextMode = &next
		}
	}
	if s.lastErr != nil {
		snap.LastError = s.lastErr.Error()
	}
	return snap
}

func (s *Session) findMode(id int64) (catalog.Mode, bool) {
	for _, m := range s.modes {
		if m.ID == id {
			return m, true
		}
	}
	return catalog.Mode{}, false
}
