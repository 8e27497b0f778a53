package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
	"github.com/makeadle/dle-service/internal/providers"
)

// fakeScorer serves scripted daily games, history and guess results. When gate
// is set, SubmitGuess signals entered and blocks until gate is closed.
type fakeScorer struct {
	mu        sync.Mutex
	daily     map[int64]dailygame.DailyGame
	history   map[string][]dailygame.Attempt
	results   map[int64]dailygame.GuessResult
	dailyErr  error
	histErr   error
	submitErr error
	gate      chan struct{}
	entered   chan int64

	// Per-key gates and errors for loads; a gated load signals loadEntered
	// and blocks until its gate is closed.
	dailyGate   map[int64]chan struct{}
	histGate    map[string]chan struct{}
	dailyErrFor map[int64]error
	histErrFor  map[string]error
	loadEntered chan struct{}

	dailyCalls  int
	submitCalls int
}

func newFakeScorer() *fakeScorer {
	return &fakeScorer{
		daily: map[int64]dailygame.DailyGame{
			modeA.ID: {ID: "dg-a", ModeID: modeA.ID},
			modeB.ID: {ID: "dg-b", ModeID: modeB.ID},
		},
		history: map[string][]dailygame.Attempt{},
		results: map[int64]dailygame.GuessResult{},
	}
}

func (f *fakeScorer) FetchDailyGame(ctx context.Context, modeID int64) (dailygame.DailyGame, error) {
	f.mu.Lock()
	f.dailyCalls++
	gate, entered := f.dailyGate[modeID], f.loadEntered
	f.mu.Unlock()
	waitGate(gate, entered)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.dailyErrFor[modeID]; err != nil {
		return dailygame.DailyGame{}, err
	}
	if f.dailyErr != nil {
		return dailygame.DailyGame{}, f.dailyErr
	}
	return f.daily[modeID], nil
}

func (f *fakeScorer) FetchAttemptHistory(ctx context.Context, dailyGameID string) ([]dailygame.Attempt, error) {
	f.mu.Lock()
	gate, entered := f.histGate[dailyGameID], f.loadEntered
	f.mu.Unlock()
	waitGate(gate, entered)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.histErrFor[dailyGameID]; err != nil {
		return nil, err
	}
	if f.histErr != nil {
		return nil, f.histErr
	}
	return f.history[dailyGameID], nil
}

func waitGate(gate chan struct{}, entered chan struct{}) {
	if gate == nil {
		return
	}
	if entered != nil {
		entered <- struct{}{}
	}
	<-gate
}

func (f *fakeScorer) SubmitGuess(ctx context.Context, dailyGameID string, answerID int64) (dailygame.GuessResult, error) {
	f.mu.Lock()
	f.submitCalls++
	gate, entered := f.gate, f.entered
	f.mu.Unlock()

	if gate != nil {
		if entered != nil {
			entered <- answerID
		}
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitErr != nil {
		return dailygame.GuessResult{}, f.submitErr
	}
	if res, ok := f.results[answerID]; ok {
		return res, nil
	}
	return dailygame.GuessResult{Attempt: dailygame.Attempt{Answer: catalog.Answer{ID: answerID}}}, nil
}

func (f *fakeScorer) submits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitCalls
}

var (
	modeA = catalog.Mode{ID: 10, Kind: catalog.KindWordle, AnswerTypes: []string{"CHARACTER"}, Categories: []string{"power"}}
	modeB = catalog.Mode{ID: 20, Kind: catalog.KindBlurred, AnswerTypes: []string{"CHARACTER"}}
)

func characters() []catalog.Answer {
	return []catalog.Answer{
		{ID: 1, Name: "One", AnswerType: "CHARACTER"},
		{ID: 2, Name: "Two", AnswerType: "CHARACTER"},
		{ID: 3, Name: "Three", AnswerType: "CHARACTER"},
	}
}

func newTestSession(t *testing.T, scorer *fakeScorer, opts ...Option) *Session {
	t.Helper()
	s, err := NewSession(Config{
		Topic:   catalog.Topic{ID: 1, Slug: "heroes"},
		Modes:   []catalog.Mode{modeA, modeB},
		Answers: characters(),
	}, scorer, opts...)
	require.NoError(t, err)
	return s
}

func startedSession(t *testing.T, scorer *fakeScorer, opts ...Option) *Session {
	t.Helper()
	s := newTestSession(t, scorer, opts...)
	require.NoError(t, s.Start(context.Background()))
	require.Equal(t, StateReady, s.State())
	return s
}

func candidateIDs(snap Snapshot) []int64 {
	ids := make([]int64, 0, len(snap.Candidates))
	for _, a := range snap.Candidates {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestScenarioNumericGuessIsHigher(t *testing.T) {
	scorer := newFakeScorer()
	scorer.results[1] = dailygame.GuessResult{Attempt: dailygame.Attempt{
		Answer:     catalog.Answer{ID: 1, AnswerType: "CHARACTER"},
		Categories: []dailygame.ScoredCategory{{Name: "power", Type: catalog.ValueNumber, Correctness: 0, Value: "40"}},
	}}
	s := startedSession(t, scorer)

	out, err := s.SubmitGuess(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, Applied, out.Result)
	require.NotNil(t, out.Attempt)

	snap := s.Snapshot()
	require.Len(t, snap.Attempts, 1)
	assert.Equal(t, []int64{2, 3}, candidateIDs(snap))
	require.Len(t, snap.Board, 1)
	assert.Equal(t, Higher, snap.Board[0].Cells[0].Correctness)
	assert.Equal(t, StateReady, snap.State)
	assert.Nil(t, snap.NextMode)
}

func TestScenarioWinRejectsFurtherGuessesLocally(t *testing.T) {
	scorer := newFakeScorer()
	scorer.results[1] = dailygame.GuessResult{Attempt: dailygame.Attempt{Answer: catalog.Answer{ID: 1}, IsCorrect: true}}
	s := startedSession(t, scorer)

	out, err := s.SubmitGuess(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, Applied, out.Result)

	snap := s.Snapshot()
	assert.True(t, snap.Terminal)
	assert.Equal(t, StateWon, snap.State)
	require.NotNil(t, snap.NextMode)
	assert.Equal(t, modeB.ID, snap.NextMode.ID)

	_, err = s.SubmitGuess(context.Background(), 2)
	assert.ErrorIs(t, err, ErrGameWon)
	assert.Equal(t, 1, scorer.submits(), "no remote call after the win")
}

func TestScenarioRepeatedHistoryIsPreserved(t *testing.T) {
	scorer := newFakeScorer()
	first := dailygame.Attempt{Answer: catalog.Answer{ID: 2, Name: "first"}}
	second := dailygame.Attempt{Answer: catalog.Answer{ID: 2, Name: "second"}}
	scorer.history["dg-a"] = []dailygame.Attempt{first, second}

	s, err := NewSession(Config{
		Topic:        catalog.Topic{Slug: "heroes"},
		Modes:        []catalog.Mode{modeA},
		Answers:      characters(),
		HistoryOrder: NewestFirst,
	}, scorer)
	require.NoError(t, err)
	require.NoError(t, s.Start(context.Background()))

	snap := s.Snapshot()
	require.Len(t, snap.Attempts, 2)
	assert.Equal(t, "first", snap.Attempts[0].Answer.Name)
	assert.Equal(t, "second", snap.Attempts[1].Answer.Name)
	assert.Equal(t, []int64{1, 3}, candidateIDs(snap))
}

func TestScenarioStaleGuessAfterModeSwitchIsDropped(t *testing.T) {
	scorer := newFakeScorer()
	gate := make(chan struct{})
	scorer.gate = gate
	scorer.entered = make(chan int64, 1)
	s := startedSession(t, scorer)

	done := make(chan GuessOutcome, 1)
	go func() {
		out, _ := s.SubmitGuess(context.Background(), 1)
		done <- out
	}()
	<-scorer.entered

	require.NoError(t, s.SwitchMode(context.Background(), modeB.ID))
	assert.Equal(t, StateReady, s.State())

	close(gate)
	out := <-done
	assert.Equal(t, Stale, out.Result)

	snap := s.Snapshot()
	assert.Equal(t, modeB.ID, snap.Mode.ID)
	assert.Equal(t, "dg-b", snap.DailyGameID)
	assert.Empty(t, snap.Attempts)
	assert.Equal(t, []int64{1, 2, 3}, candidateIDs(snap))
	assert.Equal(t, StateReady, snap.State)
}

func TestConcurrentDuplicateSubmissionAppendsOnce(t *testing.T) {
	scorer := newFakeScorer()
	gate := make(chan struct{})
	scorer.gate = gate
	scorer.entered = make(chan int64, 1)
	s := startedSession(t, scorer)

	var wg sync.WaitGroup
	wg.Add(1)
	var first GuessOutcome
	go func() {
		defer wg.Done()
		first, _ = s.SubmitGuess(context.Background(), 2)
	}()
	<-scorer.entered

	assert.Equal(t, StateSubmitting, s.State())
	assert.Equal(t, int64(2), s.Snapshot().Pending)
	assert.NotContains(t, candidateIDs(s.Snapshot()), int64(2))

	second, err := s.SubmitGuess(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, Ignored, second.Result)
	third, err := s.SubmitGuess(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, Ignored, third.Result)

	close(gate)
	wg.Wait()

	assert.Equal(t, Applied, first.Result)
	assert.Equal(t, 1, scorer.submits())
	assert.Len(t, s.Snapshot().Attempts, 1)

	_, err = s.SubmitGuess(context.Background(), 2)
	assert.ErrorIs(t, err, ErrUnknownCandidate, "once applied the answer has left the pool")
	assert.Equal(t, 1, scorer.submits())
}

func TestResubmittingAppliedAnswerIsRejected(t *testing.T) {
	scorer := newFakeScorer()
	s := startedSession(t, scorer)
	out, err := s.SubmitGuess(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, Applied, out.Result)

	_, err = s.SubmitGuess(context.Background(), 1)
	assert.ErrorIs(t, err, ErrUnknownCandidate)

	strict := startedSession(t, newFakeScorer(), WithStrict(true))
	out, err = strict.SubmitGuess(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, Applied, out.Result)
	assert.Panics(t, func() { _, _ = strict.SubmitGuess(context.Background(), 1) })

	assert.Equal(t, 1, scorer.submits())
}

func TestResubmittingWinningAnswerIsGameWon(t *testing.T) {
	scorer := newFakeScorer()
	scorer.results[1] = dailygame.GuessResult{Attempt: dailygame.Attempt{Answer: catalog.Answer{ID: 1}, IsCorrect: true}}
	s := startedSession(t, scorer)
	_, err := s.SubmitGuess(context.Background(), 1)
	require.NoError(t, err)

	out, err := s.SubmitGuess(context.Background(), 1)
	assert.ErrorIs(t, err, ErrGameWon)
	assert.Equal(t, GuessOutcome{}, out)
	assert.Equal(t, 1, scorer.submits())
}

func TestFailedGuessLeavesCandidateSelectable(t *testing.T) {
	scorer := newFakeScorer()
	scorer.submitErr = &providers.TransportError{Op: providers.OpSubmitGuess, Err: errors.New("timeout")}

	var reported []string
	reporter := ReporterFunc(func(ctx context.Context, op string, err error) {
		reported = append(reported, op)
	})
	s := startedSession(t, scorer, WithReporter(reporter))

	out, err := s.SubmitGuess(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, Failed, out.Result)
	assert.Error(t, out.Err)
	assert.Equal(t, []string{providers.OpSubmitGuess}, reported)

	snap := s.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Empty(t, snap.Attempts)
	assert.Equal(t, []int64{1, 2, 3}, candidateIDs(snap))
	assert.NotEmpty(t, snap.LastError)

	scorer.mu.Lock()
	scorer.submitErr = nil
	scorer.mu.Unlock()
	out, err = s.SubmitGuess(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, Applied, out.Result, "the same candidate can be retried")
}

func TestUnknownCandidateRejectedBeforeRemoteCall(t *testing.T) {
	scorer := newFakeScorer()
	s := startedSession(t, scorer)

	_, err := s.SubmitGuess(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUnknownCandidate)
	assert.Zero(t, scorer.submits())

	strict := startedSession(t, newFakeScorer(), WithStrict(true))
	assert.Panics(t, func() { _, _ = strict.SubmitGuess(context.Background(), 99) })
}

func TestGuessBeforeLoadIsNotReady(t *testing.T) {
	s := newTestSession(t, newFakeScorer())
	_, err := s.SubmitGuess(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestLoadFailureIsReportedAndReloadable(t *testing.T) {
	scorer := newFakeScorer()
	scorer.histErr = &providers.ServiceError{Code: "41", Desc: "bad daily game"}
	var reported int
	s := newTestSession(t, scorer, WithReporter(ReporterFunc(func(context.Context, string, error) { reported++ })))

	err := s.Start(context.Background())
	require.Error(t, err)
	_, ok := providers.AsServiceError(err)
	assert.True(t, ok)
	assert.Equal(t, StateError, s.State())
	assert.Equal(t, 1, reported)

	scorer.mu.Lock()
	scorer.histErr = nil
	scorer.mu.Unlock()
	require.NoError(t, s.Reload(context.Background()))
	assert.Equal(t, StateReady, s.State())
	assert.Equal(t, 2, scorer.dailyCalls, "reload refetches the daily game")
}

func TestReloadPicksUpRolledOverDailyGame(t *testing.T) {
	scorer := newFakeScorer()
	s := startedSession(t, scorer)
	require.Equal(t, "dg-a", s.Snapshot().DailyGameID)

	scorer.mu.Lock()
	scorer.daily[modeA.ID] = dailygame.DailyGame{ID: "dg-a-next", ModeID: modeA.ID}
	scorer.history["dg-a-next"] = []dailygame.Attempt{attemptFor(3, false)}
	scorer.mu.Unlock()

	require.NoError(t, s.Reload(context.Background()))
	snap := s.Snapshot()
	assert.Equal(t, "dg-a-next", snap.DailyGameID)
	assert.Equal(t, []int64{3}, answerIDs(snap.Attempts))

	require.NoError(t, s.SwitchMode(context.Background(), modeB.ID))
	require.NoError(t, s.SwitchMode(context.Background(), modeA.ID))
	assert.Equal(t, "dg-a-next", s.Snapshot().DailyGameID)
	assert.Equal(t, 3, scorer.dailyCalls, "switching back reuses the refreshed daily game")
}

func TestSupersededLoadNeverTouchesNewerMode(t *testing.T) {
	cases := []struct {
		name      string
		gateDaily bool
		fail      bool
	}{
		{"daily game fetch", true, false},
		{"daily game fetch fails", true, true},
		{"history fetch", false, false},
		{"history fetch fails", false, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scorer := newFakeScorer()
			scorer.history["dg-a"] = []dailygame.Attempt{attemptFor(2, false)}
			var mu sync.Mutex
			var reported []string
			s := startedSession(t, scorer, WithReporter(ReporterFunc(func(_ context.Context, op string, _ error) {
				mu.Lock()
				defer mu.Unlock()
				reported = append(reported, op)
			})))

			gate := make(chan struct{})
			boom := &providers.TransportError{Op: "load", Err: errors.New("scorer down")}
			scorer.mu.Lock()
			scorer.loadEntered = make(chan struct{}, 1)
			if tc.gateDaily {
				scorer.dailyGate = map[int64]chan struct{}{modeB.ID: gate}
				if tc.fail {
					scorer.dailyErrFor = map[int64]error{modeB.ID: boom}
				}
			} else {
				scorer.histGate = map[string]chan struct{}{"dg-b": gate}
				if tc.fail {
					scorer.histErrFor = map[string]error{"dg-b": boom}
				}
			}
			entered := scorer.loadEntered
			scorer.mu.Unlock()

			done := make(chan error, 1)
			go func() { done <- s.SwitchMode(context.Background(), modeB.ID) }()
			<-entered

			require.NoError(t, s.SwitchMode(context.Background(), modeA.ID))
			close(gate)
			assert.ErrorIs(t, <-done, ErrStale)

			snap := s.Snapshot()
			assert.Equal(t, StateReady, snap.State)
			assert.Equal(t, modeA.ID, snap.Mode.ID)
			assert.Nil(t, snap.Entering)
			assert.Equal(t, "dg-a", snap.DailyGameID)
			assert.Equal(t, []int64{2}, answerIDs(snap.Attempts))
			assert.Empty(t, snap.LastError)

			mu.Lock()
			defer mu.Unlock()
			assert.Empty(t, reported, "superseded failures are not reported")
		})
	}
}

func TestReturningWinnerLoadsAsWon(t *testing.T) {
	scorer := newFakeScorer()
	scorer.history["dg-a"] = []dailygame.Attempt{attemptFor(2, false), attemptFor(1, true)}
	s := newTestSession(t, scorer)
	require.NoError(t, s.Start(context.Background()))

	snap := s.Snapshot()
	assert.Equal(t, StateWon, snap.State)
	assert.Equal(t, []int64{1, 2}, answerIDs(snap.Attempts))
	_, err := s.SubmitGuess(context.Background(), 3)
	assert.ErrorIs(t, err, ErrGameWon)
}

func TestSwitchModeDiscardsLedgerAndNavigates(t *testing.T) {
	scorer := newFakeScorer()
	scorer.history["dg-b"] = []dailygame.Attempt{attemptFor(3, false)}
	scorer.daily[modeB.ID] = dailygame.DailyGame{ID: "dg-b", ModeID: modeB.ID, Clues: []dailygame.Clue{{Name: "Splash", Type: dailygame.ClueImage, Value: "/b.png"}}}

	var paths []string
	s := startedSession(t, scorer, WithNavigator(func(path string) { paths = append(paths, path) }))
	_, err := s.SubmitGuess(context.Background(), 1)
	require.NoError(t, err)

	require.NoError(t, s.SwitchMode(context.Background(), modeB.ID))
	snap := s.Snapshot()
	assert.Equal(t, []string{"/g/heroes/blurred"}, paths)
	assert.Equal(t, "/g/heroes/blurred", snap.Path)
	assert.Equal(t, []int64{3}, answerIDs(snap.Attempts), "only the new mode's history")
	assert.Equal(t, []int64{1, 2}, candidateIDs(snap))
	require.NotNil(t, snap.Reveal)
	assert.Equal(t, 13.0, snap.Reveal.Blur)
	require.Len(t, snap.Clues, 1)

	require.NoError(t, s.SwitchMode(context.Background(), modeA.ID))
	assert.Equal(t, 2, scorer.dailyCalls, "mode A's daily game is reused")
	assert.Equal(t, []int64{}, answerIDs(s.Snapshot().Attempts))

	assert.ErrorIs(t, s.SwitchMode(context.Background(), 77), ErrUnknownMode)
}

func TestNewSessionValidatesInput(t *testing.T) {
	_, err := NewSession(Config{}, newFakeScorer())
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = NewSession(Config{Modes: []catalog.Mode{modeA}, InitialModeID: 5}, newFakeScorer())
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = NewSession(Config{Modes: []catalog.Mode{modeA}}, nil)
	assert.ErrorIs(t, err, providers.ErrProviderUnavailable)

	s, err := NewSession(Config{Modes: []catalog.Mode{modeA, modeB}, InitialModeID: modeB.ID}, newFakeScorer())
	require.NoError(t, err)
	assert.Equal(t, modeB.ID, s.Snapshot().Mode.ID)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := startedSession(t, newFakeScorer())
	snap := s.Snapshot()
	snap.Candidates[0].Name = "mutated"
	snap.Modes[0].Title = "mutated"

	fresh := s.Snapshot()
	assert.Equal(t, "One", fresh.Candidates[0].Name)
	assert.NotEqual(t, "mutated", fresh.Modes[0].Title)
}

func TestSubmitGuessHonoursContextCancellation(t *testing.T) {
	scorer := newFakeScorer()
	scorer.submitErr = context.Canceled
	s := startedSession(t, scorer)

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	out, err := s.SubmitGuess(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, Failed, out.Result)
	assert.ErrorIs(t, out.Err, context.Canceled)
}
