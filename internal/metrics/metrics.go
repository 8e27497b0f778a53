package metrics

import (
	"sync"
	"time"
)

type scorerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

type gameStats struct {
	guesses      map[string]int
	wins         int
	modeSwitches int
	evicted      int
}

// Recorder captures lightweight, in-memory metrics about scorer calls and game
// sessions, mirrored to OpenTelemetry instruments when configured.
type Recorder struct {
	mu     sync.Mutex
	scorer map[string]*scorerStats
	game   gameStats
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		scorer: make(map[string]*scorerStats),
		game:   gameStats{guesses: make(map[string]int)},
		otel:   otel,
	}
}

// RecordScorerCall increments counters for one scorer operation and stores the last observed latency.
func (r *Recorder) RecordScorerCall(provider, op string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats, ok := r.scorer[provider]
	if !ok {
		stats = &scorerStats{}
		r.scorer[provider] = stats
	}
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordScorerCall(provider, op, duration, err)
	}
}

// RecordGuess counts a guess submission by its outcome (applied, ignored, failed, stale, rejected).
func (r *Recorder) RecordGuess(result string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.game.guesses[result]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordGuess(result)
	}
}

// RecordWin counts a daily game reaching its terminal state.
func (r *Recorder) RecordWin(modeKind string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.game.wins++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordWin(modeKind)
	}
}

// RecordModeSwitch counts a session moving to another mode.
func (r *Recorder) RecordModeSwitch() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.game.modeSwitches++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordModeSwitch()
	}
}

// RecordSessionsEvicted counts idle sessions dropped by the sweeper.
func (r *Recorder) RecordSessionsEvicted(n int, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.game.evicted += n
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordSweep(n, duration)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot is a copy of the in-memory stats for one scorer.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

// ScorerSnapshot returns a copy of the current stats for the scorer.
func (r *Recorder) ScorerSnapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stats, ok := r.scorer[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// GameSnapshot is a copy of the in-memory session counters.
type GameSnapshot struct {
	Guesses      map[string]int
	Wins         int
	ModeSwitches int
	Evicted      int
}

// Game returns a copy of the session counters.
func (r *Recorder) Game() GameSnapshot {
	if r == nil {
		return GameSnapshot{Guesses: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	guesses := make(map[string]int, len(r.game.guesses))
	for k, v := range r.game.guesses {
		guesses[k] = v
	}
	return GameSnapshot{
		Guesses:      guesses,
		Wins:         r.game.wins,
		ModeSwitches: r.game.modeSwitches,
		Evicted:      r.game.evicted,
	}
}
