package game

import "errors"

var (
	// ErrGameWon is returned for a guess after the daily game was won.
	ErrGameWon = errors.New("game: daily game already won")
	// ErrNotReady is returned when the session is loading, failed to load or busy.
	ErrNotReady = errors.New("game: session not ready")
	// ErrUnknownCandidate is returned for a guess that is not in the candidate pool.
	ErrUnknownCandidate = errors.New("game: answer is not a candidate")
	// ErrUnknownMode is returned when a mode is not part of the topic.
	ErrUnknownMode = errors.New("game: unknown mode")
	// ErrStale is returned when a load was superseded by a newer mode switch or reload.
	ErrStale = errors.New("game: superseded by a newer load")
)
