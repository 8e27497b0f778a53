package game

// State is the controller's position in its state machine.
type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateWon        State = "won"
	StateError      State = "error"
)

// Result describes what happened to a submitted guess.
type Result string

const (
	// Applied: the scorer answered and the attempt is in the ledger.
	Applied Result = "applied"
	// Ignored: a submission was already in flight or the guess repeats the last one.
	Ignored Result = "ignored"
	// Failed: the scorer call failed; nothing changed.
	Failed Result = "failed"
	// Stale: the answer arrived after a mode switch and was dropped.
	Stale Result = "stale"
)

// Metric label for guesses refused before reaching the scorer.
const resultRejected = "rejected"
