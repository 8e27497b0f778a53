package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/makeadle/dle-service/internal/domain/dailygame"
)

// HistoryOrder declares how the scorer orders attempt history.
type HistoryOrder string

const (
	OldestFirst HistoryOrder = "oldest-first"
	NewestFirst HistoryOrder = "newest-first"
)

// ParseHistoryOrder validates a configured history order. Empty means OldestFirst.
func ParseHistoryOrder(raw string) (HistoryOrder, error) {
	switch o := HistoryOrder(strings.ToLower(strings.TrimSpace(raw))); o {
	case "":
		return OldestFirst, nil
	case OldestFirst, NewestFirst:
		return o, nil
	default:
		return "", fmt.Errorf("unknown history order %q", raw)
	}
}

// Ledger holds the attempts of one daily game, most recent first.
type Ledger struct {
	attempts []dailygame.Attempt
	terminal bool
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Load replaces the ledger with history, normalised to most-recent-first.
func (l *Ledger) Load(history []dailygame.Attempt, order HistoryOrder) {
	attempts := cloneAttempts(history)
	if order != NewestFirst {
		slices.Reverse(attempts)
	}
	l.attempts = attempts
	l.terminal = slices.ContainsFunc(attempts, func(a dailygame.Attempt) bool { return a.IsCorrect })
}

// Append inserts a at the head. Existing entries are left untouched.
func (l *Ledger) Append(a dailygame.Attempt) {
	next := make([]dailygame.Attempt, 0, len(l.attempts)+1)
	next = append(next, a.Clone())
	l.attempts = append(next, l.attempts...)
	if a.IsCorrect {
		l.terminal = true
	}
}

// IsTerminal reports whether any attempt is correct.
func (l *Ledger) IsTerminal() bool {
	return l.terminal
}

// Len returns the number of attempts.
func (l *Ledger) Len() int {
	return len(l.attempts)
}

// Attempts returns a deep copy of the attempts, most recent first.
func (l *Ledger) Attempts() []dailygame.Attempt {
	return cloneAttempts(l.attempts)
}

func cloneAttempts(in []dailygame.Attempt) []dailygame.Attempt {
	if in == nil {
		return nil
	}
	out := make([]dailygame.Attempt, len(in))
	for i, a := range in {
		out[i] = a.Clone()
	}
	return out
}

// Guessed returns the set of answer ids already attempted.
func (l *Ledger) Guessed() map[int64]struct{} {
	out := make(map[int64]struct{}, len(l.attempts))
	for _, a := range l.attempts {
		out[a.Answer.ID] = struct{}{}
	}
	return out
}
