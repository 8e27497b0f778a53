package game

import (
	"github.com/makeadle/dle-service/internal/domain/catalog"
)

// Pool is the set of answers still guessable in the current daily game.
type Pool struct {
	answers []catalog.Answer
	ids     map[int64]struct{}
}

// DerivePool filters the catalogue to answers the mode accepts that are not yet
// in the ledger. Answers in hidden are left out too; the controller uses this
// for a guess that is still in flight.
func DerivePool(answers []catalog.Answer, mode catalog.Mode, ledger *Ledger, hidden ...int64) Pool {
	excluded := map[int64]struct{}{}
	if ledger != nil {
		excluded = ledger.Guessed()
	}
	for _, id := range hidden {
		excluded[id] = struct{}{}
	}

	p := Pool{ids: make(map[int64]struct{})}
	for _, a := range answers {
		if !mode.Accepts(a.AnswerType) {
			continue
		}
		if _, ok := excluded[a.ID]; ok {
			continue
		}
		p.answers = append(p.answers, a)
		p.ids[a.ID] = struct{}{}
	}
	return p
}

// Contains reports whether id is guessable.
func (p Pool) Contains(id int64) bool {
	_, ok := p.ids[id]
	return ok
}

// Len returns the number of guessable answers.
func (p Pool) Len() int {
	return len(p.answers)
}

// Answers returns a copy of the guessable answers in catalogue order.
func (p Pool) Answers() []catalog.Answer {
	out := make([]catalog.Answer, len(p.answers))
	copy(out, p.answers)
	return out
}
