// Package game implements the guess-evaluation and attempt-state engine of a
// daily guessing game: correctness classification, the candidate pool, the
// attempt ledger and the session controller that drives them.
package game

import (
	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
)

// Correctness is the user-facing meaning of a scored category.
type Correctness int

const (
	Unknown Correctness = iota
	Wrong
	Partial
	Correct
	None
	Higher
	Lower
)

var correctnessNames = [...]string{
	Unknown: "UNKNOWN",
	Wrong:   "WRONG",
	Partial: "PARTIAL",
	Correct: "CORRECT",
	None:    "NONE",
	Higher:  "HIGHER",
	Lower:   "LOWER",
}

func (c Correctness) String() string {
	if c < 0 || int(c) >= len(correctnessNames) {
		return correctnessNames[Unknown]
	}
	return correctnessNames[c]
}

// MarshalText encodes the category by name.
func (c Correctness) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Classify maps a raw scorer code to its category. The code table differs by
// value type: for numbers 1 is a match and 0/2 give the direction of the
// secret, for strings 2 is a match. Anything outside the table is Unknown.
func Classify(valueType catalog.ValueType, rawCode int) Correctness {
	if rawCode == dailygame.CodeAbsent && valueType.IsValid() {
		return None
	}
	switch valueType {
	case catalog.ValueString:
		switch rawCode {
		case 0:
			return Wrong
		case 1:
			return Partial
		case 2:
			return Correct
		}
	case catalog.ValueNumber:
		switch rawCode {
		case 0:
			return Higher
		case 1:
			return Correct
		case 2:
			return Lower
		}
	}
	return Unknown
}
