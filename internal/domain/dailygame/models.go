package dailygame

import (
	"slices"

	"github.com/makeadle/dle-service/internal/domain/catalog"
)

// Raw correctness codes reported by the scorer. Their meaning depends on the
// category's value type.
const (
	CodeAbsent = -1
	CodeMin    = -1
	CodeMax    = 2
)

// ValidCode reports whether code is inside the scorer's closed alphabet.
func ValidCode(code int) bool {
	return code >= CodeMin && code <= CodeMax
}

// DailyGame pairs a mode with the hidden answer of one calendar day. The secret
// itself is never exposed; clients only hold the token.
type DailyGame struct {
	ID     string `json:"dailyGameId"`
	ModeID int64  `json:"modeId"`
	Date   string `json:"date,omitempty"`
	// Clues shown before the first guess, e.g. the blurred image.
	Clues []Clue `json:"clues,omitempty"`
}

// ScoredCategory is one attribute comparison inside an attempt.
type ScoredCategory struct {
	Name        string            `json:"name"`
	Type        catalog.ValueType `json:"type"`
	Correctness int               `json:"correctness"`
	Value       string            `json:"value"`
}

// Attempt is one scored guess.
type Attempt struct {
	Answer     catalog.Answer   `json:"answer"`
	Categories []ScoredCategory `json:"categories"`
	IsCorrect  bool             `json:"isCorrect"`
}

// Clone returns a copy sharing no slices with a.
func (a Attempt) Clone() Attempt {
	a.Categories = slices.Clone(a.Categories)
	a.Answer.Attributes = slices.Clone(a.Answer.Attributes)
	return a
}

// ClueType tags how a clue should be presented.
type ClueType string

const (
	ClueAudio ClueType = "audio"
	ClueImage ClueType = "image"
	ClueText  ClueType = "text"
)

// Clue is a hint returned with attempts in audio and blurred-image modes.
type Clue struct {
	Name  string   `json:"name"`
	Type  ClueType `json:"type"`
	Value string   `json:"value"`
}

// GuessResult is the scorer's reply to a submitted guess.
type GuessResult struct {
	Attempt Attempt `json:"attempt"`
	Clues   []Clue  `json:"clues,omitempty"`
}
