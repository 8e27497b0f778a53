package game

import (
	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/domain/dailygame"
)

// Snapshot is an immutable view of a session.
type Snapshot struct {
	State       State               `json:"state"`
	Topic       catalog.Topic       `json:"topic"`
	Mode        catalog.Mode        `json:"mode"`
	Modes       []catalog.Mode      `json:"modes"`
	Path        string              `json:"path"`
	DailyGameID string              `json:"dailyGameId,omitempty"`
	Attempts    []dailygame.Attempt `json:"attempts"`
	Candidates  []catalog.Answer    `json:"candidates"`
	Columns     []string            `json:"columns"`
	Board       []Row               `json:"board"`
	Clues       []dailygame.Clue    `json:"clues,omitempty"`
	Reveal      *Reveal             `json:"reveal,omitempty"`
	Terminal    bool                `json:"terminal"`
	NextMode    *catalog.Mode       `json:"nextMode,omitempty"`
	// Entering is the mode being loaded when it differs from Mode.
	Entering  *catalog.Mode `json:"entering,omitempty"`
	Pending   int64         `json:"pendingAnswerId,omitempty"`
	LastError string        `json:"lastError,omitempty"`
}
