package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/makeadle/dle-service/internal/domain/catalog"
	"github.com/makeadle/dle-service/internal/game"
	"github.com/makeadle/dle-service/internal/ui"
)

const (
	maxSuggestions = 8
	cellWidth      = 14
)

// Session is the part of the game controller the player drives.
type Session interface {
	Start(ctx context.Context) error
	Reload(ctx context.Context) error
	SwitchMode(ctx context.Context, modeID int64) error
	SubmitGuess(ctx context.Context, answerID int64) (game.GuessOutcome, error)
	Snapshot() game.Snapshot
}

type playModel struct {
	ctx  context.Context
	sess Session

	input    textinput.Model
	selected int
	snap     game.Snapshot

	lastLog string
	busy    bool
}

type loadedMsg struct{ err error }

type guessedMsg struct {
	name string
	out  game.GuessOutcome
	err  error
}

func newPlayModel(ctx context.Context, sess Session) playModel {
	ti := textinput.New()
	ti.Placeholder = "Type a name"
	ti.CharLimit = 64
	ti.Focus()
	return playModel{
		ctx:     ctx,
		sess:    sess,
		input:   ti,
		snap:    sess.Snapshot(),
		lastLog: "Loading…",
		busy:    true,
	}
}

func (m playModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCmd(m.sess.Start))
}

func (m playModel) loadCmd(load func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: load(m.ctx)}
	}
}

func (m playModel) switchCmd(modeID int64) tea.Cmd {
	return m.loadCmd(func(ctx context.Context) error {
		return m.sess.SwitchMode(ctx, modeID)
	})
}

func (m playModel) guessCmd(a catalog.Answer) tea.Cmd {
	return func() tea.Msg {
		out, err := m.sess.SubmitGuess(m.ctx, a.ID)
		return guessedMsg{name: a.Name, out: out, err: err}
	}
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.busy = false
		m.snap = m.sess.Snapshot()
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error() + " (ctrl+r to retry)"
			return m, nil
		}
		m.lastLog = "Playing " + m.snap.Mode.Title + "."
		if m.snap.Terminal {
			m.lastLog = "Already solved today."
		}
		return m, nil
	case guessedMsg:
		m.busy = false
		m.snap = m.sess.Snapshot()
		m.lastLog = guessLog(msg)
		if msg.out.Result == game.Applied {
			m.input.SetValue("")
			m.selected = 0
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case tea.KeyDown:
			if m.selected < len(m.suggestions())-1 {
				m.selected++
			}
			return m, nil
		case tea.KeyCtrlR:
			if m.busy {
				return m, nil
			}
			m.busy = true
			m.lastLog = "Reloading…"
			return m, m.loadCmd(m.sess.Reload)
		case tea.KeyTab:
			return m.nextMode()
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if n := len(m.suggestions()); m.selected >= n {
		m.selected = max(n-1, 0)
	}
	return m, cmd
}

func (m playModel) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if m.snap.Terminal {
		m.lastLog = "Solved. Press tab for the next mode."
		return m, nil
	}
	sugg := m.suggestions()
	if len(sugg) == 0 {
		m.lastLog = "No matching answer."
		return m, nil
	}
	pick := sugg[m.selected]
	m.busy = true
	m.lastLog = fmt.Sprintf("Guessing %s…", pick.Name)
	return m, m.guessCmd(pick)
}

func (m playModel) nextMode() (tea.Model, tea.Cmd) {
	if m.busy || len(m.snap.Modes) < 2 {
		return m, nil
	}
	next, ok := catalog.NextMode(m.snap.Modes, m.snap.Mode.ID)
	if !ok {
		next = m.snap.Modes[0]
	}
	m.busy = true
	m.input.SetValue("")
	m.selected = 0
	m.lastLog = "Switching to " + next.Title + "…"
	return m, m.switchCmd(next.ID)
}

// suggestions filters the candidate pool by the typed prefix or substring.
func (m playModel) suggestions() []catalog.Answer {
	q := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if q == "" {
		return nil
	}
	var prefix, rest []catalog.Answer
	for _, a := range m.snap.Candidates {
		name := strings.ToLower(a.Name)
		switch {
		case strings.HasPrefix(name, q):
			prefix = append(prefix, a)
		case strings.Contains(name, q):
			rest = append(rest, a)
		}
	}
	out := append(prefix, rest...)
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func guessLog(msg guessedMsg) string {
	if msg.err != nil {
		return "Not accepted: " + msg.err.Error()
	}
	switch msg.out.Result {
	case game.Applied:
		if msg.out.Attempt != nil && msg.out.Attempt.IsCorrect {
			return ui.IconTrophy + " " + msg.name + " is correct!"
		}
		return msg.name + " is not it."
	case game.Failed:
		return "Scorer failed: " + msg.out.Err.Error() + " (try again)"
	case game.Stale:
		return "Mode changed before the answer came back."
	default:
		return "Already guessing."
	}
}
