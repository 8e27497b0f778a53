package tui

import (
	"fmt"
	"strings"

	"github.com/makeadle/dle-service/internal/domain/dailygame"
	"github.com/makeadle/dle-service/internal/game"
	"github.com/makeadle/dle-service/internal/ui"
)

func (m playModel) View() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	if clues := m.renderClues(); clues != "" {
		b.WriteString(clues)
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderBoard())
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderSuggestions())
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render(m.lastLog))
	b.WriteString("\n")
	b.WriteString(ui.Muted.Render("enter: guess · ↑/↓: pick · tab: next mode · ctrl+r: reload · esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m playModel) renderHeader() string {
	title := m.snap.Topic.Title
	if title == "" {
		title = m.snap.Topic.Slug
	}
	line := ui.Heading(ui.IconTarget, title) + "  " + ui.H2.Render(m.snap.Mode.Title) + "  " + ui.StateText(m.snap.State)
	if m.snap.Entering != nil {
		line += "  " + ui.Muted.Render("→ "+m.snap.Entering.Title)
	}
	return line + "\n" + ui.Muted.Render(fmt.Sprintf("%s · %d attempts", m.snap.Path, len(m.snap.Attempts)))
}

func (m playModel) renderClues() string {
	var lines []string
	for _, c := range m.snap.Clues {
		lines = append(lines, ui.LabelValue(ui.IconClue+" "+c.Name, clueText(c)))
	}
	if r := m.snap.Reveal; r != nil {
		lines = append(lines, ui.Muted.Render(fmt.Sprintf("blur %.1f · saturation %.0f%% · brightness %.0f%%", r.Blur, r.Saturation, r.Brightness)))
	}
	return strings.Join(lines, "\n")
}

func clueText(c dailygame.Clue) string {
	switch c.Type {
	case dailygame.ClueAudio:
		return "♪ " + c.Value
	case dailygame.ClueImage:
		return "🖼 " + c.Value
	default:
		return c.Value
	}
}

func (m playModel) renderBoard() string {
	if len(m.snap.Board) == 0 {
		return ui.Muted.Render("(no guesses yet)")
	}
	var rows []string
	if len(m.snap.Columns) > 0 {
		head := []string{pad("Answer", cellWidth)}
		for _, c := range m.snap.Columns {
			head = append(head, pad(c, cellWidth+2))
		}
		rows = append(rows, ui.Key.Render(strings.Join(head, "")))
	}
	for _, r := range m.snap.Board {
		line := pad(r.Answer.Name, cellWidth)
		if r.IsCorrect {
			line = ui.Good.Render(line)
		}
		for _, c := range r.Cells {
			line += ui.RenderCell(c, cellWidth) + " "
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m playModel) renderSuggestions() string {
	sugg := m.suggestions()
	if len(sugg) == 0 {
		if m.snap.State == game.StateReady && m.input.Value() == "" {
			return ui.Muted.Render(fmt.Sprintf("%d candidates left", len(m.snap.Candidates)))
		}
		return ""
	}
	var lines []string
	for i, a := range sugg {
		line := "  " + a.Name
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + a.Name)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func pad(s string, w int) string {
	if len([]rune(s)) >= w {
		return string([]rune(s)[:w-1]) + " "
	}
	return s + strings.Repeat(" ", w-len([]rune(s)))
}
