package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/makeadle/dle-service/internal/game"
)

const (
	IconTarget = "🎯"
	IconUp     = "▲"
	IconDown   = "▼"
	IconError  = "🧨"
	IconTrophy = "🏆"
	IconClue   = "🔎"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cInk     = lipgloss.Color("0")
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	cell = lipgloss.NewStyle().Padding(0, 1).Foreground(cInk)
)

// CellStyle colours a board cell by its correctness.
func CellStyle(c game.Correctness) lipgloss.Style {
	switch c {
	case game.Correct:
		return cell.Background(cGood)
	case game.Partial:
		return cell.Background(cWarn)
	case game.Wrong, game.Higher, game.Lower:
		return cell.Background(cBad)
	default:
		return cell.Background(cMuted)
	}
}

// CellText is the plain label of a cell, with an arrow for numeric hints.
func CellText(c game.Cell) string {
	switch c.Correctness {
	case game.Higher:
		return c.Value + " " + IconUp
	case game.Lower:
		return c.Value + " " + IconDown
	default:
		return c.Value
	}
}

// RenderCell draws a cell padded to width.
func RenderCell(c game.Cell, width int) string {
	return CellStyle(c.Correctness).Width(width).Render(CellText(c))
}

// StateText renders a session state.
func StateText(s game.State) string {
	switch s {
	case game.StateWon:
		return Gold.Render(IconTrophy + " won")
	case game.StateReady:
		return Good.Render("ready")
	case game.StateError:
		return Bad.Render(IconError + " error")
	case game.StateSubmitting, game.StateLoading:
		return Warn.Render(string(s) + "…")
	default:
		return Muted.Render(string(s))
	}
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}
