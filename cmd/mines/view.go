package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/minesweeper-classic/internal/mines"
	"github.com/vancomm/minesweeper-classic/internal/stopwatch"
)

const (
	boardTop  = 1 // header line above the board
	cellWidth = 2
)

var (
	closedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	flagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	mineStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	numberStyles = [9]lipgloss.Style{
		lipgloss.NewStyle(),
		lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
)

// cellAt maps a terminal position to the board cell drawn there.
func cellAt(x, y int) (mines.Position, bool) {
	if x < 0 || y < boardTop {
		return mines.Position{}, false
	}
	return mines.Position{Row: y - boardTop, Col: x / cellWidth}, true
}

func cellStyle(v mines.CellView) lipgloss.Style {
	switch v.State {
	case mines.Closed:
		return closedStyle
	case mines.Flagged, mines.WrongFlag:
		return flagStyle
	case mines.Detonated:
		return mineStyle
	case mines.FlaggedMine:
		return correctStyle
	case mines.RevealedMine:
		return flagStyle
	default:
		return numberStyles[v.NeighborMines]
	}
}

func face(status mines.Status) string {
	switch status {
	case mines.Won:
		return "B)"
	case mines.Lost:
		return "X("
	default:
		return ":)"
	}
}

func (m *model) View() string {
	snap := m.game.Snapshot()

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(
		"%03d %s %s", snap.MinesLeft, face(snap.Status), stopwatch.Format(m.clock.Elapsed()),
	)))
	b.WriteString("\n")

	for row := range snap.Rows {
		for col := range snap.Cols {
			v := snap.At(row, col)
			style := cellStyle(v)
			if row == m.cursor.Row && col == m.cursor.Col {
				style = style.Reverse(true)
			}
			b.WriteString(style.Render(v.String()))
			b.WriteString(strings.Repeat(" ", cellWidth-1))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.footer(snap.Status))
	return b.String()
}

func (m *model) footer(status mines.Status) string {
	if status == mines.InProgress {
		return helpStyle.Render("space open, f flag, c chord, r reset, q quit")
	}

	stats := m.game.Stats()
	verdict := "You won!"
	if status == mines.Lost {
		verdict = "Boom. You lost."
	}
	return fmt.Sprintf(
		"%s correct flags %d, flags used %d, mines opened %d, time %s\n%s",
		verdict,
		stats.CorrectFlags, stats.FlagsUsed, stats.MinesOpened,
		stopwatch.Format(m.clock.Elapsed()),
		helpStyle.Render("r new game, q quit"),
	)
}
