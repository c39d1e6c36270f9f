package main

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-classic/internal/mines"
	"github.com/vancomm/minesweeper-classic/internal/stopwatch"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type idleTicker struct {
	c chan time.Time
}

func (t idleTicker) C() <-chan time.Time { return t.c }
func (t idleTicker) Stop()               {}

func newTestModel(t *testing.T, mineAt ...mines.Position) *model {
	t.Helper()
	m, _ := newTickingTestModel(t, mineAt...)
	return m
}

// newTickingTestModel also returns the channel that drives the clock.
func newTickingTestModel(t *testing.T, mineAt ...mines.Position) (*model, chan<- time.Time) {
	t.Helper()
	ticks := make(chan time.Time)

	board, err := mines.NewBoard(3, 3, mineAt...)
	require.NoError(t, err)

	params := mines.GameParams{Rows: 3, Cols: 3, Mines: len(mineAt)}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m, err := newModel(params, mines.DefaultRules(), rand.New(rand.NewPCG(1, 2)), logger)
	require.NoError(t, err)

	m.game = mines.NewGameWithBoard(board, mines.DefaultRules())
	m.clock = stopwatch.New(nil, stopwatch.WithTicker(func(time.Duration) stopwatch.Ticker {
		return idleTicker{c: ticks}
	}))
	t.Cleanup(m.clock.Stop)
	return m, ticks
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func TestCursorStaysOnBoard(t *testing.T) {
	m := newTestModel(t, mines.Position{Row: 0, Col: 0})

	press(m, "up", "left")
	assert.Equal(t, mines.Position{}, m.cursor)

	press(m, "down", "down", "down", "down", "l", "l", "l", "l")
	assert.Equal(t, mines.Position{Row: 2, Col: 2}, m.cursor)

	press(m, "k", "h")
	assert.Equal(t, mines.Position{Row: 1, Col: 1}, m.cursor)
}

func TestFirstOpenStartsClock(t *testing.T) {
	m := newTestModel(t,
		mines.Position{Row: 0, Col: 0},
		mines.Position{Row: 2, Col: 2},
	)
	assert.False(t, m.clock.Running())

	press(m, "f")
	assert.False(t, m.clock.Running(), "flagging does not start the clock")
	press(m, "f")

	press(m, "right", " ")
	assert.True(t, m.game.Started())
	assert.True(t, m.clock.Running())
	assert.Equal(t, mines.InProgress, m.game.Status())
}

func TestLossStopsClock(t *testing.T) {
	m := newTestModel(t,
		mines.Position{Row: 0, Col: 0},
		mines.Position{Row: 2, Col: 2},
	)

	press(m, "right", "enter")
	require.True(t, m.clock.Running())

	press(m, "left", "enter")
	assert.Equal(t, mines.Lost, m.game.Status())
	assert.False(t, m.clock.Running())

	view := m.View()
	assert.Contains(t, view, "X(")
	assert.Contains(t, view, "Boom")
	assert.Contains(t, view, "mines opened 2")
}

func TestWinStopsClock(t *testing.T) {
	m := newTestModel(t, mines.Position{Row: 0, Col: 0})

	press(m, "down", "down", "right", "right", " ")
	assert.Equal(t, mines.Won, m.game.Status())
	assert.False(t, m.clock.Running())
	assert.Contains(t, m.View(), "You won!")
}

func TestMovesAfterGameOverAreIgnored(t *testing.T) {
	m := newTestModel(t, mines.Position{Row: 0, Col: 0})

	press(m, " ")
	require.Equal(t, mines.Lost, m.game.Status())

	press(m, "right", "f")
	assert.Equal(t, 0, m.game.FlagsPlaced())
	assert.False(t, m.clock.Running())
}

func TestFlagAndChord(t *testing.T) {
	m := newTestModel(t, mines.Position{Row: 0, Col: 0})

	press(m, "f")
	assert.Equal(t, 1, m.game.FlagsPlaced())
	assert.Equal(t, 0, m.game.MinesLeft())

	press(m, "right", " ")
	require.Equal(t, mines.InProgress, m.game.Status())

	press(m, "c")
	assert.Equal(t, mines.Won, m.game.Status())
}

func TestReset(t *testing.T) {
	m := newTestModel(t,
		mines.Position{Row: 0, Col: 0},
		mines.Position{Row: 2, Col: 2},
	)
	press(m, "right", " ")
	require.True(t, m.clock.Running())
	old := m.game

	press(m, "r")
	assert.NotSame(t, old, m.game)
	assert.False(t, m.game.Started())
	assert.False(t, m.clock.Running())
	assert.Equal(t, m.params, m.game.Params())
}

func TestResetClearsClock(t *testing.T) {
	m, ticks := newTickingTestModel(t,
		mines.Position{Row: 0, Col: 0},
		mines.Position{Row: 2, Col: 2},
	)
	press(m, "right", " ")
	require.True(t, m.clock.Running())

	for range 3 {
		ticks <- time.Now()
	}
	require.Eventually(t, func() bool { return m.clock.Elapsed() == 3 },
		time.Second, time.Millisecond)
	require.Contains(t, m.View(), "00:03")

	press(m, "r")
	assert.Equal(t, 0, m.clock.Elapsed())
	assert.Contains(t, m.View(), "002 :) 00:00")
}

func TestQuit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(t, mines.Position{Row: 0, Col: 0})
			press(m, "right", " ")
			require.True(t, m.clock.Running())

			cmd := press(m, k)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.False(t, m.clock.Running())
		})
	}
}

func TestMouse(t *testing.T) {
	m := newTestModel(t,
		mines.Position{Row: 0, Col: 0},
		mines.Position{Row: 2, Col: 2},
	)

	click := func(x, y int, button tea.MouseButton) {
		m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: button})
	}

	click(0, boardTop, tea.MouseButtonRight)
	assert.Equal(t, 1, m.game.FlagsPlaced())

	click(2*cellWidth, boardTop+2, tea.MouseButtonRight)
	assert.Equal(t, 2, m.game.FlagsPlaced())
	assert.Equal(t, mines.Position{Row: 2, Col: 2}, m.cursor)

	// header line and cells past the board are not cells
	click(0, 0, tea.MouseButtonLeft)
	click(10*cellWidth, boardTop, tea.MouseButtonLeft)
	assert.False(t, m.game.Started())

	m.Update(tea.MouseMsg{X: cellWidth, Y: boardTop, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.False(t, m.game.Started())

	click(cellWidth, boardTop, tea.MouseButtonLeft)
	assert.True(t, m.game.Started())
	assert.Equal(t, mines.Open, m.game.Snapshot().At(0, 1).State)
}

func TestViewHeader(t *testing.T) {
	m := newTestModel(t,
		mines.Position{Row: 0, Col: 0},
		mines.Position{Row: 2, Col: 2},
	)
	view := m.View()
	assert.Contains(t, view, "002 :) 00:00")
	assert.Contains(t, view, "q quit")

	press(m, "f")
	assert.Contains(t, m.View(), "001 :)")
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		x, y int
		want mines.Position
		ok   bool
	}{
		{0, 0, mines.Position{}, false},
		{-1, boardTop, mines.Position{}, false},
		{0, boardTop, mines.Position{Row: 0, Col: 0}, true},
		{1, boardTop, mines.Position{Row: 0, Col: 0}, true},
		{cellWidth, boardTop + 1, mines.Position{Row: 1, Col: 1}, true},
	}
	for _, tt := range tests {
		got, ok := cellAt(tt.x, tt.y)
		assert.Equal(t, tt.ok, ok, "cellAt(%d, %d)", tt.x, tt.y)
		assert.Equal(t, tt.want, got, "cellAt(%d, %d)", tt.x, tt.y)
	}
}
