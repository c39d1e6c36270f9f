package main

import (
	"log/slog"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vancomm/minesweeper-classic/internal/mines"
	"github.com/vancomm/minesweeper-classic/internal/stopwatch"
)

// tickMsg is sent by the stopwatch once per counted second.
type tickMsg int

type model struct {
	params mines.GameParams
	rules  mines.Rules
	rnd    *rand.Rand
	logger *slog.Logger

	game   *mines.Game
	clock  *stopwatch.Stopwatch
	cursor mines.Position
}

func newModel(
	params mines.GameParams,
	rules mines.Rules,
	rnd *rand.Rand,
	logger *slog.Logger,
) (*model, error) {
	game, err := mines.NewGame(params, rules, rnd)
	if err != nil {
		return nil, err
	}
	m := &model{
		params: params,
		rules:  rules,
		rnd:    rnd,
		logger: logger,
		game:   game,
		clock:  stopwatch.New(nil),
	}
	return m, nil
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tickMsg:
		// nothing to do but redraw
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		m.clock.Stop()
		return tea.Quit
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case " ", "enter":
		m.act("open", m.game.Open)
	case "f":
		m.act("flag", m.game.ToggleFlag)
	case "c":
		m.act("chord", m.game.Chord)
	case "r":
		m.reset()
	}
	return nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress {
		return
	}
	pos, ok := cellAt(msg.X, msg.Y)
	if !ok || !m.params.InBounds(pos.Row, pos.Col) {
		return
	}
	m.cursor = pos
	switch msg.Button {
	case tea.MouseButtonLeft:
		m.act("open", m.game.Open)
	case tea.MouseButtonRight:
		m.act("flag", m.game.ToggleFlag)
	case tea.MouseButtonMiddle:
		m.act("chord", m.game.Chord)
	}
}

func (m *model) moveCursor(dRow, dCol int) {
	m.cursor.Row = min(max(m.cursor.Row+dRow, 0), m.params.Rows-1)
	m.cursor.Col = min(max(m.cursor.Col+dCol, 0), m.params.Cols-1)
}

// act applies a move at the cursor and keeps the clock in step with the
// game: it starts on the first opened cell and stops when the game ends.
func (m *model) act(name string, move func(row, col int) error) {
	if m.game.Over() {
		return
	}
	started := m.game.Started()

	if err := move(m.cursor.Row, m.cursor.Col); err != nil {
		m.logger.Warn("move rejected",
			slog.String("move", name),
			slog.Int("row", m.cursor.Row),
			slog.Int("col", m.cursor.Col),
			slog.Any("error", err),
		)
		return
	}

	if !started && m.game.Started() {
		m.clock.Start()
	}
	if m.game.Over() {
		m.clock.Stop()
		stats := m.game.Stats()
		m.logger.Info("game over",
			slog.String("status", m.game.Status().String()),
			slog.String("seed", m.params.Seed()),
			slog.Int("seconds", m.clock.Elapsed()),
			slog.Int("correct_flags", stats.CorrectFlags),
			slog.Int("flags_used", stats.FlagsUsed),
			slog.Int("mines_opened", stats.MinesOpened),
		)
	}
}

func (m *model) reset() {
	m.clock.Reset()
	game, err := mines.NewGame(m.params, m.rules, m.rnd)
	if err != nil {
		// params were validated when the first game was made
		m.logger.Error("unable to create game", slog.Any("error", err))
		return
	}
	m.game = game
	m.logger.Debug("game reset", slog.String("seed", m.params.Seed()))
}
