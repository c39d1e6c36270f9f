package mines

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

type Status int8

const (
	InProgress Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Won:
		return "win"
	case Lost:
		return "lose"
	default:
		return fmt.Sprintf("Status(%d)", int8(s))
	}
}

// Game is a single play session. It owns its board exclusively; resetting a
// game means building a new one. A Game is not safe for concurrent use.
type Game struct {
	params   GameParams
	rules    Rules
	board    *Board
	status   Status
	flags    int
	safeLeft int
	started  bool
}

func NewGame(params GameParams, rules Rules, r *rand.Rand) (*Game, error) {
	board, err := GenerateBoard(params, r)
	if err != nil {
		return nil, err
	}
	return NewGameWithBoard(board, rules), nil
}

// NewGameWithBoard starts a session over a prepared board. Cell states already
// on the board are taken as they are, so a board with no closed safe cell
// left starts out won.
func NewGameWithBoard(board *Board, rules Rules) *Game {
	g := &Game{
		params: board.params(),
		rules:  rules,
		board:  board,
	}
	for _, c := range board.cells {
		if c.State == Flagged {
			g.flags++
		}
		if !c.HasMine && c.State != Open {
			g.safeLeft++
		}
	}
	if g.safeLeft == 0 {
		g.started = true
		g.finish(Won)
	}
	return g
}

func (g *Game) Params() GameParams { return g.params }
func (g *Game) Rules() Rules       { return g.rules }
func (g *Game) Status() Status     { return g.status }
func (g *Game) FlagsPlaced() int   { return g.flags }

func (g *Game) Over() bool {
	return g.status != InProgress
}

// Started reports whether any cell has been opened yet.
func (g *Game) Started() bool {
	return g.started
}

// MinesLeft is the counter shown to the player: mines minus flags, never
// negative.
func (g *Game) MinesLeft() int {
	return max(0, g.params.Mines-g.flags)
}

func (g *Game) cellIndex(row, col int) (int, error) {
	if !g.params.InBounds(row, col) {
		return 0, fmt.Errorf(
			"%w: %d:%d on a %dx%d board",
			ErrOutOfBounds, row, col, g.params.Rows, g.params.Cols,
		)
	}
	return g.board.index(row, col), nil
}

// Open reveals the cell at row:col. Opening a mine loses the game; opening
// the last safe cell wins it. Calls that cannot change anything (a finished
// game, an open cell, a flagged cell under default rules) are no-ops.
func (g *Game) Open(row, col int) error {
	i, err := g.cellIndex(row, col)
	if err != nil {
		return err
	}
	g.open(i)
	return nil
}

func (g *Game) open(i int) {
	if g.status != InProgress {
		return
	}
	c := &g.board.cells[i]
	switch c.State {
	case Closed:
	case Flagged:
		if !g.rules.OpenFlagged {
			return
		}
		c.State = Closed
		g.flags--
	default:
		return
	}
	g.started = true

	if c.HasMine {
		c.State = Detonated
		g.finish(Lost)
		return
	}

	g.reveal(i)

	if g.safeLeft == 0 {
		g.finish(Won)
	}
}

// reveal opens the safe cell i and, if it has no mined neighbors, keeps
// opening outward until the region is bordered by numbered cells. Cells are
// marked open as they are queued so none is queued twice.
func (g *Game) reveal(i int) {
	cells := g.board.cells
	cells[i].State = Open
	g.safeLeft--
	if cells[i].NeighborMines > 0 {
		return
	}

	todo := []int{i}
	for len(todo) > 0 {
		j := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for k := range g.board.neighbors(j) {
			if cells[k].State != Closed || cells[k].HasMine {
				continue
			}
			cells[k].State = Open
			g.safeLeft--
			if cells[k].NeighborMines == 0 {
				todo = append(todo, k)
			}
		}
	}
}

// ToggleFlag switches a closed cell to flagged and back. Under CapFlags a new
// flag is refused once flags equal mines.
func (g *Game) ToggleFlag(row, col int) error {
	i, err := g.cellIndex(row, col)
	if err != nil {
		return err
	}
	if g.status != InProgress {
		return nil
	}
	c := &g.board.cells[i]
	switch c.State {
	case Closed:
		if g.rules.CapFlags && g.flags >= g.params.Mines {
			return nil
		}
		c.State = Flagged
		g.flags++
	case Flagged:
		c.State = Closed
		g.flags--
	}
	return nil
}

// Chord opens every closed neighbor of an open numbered cell once the player
// has flagged as many neighbors as the number says. A wrong flag makes this
// lose the game, same as opening the mine by hand.
func (g *Game) Chord(row, col int) error {
	i, err := g.cellIndex(row, col)
	if err != nil {
		return err
	}
	if g.status != InProgress {
		return nil
	}
	c := g.board.cells[i]
	if c.State != Open || c.NeighborMines == 0 {
		return nil
	}

	flagged := 0
	closed := make([]int, 0, 8)
	for j := range g.board.neighbors(i) {
		switch g.board.cells[j].State {
		case Flagged:
			flagged++
		case Closed:
			closed = append(closed, j)
		}
	}
	if flagged != c.NeighborMines {
		return nil
	}
	for _, j := range closed {
		g.open(j)
		if g.status != InProgress {
			break
		}
	}
	return nil
}

func (g *Game) finish(status Status) {
	g.status = status
	g.revealPostGame()
	Log.Debug(
		"game over",
		slog.String("status", status.String()),
		slog.String("seed", g.params.Seed()),
		slog.Int("flags", g.flags),
	)
}

// revealPostGame marks flags as right or wrong and shows every mine the
// player did not find. The detonated cell keeps its state.
func (g *Game) revealPostGame() {
	for i := range g.board.cells {
		c := &g.board.cells[i]
		switch {
		case c.State == Flagged && c.HasMine:
			c.State = FlaggedMine
		case c.State == Flagged:
			c.State = WrongFlag
		case c.State == Closed && c.HasMine:
			c.State = RevealedMine
		}
	}
}
