package mines

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

type CellState int8

const (
	Closed CellState = iota
	Flagged
	Open
	Detonated
	/*
	 * The remaining states only appear once the game is over:
	 *
	 * 	- FlaggedMine is a flag that turned out to sit on a mine.
	 *
	 * 	- WrongFlag is a flag that was placed on a safe cell.
	 *
	 * 	- RevealedMine is a mine the player never found, shown for
	 * 	  display. It is distinct from the Detonated one.
	 */
	FlaggedMine
	WrongFlag
	RevealedMine
)

func (s CellState) String() string {
	switch s {
	case Closed:
		return "closed"
	case Flagged:
		return "flagged"
	case Open:
		return "open"
	case Detonated:
		return "detonated"
	case FlaggedMine:
		return "flagged-mine"
	case WrongFlag:
		return "wrong-flag"
	case RevealedMine:
		return "revealed-mine"
	default:
		return "CellState(" + strconv.Itoa(int(s)) + ")"
	}
}

type Cell struct {
	HasMine       bool
	NeighborMines int
	State         CellState
}

// String renders the cell the way the player sees it.
func (c Cell) String() string {
	switch c.State {
	case Closed:
		return "."
	case Flagged:
		return "F"
	case Open:
		if c.NeighborMines == 0 {
			return " "
		}
		return strconv.Itoa(c.NeighborMines)
	case Detonated:
		return "X"
	case FlaggedMine:
		return "+"
	case WrongFlag:
		return "x"
	case RevealedMine:
		return "*"
	default:
		return "!"
	}
}

type Position struct {
	Row, Col int
}

// Board is a rows x cols grid stored row-major. Mine placement and neighbor
// counts are fixed at construction; only cell states change afterwards.
type Board struct {
	rows, cols int
	mines      int
	cells      []Cell
}

func newBoard(rows, cols int) *Board {
	return &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
}

// NewBoard builds a board with mines at exactly the given positions.
func NewBoard(rows, cols int, mines ...Position) (*Board, error) {
	params := GameParams{Rows: rows, Cols: cols, Mines: len(mines)}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := newBoard(rows, cols)
	for _, p := range mines {
		if !params.InBounds(p.Row, p.Col) {
			return nil, fmt.Errorf(
				"%w: mine at %d:%d is off a %dx%d board",
				ErrInvalidConfiguration, p.Row, p.Col, rows, cols,
			)
		}
		i := b.index(p.Row, p.Col)
		if b.cells[i].HasMine {
			return nil, fmt.Errorf(
				"%w: duplicate mine at %d:%d",
				ErrInvalidConfiguration, p.Row, p.Col,
			)
		}
		b.cells[i].HasMine = true
	}
	b.mines = len(mines)
	b.countNeighborMines()
	return b, nil
}

func (b *Board) Rows() int      { return b.rows }
func (b *Board) Cols() int      { return b.cols }
func (b *Board) MineCount() int { return b.mines }

// Cell returns a copy of the cell at row:col. It panics if row:col is off
// the board.
func (b *Board) Cell(row, col int) Cell {
	if !b.params().InBounds(row, col) {
		panic(fmt.Sprintf(
			"mines: cell %d:%d is off a %dx%d board", row, col, b.rows, b.cols,
		))
	}
	return b.cells[b.index(row, col)]
}

func (b *Board) params() GameParams {
	return GameParams{Rows: b.rows, Cols: b.cols, Mines: b.mines}
}

func (b *Board) index(row, col int) int {
	return row*b.cols + col
}

func (b *Board) position(i int) (row, col int) {
	return i / b.cols, i % b.cols
}

// neighbors yields the indexes of the up to 8 cells around i, clipped at
// the board edges.
func (b *Board) neighbors(i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		row, col := b.position(i)
		for dr := -1; dr <= 1; dr++ {
			r := row + dr
			if r < 0 || r >= b.rows {
				continue
			}
			for dc := -1; dc <= 1; dc++ {
				c := col + dc
				if c < 0 || c >= b.cols || (dr == 0 && dc == 0) {
					continue
				}
				if !yield(r*b.cols + c) {
					return
				}
			}
		}
	}
}

func (b *Board) countNeighborMines() {
	for i := range b.cells {
		n := 0
		for j := range b.neighbors(i) {
			if b.cells[j].HasMine {
				n++
			}
		}
		b.cells[i].NeighborMines = n
	}
}

// String renders the true layout: '*' for mines, '-' for empty cells and the
// neighbor count otherwise.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.rows {
		for col := range b.cols {
			c := b.cells[b.index(row, col)]
			switch {
			case c.HasMine:
				sb.WriteString("* ")
			case c.NeighborMines == 0:
				sb.WriteString("- ")
			default:
				fmt.Fprintf(&sb, "%d ", c.NeighborMines)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
