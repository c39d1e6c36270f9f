package mines

// CellView is what a presentation layer may know about a cell. Mine and
// neighbor count stay hidden while the cell is closed or flagged.
type CellView struct {
	HasMine       bool
	NeighborMines int
	State         CellState
}

func (v CellView) String() string {
	return Cell(v).String()
}

type Snapshot struct {
	Rows, Cols int
	Status     Status
	MinesLeft  int
	Cells      [][]CellView
}

func (s Snapshot) At(row, col int) CellView {
	return s.Cells[row][col]
}

func (g *Game) Snapshot() Snapshot {
	b := g.board
	cells := make([][]CellView, b.rows)
	for row := range b.rows {
		cells[row] = make([]CellView, b.cols)
		for col := range b.cols {
			c := b.cells[b.index(row, col)]
			v := CellView{State: c.State}
			if c.State != Closed && c.State != Flagged {
				v.HasMine = c.HasMine
				v.NeighborMines = c.NeighborMines
			}
			cells[row][col] = v
		}
	}
	return Snapshot{
		Rows:      b.rows,
		Cols:      b.cols,
		Status:    g.status,
		MinesLeft: g.MinesLeft(),
		Cells:     cells,
	}
}

// Stats summarizes a game for the end screen.
type Stats struct {
	CorrectFlags int
	FlagsUsed    int
	MinesOpened  int
}

func (g *Game) Stats() Stats {
	stats := Stats{FlagsUsed: g.flags}
	for _, c := range g.board.cells {
		switch c.State {
		case FlaggedMine:
			stats.CorrectFlags++
		case Detonated, RevealedMine:
			stats.MinesOpened++
		}
	}
	return stats
}
