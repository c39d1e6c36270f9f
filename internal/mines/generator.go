package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type GameParams struct {
	Rows, Cols, Mines int
}

func (p GameParams) Unpack() (rows int, cols int, mines int) {
	return p.Rows, p.Cols, p.Mines
}

// Validate rejects boards that cannot hold the requested mines. A mine count
// equal to the cell count is rejected too: such a board has no safe cell to
// open and placement would never terminate.
func (p GameParams) Validate() error {
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf(
			"%w: board must be at least 1x1, got %dx%d",
			ErrInvalidConfiguration, p.Rows, p.Cols,
		)
	}
	if p.Mines < 0 {
		return fmt.Errorf(
			"%w: mine count must not be negative, got %d",
			ErrInvalidConfiguration, p.Mines,
		)
	}
	if p.Mines >= p.Rows*p.Cols {
		return fmt.Errorf(
			"%w: %d mines do not fit a %dx%d board",
			ErrInvalidConfiguration, p.Mines, p.Rows, p.Cols,
		)
	}
	return nil
}

func (p GameParams) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Rows, p.Cols, p.Mines)
}

func ParseSeed(seed string) (*GameParams, error) {
	parts := strings.Split(strings.TrimSpace(seed), ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf(
			`%w: malformed seed "%s" (want rows:cols:mines)`,
			ErrInvalidConfiguration, seed,
		)
	}
	var values [3]int
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf(
				`%w: malformed seed "%s": %w`, ErrInvalidConfiguration, seed, err,
			)
		}
		values[i] = v
	}
	return &GameParams{Rows: values[0], Cols: values[1], Mines: values[2]}, nil
}

func (p GameParams) InBounds(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}

// Rules holds the behaviors that differ between classic variants.
type Rules struct {
	// OpenFlagged lets Open act on a flagged cell, discarding the flag.
	// When false, opening a flagged cell does nothing.
	OpenFlagged bool
	// CapFlags refuses to place more flags than there are mines.
	CapFlags bool
}

func DefaultRules() Rules {
	return Rules{CapFlags: true}
}
