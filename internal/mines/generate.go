package mines

import "math/rand/v2"

// GenerateBoard places params.Mines mines uniformly at random without
// replacement and computes every neighbor count.
func GenerateBoard(params GameParams, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	rows, cols, mineCount := params.Unpack()
	b := newBoard(rows, cols)

	/*
	 * Write down every cell as a candidate, then pick n off the list,
	 * swapping each pick out of the live prefix.
	 */
	candidates := make([]int, len(b.cells))
	for i := range candidates {
		candidates[i] = i
	}
	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		b.cells[candidates[i]].HasMine = true
		k--
		candidates[i] = candidates[k]
	}
	b.mines = mineCount
	b.countNeighborMines()

	Log.Debug("generated board", "seed", params.Seed())
	return b, nil
}
