package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-classic/internal/mines"
)

const envPrefix = "MINES_"

// Game is the board and rule setup for new games. Every field can be set
// through a MINES_* env variable, e.g. MINES_ROWS or MINES_OPEN_FLAGGED.
type Game struct {
	Rows        int    `schema:"rows,default:9"`
	Cols        int    `schema:"cols,default:10"`
	Mines       int    `schema:"mines,default:15"`
	Seed        string `schema:"seed"`
	OpenFlagged bool   `schema:"open_flagged,default:false"`
	CapFlags    bool   `schema:"cap_flags,default:true"`
}

func environ() map[string][]string {
	src := make(map[string][]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, envPrefix) {
			continue
		}
		name := strings.ToLower(strings.TrimPrefix(key, envPrefix))
		src[name] = append(src[name], value)
	}
	return src
}

func NewGame() (*Game, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	var game Game
	if err := dec.Decode(&game, environ()); err != nil {
		return nil, fmt.Errorf("unable to decode %s* env variables: %w", envPrefix, err)
	}

	if game.Seed != "" {
		params, err := mines.ParseSeed(game.Seed)
		if err != nil {
			return nil, fmt.Errorf("invalid %sSEED env variable: %w", envPrefix, err)
		}
		game.Rows, game.Cols, game.Mines = params.Unpack()
	}

	if err := game.Params().Validate(); err != nil {
		return nil, err
	}

	return &game, nil
}

func (g Game) Params() mines.GameParams {
	return mines.GameParams{Rows: g.Rows, Cols: g.Cols, Mines: g.Mines}
}

func (g Game) Rules() mines.Rules {
	return mines.Rules{OpenFlagged: g.OpenFlagged, CapFlags: g.CapFlags}
}
