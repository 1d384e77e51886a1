package searcher

import (
	"errors"
	"math"

	"github.com/statenegative/quoridor/game"
)

// ErrGameOver is returned when asked to search a board that is already won.
var ErrGameOver = errors.New("game is over - no moves to search")

// Scores of a won and a lost board for the side to move. Every heuristic
// score lies strictly between them.
var (
	Win  = math.Inf(1)
	Loss = math.Inf(-1)
)

// Result is a root successor and its score from the searching player's view.
type Result struct {
	Board game.Board
	Score float64
}
