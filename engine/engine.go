package engine

import (
	"context"

	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
)

type Engine interface {
	// Run plays a game till there's a winner or a max number of moves is
	// reached, in which case the winner is game.NoPlayer
	Run(ctx context.Context) (winner game.Player, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// Referee holds the authoritative board and only accepts legal moves.
type Referee interface {
	Board() game.Board
	Turn() game.Player
	Play(p game.Player, next game.Board) error
}
