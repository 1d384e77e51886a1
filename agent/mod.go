package agent

import (
	"context"

	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
)

type Agent interface {
	// FindMove returns the board after player p's move and performance
	// metrics (if collected) from the search that chose it
	FindMove(ctx context.Context, b game.Board, p game.Player) (game.Board, metrics.SearchMetric, error)
}
