package agent

import (
	"context"

	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
	"github.com/statenegative/quoridor/searcher"
)

type evaluationAgent struct {
	searcher *searcher.BestMove
}

// NewEvaluationAgent returns an agent that always plays the best move found.
func NewEvaluationAgent(s *searcher.BestMove) Agent {
	return evaluationAgent{searcher: s}
}

func (a evaluationAgent) FindMove(ctx context.Context, b game.Board, p game.Player) (game.Board, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return game.Board{}, metrics.SearchMetric{}, err
	}
	result, metric, err := a.searcher.Search(b, p)
	if err != nil {
		return game.Board{}, metrics.SearchMetric{}, err
	}
	return result.Board, metric, nil
}
