package agent

import (
	"context"
	"sync"

	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
	"github.com/statenegative/quoridor/searcher"
	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	searcher *searcher.RankedExploration
	maxRank  int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewTrainingAgent returns an agent for self-play during training. Each move
// is drawn uniformly from the maxRank best successors so games stray from
// the principal line.
func NewTrainingAgent(s *searcher.RankedExploration, maxRank int, seed uint64) Agent {
	if maxRank < 1 {
		maxRank = 1
	}
	return &trainingAgent{
		searcher: s,
		maxRank:  maxRank,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(ctx context.Context, b game.Board, p game.Player) (game.Board, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return game.Board{}, metrics.SearchMetric{}, err
	}
	result, metric, err := a.searcher.Search(b, p, a.sampleRank())
	if err != nil {
		return game.Board{}, metrics.SearchMetric{}, err
	}
	return result.Board, metric, nil
}

func (a *trainingAgent) sampleRank() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return 1 + a.rng.Intn(a.maxRank)
}
