package searcher

import (
	"cmp"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
	"github.com/statenegative/quoridor/utils"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// RankedExploration scores every successor exactly, without pruning at any
// depth, so that lower ranked moves can be chosen on purpose. Root children
// are independent subtrees and are scored by up to goroutines workers.
type RankedExploration struct {
	config
}

func NewRankedExploration(options ...Option) *RankedExploration {
	return &RankedExploration{config: newConfig(options)}
}

// Rank returns every successor of b for player p ordered from best to worst.
// Equal scores keep generation order.
func (s *RankedExploration) Rank(b game.Board, p game.Player) ([]Result, metrics.SearchMetric, error) {
	if b.Terminal() {
		return nil, metrics.SearchMetric{}, fmt.Errorf("rank moves for %s: %w", p, ErrGameOver)
	}

	collector := s.collector()
	collector.Start(s.depth, s.goroutines, false)
	n := &negamax{evaluate: s.evaluate, metrics: collector}
	collector.AddNode()

	children := b.Successors(p)
	results := make([]Result, len(children))

	var g errgroup.Group
	g.SetLimit(s.goroutines)
	for i, child := range children {
		g.Go(func() error {
			results[i] = Result{Board: child, Score: -n.score(child, p.Opponent(), s.depth-1, Loss, Win)}
			return nil
		})
	}
	_ = g.Wait() // Scoring never fails

	slices.SortStableFunc(results, func(a, c Result) int {
		return cmp.Compare(c.Score, a.Score)
	})
	return results, collector.Complete(len(children), results[0].Score), nil
}

// Search returns the successor at the given 1-based rank. Ranks below 1 give
// the best move and ranks past the number of successors give the worst.
func (s *RankedExploration) Search(b game.Board, p game.Player, rank int) (Result, metrics.SearchMetric, error) {
	results, metric, err := s.Rank(b, p)
	if err != nil {
		return Result{}, metrics.SearchMetric{}, err
	}

	rank = utils.Clamp(rank, 1, len(results))
	result := results[rank-1]
	metric.Score = result.Score

	log.Debug().
		Str("player", p.String()).
		Int("depth", s.depth).
		Int("rank", rank).
		Int("children", len(results)).
		Int("nodes", metric.Nodes).
		Float64("score", result.Score).
		Msg("ranked exploration complete")
	return result, metric, nil
}
