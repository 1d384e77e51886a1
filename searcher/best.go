package searcher

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
)

// BestMove picks the highest scoring successor with a pruned negamax search.
// It keeps no state between searches and is safe for concurrent use.
type BestMove struct {
	config
}

func NewBestMove(options ...Option) *BestMove {
	return &BestMove{config: newConfig(options)}
}

// Search returns the first successor, in generation order, with the best
// score for player p.
func (s *BestMove) Search(b game.Board, p game.Player) (Result, metrics.SearchMetric, error) {
	if b.Terminal() {
		return Result{}, metrics.SearchMetric{}, fmt.Errorf("search for %s: %w", p, ErrGameOver)
	}

	collector := s.collector()
	collector.Start(s.depth, 1, true)
	n := &negamax{evaluate: s.evaluate, metrics: collector, prune: true}
	collector.AddNode()

	children := b.Successors(p)
	alpha, beta := Loss, Win
	best := Result{Board: children[0], Score: Loss}
	for _, child := range children {
		score := -n.score(child, p.Opponent(), s.depth-1, -beta, -alpha)
		if score > best.Score {
			best = Result{Board: child, Score: score}
		}
		alpha = max(alpha, best.Score)
		if alpha >= beta {
			collector.AddCutoff()
			break
		}
	}

	metric := collector.Complete(len(children), best.Score)
	log.Debug().
		Str("player", p.String()).
		Int("depth", s.depth).
		Int("children", len(children)).
		Int("nodes", metric.Nodes).
		Int("cutoffs", metric.Cutoffs).
		Float64("score", best.Score).
		Msg("best move search complete")
	return best, metric, nil
}
