package searcher

import (
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
)

// negamax is the depth-limited search shared by both strategies. Scores are
// always from the view of the player to move at the node being scored.
type negamax struct {
	evaluate game.Evaluate
	metrics  metrics.Collector
	prune    bool
}

func (n *negamax) score(b game.Board, p game.Player, depth int, alpha, beta float64) float64 {
	n.metrics.AddNode()

	if winner := b.Winner(); winner != game.NoPlayer {
		n.metrics.AddLeaf()
		if winner == p {
			return Win
		}
		return Loss
	}
	if depth == 0 {
		n.metrics.AddLeaf()
		return n.evaluate(b, p)
	}

	best := Loss
	for _, child := range b.Successors(p) {
		value := -n.score(child, p.Opponent(), depth-1, -beta, -alpha)
		if value > best {
			best = value
		}
		if n.prune {
			alpha = max(alpha, best)
			if alpha >= beta {
				n.metrics.AddCutoff()
				break
			}
		}
	}
	return best
}
