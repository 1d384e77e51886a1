package searcher

import (
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
)

type config struct {
	depth       int
	goroutines  int
	evaluate    game.Evaluate
	withMetrics bool
}

type Option func(c *config)

// WithDepth sets the number of plies searched from the root. Searchers panic
// on construction if it is below 1.
func WithDepth(depth int) Option {
	return func(c *config) {
		c.depth = depth
	}
}

// WithGoroutines bounds how many root children ranked exploration scores in
// parallel. Best-move search is always sequential.
func WithGoroutines(goroutines int) Option {
	return func(c *config) {
		if goroutines > 0 {
			c.goroutines = goroutines
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(c *config) {
		if evaluate != nil {
			c.evaluate = evaluate
		}
	}
}

// WithMetrics counts visited nodes, leaves and cutoffs for every search.
func WithMetrics() Option {
	return func(c *config) {
		c.withMetrics = true
	}
}

func newConfig(options []Option) config {
	c := config{ // Default values
		depth:      DefaultDepth,
		goroutines: DefaultGoroutines,
		evaluate:   game.EvaluatePathDifference,
	}
	for _, option := range options {
		option(&c)
	}
	if c.depth < 1 {
		panic("Search depth must be at least 1")
	}
	return c
}

func (c config) collector() metrics.Collector {
	if c.withMetrics {
		return metrics.NewCollector()
	}
	return metrics.NewDummyCollector()
}
