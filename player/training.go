package player

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
	"github.com/statenegative/quoridor/searcher"
	"golang.org/x/exp/rand"
)

var errExhausted = errors.New("no positions left to explore")

type position struct {
	board game.Board
	turn  game.Player
}

type entry struct {
	score    float64
	priority int // Number of times the position has been explored
}

// TrainingController grows a dataset of scored positions. Every step
// explores a random queued position at a rank one lower than last time it was
// explored, so repeated visits branch into weaker lines of play.
type TrainingController struct {
	searcher *searcher.RankedExploration
	rng      *rand.Rand

	entries     map[position]*entry // Explored and queued positions
	order       []position          // Explored positions by first visit
	processed   []position
	unprocessed []position
	maxPriority int
}

// NewTrainingController starts the dataset from the initial board with
// Player1 to move.
func NewTrainingController(s *searcher.RankedExploration, seed uint64) *TrainingController {
	return NewTrainingControllerFrom(s, seed, game.NewBoard(), game.Player1)
}

func NewTrainingControllerFrom(s *searcher.RankedExploration, seed uint64, b game.Board, turn game.Player) *TrainingController {
	start := position{board: b, turn: turn}
	return &TrainingController{
		searcher:    s,
		rng:         rand.New(rand.NewSource(seed)),
		entries:     map[position]*entry{start: {}},
		unprocessed: []position{start},
	}
}

// Len returns the number of scored positions.
func (c *TrainingController) Len() int {
	return len(c.order)
}

// Run steps until the dataset holds target positions.
func (c *TrainingController) Run(ctx context.Context, target int) error {
	for c.Len() < target {
		if err := ctx.Err(); err != nil {
			return err
		}
		before := c.Len()
		if err := c.Step(); err != nil {
			return err
		}
		if c.Len() != before && c.Len()%100 == 0 {
			log.Info().Int("positions", c.Len()).Int("priority", c.maxPriority).Msg("dataset progress")
		}
	}
	return nil
}

// Step explores one position.
func (c *TrainingController) Step() error {
	if len(c.unprocessed) == 0 {
		c.unprocessed, c.processed = c.processed, nil
	}
	if len(c.unprocessed) == 0 {
		return errExhausted
	}

	i := c.rng.Intn(len(c.unprocessed))
	pos := c.unprocessed[i]
	c.unprocessed[i] = c.unprocessed[len(c.unprocessed)-1]
	c.unprocessed = c.unprocessed[:len(c.unprocessed)-1]

	e := c.entries[pos]
	e.priority++
	if e.priority == 1 {
		c.order = append(c.order, pos)
	}

	// Won positions are kept with their final score and never expanded
	if winner := pos.board.Winner(); winner != game.NoPlayer {
		e.score = searcher.Loss
		if winner == pos.turn {
			e.score = searcher.Win
		}
		return nil
	}

	result, _, err := c.searcher.Search(pos.board, pos.turn, e.priority)
	if err != nil {
		return err
	}
	if e.priority == 1 {
		e.score = result.Score
	}

	if e.priority < c.maxPriority {
		c.unprocessed = append(c.unprocessed, pos)
	} else {
		c.processed = append(c.processed, pos)
	}
	c.maxPriority = max(c.maxPriority, e.priority)

	child := position{board: result.Board, turn: pos.turn.Opponent()}
	if _, ok := c.entries[child]; !ok {
		c.entries[child] = &entry{}
		c.unprocessed = append(c.unprocessed, child)
	}
	return nil
}

// Samples returns every scored position in the order it was first explored.
func (c *TrainingController) Samples() []metrics.Sample {
	samples := make([]metrics.Sample, 0, len(c.order))
	for _, pos := range c.order {
		e := c.entries[pos]
		samples = append(samples, metrics.Sample{
			Board:  pos.board,
			Player: pos.turn,
			Score:  e.score,
			Visits: e.priority,
		})
	}
	return samples
}
