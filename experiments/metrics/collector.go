package metrics

import (
	"sync/atomic"
	"time"
)

// AgentConfig describes a search agent taking part in an experiment.
type AgentConfig struct {
	ID         int
	Depth      int
	Goroutines int
	MaxRank    int // Zero plays the best move, otherwise a random rank in [1, MaxRank]
}

type SearchMetric struct {
	Depth      int
	Goroutines int
	Pruned     bool
	Duration   time.Duration
	Nodes      int // Boards visited, root included
	Leaves     int // Boards scored by the heuristic or as terminal
	Cutoffs    int
	Children   int // Root successors
	Score      float64
}

type MoveMetric struct {
	Step   int
	Player int // 1 or 2
	SearchMetric
}

type GameMetric struct {
	MatchID        string
	StartingPlayer int    // Seat of the first agent
	Winner         string // Agent name, empty on a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(depth, goroutines int, pruned bool)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete(children int, score float64) SearchMetric
}

type collector struct {
	depth      int
	goroutines int
	pruned     bool
	startTime  time.Time
	nodes      atomic.Int64
	leaves     atomic.Int64
	cutoffs    atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth, goroutines int, pruned bool) {
	m.startTime = time.Now()
	m.depth = depth
	m.goroutines = goroutines
	m.pruned = pruned
	m.nodes.Store(0)
	m.leaves.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) Complete(children int, score float64) SearchMetric {
	return SearchMetric{
		Depth:      m.depth,
		Goroutines: m.goroutines,
		Pruned:     m.pruned,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Leaves:     int(m.leaves.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		Children:   children,
		Score:      score,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth, goroutines int, pruned bool)          {}
func (m *dummyCollector) AddNode()                                          {}
func (m *dummyCollector) AddLeaf()                                          {}
func (m *dummyCollector) AddCutoff()                                        {}
func (m *dummyCollector) Complete(children int, score float64) SearchMetric { return SearchMetric{} }
