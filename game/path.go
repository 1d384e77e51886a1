package game

import (
	"container/heap"

	"github.com/statenegative/quoridor/utils"
)

type pathNode struct {
	priority int // Steps so far plus rows left to the goal
	steps    int
	pos      Pos
}

type frontier []pathNode

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	// Deeper nodes first among equals, they are closer to the goal
	return f[i].steps > f[j].steps
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(pathNode)) }

func (f *frontier) Pop() any {
	old := *f
	n := old[len(old)-1]
	*f = old[:len(old)-1]
	return n
}

// ShortestPath searches for the shortest route from the player's pawn to its
// goal row, ignoring both pawns. Nodes are expanded best first by steps taken
// plus rows remaining, which never overestimates, so the first tile found
// next to an open goal edge gives the optimal length. It returns false when
// the goal row cannot be reached.
func (b Board) ShortestPath(p Player) (int, bool) {
	start := b.Pawn(p)
	goal := p.goalRow()
	if start.Y == goal {
		return 0, true
	}

	// The goal row is entered from the row just before it
	edgeRow, crossing := goal-1, North
	if p == Player2 {
		edgeRow, crossing = goal+1, South
	}

	var closed [Size][Size]bool
	open := &frontier{{priority: utils.Abs(start.Y - goal), pos: start}}
	for open.Len() > 0 {
		node := heap.Pop(open).(pathNode)
		pos := node.pos
		if closed[pos.Y][pos.X] {
			continue
		}
		closed[pos.Y][pos.X] = true

		if pos.Y == edgeRow && !b.Blocked(pos.X, pos.Y, crossing) {
			return node.steps + 1, true
		}

		for _, d := range directions {
			next, ok := b.step(pos, d)
			if !ok || closed[next.Y][next.X] {
				continue
			}
			steps := node.steps + 1
			heap.Push(open, pathNode{
				priority: steps + utils.Abs(next.Y-goal),
				steps:    steps,
				pos:      next,
			})
		}
	}
	return 0, false
}
