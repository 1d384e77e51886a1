package game

import (
	"cmp"
	"fmt"

	"golang.org/x/exp/slices"
)

type wallCell struct {
	proximity int
	x, y      int
}

// Successors returns every board reachable by one legal action of player p:
// pawn steps and jumps first, then wall placements ordered by proximity to the
// pawns.
//
// A non-terminal board always has a legal action; finding none means the
// generator is broken, so Successors panics rather than returning nothing.
func (b Board) Successors(p Player) []Board {
	states := b.pawnMoves(p)

	if b.WallsRemaining(p) > 0 {
		for _, cell := range b.wallOrder() {
			for o := Horizontal; o <= Vertical; o++ {
				if !b.canPlace(o, cell.x, cell.y) {
					continue
				}
				// Drop placements that would cut either pawn off its goal row
				if next, ok := b.placeWall(p, o, cell.x, cell.y); ok {
					states = append(states, next)
				}
			}
		}
	}

	if len(states) == 0 && !b.Terminal() {
		panic(fmt.Sprintf("no legal moves for %s on a non-terminal board\n%s", p, b))
	}
	return states
}

func (b Board) pawnMoves(p Player) []Board {
	own, other := b.Pawn(p), b.Pawn(p.Opponent())
	states := make([]Board, 0, 6)

	for _, d := range directions {
		next, ok := b.step(own, d)
		if !ok {
			continue
		}
		if next != other {
			states = append(states, b.movePawn(p, next))
			continue
		}

		// The opponent is in the way: jump straight over it if nothing is
		// behind it, otherwise sidestep diagonally around it.
		if landing, ok := b.step(other, d); ok {
			states = append(states, b.movePawn(p, landing))
			continue
		}
		for _, side := range d.perpendicular() {
			if landing, ok := b.step(other, side); ok {
				states = append(states, b.movePawn(p, landing))
			}
		}
	}
	return states
}

// canPlace reports whether a wall fits on grid cell (x, y) without
// overlapping a parallel wall or crossing a perpendicular one.
func (b Board) canPlace(o Orientation, x, y int) bool {
	if o == Horizontal {
		return !b.Blocked(x, y, North) && !b.Blocked(x+1, y, North) && !b.HasWall(Vertical, x, y)
	}
	return !b.Blocked(x, y, East) && !b.Blocked(x, y+1, East) && !b.HasWall(Horizontal, x, y)
}

// wallOrder lists all wall cells nearest to either pawn first.
func (b Board) wallOrder() []wallCell {
	cells := make([]wallCell, 0, WallCells*WallCells)
	for y := 0; y < WallCells; y++ {
		for x := 0; x < WallCells; x++ {
			cells = append(cells, wallCell{
				proximity: min(proximity(b.pawns[0], x, y), proximity(b.pawns[1], x, y)),
				x:         x,
				y:         y,
			})
		}
	}
	slices.SortFunc(cells, func(a, c wallCell) int {
		if n := cmp.Compare(a.proximity, c.proximity); n != 0 {
			return n
		}
		if n := cmp.Compare(a.x, c.x); n != 0 {
			return n
		}
		return cmp.Compare(a.y, c.y)
	})
	return cells
}

// proximity measures how far wall cell (x, y) is from a pawn. A cell touches
// the pawn's tile from below or the left at x = pawn.X-1 and y = pawn.Y-1, so
// those sides are offset by one.
func proximity(pawn Pos, x, y int) int {
	axis := func(pawn, cell int) int {
		if cell < pawn {
			return pawn - cell - 1
		}
		return cell - pawn
	}
	return axis(pawn.X, x) + axis(pawn.Y, y)
}
