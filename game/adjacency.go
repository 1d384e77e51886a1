package game

// Direction is one of the four tile edges.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

var directions = [4]Direction{North, South, East, West}

func (d Direction) String() string {
	return [...]string{"north", "south", "east", "west"}[d]
}

func (d Direction) step(p Pos) Pos {
	switch d {
	case North:
		return Pos{X: p.X, Y: p.Y + 1}
	case South:
		return Pos{X: p.X, Y: p.Y - 1}
	case East:
		return Pos{X: p.X + 1, Y: p.Y}
	default:
		return Pos{X: p.X - 1, Y: p.Y}
	}
}

func (d Direction) perpendicular() [2]Direction {
	if d == North || d == South {
		return [2]Direction{West, East}
	}
	return [2]Direction{South, North}
}

// Blocked reports whether a wall blocks stepping from tile (x, y) across its
// edge in direction d. A wall is two tiles wide, so up to two wall cells cover
// any edge; cells past the grid edge hold no walls. Edges on the outer
// boundary of the board report open, callers check the destination bounds.
func (b Board) Blocked(x, y int, d Direction) bool {
	switch d {
	case North:
		if y == Size-1 {
			return false
		}
		return b.HasWall(Horizontal, x-1, y) || b.HasWall(Horizontal, x, y)
	case South:
		if y == 0 {
			return false
		}
		return b.HasWall(Horizontal, x-1, y-1) || b.HasWall(Horizontal, x, y-1)
	case East:
		if x == Size-1 {
			return false
		}
		return b.HasWall(Vertical, x, y-1) || b.HasWall(Vertical, x, y)
	case West:
		if x == 0 {
			return false
		}
		return b.HasWall(Vertical, x-1, y-1) || b.HasWall(Vertical, x-1, y)
	}
	return false
}

// step returns the tile one step from p in direction d and whether that step
// stays on the board without crossing a wall.
func (b Board) step(p Pos, d Direction) (Pos, bool) {
	next := d.step(p)
	if !next.onBoard() || b.Blocked(p.X, p.Y, d) {
		return Pos{}, false
	}
	return next, true
}
