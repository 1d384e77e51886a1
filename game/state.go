package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math/bits"
)

const (
	Size      = 9  // Tiles per side
	WallCells = 8  // Wall grid cells per side
	MaxWalls  = 10 // Walls each player starts with
)

// ErrInvalidBoard is wrapped by every error returned for a malformed board.
var ErrInvalidBoard = errors.New("invalid board")

// Orientation selects one of the two wall layers.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Pos is a tile coordinate. (0, 0) is the bottom left corner.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Pos) onBoard() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

// Board is an immutable Quoridor position. Every operation that changes the
// position returns a new Board; the zero value is not a valid board, use
// NewBoard or New.
//
// Each wall layer is an 8x8 bitboard where bit y*8+x marks a wall whose lower
// left tile is (x, y). Boards are comparable with == and usable as map keys;
// the cached distances are derived from the other fields so they never make
// two equal positions compare unequal.
type Board struct {
	walls [2]uint64
	pawns [2]Pos
	stock [2]int // Walls remaining per player
	dists [2]int // Cached shortest path distances per player
}

// NewBoard returns the initial position.
func NewBoard() Board {
	b := Board{
		pawns: [2]Pos{{X: 4, Y: 0}, {X: 4, Y: Size - 1}},
		stock: [2]int{MaxWalls, MaxWalls},
	}
	b.dists[0], _ = b.ShortestPath(Player1)
	b.dists[1], _ = b.ShortestPath(Player2)
	return b
}

// New builds a board from raw fields, rejecting anything that could not occur
// in a legal game: pawns off the board or on the same tile, wall counts
// outside [0, MaxWalls], more walls than were ever handed out, overlapping or
// crossing walls, or a pawn with no path to its goal row.
func New(walls [2][WallCells][WallCells]bool, p1, p2 Pos, p1Walls, p2Walls int) (Board, error) {
	if !p1.onBoard() {
		return Board{}, fmt.Errorf("%w: player 1 pawn %v is off the board", ErrInvalidBoard, p1)
	}
	if !p2.onBoard() {
		return Board{}, fmt.Errorf("%w: player 2 pawn %v is off the board", ErrInvalidBoard, p2)
	}
	if p1 == p2 {
		return Board{}, fmt.Errorf("%w: both pawns on %v", ErrInvalidBoard, p1)
	}
	if p1Walls < 0 || p1Walls > MaxWalls {
		return Board{}, fmt.Errorf("%w: player 1 has %d walls, want 0..%d", ErrInvalidBoard, p1Walls, MaxWalls)
	}
	if p2Walls < 0 || p2Walls > MaxWalls {
		return Board{}, fmt.Errorf("%w: player 2 has %d walls, want 0..%d", ErrInvalidBoard, p2Walls, MaxWalls)
	}

	b := Board{
		pawns: [2]Pos{p1, p2},
		stock: [2]int{p1Walls, p2Walls},
	}
	for o := Horizontal; o <= Vertical; o++ {
		for y := 0; y < WallCells; y++ {
			for x := 0; x < WallCells; x++ {
				if !walls[o][y][x] {
					continue
				}
				if !b.canPlace(o, x, y) {
					return Board{}, fmt.Errorf("%w: %s wall at (%d, %d) overlaps another wall", ErrInvalidBoard, o, x, y)
				}
				b.walls[o] |= wallBit(x, y)
			}
		}
	}
	if placed := b.WallsPlaced(); placed+p1Walls+p2Walls > 2*MaxWalls {
		return Board{}, fmt.Errorf("%w: %d walls placed with %d and %d remaining", ErrInvalidBoard, placed, p1Walls, p2Walls)
	}

	var ok bool
	if b.dists[0], ok = b.ShortestPath(Player1); !ok {
		return Board{}, fmt.Errorf("%w: player 1 has no path to row %d", ErrInvalidBoard, Size-1)
	}
	if b.dists[1], ok = b.ShortestPath(Player2); !ok {
		return Board{}, fmt.Errorf("%w: player 2 has no path to row 0", ErrInvalidBoard)
	}
	return b, nil
}

func wallBit(x, y int) uint64 {
	return 1 << uint(y*WallCells+x)
}

// HasWall reports whether a wall of the given orientation sits on grid cell
// (x, y). Cells off the wall grid never hold a wall.
func (b Board) HasWall(o Orientation, x, y int) bool {
	if x < 0 || x >= WallCells || y < 0 || y >= WallCells {
		return false
	}
	return b.walls[o]&wallBit(x, y) != 0
}

// Walls returns both wall layers as grids indexed [orientation][y][x].
func (b Board) Walls() [2][WallCells][WallCells]bool {
	var grid [2][WallCells][WallCells]bool
	for o := Horizontal; o <= Vertical; o++ {
		for y := 0; y < WallCells; y++ {
			for x := 0; x < WallCells; x++ {
				grid[o][y][x] = b.HasWall(o, x, y)
			}
		}
	}
	return grid
}

// WallBits returns the raw bitboard of one wall layer.
func (b Board) WallBits(o Orientation) uint64 {
	return b.walls[o]
}

func (b Board) WallsPlaced() int {
	return bits.OnesCount64(b.walls[Horizontal]) + bits.OnesCount64(b.walls[Vertical])
}

func (b Board) Pawn(p Player) Pos {
	return b.pawns[p.index()]
}

func (b Board) WallsRemaining(p Player) int {
	return b.stock[p.index()]
}

// Distance returns the cached shortest path length from the player's pawn to
// its goal row. It is always finite for a constructed board.
func (b Board) Distance(p Player) int {
	return b.dists[p.index()]
}

// Terminal reports whether either pawn has reached its goal row.
func (b Board) Terminal() bool {
	return b.Winner() != NoPlayer
}

// Winner returns the player whose pawn stands on its goal row, or NoPlayer.
func (b Board) Winner() Player {
	switch {
	case b.pawns[0].Y == Player1.goalRow():
		return Player1
	case b.pawns[1].Y == Player2.goalRow():
		return Player2
	default:
		return NoPlayer
	}
}

// Hash returns an FNV-1a hash over every field that identifies the position.
func (b Board) Hash() StateHash {
	h := fnv.New64a()
	var buf [8]byte
	for _, layer := range b.walls {
		binary.LittleEndian.PutUint64(buf[:], layer)
		h.Write(buf[:])
	}
	for i := range b.pawns {
		h.Write([]byte{byte(b.pawns[i].X), byte(b.pawns[i].Y), byte(b.stock[i])})
	}
	return StateHash(h.Sum64())
}

func (b Board) movePawn(p Player, to Pos) Board {
	next := b
	next.pawns[p.index()] = to
	// Pawns never block paths, so only the mover's distance can change.
	next.dists[p.index()], _ = next.ShortestPath(p)
	return next
}

// placeWall returns the board with the wall added and both distances
// recomputed, and false if either pawn lost its path.
func (b Board) placeWall(p Player, o Orientation, x, y int) (Board, bool) {
	next := b
	next.walls[o] |= wallBit(x, y)
	next.stock[p.index()]--

	var ok bool
	if next.dists[0], ok = next.ShortestPath(Player1); !ok {
		return Board{}, false
	}
	if next.dists[1], ok = next.ShortestPath(Player2); !ok {
		return Board{}, false
	}
	return next, true
}
