package communication

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/statenegative/quoridor/game"
)

// ErrMalformedMessage is wrapped by decoding errors caused by the message
// shape rather than by the board it describes.
var ErrMalformedMessage = errors.New("malformed message")

// Message is the wire form of a board and the side to move, exchanged as one
// JSON object between referees, bots and agent servers.
type Message struct {
	Walls   [][][]bool `json:"walls"` // [orientation][y][x], horizontal first
	P1      []int      `json:"p1"`    // [x, y]
	P2      []int      `json:"p2"`
	P1Walls int        `json:"p1_walls"`
	P2Walls int        `json:"p2_walls"`
	P1Turn  bool       `json:"p1_turn"`
}

func NewMessage(b game.Board, turn game.Player) Message {
	grid := b.Walls()
	walls := make([][][]bool, len(grid))
	for o := range grid {
		walls[o] = make([][]bool, game.WallCells)
		for y := range grid[o] {
			walls[o][y] = append([]bool(nil), grid[o][y][:]...)
		}
	}
	p1, p2 := b.Pawn(game.Player1), b.Pawn(game.Player2)
	return Message{
		Walls:   walls,
		P1:      []int{p1.X, p1.Y},
		P2:      []int{p2.X, p2.Y},
		P1Walls: b.WallsRemaining(game.Player1),
		P2Walls: b.WallsRemaining(game.Player2),
		P1Turn:  turn == game.Player1,
	}
}

// Board validates the message and returns the board and the side to move.
func (m Message) Board() (game.Board, game.Player, error) {
	var grid [2][game.WallCells][game.WallCells]bool
	if len(m.Walls) != len(grid) {
		return game.Board{}, game.NoPlayer, fmt.Errorf("%w: %d wall layers, want 2", ErrMalformedMessage, len(m.Walls))
	}
	for o, layer := range m.Walls {
		if len(layer) != game.WallCells {
			return game.Board{}, game.NoPlayer, fmt.Errorf("%w: wall layer %d has %d rows, want %d", ErrMalformedMessage, o, len(layer), game.WallCells)
		}
		for y, row := range layer {
			if len(row) != game.WallCells {
				return game.Board{}, game.NoPlayer, fmt.Errorf("%w: wall layer %d row %d has %d cells, want %d", ErrMalformedMessage, o, y, len(row), game.WallCells)
			}
			copy(grid[o][y][:], row)
		}
	}

	p1, err := position(m.P1)
	if err != nil {
		return game.Board{}, game.NoPlayer, fmt.Errorf("player 1 pawn: %w", err)
	}
	p2, err := position(m.P2)
	if err != nil {
		return game.Board{}, game.NoPlayer, fmt.Errorf("player 2 pawn: %w", err)
	}

	b, err := game.New(grid, p1, p2, m.P1Walls, m.P2Walls)
	if err != nil {
		return game.Board{}, game.NoPlayer, err
	}
	turn := game.Player2
	if m.P1Turn {
		turn = game.Player1
	}
	return b, turn, nil
}

func position(coords []int) (game.Pos, error) {
	if len(coords) != 2 {
		return game.Pos{}, fmt.Errorf("%w: %d coordinates, want 2", ErrMalformedMessage, len(coords))
	}
	return game.Pos{X: coords[0], Y: coords[1]}, nil
}

// Encode writes the board and side to move as a single JSON line.
func Encode(w io.Writer, b game.Board, turn game.Player) error {
	if err := json.NewEncoder(w).Encode(NewMessage(b, turn)); err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	return nil
}

// Decode reads one message and rejects any board that could not occur in a
// legal game.
func Decode(r io.Reader) (game.Board, game.Player, error) {
	var m Message
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return game.Board{}, game.NoPlayer, fmt.Errorf("%w: %w", ErrMalformedMessage, err)
	}
	return m.Board()
}
