package game

import "fmt"

type StateHash uint64

// Player identifies a side. Player1 starts on row 0 and races to row 8,
// Player2 starts on row 8 and races to row 0.
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		panic(fmt.Sprintf("player %d has no opponent", int(p)))
	}
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "Player1"
	case Player2:
		return "Player2"
	default:
		return ""
	}
}

func (p Player) index() int {
	if p != Player1 && p != Player2 {
		panic(fmt.Sprintf("unknown player %d", int(p)))
	}
	return int(p) - 1
}

func (p Player) goalRow() int {
	if p == Player1 {
		return Size - 1
	}
	return 0
}

// Evaluates a non-terminal board to a score from the given player's
// perspective; positive values favor that player.
type Evaluate func(b Board, p Player) float64
