package gamemaster

import (
	"errors"
	"fmt"
	"sync"

	"github.com/statenegative/quoridor/game"
	"github.com/statenegative/quoridor/utils"
)

var (
	ErrGameOver    = errors.New("game is over - no moves allowed")
	ErrIllegalMove = errors.New("illegal move")
	ErrWrongTurn   = errors.New("not this player's turn")
)

// Update is one accepted move: who played it and the board it produced.
type Update struct {
	Player game.Player
	Board  game.Board
}

// UpdateGetter returns the oldest unread update, or false when there is none
// pending.
type UpdateGetter func() (Update, bool)

type localReferee struct {
	mu       sync.Mutex
	board    game.Board
	turn     game.Player
	updates  []Update
	gameOver bool
}

// NewLocalReferee returns a referee for a new game with Player1 to move.
func NewLocalReferee() *localReferee {
	return NewLocalRefereeFrom(game.NewBoard(), game.Player1)
}

// NewLocalRefereeFrom resumes a game from any position.
func NewLocalRefereeFrom(b game.Board, turn game.Player) *localReferee {
	return &localReferee{board: b, turn: turn, gameOver: b.Terminal()}
}

func (r *localReferee) Init() (game.Board, UpdateGetter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board, func() (Update, bool) {
		r.mu.Lock()
		defer r.mu.Unlock()
		if len(r.updates) == 0 {
			return Update{}, false
		}
		u := r.updates[0]
		r.updates = r.updates[1:]
		return u, true
	}
}

func (r *localReferee) Board() game.Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.board
}

func (r *localReferee) Turn() game.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.turn
}

// Play accepts next only if it is one of the current board's successors for
// player p and p is the side to move.
func (r *localReferee) Play(p game.Player, next game.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gameOver {
		return ErrGameOver
	}
	if p != r.turn {
		return fmt.Errorf("%w: %s played, %s to move", ErrWrongTurn, p, r.turn)
	}
	if utils.FindIndex(r.board.Successors(p), next) < 0 {
		return fmt.Errorf("%w: %s cannot reach\n%s", ErrIllegalMove, p, next)
	}

	r.board = next
	r.turn = p.Opponent()
	r.updates = append(r.updates, Update{Player: p, Board: next})
	if next.Terminal() {
		r.gameOver = true
	}
	return nil
}
