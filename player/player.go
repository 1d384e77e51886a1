package player

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/statenegative/quoridor/communication"
	"github.com/statenegative/quoridor/searcher"
)

// Bot answers a single position read from a stream with its best move. It is
// what the process agent runs once per turn.
type Bot struct {
	searcher *searcher.BestMove
}

func NewBot(s *searcher.BestMove) *Bot {
	return &Bot{searcher: s}
}

// Play decodes one message from r, searches for the side to move and writes
// the chosen successor to w with the turn handed to the opponent.
func (b *Bot) Play(ctx context.Context, r io.Reader, w io.Writer) error {
	board, turn, err := communication.Decode(r)
	if err != nil {
		return fmt.Errorf("failed to read board: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	result, metric, err := b.searcher.Search(board, turn)
	if err != nil {
		return err
	}
	log.Info().
		Str("player", turn.String()).
		Int("nodes", metric.Nodes).
		Dur("duration", metric.Duration).
		Float64("score", result.Score).
		Msg("bot move")

	if err := communication.Encode(w, result.Board, turn.Opponent()); err != nil {
		return fmt.Errorf("failed to write move: %w", err)
	}
	return nil
}
