package agent

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/statenegative/quoridor/communication"
	"github.com/statenegative/quoridor/game"
	"github.com/statenegative/quoridor/searcher"
	"github.com/stretchr/testify/require"
)

// TestHelperProcess is not a real test. It stands in for a bot binary when
// the test binary is re-executed by processAgent.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("QUORIDOR_HELPER_PROCESS") != "1" {
		return
	}

	b, turn, err := communication.Decode(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	switch os.Getenv("QUORIDOR_HELPER_MODE") {
	case "step":
		err = communication.Encode(os.Stdout, b.Successors(turn)[0], turn.Opponent())
	case "same-turn":
		err = communication.Encode(os.Stdout, b.Successors(turn)[0], turn)
	case "garbage":
		fmt.Fprintln(os.Stdout, "not a board")
	case "fail":
		fmt.Fprintln(os.Stderr, "out of walls and patience")
		os.Exit(3)
	case "hang":
		time.Sleep(time.Minute)
	}
	if err != nil {
		os.Exit(4)
	}
	os.Exit(0)
}

func helperAgent(mode string) Agent {
	return NewProcessAgent(os.Args[0], []string{"-test.run=^TestHelperProcess$"},
		"QUORIDOR_HELPER_PROCESS=1", "QUORIDOR_HELPER_MODE="+mode)
}

func TestProcessAgent(t *testing.T) {
	b := game.NewBoard()

	t.Run("plays the bot's reply", func(t *testing.T) {
		next, _, err := helperAgent("step").FindMove(context.Background(), b, game.Player1)
		require.NoError(t, err)
		require.Equal(t, b.Successors(game.Player1)[0], next)
	})

	t.Run("rejects a reply that keeps the turn", func(t *testing.T) {
		_, _, err := helperAgent("same-turn").FindMove(context.Background(), b, game.Player2)
		require.Error(t, err)
		require.Contains(t, err.Error(), "to move")
	})

	t.Run("rejects an unreadable reply", func(t *testing.T) {
		_, _, err := helperAgent("garbage").FindMove(context.Background(), b, game.Player1)
		require.ErrorIs(t, err, communication.ErrMalformedMessage)
	})

	t.Run("reports the bot's stderr on failure", func(t *testing.T) {
		_, _, err := helperAgent("fail").FindMove(context.Background(), b, game.Player1)
		require.Error(t, err)
		require.Contains(t, err.Error(), "out of walls and patience")
	})

	t.Run("kills a bot that outlives the context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, _, err := helperAgent("hang").FindMove(ctx, b, game.Player1)
		require.Error(t, err)
		require.Less(t, time.Since(start), 30*time.Second)
	})
}

func TestEvaluationAgent(t *testing.T) {
	b := game.NewBoard().Successors(game.Player1)[0]
	s := searcher.NewBestMove(searcher.WithDepth(1))

	want, _, err := s.Search(b, game.Player2)
	require.NoError(t, err)

	next, _, err := NewEvaluationAgent(s).FindMove(context.Background(), b, game.Player2)
	require.NoError(t, err)
	require.Equal(t, want.Board, next)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = NewEvaluationAgent(s).FindMove(ctx, b, game.Player2)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTrainingAgent(t *testing.T) {
	b := game.NewBoard()
	s := searcher.NewRankedExploration(searcher.WithDepth(1))
	results, _, err := s.Rank(b, game.Player1)
	require.NoError(t, err)

	t.Run("rank 1 only plays the best move", func(t *testing.T) {
		a := NewTrainingAgent(s, 1, 1)
		next, _, err := a.FindMove(context.Background(), b, game.Player1)
		require.NoError(t, err)
		require.Equal(t, results[0].Board, next)
	})

	t.Run("samples among the top ranks", func(t *testing.T) {
		const maxRank = 5
		top := make(map[game.Board]bool, maxRank)
		for _, result := range results[:maxRank] {
			top[result.Board] = true
		}

		a := NewTrainingAgent(s, maxRank, 42)
		for i := 0; i < 20; i++ {
			next, _, err := a.FindMove(context.Background(), b, game.Player1)
			require.NoError(t, err)
			require.True(t, top[next], "Move %d should be one of the %d best", i, maxRank)
		}
	})

	t.Run("refuses a finished game", func(t *testing.T) {
		var walls [2][game.WallCells][game.WallCells]bool
		over, err := game.New(walls, game.Pos{X: 0, Y: 8}, game.Pos{X: 4, Y: 4}, 10, 10)
		require.NoError(t, err)

		_, _, err = NewTrainingAgent(s, 3, 1).FindMove(context.Background(), over, game.Player2)
		require.ErrorIs(t, err, searcher.ErrGameOver)
	})
}
