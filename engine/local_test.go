package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/statenegative/quoridor/agent"
	"github.com/statenegative/quoridor/engine"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
	"github.com/statenegative/quoridor/gamemaster"
	"github.com/stretchr/testify/require"
)

// firstMoveAgent always plays the first generated successor.
type firstMoveAgent struct{}

func (firstMoveAgent) FindMove(_ context.Context, b game.Board, p game.Player) (game.Board, metrics.SearchMetric, error) {
	return b.Successors(p)[0], metrics.SearchMetric{Nodes: 1}, nil
}

// passingAgent answers with the board it was given.
type passingAgent struct{}

func (passingAgent) FindMove(_ context.Context, b game.Board, _ game.Player) (game.Board, metrics.SearchMetric, error) {
	return b, metrics.SearchMetric{}, nil
}

type brokenAgent struct{}

func (brokenAgent) FindMove(context.Context, game.Board, game.Player) (game.Board, metrics.SearchMetric, error) {
	return game.Board{}, metrics.SearchMetric{}, errors.New("bot crashed")
}

func TestRun(t *testing.T) {
	players := []string{"alice", "bob"}

	t.Run("plays until a pawn reaches its goal", func(t *testing.T) {
		e := engine.LocalEngine(players, []agent.Agent{firstMoveAgent{}, firstMoveAgent{}}, gamemaster.NewLocalReferee(),
			engine.WithMatchID("match-1"))

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, game.Player1, winner, "Player 1 walks straight north while player 2 shuffles on its back rows")
		require.Equal(t, "alice", gameMetric.Winner)
		require.Equal(t, "match-1", gameMetric.MatchID)
		require.Equal(t, 15, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 15)
		require.Equal(t, 1, moveMetrics[0].Player)
		require.Equal(t, 2, moveMetrics[1].Player)
		require.Equal(t, 1, moveMetrics[14].Nodes)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))
	})

	t.Run("turn cap is a draw", func(t *testing.T) {
		e := engine.LocalEngine(players, []agent.Agent{firstMoveAgent{}, firstMoveAgent{}}, gamemaster.NewLocalReferee(),
			engine.WithMaxTurns(4))

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, game.NoPlayer, winner)
		require.Empty(t, gameMetric.Winner)
		require.Equal(t, 4, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 4)
		require.NotEmpty(t, gameMetric.MatchID)
	})

	t.Run("illegal move forfeits", func(t *testing.T) {
		e := engine.LocalEngine(players, []agent.Agent{firstMoveAgent{}, passingAgent{}}, gamemaster.NewLocalReferee())

		winner, gameMetric, _, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, game.Player1, winner)
		require.Equal(t, "alice", gameMetric.Winner)
		require.Equal(t, 1, gameMetric.TotalMoves)
	})

	t.Run("failing agent forfeits", func(t *testing.T) {
		e := engine.LocalEngine(players, []agent.Agent{brokenAgent{}, firstMoveAgent{}}, gamemaster.NewLocalReferee())

		winner, gameMetric, moveMetrics, err := e.Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, game.Player2, winner)
		require.Equal(t, "bob", gameMetric.Winner)
		require.Empty(t, moveMetrics)
	})

	t.Run("resumes with player 2 to move", func(t *testing.T) {
		var walls [2][game.WallCells][game.WallCells]bool
		walls[game.Horizontal][1][4] = true // Blocks player 2 stepping north
		b, err := game.New(walls, game.Pos{X: 4, Y: 4}, game.Pos{X: 4, Y: 1}, 9, 10)
		require.NoError(t, err)
		referee := gamemaster.NewLocalRefereeFrom(b, game.Player2)

		winner, gameMetric, _, err := engine.LocalEngine(players, []agent.Agent{passingAgent{}, firstMoveAgent{}}, referee).Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, game.Player2, winner, "Player 2's first move steps south onto row 0")
		require.Equal(t, 1, gameMetric.TotalMoves)
	})

	t.Run("cancellation stops the match", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := engine.LocalEngine(players, []agent.Agent{firstMoveAgent{}, firstMoveAgent{}}, gamemaster.NewLocalReferee())

		_, _, _, err := e.Run(ctx)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("needs two agents", func(t *testing.T) {
		require.Panics(t, func() {
			engine.LocalEngine(players, []agent.Agent{firstMoveAgent{}}, gamemaster.NewLocalReferee())
		})
		require.Panics(t, func() {
			engine.LocalEngine([]string{"a", "b", "c"}, []agent.Agent{firstMoveAgent{}, firstMoveAgent{}, firstMoveAgent{}}, gamemaster.NewLocalReferee())
		})
	})
}
