package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/statenegative/quoridor/agent"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
	"github.com/statenegative/quoridor/meta"
)

type Option func(e *localEngine)

// WithMaxTurns caps the number of moves before the match is called a draw.
func WithMaxTurns(turns int) Option {
	return func(e *localEngine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// WithMatchID labels the match in logs and metrics instead of a random UUID.
func WithMatchID(id string) Option {
	return func(e *localEngine) {
		if id != "" {
			e.matchID = id
		}
	}
}

type localEngine struct {
	players  [2]string
	agents   [2]agent.Agent
	referee  Referee
	maxTurns int
	matchID  string
}

// LocalEngine seats players[0] as Player1 and players[1] as Player2 and plays
// their agents against each other through the referee.
func LocalEngine(players []string, agents []agent.Agent, referee Referee, options ...Option) Engine {
	if len(players) != len(agents) {
		panic("number of players does not match number of agents")
	}
	if len(players) != 2 {
		panic("need exactly two players")
	}

	e := &localEngine{
		players:  [2]string{players[0], players[1]},
		agents:   [2]agent.Agent{agents[0], agents[1]},
		referee:  referee,
		maxTurns: meta.MAX_TURNS,
		matchID:  uuid.NewString(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop. An agent that fails to answer or answers with
// an illegal move forfeits. Only cancellation of ctx is returned as an error.
func (e *localEngine) Run(ctx context.Context) (game.Player, metrics.GameMetric, []metrics.MoveMetric, error) {
	logger := log.With().Str("match", e.matchID).Logger()
	gameMetric := metrics.GameMetric{
		MatchID:        e.matchID,
		StartingPlayer: 1,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	logger.Info().Msgf("%s (Player1) vs %s (Player2), %s to move", e.players[0], e.players[1], e.referee.Turn())

	winner := game.NoPlayer
	for turn := 1; turn <= e.maxTurns; turn++ {
		b := e.referee.Board()
		if winner = b.Winner(); winner != game.NoPlayer {
			break
		}
		p := e.referee.Turn()
		name := e.name(p)

		next, metric, err := e.agents[e.seat(p)].FindMove(ctx, b, p)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return game.NoPlayer, gameMetric, moveMetrics, fmt.Errorf("match %s interrupted: %w", e.matchID, ctxErr)
		}
		if err != nil {
			logger.Warn().Err(err).Msgf("%s failed to move and forfeits", name)
			winner = p.Opponent()
			break
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       int(p),
			SearchMetric: metric,
		})
		if err := e.referee.Play(p, next); err != nil {
			logger.Warn().Err(err).Msgf("%s played an illegal move and forfeits", name)
			winner = p.Opponent()
			break
		}
		gameMetric.TotalMoves = turn
	}
	if winner == game.NoPlayer {
		winner = e.referee.Board().Winner()
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	if winner == game.NoPlayer {
		logger.Info().Msgf("draw after %d moves", gameMetric.TotalMoves)
	} else {
		gameMetric.Winner = e.name(winner)
		logger.Info().Msgf("%s (%s) wins after %d moves", gameMetric.Winner, winner, gameMetric.TotalMoves)
	}
	return winner, gameMetric, moveMetrics, nil
}

func (e *localEngine) seat(p game.Player) int {
	if p == game.Player1 {
		return 0
	}
	return 1
}

func (e *localEngine) name(p game.Player) string {
	return e.players[e.seat(p)]
}
