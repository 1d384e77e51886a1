package gamemaster

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/statenegative/quoridor/agent"
	"github.com/statenegative/quoridor/engine"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
	"golang.org/x/exp/rand"
)

// GameMaster runs a competition game between two named agents.
type GameMaster struct {
	names   [2]string
	agents  [2]agent.Agent
	rng     *rand.Rand
	options []engine.Option
}

// NewGameMaster initializes a new GameMaster. Seats are drawn from seed so a
// competition can be replayed.
func NewGameMaster(names []string, agents []agent.Agent, seed uint64, options ...engine.Option) *GameMaster {
	if len(names) != 2 || len(agents) != 2 {
		panic("a game needs exactly two named agents")
	}
	return &GameMaster{
		names:   [2]string{names[0], names[1]},
		agents:  [2]agent.Agent{agents[0], agents[1]},
		rng:     rand.New(rand.NewSource(seed)),
		options: options,
	}
}

// RunGame seats the agents at random, plays the game and logs every board.
// It returns the winning agent's name, empty on a draw.
func (gm *GameMaster) RunGame(ctx context.Context) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	first, second := 0, 1
	if gm.rng.Intn(2) == 1 {
		first, second = 1, 0
	}
	log.Info().Msgf("%s plays first as Player1, %s plays second as Player2", gm.names[first], gm.names[second])

	referee := NewLocalReferee()
	start, getUpdate := referee.Init()
	log.Info().Msgf("starting board\n%s", start)

	e := engine.LocalEngine(
		[]string{gm.names[first], gm.names[second]},
		[]agent.Agent{gm.agents[first], gm.agents[second]},
		referee,
		gm.options...,
	)
	_, gameMetric, moveMetrics, err := e.Run(ctx)

	for step := 1; ; step++ {
		u, ok := getUpdate()
		if !ok {
			break
		}
		mover := gm.names[first]
		if u.Player == game.Player2 {
			mover = gm.names[second]
		}
		log.Info().Msgf("move %d by %s (%s)\n%s", step, mover, u.Player, u.Board)
	}
	if err != nil {
		return "", gameMetric, moveMetrics, fmt.Errorf("game between %s and %s: %w", gm.names[0], gm.names[1], err)
	}

	gameMetric.StartingPlayer = first + 1
	if gameMetric.Winner == "" {
		log.Info().Msg("the game is a draw")
	} else {
		log.Info().Msgf("%s wins!", gameMetric.Winner)
	}
	return gameMetric.Winner, gameMetric, moveMetrics, nil
}
