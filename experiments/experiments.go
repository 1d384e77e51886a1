package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/statenegative/quoridor/agent"
	"github.com/statenegative/quoridor/engine"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/gamemaster"
	"github.com/statenegative/quoridor/meta"
	"github.com/statenegative/quoridor/searcher"
	"golang.org/x/exp/slices"
)

const NumGames = 10 // Per match up

// Experiment is a set of agent configs and the pairs of them that play each
// other.
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
}

// Experiments lists the named experiments the CLI can run.
var Experiments = map[string]func() Experiment{
	"depth":           DepthExperiment,
	"parallelization": ParallelizationExperiment,
	"rank":            RankExperiment,
}

// Names returns the experiment names in a stable order.
func Names() []string {
	names := make([]string, 0, len(Experiments))
	for name := range Experiments {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DepthExperiment pairs every search depth against a one ply baseline.
func DepthExperiment() Experiment {
	baseline := metrics.AgentConfig{ID: 0, Depth: 1, Goroutines: 1}
	depthConfigs := []metrics.AgentConfig{
		{ID: 1, Depth: 1, Goroutines: 1}, // Baseline equivalent
		{ID: 2, Depth: 2, Goroutines: 1},
		{ID: 3, Depth: 3, Goroutines: 1},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range depthConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{Name: "depth", Configs: append(depthConfigs, baseline), MatchUps: matchUps}
}

// ParallelizationExperiment plays ranked exploration against itself with a
// growing number of goroutines. Both sides share a config so games have
// similar lengths and only throughput differs.
func ParallelizationExperiment() Experiment {
	configs := []metrics.AgentConfig{
		{ID: 1, Depth: meta.MAX_DEPTH, Goroutines: 1, MaxRank: 1},
		{ID: 2, Depth: meta.MAX_DEPTH, Goroutines: 2, MaxRank: 1},
		{ID: 3, Depth: meta.MAX_DEPTH, Goroutines: 4, MaxRank: 1},
		{ID: 4, Depth: meta.MAX_DEPTH, Goroutines: meta.GO_ROUTINES, MaxRank: 1},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}
	return Experiment{Name: "parallelization", Configs: configs, MatchUps: matchUps}
}

// RankExperiment measures how much strength training agents give up by
// sampling below the best move.
func RankExperiment() Experiment {
	baseline := metrics.AgentConfig{ID: 0, Depth: meta.MAX_DEPTH, Goroutines: 1}
	rankConfigs := []metrics.AgentConfig{
		{ID: 1, Depth: meta.MAX_DEPTH, Goroutines: meta.GO_ROUTINES, MaxRank: 1},
		{ID: 2, Depth: meta.MAX_DEPTH, Goroutines: meta.GO_ROUTINES, MaxRank: 2},
		{ID: 3, Depth: meta.MAX_DEPTH, Goroutines: meta.GO_ROUTINES, MaxRank: meta.MAX_RANK},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range rankConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{Name: "rank", Configs: append(rankConfigs, baseline), MatchUps: matchUps}
}

// Run plays games per match up, alternating which config moves first, and
// stores the configs, game records and move records under baseDir. It returns
// the directory the CSV files were written to.
func Run(ctx context.Context, baseDir string, exp Experiment, games int, options ...engine.Option) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchup := range exp.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), matchup[0], matchup[1])

		for i := 0; i < games; i++ {
			config1, config2 := matchup[0], matchup[1]
			if i%2 == 1 {
				config1, config2 = config2, config1
			}
			count++

			winner, gameMetric, moveMetrics, err := runGame(ctx, config1, config2, uint64(count), options)
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(exp.MatchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", exp.Name)
	return store(baseDir, exp, gameRecords, moveRecords)
}

func store(baseDir string, exp Experiment, gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(baseDir, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment results")
	return writer.Dir(), nil
}

// runGame executes a single game with config1 as Player1 and returns the
// winner's name, empty on a draw.
func runGame(ctx context.Context, config1, config2 metrics.AgentConfig, seed uint64, options []engine.Option) (string, metrics.GameMetric, []metrics.MoveMetric, error) {
	players := []string{fmt.Sprintf("agent%d", config1.ID), fmt.Sprintf("agent%d", config2.ID)}
	if config1.ID == config2.ID {
		players = []string{players[0] + "a", players[1] + "b"}
	}
	agents := []agent.Agent{createAgent(config1, seed), createAgent(config2, seed+1)}
	e := engine.LocalEngine(players, agents, gamemaster.NewLocalReferee(), options...)

	_, gameMetric, moveMetrics, err := e.Run(ctx)
	return gameMetric.Winner, gameMetric, moveMetrics, err
}

// createAgent builds a training agent when the config samples ranks and a
// best move agent otherwise.
func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	options := []searcher.Option{searcher.WithMetrics()}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}

	if config.MaxRank > 0 {
		return agent.NewTrainingAgent(searcher.NewRankedExploration(options...), config.MaxRank, seed)
	}
	return agent.NewEvaluationAgent(searcher.NewBestMove(options...))
}
