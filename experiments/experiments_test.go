package experiments

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/statenegative/quoridor/engine"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestRun(t *testing.T) {
	best := metrics.AgentConfig{ID: 1, Depth: 1, Goroutines: 1}
	ranked := metrics.AgentConfig{ID: 2, Depth: 1, Goroutines: 2, MaxRank: 2}
	exp := Experiment{
		Name:     "smoke",
		Configs:  []metrics.AgentConfig{best, ranked},
		MatchUps: [][2]metrics.AgentConfig{{best, ranked}},
	}

	dir, err := Run(context.Background(), t.TempDir(), exp, 2, engine.WithMaxTurns(10))
	require.NoError(t, err)

	configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
	require.Len(t, configs, 3)
	require.Equal(t, []string{"2", "1", "2", "2"}, configs[2])

	games := readCSV(t, filepath.Join(dir, "game_records.csv"))
	require.Len(t, games, 3)
	require.Equal(t, []string{"1", "2"}, games[1][2:4], "First game seats the first config as player 1")
	require.Equal(t, []string{"2", "1"}, games[2][2:4], "Seats alternate between games")

	totalMoves := 0
	for _, game := range games[1:] {
		n, err := strconv.Atoi(game[9])
		require.NoError(t, err)
		require.LessOrEqual(t, n, 10)
		totalMoves += n
	}

	moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
	require.Len(t, moves, 1+totalMoves)
	// Game 1: the best move agent moves first with a pruned search
	require.Equal(t, "1", moves[1][0])
	require.Equal(t, "1", moves[1][2])
	require.Equal(t, "true", moves[1][5])
	require.Equal(t, "false", moves[2][5])
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, t.TempDir(), DepthExperiment(), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestExperiments(t *testing.T) {
	require.Equal(t, []string{"depth", "parallelization", "rank"}, Names())

	for _, name := range Names() {
		exp := Experiments[name]()
		require.Equal(t, name, exp.Name)
		ids := make(map[int]bool)
		for _, config := range exp.Configs {
			ids[config.ID] = true
		}
		for _, matchup := range exp.MatchUps {
			require.True(t, ids[matchup[0].ID], "%s: matchup uses an unlisted config", name)
			require.True(t, ids[matchup[1].ID], "%s: matchup uses an unlisted config", name)
		}
	}
}
