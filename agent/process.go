package agent

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/statenegative/quoridor/communication"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
)

type processAgent struct {
	name string
	args []string
	env  []string
}

// NewProcessAgent returns an agent that starts the given command once per
// move, writes the board to its stdin and reads the reply from its stdout.
// The command must answer with the turn passed to the opponent. Extra env
// entries are appended to the parent's environment.
func NewProcessAgent(name string, args []string, env ...string) Agent {
	return processAgent{name: name, args: args, env: env}
}

func (a processAgent) FindMove(ctx context.Context, b game.Board, p game.Player) (game.Board, metrics.SearchMetric, error) {
	var stdin, stdout, stderr bytes.Buffer
	if err := communication.Encode(&stdin, b, p); err != nil {
		return game.Board{}, metrics.SearchMetric{}, err
	}

	cmd := exec.CommandContext(ctx, a.name, a.args...)
	if len(a.env) > 0 {
		cmd.Env = append(cmd.Environ(), a.env...)
	}
	cmd.Stdin = &stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return game.Board{}, metrics.SearchMetric{}, fmt.Errorf("bot %s failed: %w: %s", a.name, err, strings.TrimSpace(stderr.String()))
	}

	next, turn, err := communication.Decode(&stdout)
	if err != nil {
		return game.Board{}, metrics.SearchMetric{}, fmt.Errorf("bot %s replied with a bad board: %w", a.name, err)
	}
	if turn != p.Opponent() {
		return game.Board{}, metrics.SearchMetric{}, fmt.Errorf("bot %s replied with %s to move, want %s", a.name, turn, p.Opponent())
	}
	return next, metrics.SearchMetric{}, nil
}
