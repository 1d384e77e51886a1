package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/statenegative/quoridor/agent"
	"github.com/statenegative/quoridor/communication/client"
	"github.com/statenegative/quoridor/communication/server"
	"github.com/statenegative/quoridor/engine"
	"github.com/statenegative/quoridor/experiments"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/gamemaster"
	"github.com/statenegative/quoridor/meta"
	"github.com/statenegative/quoridor/player"
	"github.com/statenegative/quoridor/searcher"
)

const usage = `usage: quoridor <command> [flags]

commands:
  bot         read a board from stdin and write the best move to stdout
  match       play two agents against each other with random seats
  selfplay    play two in-process search agents
  serve       answer moves over HTTP
  dataset     generate scored training positions
  experiment  run an agent matchup experiment
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	// Stdout carries the wire protocol for the bot command
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	commands := map[string]func(context.Context, []string) error{
		"bot":        runBot,
		"match":      runMatch,
		"selfplay":   runSelfPlay,
		"serve":      runServe,
		"dataset":    runDataset,
		"experiment": runExperiment,
	}
	run, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err := run(ctx, os.Args[2:]); err != nil {
		log.Error().Err(err).Msgf("%s failed", os.Args[1])
		os.Exit(1)
	}
}

// searchFlags are shared by every command that builds a searcher.
type searchFlags struct {
	depth      *int
	goroutines *int
	logLevel   *string
}

func newFlagSet(name string) (*flag.FlagSet, searchFlags) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	return fs, searchFlags{
		depth:      fs.Int("depth", meta.GetenvInt("QUORIDOR_DEPTH", meta.MAX_DEPTH), "Search depth in plies"),
		goroutines: fs.Int("goroutines", meta.GetenvInt("QUORIDOR_GOROUTINES", meta.GO_ROUTINES), "Goroutines scoring root moves in ranked exploration"),
		logLevel:   fs.String("log-level", meta.Getenv("QUORIDOR_LOG_LEVEL", "info"), "Log level"),
	}
}

func (f searchFlags) apply() error {
	level, err := zerolog.ParseLevel(*f.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if *f.depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", *f.depth)
	}
	return nil
}

func (f searchFlags) options() []searcher.Option {
	return []searcher.Option{
		searcher.WithDepth(*f.depth),
		searcher.WithGoroutines(*f.goroutines),
		searcher.WithMetrics(),
	}
}

func runBot(ctx context.Context, args []string) error {
	fs, sf := newFlagSet("bot")
	_ = fs.Parse(args)
	if err := sf.apply(); err != nil {
		return err
	}
	return player.NewBot(searcher.NewBestMove(sf.options()...)).Play(ctx, os.Stdin, os.Stdout)
}

func runMatch(ctx context.Context, args []string) error {
	fs, sf := newFlagSet("match")
	agent1 := fs.String("agent1", "search", `First agent: "search", "train", an http(s) server URL or a bot command line`)
	agent2 := fs.String("agent2", "search", "Second agent, same forms as -agent1")
	name1 := fs.String("name1", "agent1", "First agent's name")
	name2 := fs.String("name2", "agent2", "Second agent's name")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for seat assignment")
	maxTurns := fs.Int("max-turns", meta.MAX_TURNS, "Moves before the match is a draw")
	_ = fs.Parse(args)
	if err := sf.apply(); err != nil {
		return err
	}

	agents := make([]agent.Agent, 2)
	for i, desc := range []string{*agent1, *agent2} {
		a, err := parseAgent(desc, sf, *seed+uint64(i))
		if err != nil {
			return err
		}
		agents[i] = a
	}
	gm := gamemaster.NewGameMaster([]string{*name1, *name2}, agents, *seed, engine.WithMaxTurns(*maxTurns))
	_, _, _, err := gm.RunGame(ctx)
	return err
}

// parseAgent turns an agent description into an agent. Anything that is not
// a known keyword or URL is run as a bot command.
func parseAgent(desc string, sf searchFlags, seed uint64) (agent.Agent, error) {
	switch {
	case desc == "search":
		return agent.NewEvaluationAgent(searcher.NewBestMove(sf.options()...)), nil
	case desc == "train":
		return agent.NewTrainingAgent(searcher.NewRankedExploration(sf.options()...), meta.MAX_RANK, seed), nil
	case strings.HasPrefix(desc, "http://"), strings.HasPrefix(desc, "https://"):
		return client.NewClient(desc, &http.Client{}), nil
	}
	fields := strings.Fields(desc)
	if len(fields) == 0 {
		return nil, errors.New("empty agent description")
	}
	return agent.NewProcessAgent(fields[0], fields[1:]), nil
}

func runSelfPlay(ctx context.Context, args []string) error {
	fs, sf := newFlagSet("selfplay")
	depth2 := fs.Int("depth2", 0, "Search depth of player 2, defaults to -depth")
	maxRank := fs.Int("max-rank", 0, "Sample moves among this many best moves, 0 plays the best move")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for rank sampling")
	maxTurns := fs.Int("max-turns", meta.MAX_TURNS, "Moves before the game is a draw")
	_ = fs.Parse(args)
	if err := sf.apply(); err != nil {
		return err
	}
	if *depth2 < 1 {
		*depth2 = *sf.depth
	}

	agents := make([]agent.Agent, 2)
	for i, depth := range []int{*sf.depth, *depth2} {
		options := append(sf.options(), searcher.WithDepth(depth))
		if *maxRank > 0 {
			agents[i] = agent.NewTrainingAgent(searcher.NewRankedExploration(options...), *maxRank, *seed+uint64(i))
		} else {
			agents[i] = agent.NewEvaluationAgent(searcher.NewBestMove(options...))
		}
	}

	referee := gamemaster.NewLocalReferee()
	e := engine.LocalEngine([]string{"Player1", "Player2"}, agents, referee, engine.WithMaxTurns(*maxTurns))
	_, gameMetric, _, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(referee.Board())
	fmt.Printf("winner: %q after %d moves in %s\n", gameMetric.Winner, gameMetric.TotalMoves, gameMetric.Duration)
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs, sf := newFlagSet("serve")
	addr := fs.String("addr", meta.Getenv("QUORIDOR_ADDR", ":8080"), "Listen address")
	_ = fs.Parse(args)
	if err := sf.apply(); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	return server.Serve(ctx, *addr, agent.NewEvaluationAgent(searcher.NewBestMove(sf.options()...)))
}

func runDataset(ctx context.Context, args []string) error {
	fs, sf := newFlagSet("dataset")
	size := fs.Int("size", 1000, "Number of positions to generate")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for position selection")
	out := fs.String("out", "data", "Base output directory")
	_ = fs.Parse(args)
	if err := sf.apply(); err != nil {
		return err
	}

	controller := player.NewTrainingController(searcher.NewRankedExploration(sf.options()...), *seed)
	runErr := controller.Run(ctx, *size)

	// Keep what was generated before an interrupt
	writer, err := metrics.NewWriter(*out, "dataset")
	if err != nil {
		return err
	}
	if err := writer.WriteSamples(controller.Samples()); err != nil {
		return err
	}
	log.Info().Int("positions", controller.Len()).Str("dir", writer.Dir()).Msg("stored dataset")
	return runErr
}

func runExperiment(ctx context.Context, args []string) error {
	fs, sf := newFlagSet("experiment")
	name := fs.String("name", "depth", fmt.Sprintf("Experiment to run, one of %v", experiments.Names()))
	games := fs.Int("games", experiments.NumGames, "Games per matchup")
	out := fs.String("out", "data", "Base output directory")
	maxTurns := fs.Int("max-turns", meta.MAX_TURNS, "Moves before a game is a draw")
	_ = fs.Parse(args)
	if err := sf.apply(); err != nil {
		return err
	}

	exp, ok := experiments.Experiments[*name]
	if !ok {
		return fmt.Errorf("unknown experiment %q, want one of %v", *name, experiments.Names())
	}
	_, err := experiments.Run(ctx, *out, exp(), *games, engine.WithMaxTurns(*maxTurns))
	return err
}
