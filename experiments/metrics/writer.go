package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/statenegative/quoridor/game"
)

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Sample is a scored position from the training dataset generator.
type Sample struct {
	Board  game.Board
	Player game.Player // Side to move
	Score  float64
	Visits int
}

type Writer struct {
	baseDir string
}

// NewWriter creates baseDir/name/<timestamp> to hold one run's CSV files.
func NewWriter(baseDir, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339)
	dir := filepath.Join(baseDir, name, timestamp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	return &Writer{baseDir: dir}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteAgentConfigs(configs []AgentConfig) error {
	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{
			strconv.Itoa(config.ID),
			strconv.Itoa(config.Depth),
			strconv.Itoa(config.Goroutines),
			strconv.Itoa(config.MaxRank),
		})
	}
	header := []string{"id", "depth", "goroutines", "max_rank"}
	if err := w.write("agent_configs.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write agent configs: %w", err)
	}
	return nil
}

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			record.MatchID,
			strconv.Itoa(record.Agent1),
			strconv.Itoa(record.Agent2),
			strconv.Itoa(record.StartingPlayer),
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.TotalMoves),
		})
	}
	header := []string{"id", "match_id", "agent1", "agent2", "starting_player", "winner", "start_time", "end_time", "duration", "total_moves"}
	if err := w.write("game_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	return nil
}

func (w *Writer) WriteMoveRecords(records []MoveRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.Game),
			strconv.Itoa(record.Step),
			strconv.Itoa(record.Player),
			strconv.Itoa(record.Depth),
			strconv.Itoa(record.Goroutines),
			strconv.FormatBool(record.Pruned),
			record.Duration.String(),
			strconv.Itoa(record.Nodes),
			strconv.Itoa(record.Leaves),
			strconv.Itoa(record.Cutoffs),
			strconv.Itoa(record.Children),
			formatScore(record.Score),
		})
	}
	header := []string{"game", "step", "player", "depth", "goroutines", "pruned", "duration", "nodes", "leaves", "cutoffs", "children", "score"}
	if err := w.write("move_records.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	return nil
}

// WriteSamples stores each sample as its raw board fields: wall layers as hex
// bitboards, pawn coordinates, wall stocks and the side to move.
func (w *Writer) WriteSamples(samples []Sample) error {
	rows := make([][]string, 0, len(samples))
	for _, s := range samples {
		p1, p2 := s.Board.Pawn(game.Player1), s.Board.Pawn(game.Player2)
		rows = append(rows, []string{
			strconv.FormatUint(s.Board.WallBits(game.Horizontal), 16),
			strconv.FormatUint(s.Board.WallBits(game.Vertical), 16),
			strconv.Itoa(p1.X),
			strconv.Itoa(p1.Y),
			strconv.Itoa(p2.X),
			strconv.Itoa(p2.Y),
			strconv.Itoa(s.Board.WallsRemaining(game.Player1)),
			strconv.Itoa(s.Board.WallsRemaining(game.Player2)),
			strconv.FormatBool(s.Player == game.Player1),
			formatScore(s.Score),
			strconv.Itoa(s.Visits),
		})
	}
	header := []string{"h_walls", "v_walls", "p1_x", "p1_y", "p2_x", "p2_y", "p1_walls", "p2_walls", "p1_turn", "score", "visits"}
	if err := w.write("samples.csv", header, rows); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	return nil
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.baseDir, name))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

// formatScore keeps the shortest exact form; wins and losses print as +Inf and -Inf.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}
