package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/statenegative/quoridor/communication"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
	"github.com/statenegative/quoridor/searcher"
)

// Client is an agent whose moves are chosen by a remote agent server.
type Client struct {
	serverURL string
	http      *http.Client
}

// NewClient returns an agent backed by the server at serverURL. A nil
// httpClient uses http.DefaultClient.
func NewClient(serverURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		http:      httpClient,
	}
}

func (c *Client) FindMove(ctx context.Context, b game.Board, p game.Player) (game.Board, metrics.SearchMetric, error) {
	var body bytes.Buffer
	if err := communication.Encode(&body, b, p); err != nil {
		return game.Board{}, metrics.SearchMetric{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/findmove", &body)
	if err != nil {
		return game.Board{}, metrics.SearchMetric{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return game.Board{}, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		reason := serverError(resp.Body)
		if resp.StatusCode == http.StatusConflict {
			return game.Board{}, metrics.SearchMetric{}, fmt.Errorf("agent server: %w", searcher.ErrGameOver)
		}
		return game.Board{}, metrics.SearchMetric{}, fmt.Errorf("agent server returned %s: %s", resp.Status, reason)
	}

	next, turn, err := communication.Decode(resp.Body)
	if err != nil {
		return game.Board{}, metrics.SearchMetric{}, fmt.Errorf("agent server replied with a bad board: %w", err)
	}
	if turn != p.Opponent() {
		return game.Board{}, metrics.SearchMetric{}, fmt.Errorf("agent server replied with %s to move, want %s", turn, p.Opponent())
	}
	return next, metrics.SearchMetric{}, nil
}

func serverError(body io.Reader) string {
	var reply struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&reply); err != nil || reply.Error == "" {
		return "no reason given"
	}
	return reply.Error
}
