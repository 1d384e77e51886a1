package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/statenegative/quoridor/agent"
	"github.com/statenegative/quoridor/communication"
	"github.com/statenegative/quoridor/experiments/metrics"
	"github.com/statenegative/quoridor/game"
	"github.com/statenegative/quoridor/searcher"
	"github.com/stretchr/testify/require"
)

type failingAgent struct{ err error }

func (a failingAgent) FindMove(context.Context, game.Board, game.Player) (game.Board, metrics.SearchMetric, error) {
	return game.Board{}, metrics.SearchMetric{}, a.err
}

func post(t *testing.T, router *gin.Engine, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/findmove", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func encode(t *testing.T, b game.Board, turn game.Player) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, communication.Encode(&buf, b, turn))
	return buf.Bytes()
}

func TestFindMove(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := searcher.NewBestMove(searcher.WithDepth(1))
	router := NewRouter(agent.NewEvaluationAgent(s))

	t.Run("replies with the agent's move", func(t *testing.T) {
		b := game.NewBoard()
		rec := post(t, router, encode(t, b, game.Player1))
		require.Equal(t, http.StatusOK, rec.Code)

		next, turn, err := communication.Decode(rec.Body)
		require.NoError(t, err)
		require.Equal(t, game.Player2, turn, "Turn should pass to the opponent")

		want, _, err := s.Search(b, game.Player1)
		require.NoError(t, err)
		require.Equal(t, want.Board, next)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		rec := post(t, router, []byte(`{"walls": 3`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects an impossible board", func(t *testing.T) {
		msg := communication.NewMessage(game.NewBoard(), game.Player1)
		msg.P2 = msg.P1
		body, err := json.Marshal(msg)
		require.NoError(t, err)

		rec := post(t, router, body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "both pawns")
	})

	t.Run("refuses a finished game", func(t *testing.T) {
		var walls [2][game.WallCells][game.WallCells]bool
		over, err := game.New(walls, game.Pos{X: 1, Y: 8}, game.Pos{X: 4, Y: 4}, 10, 10)
		require.NoError(t, err)

		rec := post(t, router, encode(t, over, game.Player2))
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("reports agent failures", func(t *testing.T) {
		router := NewRouter(failingAgent{err: errors.New("search exploded")})
		rec := post(t, router, encode(t, game.NewBoard(), game.Player1))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "search exploded")
	})
}

func TestHealthz(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(failingAgent{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, Serve(ctx, "127.0.0.1:0", failingAgent{}))
}
