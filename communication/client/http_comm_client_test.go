package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/statenegative/quoridor/agent"
	"github.com/statenegative/quoridor/communication"
	"github.com/statenegative/quoridor/communication/server"
	"github.com/statenegative/quoridor/game"
	"github.com/statenegative/quoridor/searcher"
	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := searcher.NewBestMove(searcher.WithDepth(1))
	srv := httptest.NewServer(server.NewRouter(agent.NewEvaluationAgent(s)))
	defer srv.Close()

	c := NewClient(srv.URL+"/", nil)

	t.Run("plays the server's move", func(t *testing.T) {
		b := game.NewBoard().Successors(game.Player1)[1]
		next, _, err := c.FindMove(context.Background(), b, game.Player2)
		require.NoError(t, err)

		want, _, err := s.Search(b, game.Player2)
		require.NoError(t, err)
		require.Equal(t, want.Board, next)
	})

	t.Run("maps a finished game to ErrGameOver", func(t *testing.T) {
		var walls [2][game.WallCells][game.WallCells]bool
		over, err := game.New(walls, game.Pos{X: 2, Y: 2}, game.Pos{X: 6, Y: 0}, 10, 10)
		require.NoError(t, err)

		_, _, err = c.FindMove(context.Background(), over, game.Player1)
		require.ErrorIs(t, err, searcher.ErrGameOver)
	})
}

func TestClientErrors(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "no search budget"}`))
		}))
		defer srv.Close()

		_, _, err := NewClient(srv.URL, nil).FindMove(context.Background(), game.NewBoard(), game.Player1)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no search budget")
	})

	t.Run("reply keeps the turn", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, turn, err := communication.Decode(r.Body)
			require.NoError(t, err)
			require.NoError(t, communication.Encode(w, b.Successors(turn)[0], turn))
		}))
		defer srv.Close()

		_, _, err := NewClient(srv.URL, nil).FindMove(context.Background(), game.NewBoard(), game.Player1)
		require.Error(t, err)
		require.Contains(t, err.Error(), "to move")
	})

	t.Run("context deadline", func(t *testing.T) {
		block := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-block:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(block)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_, _, err := NewClient(srv.URL, nil).FindMove(ctx, game.NewBoard(), game.Player1)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
