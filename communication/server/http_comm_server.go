package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/statenegative/quoridor/agent"
	"github.com/statenegative/quoridor/communication"
	"github.com/statenegative/quoridor/searcher"
)

// NewRouter exposes an agent over HTTP:
//
//	POST /findmove  body and reply are communication.Message
//	GET  /healthz
func NewRouter(a agent.Agent) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/findmove", FindMoveHandler(a))
	return r
}

// FindMoveHandler answers a board with the board after the side to move has
// played, passing the turn to the opponent.
func FindMoveHandler(a agent.Agent) gin.HandlerFunc {
	return func(c *gin.Context) {
		var msg communication.Message
		if err := c.ShouldBindJSON(&msg); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		b, turn, err := msg.Board()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if b.Terminal() {
			c.JSON(http.StatusConflict, gin.H{"error": searcher.ErrGameOver.Error()})
			return
		}

		next, metric, err := a.FindMove(c.Request.Context(), b, turn)
		switch {
		case errors.Is(err, searcher.ErrGameOver):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		case err != nil:
			log.Error().Err(err).Str("player", turn.String()).Msg("agent failed to find a move")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		log.Debug().Str("player", turn.String()).Int("nodes", metric.Nodes).Dur("duration", metric.Duration).Msg("found move")
		c.JSON(http.StatusOK, communication.NewMessage(next, turn.Opponent()))
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// Serve runs the router on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, a agent.Agent) error {
	srv := &http.Server{Addr: addr, Handler: NewRouter(a)}

	errs := make(chan error, 1)
	go func() {
		log.Info().Msgf("agent server listening on %s", addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
