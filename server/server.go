package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewRouter builds the spectator routes. ctx bounds the lifetime of
// websocket connections.
func NewRouter(ctx context.Context, hub *Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/snapshot", snapshotHandler(hub))
	r.GET("/ws", websocketHandler(ctx, hub))

	return r
}

func snapshotHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, ok := hub.Latest()
		if !ok {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no snapshot yet"})
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

func websocketHandler(ctx context.Context, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "error", err)
			return
		}
		hub.attach(ctx, conn)
	}
}

// ListenAndServe runs the hub and an HTTP server on addr until ctx is done.
func ListenAndServe(ctx context.Context, addr string, hub *Hub) error {
	go hub.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(ctx, hub),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("spectator server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("spectator server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down spectator server: %w", err)
		}
		return nil
	}
}
