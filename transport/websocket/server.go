package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/battleship-backend/internal/notifier"
)

// Server bridges the notifier's pub/sub stream onto per-game websocket
// rooms. Clients subscribe with GET /ws/{gameID} and receive every
// snapshot published for that game.
type Server struct {
	logger *slog.Logger
	hub    *Hub
	events <-chan notifier.Event
}

func New(logger *slog.Logger, hub *Hub, events <-chan notifier.Event) *Server {
	return &Server{
		logger: logger.With("component", "ws-server"),
		hub:    hub,
		events: events,
	}
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	go that.hub.Run(ctx)
	go that.forward(ctx)

	router := chi.NewRouter()
	router.Get("/ws/{gameID}", func(w http.ResponseWriter, r *http.Request) {
		that.hub.ServeWS(w, r, chi.URLParam(r, "gameID"))
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down websocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// forward moves published snapshots from the pub/sub stream into the hub.
func (that *Server) forward(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-that.events:
			if !ok {
				return
			}

			that.hub.Broadcast(event.GameID, event.Payload)
		}
	}
}
