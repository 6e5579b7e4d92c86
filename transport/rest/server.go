package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API: game lifecycle, ship confirmation, shots, state
// pulls, random boards and player profiles.
type Server struct {
	logger   *slog.Logger
	handlers *handlers
}

func New(logger *slog.Logger, h *handlers) *Server {
	return &Server{
		logger:   logger.With("component", "rest"),
		handlers: h,
	}
}

func (that *Server) router() chi.Router {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(10 * time.Second))

	router.Get("/ping", pingHandler)

	router.Route("/api", func(r chi.Router) {
		r.Post("/games", that.handlers.NewGame)
		r.Put("/games/{gameID}/opponent", that.handlers.JoinGame)
		r.Delete("/games/{gameID}", that.handlers.DeleteGame)
		r.Post("/games/{gameID}/ships", that.handlers.ConfirmShips)
		r.Post("/games/{gameID}/shots", that.handlers.FireShot)
		r.Get("/games/{gameID}/state", that.handlers.GetState)

		r.Get("/boards/random", that.handlers.RandomBoard)

		r.Get("/players/{playerID}", that.handlers.GetPlayer)
		r.Put("/players/{playerID}/preferences", that.handlers.UpdatePreferences)
		r.Get("/players/{playerID}/games", that.handlers.ListGames)
	})

	return router
}

// Start serves the API until the context is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down http server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
