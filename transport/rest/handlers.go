package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/config"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/pkg"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/rocketscienceinc/battleship-backend/internal/service"
)

type handlers struct {
	logger *slog.Logger

	// runCtx outlives individual requests; AI pollers started from a
	// request must keep running after it returns.
	runCtx context.Context

	// defaults fill in ship count and board size when a request omits them
	defaults config.Game

	gamePlay      service.GamePlayService
	gameService   service.GameService
	playerService service.PlayerService
	ai            service.AIService
}

func NewHandlers(
	logger *slog.Logger,
	runCtx context.Context,
	defaults config.Game,
	gamePlay service.GamePlayService,
	gameService service.GameService,
	playerService service.PlayerService,
	ai service.AIService,
) *handlers {
	return &handlers{
		logger:        logger.With("component", "rest-handlers"),
		runCtx:        runCtx,
		defaults:      defaults,
		gamePlay:      gamePlay,
		gameService:   gameService,
		playerService: playerService,
		ai:            ai,
	}
}

type newGameRequest struct {
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`
	ShipCount int    `json:"ship_count"`
	BoardSize int    `json:"board_size"`
	WithAI    bool   `json:"with_ai"`
}

type newGameResponse struct {
	GameID    string `json:"game_id"`
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`
}

func (that *handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ErrInvalidPayload, http.StatusBadRequest)
		return
	}

	if req.ShipCount == 0 {
		req.ShipCount = that.defaults.ShipCount
	}
	if req.BoardSize == 0 {
		req.BoardSize = that.defaults.BoardSize
	}

	// an anonymous creator gets a fresh session id; an unnamed seat 2 is a
	// generated id for AI games and an open seat awaiting a join otherwise
	if req.Player1ID == "" {
		req.Player1ID = pkg.GenerateNewSessionID()
	}
	if req.Player2ID == "" {
		if req.WithAI {
			req.Player2ID = pkg.GenerateNewSessionID()
		} else {
			req.Player2ID = entity.PlaceholderPlayerID
		}
	}

	game, err := that.gamePlay.NewGame(r.Context(), req.Player1ID, req.Player2ID, req.ShipCount, req.BoardSize, req.WithAI)
	if err != nil {
		that.writeFailure(w, err)
		return
	}

	if game.WithAI {
		that.ai.StartGame(that.runCtx, game)
	}

	writeJSON(w, http.StatusCreated, newGameResponse{
		GameID:    game.ID,
		Player1ID: game.Player1ID,
		Player2ID: game.Player2ID,
	})
}

type joinGameRequest struct {
	PlayerID string `json:"player_id"`
}

type joinGameResponse struct {
	Status    int    `json:"status"`
	Player2ID string `json:"player2_id"`
}

// JoinGame claims the open seat 2 of a game created without an opponent.
// Status is 1 when the claim was made and 0 when the seat was already
// taken; either way the response names the current seat holder.
func (that *handlers) JoinGame(w http.ResponseWriter, r *http.Request) {
	var req joinGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ErrInvalidPayload, http.StatusBadRequest)
		return
	}

	claimed, player2ID, err := that.gamePlay.JoinGame(r.Context(), chi.URLParam(r, "gameID"), req.PlayerID)
	if err != nil {
		that.writeFailure(w, err)
		return
	}

	status := 0
	if claimed {
		status = 1
	}

	writeJSON(w, http.StatusOK, joinGameResponse{Status: status, Player2ID: player2ID})
}

func (that *handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gamePlay.DeleteGame(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		that.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "game deleted successfully"})
}

type confirmShipsRequest struct {
	PlayerID string `json:"player_id"`
	ShipGrid string `json:"ship_grid"`
}

func (that *handlers) ConfirmShips(w http.ResponseWriter, r *http.Request) {
	var req confirmShipsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ErrInvalidPayload, http.StatusBadRequest)
		return
	}

	shipGrid, err := that.gamePlay.ConfirmShips(r.Context(), chi.URLParam(r, "gameID"), req.PlayerID, req.ShipGrid)
	if err != nil {
		that.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"ship_grid": shipGrid})
}

type fireShotRequest struct {
	PlayerID string `json:"player_id"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
}

func (that *handlers) FireShot(w http.ResponseWriter, r *http.Request) {
	var req fireShotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ErrInvalidPayload, http.StatusBadRequest)
		return
	}

	if _, err := that.gamePlay.FireShot(r.Context(), chi.URLParam(r, "gameID"), req.PlayerID, req.Row, req.Col); err != nil {
		that.writeFailure(w, err)
		return
	}

	// outcome details travel through the published snapshot and GetState
	writeJSON(w, http.StatusOK, map[string]bool{"ack": true})
}

func (that *handlers) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := that.gamePlay.GetState(r.Context(), chi.URLParam(r, "gameID"), r.URL.Query().Get("player_id"))
	if err != nil {
		that.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

func (that *handlers) RandomBoard(w http.ResponseWriter, r *http.Request) {
	var err error

	shipCount := that.defaults.ShipCount
	if raw := r.URL.Query().Get("ship_count"); raw != "" {
		if shipCount, err = strconv.Atoi(raw); err != nil {
			writeError(w, apperror.ErrInvalidShipCount, http.StatusBadRequest)
			return
		}
	}

	boardSize := that.defaults.BoardSize
	if raw := r.URL.Query().Get("board_size"); raw != "" {
		if boardSize, err = strconv.Atoi(raw); err != nil {
			writeError(w, apperror.ErrOutOfRange, http.StatusBadRequest)
			return
		}
	}

	shipGrid, err := that.gamePlay.RandomBoard(shipCount, boardSize)
	if err != nil {
		that.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"ship_grid": shipGrid})
}

func (that *handlers) GetPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := that.playerService.GetByID(r.Context(), chi.URLParam(r, "playerID"))
	if err != nil {
		that.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, player)
}

type preferencesRequest struct {
	ScreenName      string `json:"screen_name"`
	ColorPreference string `json:"color_preference"`
}

func (that *handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ErrInvalidPayload, http.StatusBadRequest)
		return
	}

	playerID := chi.URLParam(r, "playerID")
	if err := that.playerService.UpdatePreferences(r.Context(), playerID, req.ScreenName, req.ColorPreference); err != nil {
		that.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "player info updated successfully"})
}

func (that *handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")
	if filter == "" {
		filter = service.GameFilterAll
	}

	games, err := that.gameService.ListByPlayer(r.Context(), chi.URLParam(r, "playerID"), filter)
	if err != nil {
		that.writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, games)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error, status int) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeFailure maps the error taxonomy onto HTTP statuses: unknown ids are
// 404, state conflicts 409, bad input 400, the rest 500.
func (that *handlers) writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrGameNotFound),
		errors.Is(err, repository.ErrPlayerNotFound),
		errors.Is(err, apperror.ErrNotFound):
		writeError(w, err, http.StatusNotFound)
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrGameNotReady),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrShipsConfirmed),
		errors.Is(err, apperror.ErrDuplicateShot):
		writeError(w, err, http.StatusConflict)
	case errors.Is(err, apperror.ErrOutOfRange),
		errors.Is(err, apperror.ErrInvalidGrid),
		errors.Is(err, apperror.ErrInvalidPayload),
		errors.Is(err, apperror.ErrInvalidShipCount),
		errors.Is(err, apperror.ErrUnknownPlayer),
		errors.Is(err, apperror.ErrPlacementInfeasible),
		errors.Is(err, service.ErrInvalidGameFilter):
		writeError(w, err, http.StatusBadRequest)
	default:
		that.logger.Error("request failed", "error", err)
		writeError(w, err, http.StatusInternalServerError)
	}
}
