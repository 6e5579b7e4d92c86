package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

type GamePlayService interface {
	NewGame(ctx context.Context, player1ID, player2ID string, shipCount, boardSize int, withAI bool) (*entity.Game, error)
	JoinGame(ctx context.Context, gameID, playerID string) (bool, string, error)
	DeleteGame(ctx context.Context, gameID string) error

	ConfirmShips(ctx context.Context, gameID, playerID, shipGrid string) (string, error)
	FireShot(ctx context.Context, gameID, playerID string, row, col int) (*entity.ShotResult, error)
	GetState(ctx context.Context, gameID, playerID string) (*entity.PlayerState, error)

	RandomBoard(shipCount, boardSize int) (string, error)
}

type publisher interface {
	Publish(ctx context.Context, gameID string, snapshot *entity.Snapshot) error
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	publisher     publisher

	locks keyedMutex
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, publisher publisher) GamePlayService {
	return &gamePlayService{
		logger:        logger.With("component", "gameplay"),
		playerService: playerService,
		gameService:   gameService,
		publisher:     publisher,
	}
}

// keyedMutex serializes all operations touching one game. Mid-resolution
// grid state spans the hit/sink/win steps, so shots must never interleave
// and reads must see either the pre-shot or the fully-post-shot state.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (that *keyedMutex) lock(key string) func() {
	that.mu.Lock()
	if that.locks == nil {
		that.locks = make(map[string]*sync.Mutex)
	}

	lock, ok := that.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[key] = lock
	}
	that.mu.Unlock()

	lock.Lock()

	return lock.Unlock
}

// forget drops the lock entry for a key. Safe alongside waiters: they hold
// their own pointer to the mutex, and a fresh entry is created on the next
// lock for the key.
func (that *keyedMutex) forget(key string) {
	that.mu.Lock()
	delete(that.locks, key)
	that.mu.Unlock()
}

func (that *gamePlayService) NewGame(ctx context.Context, player1ID, player2ID string, shipCount, boardSize int, withAI bool) (*entity.Game, error) {
	// both seats need a profile row before counters can be bumped; an open
	// seat gets its row when a player claims it
	if _, err := that.playerService.EnsurePlayer(ctx, player1ID); err != nil {
		return nil, fmt.Errorf("failed to ensure player 1: %w", err)
	}
	if player2ID != entity.PlaceholderPlayerID {
		if _, err := that.playerService.EnsurePlayer(ctx, player2ID); err != nil {
			return nil, fmt.Errorf("failed to ensure player 2: %w", err)
		}
	}

	game, err := that.gameService.CreateGame(ctx, player1ID, player2ID, shipCount, boardSize, withAI)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

// JoinGame claims an open seat 2 for the player. It reports whether the
// claim was made and who holds the seat afterwards; a claim against an
// already taken seat is not an error, just a refused claim.
func (that *gamePlayService) JoinGame(ctx context.Context, gameID, playerID string) (bool, string, error) {
	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return false, "", err
	}

	if !game.AssignOpponent(playerID) {
		return false, game.Player2ID, nil
	}

	if _, err = that.playerService.EnsurePlayer(ctx, playerID); err != nil {
		return false, "", fmt.Errorf("failed to ensure joining player: %w", err)
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return false, "", fmt.Errorf("failed to update game: %w", err)
	}

	return true, game.Player2ID, nil
}

// DeleteGame removes the game and evicts its lock entry, so the lock map
// does not grow with every game id ever touched.
func (that *gamePlayService) DeleteGame(ctx context.Context, gameID string) error {
	unlock := that.locks.lock(gameID)
	defer unlock()

	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	that.locks.forget(gameID)

	return nil
}

func (that *gamePlayService) ConfirmShips(ctx context.Context, gameID, playerID, shipGrid string) (string, error) {
	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return "", err
	}

	grid, err := entity.ParseGrid(shipGrid, game.BoardSize)
	if err != nil {
		return "", err
	}

	if err = game.ConfirmShips(playerID, grid); err != nil {
		return "", err
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return "", fmt.Errorf("failed to update game: %w", err)
	}

	that.publish(ctx, game, playerID)

	return grid.String(), nil
}

func (that *gamePlayService) FireShot(ctx context.Context, gameID, playerID string, row, col int) (*entity.ShotResult, error) {
	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	result, err := game.FireShot(playerID, row, col)
	if err != nil {
		return nil, err
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if result.Sunk {
		if err = that.playerService.AddShipSunk(ctx, playerID); err != nil {
			return nil, err
		}
	}

	if result.Winner {
		if err = that.playerService.RecordResult(ctx, game.WinnerID, game.LoserID); err != nil {
			return nil, err
		}
	}

	opponentID, err := game.OpponentID(playerID)
	if err != nil {
		return nil, err
	}

	// the defender's board carries the fresh marks
	that.publish(ctx, game, opponentID)

	return result, nil
}

func (that *gamePlayService) GetState(ctx context.Context, gameID, playerID string) (*entity.PlayerState, error) {
	// reads take the same lock as shots so a poller never observes a
	// half-resolved shot
	unlock := that.locks.lock(gameID)
	defer unlock()

	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	state, err := game.StateFor(playerID)
	if err != nil {
		return nil, err
	}

	return state, nil
}

func (that *gamePlayService) RandomBoard(shipCount, boardSize int) (string, error) {
	if boardSize <= 0 {
		boardSize = entity.DefaultBoardSize
	}

	grid, err := entity.RandomShipGrid(shipCount, boardSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate board: %w", err)
	}

	return grid.String(), nil
}

// publish is fire-and-forget: a dropped snapshot only delays a subscriber
// until its next pull.
func (that *gamePlayService) publish(ctx context.Context, game *entity.Game, playerID string) {
	snapshot, err := game.SnapshotFor(playerID)
	if err != nil {
		that.logger.Error("failed to build snapshot", "gameID", game.ID, "error", err)
		return
	}

	if err = that.publisher.Publish(ctx, game.ID, snapshot); err != nil {
		that.logger.Error("failed to publish snapshot", "gameID", game.ID, "error", err)
	}
}
