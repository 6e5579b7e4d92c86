package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

// AIService drives the computer seat of AI games. It is a plain polling
// client of the gameplay service: confirm a random fleet, then re-poll the
// pull state on a fixed interval and fire when the turn comes around.
// Polling is the resynchronisation path, so the runner never depends on
// push delivery and tolerates arbitrarily slow opponents.
type AIService interface {
	StartGame(ctx context.Context, game *entity.Game)
}

type aiService struct {
	logger *slog.Logger

	gamePlay      GamePlayService
	playerService PlayerService

	pollInterval    time.Duration
	defaultStrategy string
}

func NewAIService(logger *slog.Logger, gamePlay GamePlayService, playerService PlayerService, pollInterval time.Duration, defaultStrategy string) AIService {
	return &aiService{
		logger:          logger.With("component", "ai"),
		gamePlay:        gamePlay,
		playerService:   playerService,
		pollInterval:    pollInterval,
		defaultStrategy: defaultStrategy,
	}
}

// StartGame launches the polling loop for the game's AI seat (seat 2, as
// AI games are created with the computer as player 2).
func (that *aiService) StartGame(ctx context.Context, game *entity.Game) {
	go that.run(ctx, game)
}

func (that *aiService) run(ctx context.Context, game *entity.Game) {
	log := that.logger.With("gameID", game.ID, "playerID", game.Player2ID)

	strategy, err := that.strategyFor(ctx, game.Player2ID)
	if err != nil {
		log.Error("failed to pick strategy", "error", err)
		return
	}

	if err = that.confirmFleet(ctx, game); err != nil {
		log.Error("failed to confirm fleet", "error", err)
		return
	}

	ticker := time.NewTicker(that.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			done, err := that.playTick(ctx, game, strategy)
			if err != nil {
				log.Error("failed to play tick", "error", err)
				continue
			}

			if done {
				log.Info("game finished, stopping poller")
				return
			}
		}
	}
}

func (that *aiService) strategyFor(ctx context.Context, playerID string) (BotStrategy, error) {
	name := that.defaultStrategy

	player, err := that.playerService.GetByID(ctx, playerID)
	if err == nil && player.Strategy != "" {
		name = player.Strategy
	}

	return NewBotStrategy(name)
}

func (that *aiService) confirmFleet(ctx context.Context, game *entity.Game) error {
	shipGrid, err := that.gamePlay.RandomBoard(game.ShipCount, game.BoardSize)
	if err != nil {
		return err
	}

	if _, err = that.gamePlay.ConfirmShips(ctx, game.ID, game.Player2ID, shipGrid); err != nil {
		return err
	}

	return nil
}

// playTick polls once and fires at most one shot. It reports done=true
// when the game has reached a terminal status.
func (that *aiService) playTick(ctx context.Context, game *entity.Game, strategy BotStrategy) (bool, error) {
	state, err := that.gamePlay.GetState(ctx, game.ID, game.Player2ID)
	if err != nil {
		return false, err
	}

	if state.Status != entity.StatusInProgress {
		return true, nil
	}

	if state.Turn != entity.SeatPlayer2 || !state.OpponentShipStatus {
		return false, nil
	}

	row, col, err := strategy.NextShot(state)
	if err != nil {
		return false, err
	}

	_, err = that.gamePlay.FireShot(ctx, game.ID, game.Player2ID, row, col)
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return true, nil
	case errors.Is(err, apperror.ErrGameNotReady), errors.Is(err, apperror.ErrNotYourTurn), errors.Is(err, apperror.ErrDuplicateShot):
		// transient against a racing human move; the next poll resolves it
		return false, nil
	case err != nil:
		return false, err
	}

	return false, nil
}
