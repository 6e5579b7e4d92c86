package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/pkg"
)

const (
	GameFilterActive   = "active"
	GameFilterInactive = "inactive"
	GameFilterAll      = "all"
)

var ErrInvalidGameFilter = errors.New("status filter must be active, inactive, or all")

type GameService interface {
	CreateGame(ctx context.Context, player1ID, player2ID string, shipCount, boardSize int, withAI bool) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error
	ListByPlayer(ctx context.Context, playerID, filter string) ([]*entity.Game, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListByPlayerID(ctx context.Context, playerID string) ([]*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type gameService struct {
	gameRepo gameRepo
}

func NewGameService(gameRepo gameRepo) GameService {
	return &gameService{
		gameRepo: gameRepo,
	}
}

func (that *gameService) CreateGame(ctx context.Context, player1ID, player2ID string, shipCount, boardSize int, withAI bool) (*entity.Game, error) {
	if _, err := entity.FleetLengths(shipCount); err != nil {
		return nil, err
	}

	if boardSize <= 0 {
		boardSize = entity.DefaultBoardSize
	}

	game := entity.NewGame(pkg.GenerateGameID(), player1ID, player2ID, shipCount, boardSize, withAI)

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameRepo.DeleteByID(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

func (that *gameService) ListByPlayer(ctx context.Context, playerID, filter string) ([]*entity.Game, error) {
	games, err := that.gameRepo.ListByPlayerID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	filtered := make([]*entity.Game, 0, len(games))
	for _, game := range games {
		switch filter {
		case GameFilterAll:
			filtered = append(filtered, game)
		case GameFilterActive:
			if !game.IsFinished() {
				filtered = append(filtered, game)
			}
		case GameFilterInactive:
			if game.IsFinished() {
				filtered = append(filtered, game)
			}
		default:
			return nil, fmt.Errorf("%w: got %q", ErrInvalidGameFilter, filter)
		}
	}

	return filtered, nil
}
