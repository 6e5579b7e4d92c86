package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListByPlayerID(ctx context.Context, playerID string) ([]*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

func playerGamesKey(playerID string) string {
	return "player:games:" + playerID
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, gameKey(game.ID), gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	// index the game under both seats so per-player listings stay cheap
	for _, playerID := range []string{game.Player1ID, game.Player2ID} {
		if err = that.client.SAdd(ctx, playerGamesKey(playerID), game.ID).Err(); err != nil {
			return fmt.Errorf("failed to index game for player %s: %w", playerID, err)
		}
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by ID: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *dbGame) ListByPlayerID(ctx context.Context, playerID string) ([]*entity.Game, error) {
	ids, err := that.client.SMembers(ctx, playerGamesKey(playerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list games for player: %w", err)
	}

	games := make([]*entity.Game, 0, len(ids))
	for _, id := range ids {
		game, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrGameNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		games = append(games, game)
	}

	return games, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	game, err := that.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err = that.client.Del(ctx, gameKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	for _, playerID := range []string{game.Player1ID, game.Player2ID} {
		if err = that.client.SRem(ctx, playerGamesKey(playerID), id).Err(); err != nil {
			return fmt.Errorf("failed to unindex game for player %s: %w", playerID, err)
		}
	}

	return nil
}
