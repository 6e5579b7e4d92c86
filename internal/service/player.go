package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
)

type PlayerService interface {
	EnsurePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	Save(ctx context.Context, player *entity.Player) error
	UpdatePreferences(ctx context.Context, id, screenName, colorPreference string) error

	AddShipSunk(ctx context.Context, id string) error
	RecordResult(ctx context.Context, winnerID, loserID string) error
}

type playerRepo interface {
	Save(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	UpdatePreferences(ctx context.Context, id, screenName, colorPreference string) error
	AddShipSunk(ctx context.Context, id string) error
	RecordResult(ctx context.Context, winnerID, loserID string) error
}

type playerService struct {
	playerRepo playerRepo
}

func NewPlayerService(playerRepo playerRepo) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
	}
}

// EnsurePlayer returns the stored profile, creating a blank one for a
// first-seen id.
func (that *playerService) EnsurePlayer(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		player = &entity.Player{ID: id}
		if err = that.playerRepo.Save(ctx, player); err != nil {
			return nil, fmt.Errorf("failed to create player: %w", err)
		}

		return player, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *playerService) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *playerService) Save(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.Save(ctx, player); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

func (that *playerService) UpdatePreferences(ctx context.Context, id, screenName, colorPreference string) error {
	if err := that.playerRepo.UpdatePreferences(ctx, id, screenName, colorPreference); err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}

	return nil
}

func (that *playerService) AddShipSunk(ctx context.Context, id string) error {
	if err := that.playerRepo.AddShipSunk(ctx, id); err != nil {
		return fmt.Errorf("failed to record sunk ship: %w", err)
	}

	return nil
}

func (that *playerService) RecordResult(ctx context.Context, winnerID, loserID string) error {
	if err := that.playerRepo.RecordResult(ctx, winnerID, loserID); err != nil {
		return fmt.Errorf("failed to record game result: %w", err)
	}

	return nil
}
