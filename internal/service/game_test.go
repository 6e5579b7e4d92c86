package service

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGameRepo struct {
	games map[string]*entity.Game
}

func newStubGameRepo() *stubGameRepo {
	return &stubGameRepo{games: make(map[string]*entity.Game)}
}

func (that *stubGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	that.games[game.ID] = game
	return nil
}

func (that *stubGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	game, ok := that.games[id]
	if !ok {
		return nil, repository.ErrGameNotFound
	}

	return game, nil
}

func (that *stubGameRepo) ListByPlayerID(_ context.Context, playerID string) ([]*entity.Game, error) {
	var games []*entity.Game
	for _, game := range that.games {
		if game.Player1ID == playerID || game.Player2ID == playerID {
			games = append(games, game)
		}
	}

	return games, nil
}

func (that *stubGameRepo) DeleteByID(_ context.Context, id string) error {
	delete(that.games, id)
	return nil
}

func TestGameService_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a stored game with a fresh id", func(t *testing.T) {
		// Given: an empty repository
		repo := newStubGameRepo()
		games := NewGameService(repo)

		// When: creating a game
		game, err := games.CreateGame(ctx, "p1", "p2", 5, 10, false)

		// Then: it lands in storage with player 1 to move
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Contains(t, repo.games, game.ID)
		assert.Equal(t, entity.SeatPlayer1, game.Turn)
	})

	t.Run("Zero board size falls back to the default", func(t *testing.T) {
		games := NewGameService(newStubGameRepo())

		game, err := games.CreateGame(ctx, "p1", "p2", 5, 0, false)
		require.NoError(t, err)
		assert.Equal(t, entity.DefaultBoardSize, game.BoardSize)
	})

	t.Run("Invalid ship count never reaches storage", func(t *testing.T) {
		repo := newStubGameRepo()
		games := NewGameService(repo)

		_, err := games.CreateGame(ctx, "p1", "p2", 3, 10, false)
		assert.ErrorIs(t, err, apperror.ErrInvalidShipCount)
		assert.Empty(t, repo.games)
	})
}

func TestGameService_ListByPlayer(t *testing.T) {
	ctx := context.Background()

	// Given: one active and one finished game for the same player
	repo := newStubGameRepo()
	games := NewGameService(repo)

	active, err := games.CreateGame(ctx, "p1", "p2", 5, 10, false)
	require.NoError(t, err)

	finished, err := games.CreateGame(ctx, "p1", "p3", 5, 10, false)
	require.NoError(t, err)
	finished.Status = entity.StatusPlayer1Won
	require.NoError(t, games.UpdateGame(ctx, finished))

	t.Run("Active filter keeps only unfinished games", func(t *testing.T) {
		listed, err := games.ListByPlayer(ctx, "p1", GameFilterActive)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, active.ID, listed[0].ID)
	})

	t.Run("Inactive filter keeps only finished games", func(t *testing.T) {
		listed, err := games.ListByPlayer(ctx, "p1", GameFilterInactive)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, finished.ID, listed[0].ID)
	})

	t.Run("All filter keeps everything", func(t *testing.T) {
		listed, err := games.ListByPlayer(ctx, "p1", GameFilterAll)
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("Unknown filter is rejected", func(t *testing.T) {
		_, err := games.ListByPlayer(ctx, "p1", "recent")
		assert.ErrorIs(t, err, ErrInvalidGameFilter)
	})
}
