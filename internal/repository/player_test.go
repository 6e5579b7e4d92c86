package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/rocketscienceinc/battleship-backend/internal/repository/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayerRepo(t *testing.T) (context.Context, repository.PlayerRepository) {
	t.Helper()

	ctx := context.Background()

	db, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "players.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	require.NoError(t, db.Init(ctx))

	return ctx, repository.NewPlayerRepository(db.Connection)
}

func TestPlayerRepository_SaveAndGet(t *testing.T) {
	t.Run("Stored profile round-trips", func(t *testing.T) {
		// Given: a fresh repository
		ctx, repo := newPlayerRepo(t)

		// When: saving a full profile and loading it back
		player := &entity.Player{
			ID:              "p1",
			ScreenName:      "Admiral",
			ColorPreference: "navy",
			IsAI:            false,
			Wins:            3,
			Losses:          1,
			ShipsSunk:       9,
		}
		require.NoError(t, repo.Save(ctx, player))

		loaded, err := repo.GetByID(ctx, "p1")

		// Then: every field survives
		require.NoError(t, err)
		assert.Equal(t, player, loaded)
	})

	t.Run("Re-saving updates the profile but keeps the counters", func(t *testing.T) {
		// Given: a player with history
		ctx, repo := newPlayerRepo(t)
		require.NoError(t, repo.Save(ctx, &entity.Player{ID: "p1", ScreenName: "Old", Wins: 5}))

		// When: saving the same id with a new name and zeroed counters
		require.NoError(t, repo.Save(ctx, &entity.Player{ID: "p1", ScreenName: "New"}))

		// Then: the name changes, the record stays
		loaded, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "New", loaded.ScreenName)
		assert.Equal(t, 5, loaded.Wins)
	})

	t.Run("Missing player returns not found", func(t *testing.T) {
		ctx, repo := newPlayerRepo(t)

		_, err := repo.GetByID(ctx, "ghost")
		assert.ErrorIs(t, err, repository.ErrPlayerNotFound)
	})
}

func TestPlayerRepository_UpdatePreferences(t *testing.T) {
	t.Run("Updates name and color only", func(t *testing.T) {
		// Given: a stored player
		ctx, repo := newPlayerRepo(t)
		require.NoError(t, repo.Save(ctx, &entity.Player{ID: "p1", Wins: 2}))

		// When: updating preferences
		require.NoError(t, repo.UpdatePreferences(ctx, "p1", "Captain", "crimson"))

		// Then: preferences change and counters stay
		loaded, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, "Captain", loaded.ScreenName)
		assert.Equal(t, "crimson", loaded.ColorPreference)
		assert.Equal(t, 2, loaded.Wins)
	})

	t.Run("Missing player returns not found", func(t *testing.T) {
		ctx, repo := newPlayerRepo(t)

		err := repo.UpdatePreferences(ctx, "ghost", "x", "y")
		assert.ErrorIs(t, err, repository.ErrPlayerNotFound)
	})
}

func TestPlayerRepository_Counters(t *testing.T) {
	t.Run("Ships sunk increments per call", func(t *testing.T) {
		// Given: a stored player
		ctx, repo := newPlayerRepo(t)
		require.NoError(t, repo.Save(ctx, &entity.Player{ID: "p1"}))

		// When: recording two sinks
		require.NoError(t, repo.AddShipSunk(ctx, "p1"))
		require.NoError(t, repo.AddShipSunk(ctx, "p1"))

		// Then: the counter reads two
		loaded, err := repo.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 2, loaded.ShipsSunk)
	})

	t.Run("Result lands on both profiles", func(t *testing.T) {
		// Given: two stored players
		ctx, repo := newPlayerRepo(t)
		require.NoError(t, repo.Save(ctx, &entity.Player{ID: "winner"}))
		require.NoError(t, repo.Save(ctx, &entity.Player{ID: "loser"}))

		// When: recording the result
		require.NoError(t, repo.RecordResult(ctx, "winner", "loser"))

		// Then: one win and one loss, nothing else
		winner, err := repo.GetByID(ctx, "winner")
		require.NoError(t, err)
		assert.Equal(t, 1, winner.Wins)
		assert.Equal(t, 0, winner.Losses)

		loser, err := repo.GetByID(ctx, "loser")
		require.NoError(t, err)
		assert.Equal(t, 1, loser.Losses)
		assert.Equal(t, 0, loser.Wins)
	})

	t.Run("Result against a missing loser rolls back the win", func(t *testing.T) {
		// Given: only the winner exists
		ctx, repo := newPlayerRepo(t)
		require.NoError(t, repo.Save(ctx, &entity.Player{ID: "winner"}))

		// When: recording a result with a missing loser
		err := repo.RecordResult(ctx, "winner", "ghost")

		// Then: the whole transaction is rolled back
		assert.ErrorIs(t, err, repository.ErrPlayerNotFound)

		winner, err := repo.GetByID(ctx, "winner")
		require.NoError(t, err)
		assert.Equal(t, 0, winner.Wins)
	})
}
