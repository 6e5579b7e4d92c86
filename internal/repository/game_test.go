package repository_test

import (
	"testing"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
	"github.com/rocketscienceinc/battleship-backend/internal/repository"
	"github.com/rocketscienceinc/battleship-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameRepository(t *testing.T) {
	ctx, s := suite.New(t)

	repo := repository.NewGameRepository(s.Storage)

	t.Run("Stored game round-trips with boards intact", func(t *testing.T) {
		// Given: a ready game with one resolved shot
		game := entity.NewGame("round-trip", "p1", "p2", 5, 10, false)

		grid1, err := entity.RandomShipGrid(5, 10)
		require.NoError(t, err)
		grid2, err := entity.RandomShipGrid(5, 10)
		require.NoError(t, err)

		require.NoError(t, game.ConfirmShips("p1", grid1))
		require.NoError(t, game.ConfirmShips("p2", grid2))

		_, err = game.FireShot("p1", 0, 0)
		require.NoError(t, err)

		// When: saving and loading it back
		require.NoError(t, repo.CreateOrUpdate(ctx, game))

		loaded, err := repo.GetByID(ctx, "round-trip")

		// Then: gating flags, turn and every grid survive the trip
		require.NoError(t, err)
		assert.Equal(t, game.Player1ID, loaded.Player1ID)
		assert.Equal(t, game.Player2ID, loaded.Player2ID)
		assert.Equal(t, game.Turn, loaded.Turn)
		assert.True(t, loaded.Player1Confirmed)
		assert.True(t, loaded.Player2Confirmed)
		assert.Equal(t, game.Board1.ShipGrid.String(), loaded.Board1.ShipGrid.String())
		assert.Equal(t, game.Board2.AttackGrid.String(), loaded.Board2.AttackGrid.String())
		assert.Equal(t, game.Board2.CombinedGrid.String(), loaded.Board2.CombinedGrid.String())
		assert.Equal(t, game.Board2.LastHit, loaded.Board2.LastHit)
		assert.Equal(t, 0, loaded.Board2.LastShotRow)
	})

	t.Run("Missing game returns not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "ghost")
		assert.ErrorIs(t, err, repository.ErrGameNotFound)
	})

	t.Run("Listing returns every game a player sits in", func(t *testing.T) {
		// Given: two games for alice and one she has no seat in
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("list-1", "alice", "bob", 5, 10, false)))
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("list-2", "carol", "alice", 5, 10, false)))
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("list-3", "carol", "bob", 5, 10, false)))

		// When: listing by player id
		games, err := repo.ListByPlayerID(ctx, "alice")

		// Then: both of alice's games come back regardless of seat
		require.NoError(t, err)
		ids := make([]string, 0, len(games))
		for _, game := range games {
			ids = append(ids, game.ID)
		}
		assert.ElementsMatch(t, []string{"list-1", "list-2"}, ids)
	})

	t.Run("Delete removes the game and its listings", func(t *testing.T) {
		// Given: a stored game
		require.NoError(t, repo.CreateOrUpdate(ctx, entity.NewGame("doomed", "dave", "erin", 5, 10, false)))

		// When: deleting it
		require.NoError(t, repo.DeleteByID(ctx, "doomed"))

		// Then: it is gone from both the key and the player indexes
		_, err := repo.GetByID(ctx, "doomed")
		assert.ErrorIs(t, err, repository.ErrGameNotFound)

		games, err := repo.ListByPlayerID(ctx, "dave")
		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("Deleting a missing game returns not found", func(t *testing.T) {
		err := repo.DeleteByID(ctx, "ghost")
		assert.ErrorIs(t, err, repository.ErrGameNotFound)
	})
}
