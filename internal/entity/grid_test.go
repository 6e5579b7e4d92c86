package entity

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_SetAndAt(t *testing.T) {
	t.Run("Round trip returns the written symbol", func(t *testing.T) {
		// Given: a blank 10x10 grid
		grid := NewGrid(10)

		// When: writing a hit mark and reading it back
		require.NoError(t, grid.Set(HitMark, 3, 7))
		symbol, err := grid.At(3, 7)

		// Then: the same symbol comes back and no other cell changed
		require.NoError(t, err)
		assert.Equal(t, HitMark, symbol)
		assert.Equal(t, 1, strings.Count(grid.String(), "X"))
		assert.Equal(t, 99, strings.Count(grid.String(), "-"))
	})

	t.Run("Cell maps to index col plus row times size", func(t *testing.T) {
		// Given: a blank 10x10 grid
		grid := NewGrid(10)

		// When: writing at (row 2, col 5)
		require.NoError(t, grid.Set(MissMark, 2, 5))

		// Then: the flat encoding holds the mark at index 25
		assert.Equal(t, byte('O'), grid.String()[25])
	})

	t.Run("Out of range coordinates are rejected", func(t *testing.T) {
		grid := NewGrid(10)

		_, err := grid.At(10, 0)
		assert.ErrorIs(t, err, apperror.ErrOutOfRange)

		_, err = grid.At(0, -1)
		assert.ErrorIs(t, err, apperror.ErrOutOfRange)

		err = grid.Set(HitMark, -1, 0)
		assert.ErrorIs(t, err, apperror.ErrOutOfRange)
	})
}

func TestParseGrid(t *testing.T) {
	t.Run("Accepts a valid flat encoding", func(t *testing.T) {
		// Given: a 100-symbol grid with one ship letter
		encoded := "a" + strings.Repeat("-", 99)

		// When: parsing it
		grid, err := ParseGrid(encoded, 10)

		// Then: the grid round-trips to the same string
		require.NoError(t, err)
		assert.Equal(t, encoded, grid.String())
	})

	t.Run("Rejects wrong length", func(t *testing.T) {
		_, err := ParseGrid(strings.Repeat("-", 99), 10)
		assert.ErrorIs(t, err, apperror.ErrInvalidGrid)
	})

	t.Run("Rejects symbols outside the alphabet", func(t *testing.T) {
		_, err := ParseGrid("z"+strings.Repeat("-", 99), 10)
		assert.ErrorIs(t, err, apperror.ErrInvalidGrid)

		_, err = ParseGrid("1"+strings.Repeat("-", 99), 10)
		assert.ErrorIs(t, err, apperror.ErrInvalidGrid)
	})
}

func TestGrid_Clone(t *testing.T) {
	// Given: a grid with a ship letter
	grid, err := ParseGrid("a"+strings.Repeat("-", 99), 10)
	require.NoError(t, err)

	// When: cloning and mutating the clone
	clone := grid.Clone()
	require.NoError(t, clone.Set(HitMark, 0, 0))

	// Then: the original is untouched
	original, err := grid.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), original)
}

func TestGrid_HasShips(t *testing.T) {
	t.Run("True while a ship letter remains", func(t *testing.T) {
		grid, err := ParseGrid("Xa"+strings.Repeat("-", 98), 10)
		require.NoError(t, err)

		assert.True(t, grid.HasShips())
	})

	t.Run("False when only marks and water remain", func(t *testing.T) {
		grid, err := ParseGrid("XO"+strings.Repeat("-", 98), 10)
		require.NoError(t, err)

		assert.False(t, grid.HasShips())
	})
}

func TestGrid_JSON(t *testing.T) {
	// Given: a grid with ships and marks
	encoded := "aXO" + strings.Repeat("-", 97)
	grid, err := ParseGrid(encoded, 10)
	require.NoError(t, err)

	// When: marshalling and unmarshalling
	data, err := json.Marshal(grid)
	require.NoError(t, err)

	var decoded Grid
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Then: the flat encoding and size survive
	assert.Equal(t, encoded, decoded.String())
	assert.Equal(t, 10, decoded.Size())
}
