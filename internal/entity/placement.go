package entity

import (
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

// fleetLengths maps a ship-count selector to its fixed multiset of ship
// lengths. Ships are lettered 'a' onwards in this order.
var fleetLengths = map[int][]int{
	4: {2, 3, 4, 5},
	5: {2, 3, 3, 4, 5},
	6: {2, 3, 3, 4, 4, 5},
}

// maxPlacementAttempts bounds the per-ship retry loop. Placement does not
// backtrack across ships, so a dense board can run out of room; failing
// loudly beats spinning forever.
const maxPlacementAttempts = 1000

// FleetLengths returns the ship lengths for a ship-count selector.
func FleetLengths(shipCount int) ([]int, error) {
	lengths, ok := fleetLengths[shipCount]
	if !ok {
		return nil, fmt.Errorf("%w: got %d", apperror.ErrInvalidShipCount, shipCount)
	}

	return lengths, nil
}

// RandomShipGrid produces a random non-overlapping fleet layout for the
// given ship count and board size.
func RandomShipGrid(shipCount, boardSize int) (*Grid, error) {
	lengths, err := FleetLengths(shipCount)
	if err != nil {
		return nil, err
	}

	grid := NewGrid(boardSize)

	for i, length := range lengths {
		letter := firstShipLetter + byte(i)

		placed := false
		for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
			if tryPlaceShip(grid, length, letter) {
				placed = true
				break
			}
		}

		if !placed {
			return nil, fmt.Errorf("%w: ship %q of length %d on a %dx%d board",
				apperror.ErrPlacementInfeasible, letter, length, boardSize, boardSize)
		}
	}

	return grid, nil
}

// tryPlaceShip samples one orientation and anchor that keep the ship in
// bounds, and commits only when every target cell is empty.
func tryPlaceShip(grid *Grid, length int, letter byte) bool {
	size := grid.Size()
	if length > size {
		return false
	}

	var row, col, dRow, dCol int
	if rand.Intn(2) == 0 { //nolint: gosec // board shuffling, not crypto
		row = rand.Intn(size)              //nolint: gosec // same
		col = rand.Intn(size - length + 1) //nolint: gosec // same
		dCol = 1
	} else {
		row = rand.Intn(size - length + 1) //nolint: gosec // same
		col = rand.Intn(size)              //nolint: gosec // same
		dRow = 1
	}

	for i := 0; i < length; i++ {
		symbol, err := grid.At(row+i*dRow, col+i*dCol)
		if err != nil || symbol != EmptyCell {
			return false
		}
	}

	for i := 0; i < length; i++ {
		_ = grid.Set(letter, row+i*dRow, col+i*dCol)
	}

	return true
}
