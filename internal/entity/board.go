package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

// Unset is the sentinel for last-shot metadata before any shot has landed.
const Unset = -1

// Board is one player's side of a game. ShipGrid holds the fleet and never
// changes after confirmation. CombinedGrid overlays the fleet with the
// opponent's hit/miss marks and is the sole source of truth for sink and
// win checks. AttackGrid holds the marks alone, the targeting view shown
// to the opponent. All three mutate only through ResolveShot.
type Board struct {
	ShipGrid     *Grid `json:"ship_grid"`
	AttackGrid   *Grid `json:"attack_grid"`
	CombinedGrid *Grid `json:"combined_grid"`

	LastHit     int `json:"last_hit"`
	LastSunk    int `json:"last_sunk"`
	LastShotRow int `json:"last_shot_row"`
	LastShotCol int `json:"last_shot_col"`
}

// NewBoard returns a blank board for a size x size game.
func NewBoard(size int) *Board {
	return &Board{
		ShipGrid:     NewGrid(size),
		AttackGrid:   NewGrid(size),
		CombinedGrid: NewGrid(size),
		LastHit:      Unset,
		LastSunk:     Unset,
		LastShotRow:  Unset,
		LastShotCol:  Unset,
	}
}

// PlaceFleet installs the owner's confirmed ship layout. The combined grid
// starts as a copy of the ship grid and accumulates marks from there.
func (that *Board) PlaceFleet(shipGrid *Grid) {
	that.ShipGrid = shipGrid
	that.CombinedGrid = shipGrid.Clone()
}

// ShotResult classifies one resolved shot.
type ShotResult struct {
	Hit    bool
	Sunk   bool
	Winner bool
	Ship   byte // letter of the ship that was struck, 0 on a miss
}

// ResolveShot applies an opponent shot at (row, col) to this board.
// A cell that was already fired at is rejected with ErrDuplicateShot.
// Sink and win are recomputed from the combined grid on every shot; no
// hidden counters are kept, so classification stays deterministic.
func (that *Board) ResolveShot(row, col int) (*ShotResult, error) {
	previous, err := that.AttackGrid.At(row, col)
	if err != nil {
		return nil, err
	}

	if previous != EmptyCell {
		return nil, fmt.Errorf("%w: row %d, col %d", apperror.ErrDuplicateShot, row, col)
	}

	symbol, err := that.ShipGrid.At(row, col)
	if err != nil {
		return nil, err
	}

	result := &ShotResult{Hit: symbol != EmptyCell}

	mark := MissMark
	if result.Hit {
		mark = HitMark
		result.Ship = symbol
	}

	if err = that.CombinedGrid.Set(mark, row, col); err != nil {
		return nil, err
	}
	if err = that.AttackGrid.Set(mark, row, col); err != nil {
		return nil, err
	}

	if result.Hit {
		// A ship is sunk once no cell still bears its letter; the board
		// retains no ship-length metadata, only this scan decides.
		result.Sunk = !that.CombinedGrid.Contains(result.Ship)
		if result.Sunk {
			result.Winner = !that.CombinedGrid.HasShips()
		}
	}

	that.LastHit = flag(result.Hit)
	that.LastSunk = flag(result.Sunk)
	that.LastShotRow = row
	that.LastShotCol = col

	return result, nil
}

func flag(value bool) int {
	if value {
		return 1
	}

	return 0
}
