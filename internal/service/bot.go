package service

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/battleship-backend/internal/entity"
)

const (
	StrategyInOrder  = "inorder"
	StrategyRandom   = "random"
	StrategyTargeted = "targeted"
)

var (
	ErrNoAvailableShots = errors.New("no available shots")
	ErrUnknownStrategy  = errors.New("unknown bot strategy")
)

// BotStrategy picks the next shot from a pull-state view. Strategies are
// stateless on purpose: everything they need is recomputed from the
// snapshot, so a bot that missed pushes or restarted stays consistent.
type BotStrategy interface {
	NextShot(state *entity.PlayerState) (row, col int, err error)
}

// NewBotStrategy maps a strategy name to its implementation.
func NewBotStrategy(name string) (BotStrategy, error) {
	switch name {
	case StrategyInOrder:
		return &inOrderStrategy{}, nil
	case StrategyRandom, "":
		return &randomStrategy{}, nil
	case StrategyTargeted:
		return &targetedStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// untriedCells lists the flat indexes of cells the player has not fired at.
func untriedCells(attackGrid string) []int {
	cells := make([]int, 0, len(attackGrid))
	for i := 0; i < len(attackGrid); i++ {
		if attackGrid[i] == entity.EmptyCell {
			cells = append(cells, i)
		}
	}

	return cells
}

func gridEdge(attackGrid string) int {
	size := 0
	for size*size < len(attackGrid) {
		size++
	}

	return size
}

type inOrderStrategy struct{}

func (that *inOrderStrategy) NextShot(state *entity.PlayerState) (int, int, error) {
	cells := untriedCells(state.AttackGrid)
	if len(cells) == 0 {
		return 0, 0, ErrNoAvailableShots
	}

	size := gridEdge(state.AttackGrid)

	return cells[0] / size, cells[0] % size, nil
}

type randomStrategy struct{}

func (that *randomStrategy) NextShot(state *entity.PlayerState) (int, int, error) {
	cells := untriedCells(state.AttackGrid)
	if len(cells) == 0 {
		return 0, 0, ErrNoAvailableShots
	}

	size := gridEdge(state.AttackGrid)
	chosen := cells[rand.Intn(len(cells))] //nolint: gosec // it's ok

	return chosen / size, chosen % size, nil
}

// targetedStrategy hunts randomly until it hits, then works through the
// untried neighbours of the last hit.
type targetedStrategy struct{}

func (that *targetedStrategy) NextShot(state *entity.PlayerState) (int, int, error) {
	size := gridEdge(state.AttackGrid)

	if state.LastHit == 1 && state.LastSunk != 1 && state.LastShotRow >= 0 {
		neighbours := [4][2]int{
			{state.LastShotRow - 1, state.LastShotCol},
			{state.LastShotRow + 1, state.LastShotCol},
			{state.LastShotRow, state.LastShotCol - 1},
			{state.LastShotRow, state.LastShotCol + 1},
		}

		for _, cell := range neighbours {
			row, col := cell[0], cell[1]
			if row < 0 || row >= size || col < 0 || col >= size {
				continue
			}

			if state.AttackGrid[col+row*size] == entity.EmptyCell {
				return row, col, nil
			}
		}
	}

	fallback := randomStrategy{}

	return fallback.NextShot(state)
}
