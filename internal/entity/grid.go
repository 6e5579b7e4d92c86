package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

const (
	// DefaultBoardSize is the canonical battleship board edge.
	DefaultBoardSize = 10

	EmptyCell = byte('-')
	HitMark   = byte('X')
	MissMark  = byte('O')

	firstShipLetter = byte('a')
	lastShipLetter  = byte('f')
)

// Grid is a bounds-checked square board of single-byte symbols.
// Cells hold EmptyCell, HitMark, MissMark or a ship letter ('a'..'f').
// On the wire a grid is a flat row-major string of length size*size,
// cell (row, col) living at index col + row*size.
type Grid struct {
	size  int
	cells []byte
}

// NewGrid returns a blank size x size grid.
func NewGrid(size int) *Grid {
	cells := make([]byte, size*size)
	for i := range cells {
		cells[i] = EmptyCell
	}

	return &Grid{size: size, cells: cells}
}

// ParseGrid decodes a flat grid string, rejecting wrong lengths and
// symbols outside the declared alphabet.
func ParseGrid(encoded string, size int) (*Grid, error) {
	if len(encoded) != size*size {
		return nil, fmt.Errorf("%w: want %d symbols, got %d", apperror.ErrInvalidGrid, size*size, len(encoded))
	}

	for i := 0; i < len(encoded); i++ {
		if !isGridSymbol(encoded[i]) {
			return nil, fmt.Errorf("%w: symbol %q at index %d", apperror.ErrInvalidGrid, encoded[i], i)
		}
	}

	return &Grid{size: size, cells: []byte(encoded)}, nil
}

func isGridSymbol(symbol byte) bool {
	return symbol == EmptyCell || symbol == HitMark || symbol == MissMark || IsShipSymbol(symbol)
}

// IsShipSymbol reports whether symbol identifies a placed ship.
func IsShipSymbol(symbol byte) bool {
	return symbol >= firstShipLetter && symbol <= lastShipLetter
}

func (that *Grid) Size() int {
	return that.size
}

func (that *Grid) index(row, col int) (int, error) {
	if row < 0 || row >= that.size || col < 0 || col >= that.size {
		return 0, fmt.Errorf("%w: row %d, col %d on a %dx%d board", apperror.ErrOutOfRange, row, col, that.size, that.size)
	}

	return col + row*that.size, nil
}

// At returns the symbol at (row, col).
func (that *Grid) At(row, col int) (byte, error) {
	idx, err := that.index(row, col)
	if err != nil {
		return 0, err
	}

	return that.cells[idx], nil
}

// Set replaces exactly one cell. All other cells are untouched.
func (that *Grid) Set(symbol byte, row, col int) error {
	idx, err := that.index(row, col)
	if err != nil {
		return err
	}

	that.cells[idx] = symbol

	return nil
}

// Clone returns an independent copy of the grid.
func (that *Grid) Clone() *Grid {
	cells := make([]byte, len(that.cells))
	copy(cells, that.cells)

	return &Grid{size: that.size, cells: cells}
}

// Contains reports whether symbol appears anywhere on the grid.
func (that *Grid) Contains(symbol byte) bool {
	for _, cell := range that.cells {
		if cell == symbol {
			return true
		}
	}

	return false
}

// HasShips reports whether any ship letter is still standing.
// On a combined grid this is the win check: a player has lost
// once their grid holds nothing but hits, misses and water.
func (that *Grid) HasShips() bool {
	for _, cell := range that.cells {
		if IsShipSymbol(cell) {
			return true
		}
	}

	return false
}

// String encodes the grid as its flat row-major form.
func (that *Grid) String() string {
	return string(that.cells)
}

// MarshalJSON encodes the grid as its flat string form.
func (that *Grid) MarshalJSON() ([]byte, error) {
	return []byte(`"` + that.String() + `"`), nil
}

// UnmarshalJSON decodes a flat grid string, inferring the edge from the
// payload length.
func (that *Grid) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: grid must be a JSON string", apperror.ErrInvalidGrid)
	}

	encoded := string(data[1 : len(data)-1])

	size := 0
	for size*size < len(encoded) {
		size++
	}
	if size*size != len(encoded) {
		return fmt.Errorf("%w: length %d is not a square", apperror.ErrInvalidGrid, len(encoded))
	}

	parsed, err := ParseGrid(encoded, size)
	if err != nil {
		return err
	}

	*that = *parsed

	return nil
}
