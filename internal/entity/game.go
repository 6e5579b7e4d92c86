package entity

import (
	"fmt"

	"github.com/rocketscienceinc/battleship-backend/internal/apperror"
)

const (
	// StatusInProgress covers both setup (ships unconfirmed) and active play;
	// a terminal status equals the winning seat number.
	StatusInProgress = 0
	StatusPlayer1Won = 1
	StatusPlayer2Won = 2

	SeatPlayer1 = 1
	SeatPlayer2 = 2
)

// PlaceholderPlayerID marks an open seat 2: the game was created without an
// opponent and a second human may claim the seat before play starts.
const PlaceholderPlayerID = "open"

// Game is the authoritative record of one match: seats, turn order,
// ship-confirmation gating and the two boards. Shots flow through FireShot,
// which delegates grid work to the defender's board.
type Game struct {
	ID        string `json:"id"`
	Player1ID string `json:"player1_id"`
	Player2ID string `json:"player2_id"`

	Turn      int `json:"turn"`
	Status    int `json:"status"`
	ShipCount int `json:"ship_count"`
	BoardSize int `json:"board_size"`

	WinnerID string `json:"winner_id,omitempty"`
	LoserID  string `json:"loser_id,omitempty"`

	Player1Confirmed bool `json:"player1_ships_confirmed"`
	Player2Confirmed bool `json:"player2_ships_confirmed"`

	Board1 *Board `json:"board1"`
	Board2 *Board `json:"board2"`

	WithAI bool `json:"with_ai,omitempty"`
}

// NewGame creates a fresh game with blank boards, player 1 to move and both
// confirmation flags down.
func NewGame(id, player1ID, player2ID string, shipCount, boardSize int, withAI bool) *Game {
	return &Game{
		ID:        id,
		Player1ID: player1ID,
		Player2ID: player2ID,
		Turn:      SeatPlayer1,
		Status:    StatusInProgress,
		ShipCount: shipCount,
		BoardSize: boardSize,
		Board1:    NewBoard(boardSize),
		Board2:    NewBoard(boardSize),
		WithAI:    withAI,
	}
}

// Seat maps a player id to seat 1 or 2.
func (that *Game) Seat(playerID string) (int, error) {
	switch playerID {
	case that.Player1ID:
		return SeatPlayer1, nil
	case that.Player2ID:
		return SeatPlayer2, nil
	default:
		return 0, fmt.Errorf("%w: player %s in game %s", apperror.ErrUnknownPlayer, playerID, that.ID)
	}
}

// OpponentID returns the other seat's player id.
func (that *Game) OpponentID(playerID string) (string, error) {
	seat, err := that.Seat(playerID)
	if err != nil {
		return "", err
	}

	if seat == SeatPlayer1 {
		return that.Player2ID, nil
	}

	return that.Player1ID, nil
}

// BoardFor returns the board owned by the given seat.
func (that *Game) BoardFor(seat int) *Board {
	if seat == SeatPlayer1 {
		return that.Board1
	}

	return that.Board2
}

// ConfirmedFor reports whether the given seat has confirmed its ships.
func (that *Game) ConfirmedFor(seat int) bool {
	if seat == SeatPlayer1 {
		return that.Player1Confirmed
	}

	return that.Player2Confirmed
}

// IsReady reports whether both fleets are confirmed and shots may fly.
func (that *Game) IsReady() bool {
	return that.Player1Confirmed && that.Player2Confirmed
}

func (that *Game) IsFinished() bool {
	return that.Status != StatusInProgress
}

func otherSeat(seat int) int {
	if seat == SeatPlayer1 {
		return SeatPlayer2
	}

	return SeatPlayer1
}

// AssignOpponent lets a player claim seat 2 while it still holds the
// placeholder. It reports whether the claim was made; once a real player
// sits there, later claims are refused and the seat is unchanged.
func (that *Game) AssignOpponent(playerID string) bool {
	if that.Player2ID != PlaceholderPlayerID {
		return false
	}

	that.Player2ID = playerID

	return true
}

// ConfirmShips installs a player's fleet and raises their confirmation
// flag. Legal only while the game is still in setup.
func (that *Game) ConfirmShips(playerID string, shipGrid *Grid) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	seat, err := that.Seat(playerID)
	if err != nil {
		return err
	}

	if that.ConfirmedFor(seat) {
		return fmt.Errorf("%w: seat %d", apperror.ErrShipsConfirmed, seat)
	}

	that.BoardFor(seat).PlaceFleet(shipGrid)

	if seat == SeatPlayer1 {
		that.Player1Confirmed = true
	} else {
		that.Player2Confirmed = true
	}

	return nil
}

// FireShot validates turn order and readiness, resolves the shot against
// the opponent's board and updates game-level bookkeeping. A miss passes
// the turn; a hit keeps it; a winning hit makes the game terminal with the
// shooter's seat as status.
func (that *Game) FireShot(playerID string, row, col int) (*ShotResult, error) {
	if that.IsFinished() {
		return nil, apperror.ErrGameFinished
	}

	if !that.IsReady() {
		return nil, apperror.ErrGameNotReady
	}

	seat, err := that.Seat(playerID)
	if err != nil {
		return nil, err
	}

	if that.Turn != seat {
		return nil, fmt.Errorf("%w: seat %d, turn %d", apperror.ErrNotYourTurn, seat, that.Turn)
	}

	defender := otherSeat(seat)

	result, err := that.BoardFor(defender).ResolveShot(row, col)
	if err != nil {
		return nil, err
	}

	switch {
	case result.Winner:
		that.Status = seat
		that.WinnerID = playerID
		if defender == SeatPlayer1 {
			that.LoserID = that.Player1ID
		} else {
			that.LoserID = that.Player2ID
		}
	case !result.Hit:
		that.Turn = defender
	}

	return result, nil
}
