package apperror

import "errors"

var (
	ErrGameFinished        = errors.New("game is already finished")
	ErrGameNotReady        = errors.New("both players must confirm their ships first")
	ErrNotYourTurn         = errors.New("it's not your turn")
	ErrUnknownPlayer       = errors.New("player does not belong to this game")
	ErrShipsConfirmed      = errors.New("ships are already confirmed")
	ErrDuplicateShot       = errors.New("cell was already fired at")
	ErrOutOfRange          = errors.New("coordinates are out of range")
	ErrInvalidGrid         = errors.New("invalid grid encoding")
	ErrInvalidPayload      = errors.New("malformed request payload")
	ErrInvalidShipCount    = errors.New("ship count must be 4, 5 or 6")
	ErrPlacementInfeasible = errors.New("could not place all ships on the board")
	ErrNotFound            = errors.New("not found")
)
