package apperror

import "errors"

var (
	ErrIndexOutOfRange = errors.New("cell index is out of range")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameFinished    = errors.New("game is already finished")
	ErrWrongPiece      = errors.New("piece does not belong to this player")

	ErrSessionNotFound = errors.New("session not found")
	ErrNothingStaged   = errors.New("no move is staged")
	ErrMoveInFlight    = errors.New("move submission is already in flight")
	ErrResetDeclined   = errors.New("reset was declined")
)

// IsIllegalMove reports whether err belongs to the move-rejection family:
// wrong turn, occupied cell, wrong piece, or a finished game.
func IsIllegalMove(err error) bool {
	return errors.Is(err, ErrNotYourTurn) ||
		errors.Is(err, ErrCellOccupied) ||
		errors.Is(err, ErrWrongPiece) ||
		errors.Is(err, ErrGameFinished)
}
