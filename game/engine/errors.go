package engine

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration      = errors.New("wrong game configuration")
	ErrCoordinate         = errors.New("wrong coordinates")
	ErrGameOver           = errors.New("game is over")
	ErrInvalidCoordinates = errors.New("start and end positions are the same")
	ErrEmptySource        = errors.New("start position is empty")
	ErrOccupiedTarget     = errors.New("end position is not empty")
)

// CoordinateError reports a board access outside 0..Size-1.
// It matches ErrCoordinate with errors.Is.
type CoordinateError struct {
	X, Y int
	Size int
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%v: (%d, %d) is outside a %dx%d board", ErrCoordinate, e.X, e.Y, e.Size, e.Size)
}

func (e *CoordinateError) Unwrap() error {
	return ErrCoordinate
}

// IsMoveError reports whether err is one of the MakeMove precondition failures
func IsMoveError(err error) bool {
	return errors.Is(err, ErrCoordinate) ||
		errors.Is(err, ErrInvalidCoordinates) ||
		errors.Is(err, ErrEmptySource) ||
		errors.Is(err, ErrOccupiedTarget)
}
