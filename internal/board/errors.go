package board

import "errors"

var (
	ErrInvalidDirection = errors.New("board: invalid direction")
	ErrOutOfBounds      = errors.New("board: cell out of bounds")
	ErrInvalidConfig    = errors.New("board: invalid configuration")
	ErrInvalidTile      = errors.New("board: invalid tile value")
)
