package game

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove  = errors.New("invalid move")
	ErrInvalidSetup = errors.New("invalid setup")

	ErrCrossBoardMove = fmt.Errorf("%w: source and destination are on different boards", ErrInvalidMove)
	ErrNoBoard        = fmt.Errorf("%w: no board at that coordinate", ErrInvalidMove)
	ErrNoPiece        = fmt.Errorf("%w: no piece at source square", ErrInvalidMove)
	ErrNotYourTurn    = fmt.Errorf("%w: not your turn", ErrInvalidMove)
	ErrIllegalMove    = fmt.Errorf("%w: illegal destination", ErrInvalidMove)
)
