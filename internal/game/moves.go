package game

import "fmt"

// Execute plays a same-board move and places the resulting board in the
// multiverse. The board the move starts from is never modified.
func (m *TimelineMap) Execute(from, to Square5D) (*Board, MoveRecord, error) {
	b, ok := m.Get(from.T, from.U)
	if !ok {
		return nil, MoveRecord{}, fmt.Errorf("%w: %s", ErrNoBoard, from.Coord())
	}
	if !from.SameBoard(to) {
		return nil, MoveRecord{}, fmt.Errorf("%w: %s to %s", ErrCrossBoardMove, from, to)
	}
	fromSq, ok := from.Square()
	if !ok {
		return nil, MoveRecord{}, fmt.Errorf("%w: square %s", ErrNoBoard, from)
	}
	toSq, ok := to.Square()
	if !ok {
		return nil, MoveRecord{}, fmt.Errorf("%w: square %s", ErrNoBoard, to)
	}

	pc := b.squares[fromSq]
	if pc.Empty() {
		return nil, MoveRecord{}, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}
	if pc.Color != b.turn {
		return nil, MoveRecord{}, fmt.Errorf("%w: %s to move", ErrNotYourTurn, b.turn)
	}
	if !NewLegality(b, m).isReachable(fromSq, to) {
		return nil, MoveRecord{}, fmt.Errorf("%w: %s %s-%s", ErrIllegalMove, pc, from, to)
	}

	next, fx := b.successor(fromSq, toSq)
	forked := m.place(b.coord, b.turn, next)
	return next, newMoveRecord(from, to, next, fx, forked), nil
}
