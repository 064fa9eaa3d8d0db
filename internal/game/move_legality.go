package game

// IsLegal reports whether moving the piece on from to to keeps its own king
// out of check. It does not check that to is reachable; PossibleMoves does.
func (l *Legality) IsLegal(from Square, to Square5D) bool {
	if from > 63 {
		return false
	}
	pc := l.board.squares[from]
	if pc.Empty() {
		return false
	}
	return l.isLegalFor(from, to, pc.Color)
}

// isLegalFor plays the move on a scratch copy of the board and asks whether
// color is in check there. The live board is never touched, so probes nested
// inside move generation cannot observe each other's intermediate state.
func (l *Legality) isLegalFor(from Square, to Square5D, color Color) bool {
	scratch := *l.board
	pc := scratch.squares[from]
	scratch.set(from, Piece{})
	if to.Coord() == scratch.coord {
		if sq, ok := to.Square(); ok {
			if pc.Type == Pawn && sq.File() != from.File() && scratch.squares[sq].Empty() {
				if passed, ok := SquareFromCoords(from.Rank(), sq.File()); ok {
					scratch.set(passed, Piece{})
				}
			}
			scratch.set(sq, pc)
		}
	}
	_, check := attackOn(&scratch, color)
	return !check
}

// isReachable reports whether to is among the check-filtered destinations of
// the piece on from.
func (l *Legality) isReachable(from Square, to Square5D) bool {
	for _, dest := range l.PossibleMoves(from, true) {
		if dest == to {
			return true
		}
	}
	return false
}
