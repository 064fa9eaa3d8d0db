package game

// captureTarget finds the piece removed by moving pc from from to to on b.
// A pawn stepping diagonally onto an empty square captures the pawn it passed,
// which stands beside from on the destination file.
func captureTarget(b *Board, pc Piece, from, to Square) (Square, Piece, bool) {
	if victim := b.squares[to]; !victim.Empty() {
		return to, victim, false
	}
	if pc.Type != Pawn || from.File() == to.File() {
		return to, Piece{}, false
	}
	passed, ok := SquareFromCoords(from.Rank(), to.File())
	if !ok {
		return to, Piece{}, false
	}
	victim := b.squares[passed]
	if !victim.Is(pc.Color.Opposite(), Pawn) {
		return to, Piece{}, false
	}
	return passed, victim, true
}
