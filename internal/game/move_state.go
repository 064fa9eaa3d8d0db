package game

// moveEffects describes what a single move did to its board, beyond the
// relocation of the moving piece.
type moveEffects struct {
	piece         Piece
	capture       Piece
	captureSquare Square
	enPassant     bool
	castled       bool
	castleSide    CastlingSide
	promoted      bool
}

func (fx moveEffects) captured() bool { return !fx.capture.Empty() }
