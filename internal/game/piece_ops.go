package game

// successor builds the board that follows b after moving the piece on from to
// to. b is left untouched; the result is unplaced.
func (b *Board) successor(from, to Square) (*Board, moveEffects) {
	next := b.clone()
	pc := next.squares[from]
	fx := moveEffects{piece: pc}

	captureSq, victim, enPassant := captureTarget(next, pc, from, to)
	if !victim.Empty() {
		fx.capture = victim
		fx.captureSquare = captureSq
		fx.enPassant = enPassant
		next.updateCastlingFlagsForCapture(victim, captureSq)
		next.set(captureSq, Piece{})
	}

	next.set(from, Piece{})
	next.set(to, pc)
	next.updateCastlingFlagsForMove(pc, from)

	if pc.Type == King && abs(to.File()-from.File()) == 2 {
		fx.castled = true
		fx.castleSide = next.performCastleRookMove(pc.Color, from, to)
	}

	next.enPassant[pc.Color.Index()] = 0
	if pc.Type == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		next.enPassant[pc.Color.Index()] = FileSet(0).With(from.File())
	}

	if pc.Type == Pawn && to.Rank() == pc.Color.LastRank() {
		next.set(to, NewPiece(pc.Color, Queen))
		fx.promoted = true
	}

	next.turn = b.turn.Opposite()
	return next, fx
}

// castlingFlagForSquare returns the rook-moved flag guarded by a corner
// square, or zero for any other square.
func castlingFlagForSquare(sq Square) CastlingFlags {
	var color Color
	switch sq.Rank() {
	case White.HomeRank():
		color = White
	case Black.HomeRank():
		color = Black
	default:
		return 0
	}
	switch sq.File() {
	case CastleQueenside.rookFile():
		return RookMovedFlag(color, CastleQueenside)
	case CastleKingside.rookFile():
		return RookMovedFlag(color, CastleKingside)
	}
	return 0
}

func (b *Board) updateCastlingFlagsForMove(pc Piece, from Square) {
	if pc.Type == King {
		b.castling = b.castling.With(KingMovedFlag(pc.Color))
	}
	b.castling = b.castling.With(castlingFlagForSquare(from))
}

func (b *Board) updateCastlingFlagsForCapture(victim Piece, sq Square) {
	if victim.Type == King {
		b.castling = b.castling.With(KingMovedFlag(victim.Color))
	}
	b.castling = b.castling.With(castlingFlagForSquare(sq))
}

// performCastleRookMove brings the rook across the king: h-file to f-file on
// the king side, a-file to d-file on the queen side.
func (b *Board) performCastleRookMove(color Color, from, to Square) CastlingSide {
	rank := from.Rank()
	side := CastleKingside
	rookToFile := to.File() - 1
	if to.File() < from.File() {
		side = CastleQueenside
		rookToFile = to.File() + 1
	}
	rookFrom, okFrom := SquareFromCoords(rank, side.rookFile())
	rookTo, okTo := SquareFromCoords(rank, rookToFile)
	if !okFrom || !okTo {
		return side
	}
	rook := b.squares[rookFrom]
	if !rook.Is(color, Rook) {
		return side
	}
	b.set(rookFrom, Piece{})
	b.set(rookTo, rook)
	b.castling = b.castling.With(RookMovedFlag(color, side))
	return side
}
