package game

import "chess5d/internal/shared"

// Legality enumerates and certifies moves for a single board. Destinations on
// other boards are resolved through boards; a nil lookup confines every piece
// to its own board.
type Legality struct {
	board  *Board
	boards BoardLookup
}

func NewLegality(b *Board, boards BoardLookup) *Legality {
	return &Legality{board: b, boards: boards}
}

func (l *Legality) Board() *Board { return l.board }

// PossibleMoves lists the destinations of the piece on sq. With checkCheck
// unset the list is pseudo-legal: it may leave the mover's king attacked and
// never contains castling. With checkCheck set every destination has been
// probed and castling is included.
func (l *Legality) PossibleMoves(sq Square, checkCheck bool) []Square5D {
	if sq > 63 {
		return nil
	}
	g := l.newGenerator(sq, checkCheck)
	if g == nil {
		return nil
	}
	g.run()
	return g.moves
}

// resolve returns the piece at dest, or false when dest does not exist.
func (l *Legality) resolve(dest Square5D) (Piece, bool) {
	sq, ok := dest.Square()
	if !ok {
		return Piece{}, false
	}
	if dest.Coord() == l.board.coord {
		return l.board.squares[sq], true
	}
	if l.boards == nil {
		return Piece{}, false
	}
	b, ok := l.boards.Get(dest.T, dest.U)
	if !ok {
		return Piece{}, false
	}
	return b.squares[sq], true
}

type generator struct {
	l          *Legality
	from       Square
	origin     Square5D
	piece      Piece
	checkCheck bool
	// localOnly skips every step that leaves the board. Rays are monotonic
	// along each axis, so such steps can never come back to this board.
	localOnly bool
	moves     []Square5D
}

func (l *Legality) newGenerator(sq Square, checkCheck bool) *generator {
	pc := l.board.squares[sq]
	if pc.Empty() {
		return nil
	}
	return &generator{
		l:          l,
		from:       sq,
		origin:     l.board.Square5D(sq),
		piece:      pc,
		checkCheck: checkCheck,
		localOnly:  l.boards == nil,
	}
}

func (g *generator) run() {
	switch g.piece.Type {
	case Pawn:
		g.pawn()
	case Knight:
		for _, pair := range shared.AxisPairs {
			for _, off := range shared.Leaps(pair) {
				g.step(off)
			}
		}
	case Bishop:
		g.diagonals(g.slide)
	case Rook:
		g.straights(g.slide)
	case Queen:
		g.straights(g.slide)
		g.diagonals(g.slide)
	case King:
		g.straights(g.step)
		g.diagonals(g.step)
		if g.checkCheck {
			g.castling()
		}
	}
}

func (g *generator) straights(fn func(shared.Offset)) {
	for _, axis := range shared.Axes {
		for _, off := range shared.Straights(axis) {
			fn(off)
		}
	}
}

func (g *generator) diagonals(fn func(shared.Offset)) {
	for _, pair := range shared.AxisPairs {
		for _, off := range shared.Diagonals(pair) {
			fn(off)
		}
	}
}

// reach returns the square off away from the origin and its occupant, false
// when it does not exist or lies off-board in local mode.
func (g *generator) reach(from Square5D, off shared.Offset) (Square5D, Piece, bool) {
	if g.localOnly && !off.Spatial() {
		return Square5D{}, Piece{}, false
	}
	dest := from.Shift(off)
	pc, ok := g.l.resolve(dest)
	return dest, pc, ok
}

func (g *generator) add(dest Square5D) {
	if g.checkCheck && !g.l.isLegalFor(g.from, dest, g.piece.Color) {
		return
	}
	g.moves = append(g.moves, dest)
}

// slide walks off repeatedly until it leaves the multiverse or meets a piece.
// An enemy piece is a capture; a friendly piece blocks.
func (g *generator) slide(off shared.Offset) {
	at := g.origin
	for {
		dest, pc, ok := g.reach(at, off)
		if !ok {
			return
		}
		if !pc.Empty() && pc.Color == g.piece.Color {
			return
		}
		g.add(dest)
		if !pc.Empty() {
			return
		}
		at = dest
	}
}

func (g *generator) step(off shared.Offset) {
	dest, pc, ok := g.reach(g.origin, off)
	if !ok {
		return
	}
	if !pc.Empty() && pc.Color == g.piece.Color {
		return
	}
	g.add(dest)
}

func (g *generator) pawn() {
	color := g.piece.Color
	dir := color.Forward()

	for _, axis := range shared.ForwardAxes {
		off := shared.Forward(axis, dir)
		one, pc, ok := g.reach(g.origin, off)
		if !ok || !pc.Empty() {
			continue
		}
		g.add(one)
		if g.from.Rank() != color.PawnRank() {
			continue
		}
		two, pc, ok := g.reach(one, off)
		if ok && pc.Empty() {
			g.add(two)
		}
	}

	// Captures pair each sideways axis with its forward axis: (X, Y) and (T, U).
	for i, across := range shared.SidewaysAxes {
		for _, side := range [2]int{-1, 1} {
			off := shared.Combine(
				shared.Movement{Axis: across, Magnitude: side},
				shared.Movement{Axis: shared.ForwardAxes[i], Magnitude: dir},
			)
			dest, pc, ok := g.reach(g.origin, off)
			if ok && !pc.Empty() && pc.Color != color {
				g.add(dest)
			}
		}
	}

	for _, side := range [2]int{-1, 1} {
		if dest, ok := g.enPassantTarget(side); ok {
			g.add(dest)
		}
	}
}

// enPassantTarget returns the en-passant destination on the side file, if the
// enemy pawn beside this one has just advanced two squares.
func (g *generator) enPassantTarget(side int) (Square5D, bool) {
	b := g.l.board
	color := g.piece.Color
	enemy := color.Opposite()
	file := g.from.File() + side
	rank := g.from.Rank()
	if rank != enemy.PawnRank()+2*enemy.Forward() {
		return Square5D{}, false
	}
	adj, ok := b.pieceAtXY(file, rank)
	if !ok || !adj.Is(enemy, Pawn) || !b.EnPassant(enemy).Has(file) {
		return Square5D{}, false
	}
	dest := Square5D{X: file, Y: rank + color.Forward(), T: g.origin.T, U: g.origin.U}
	pc, ok := g.l.resolve(dest)
	if !ok || !pc.Empty() {
		return Square5D{}, false
	}
	return dest, true
}

// castling adds the two-square king moves along X. It only runs for
// check-filtered generation, so attack scans never recurse into it.
func (g *generator) castling() {
	b := g.l.board
	color := g.piece.Color
	home := color.HomeRank()
	if g.from.Rank() != home || g.from.File() != 4 {
		return
	}
	if g.l.InCheck(color) {
		return
	}
	for _, side := range []CastlingSide{CastleKingside, CastleQueenside} {
		if !b.castling.CanCastle(color, side) {
			continue
		}
		rookFile := side.rookFile()
		if rook, _ := b.pieceAtXY(rookFile, home); !rook.Is(color, Rook) {
			continue
		}
		dir := 1
		if side == CastleQueenside {
			dir = -1
		}
		empty := true
		for f := 4 + dir; f != rookFile; f += dir {
			if pc, _ := b.pieceAtXY(f, home); !pc.Empty() {
				empty = false
				break
			}
		}
		if !empty {
			continue
		}
		safe := true
		for i := 1; i <= 2; i++ {
			through := g.origin
			through.X = 4 + i*dir
			if !g.l.isLegalFor(g.from, through, color) {
				safe = false
				break
			}
		}
		if safe {
			dest := g.origin
			dest.X = 4 + 2*dir
			g.moves = append(g.moves, dest)
		}
	}
}
