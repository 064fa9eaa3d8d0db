package game

import (
	"fmt"
	"strings"
)

// Board is one 8x8 position in the multiverse. A Board is never modified once
// it has been placed in a TimelineMap; moves produce successors instead.
type Board struct {
	squares   [64]Piece
	occupancy [2]Bitboard
	turn      Color
	castling  CastlingFlags
	enPassant [2]FileSet
	coord     Coord
}

// Setup describes a single position used to root a multiverse.
type Setup struct {
	Pieces    map[Square]Piece
	Turn      Color
	Castling  CastlingFlags
	EnPassant [2]FileSet
}

// StandardSetup returns the normal chess starting position.
func StandardSetup() Setup {
	s := Setup{Pieces: make(map[Square]Piece, 32), Turn: White}
	order := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for _, color := range []Color{White, Black} {
		for file, pt := range order {
			sq, _ := SquareFromCoords(color.HomeRank(), file)
			s.Pieces[sq] = NewPiece(color, pt)
		}
		for file := 0; file < 8; file++ {
			sq, _ := SquareFromCoords(color.PawnRank(), file)
			s.Pieces[sq] = NewPiece(color, Pawn)
		}
	}
	return s
}

// NewBoard builds a root board at (t=0, u=0) from a setup.
func NewBoard(s Setup) (*Board, error) {
	b := &Board{
		turn:      s.Turn,
		castling:  s.Castling,
		enPassant: s.EnPassant,
	}
	if s.Turn != White && s.Turn != Black {
		return nil, fmt.Errorf("%w: turn %d", ErrInvalidSetup, s.Turn)
	}
	for sq, pc := range s.Pieces {
		if sq > 63 {
			return nil, fmt.Errorf("%w: square %d off the board", ErrInvalidSetup, sq)
		}
		if pc.Empty() {
			continue
		}
		if pc.Type > King || pc.Color > Black {
			return nil, fmt.Errorf("%w: bad piece on %s", ErrInvalidSetup, sq)
		}
		b.set(sq, pc)
	}
	b.castling |= impliedCastlingFlags(b)
	return b, nil
}

// impliedCastlingFlags marks kings and rooks that are not on their home
// squares as moved so a setup cannot grant impossible castling rights.
func impliedCastlingFlags(b *Board) CastlingFlags {
	var flags CastlingFlags
	for _, color := range []Color{White, Black} {
		home := color.HomeRank()
		kingSq, _ := SquareFromCoords(home, 4)
		if !b.squares[kingSq].Is(color, King) {
			flags |= KingMovedFlag(color)
		}
		for _, side := range []CastlingSide{CastleKingside, CastleQueenside} {
			rookSq, _ := SquareFromCoords(home, side.rookFile())
			if !b.squares[rookSq].Is(color, Rook) {
				flags |= RookMovedFlag(color, side)
			}
		}
	}
	return flags
}

func (b *Board) PieceAt(sq Square) Piece { return b.squares[sq] }

// pieceAtXY returns the piece on (x, y), false when off the grid.
func (b *Board) pieceAtXY(x, y int) (Piece, bool) {
	sq, ok := SquareFromCoords(y, x)
	if !ok {
		return Piece{}, false
	}
	return b.squares[sq], true
}

func (b *Board) Turn() Color { return b.turn }

func (b *Board) Castling() CastlingFlags { return b.castling }

// EnPassant returns the files on which color's pawns just made a two-square
// advance.
func (b *Board) EnPassant(color Color) FileSet { return b.enPassant[color.Index()] }

func (b *Board) Coord() Coord { return b.coord }

func (b *Board) Occupancy(color Color) Bitboard { return b.occupancy[color.Index()] }

// Square5D lifts a 2D square onto this board's coordinate.
func (b *Board) Square5D(sq Square) Square5D { return At(sq, b.coord) }

func (b *Board) KingSquare(color Color) (Square, bool) {
	var found Square
	ok := b.occupancy[color.Index()].Any(func(sq Square) bool {
		if b.squares[sq].Type == King {
			found = sq
			return true
		}
		return false
	})
	return found, ok
}

// Material sums piece values per colour, indexed by Color.
func (b *Board) Material() [2]int {
	var score [2]int
	for _, color := range []Color{White, Black} {
		b.occupancy[color.Index()].Iter(func(sq Square) {
			score[color.Index()] += b.squares[sq].Type.Value()
		})
	}
	return score
}

// set places pc on sq, or clears sq when pc is empty.
func (b *Board) set(sq Square, pc Piece) {
	if old := b.squares[sq]; !old.Empty() {
		b.occupancy[old.Color.Index()] = b.occupancy[old.Color.Index()].Remove(sq)
	}
	b.squares[sq] = pc
	if !pc.Empty() {
		b.occupancy[pc.Color.Index()] = b.occupancy[pc.Color.Index()].Add(sq)
	}
}

// clone returns an unplaced copy that may be mutated freely.
func (b *Board) clone() *Board {
	out := *b
	return &out
}

// String draws the board with rank 8 at the top.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			sq, _ := SquareFromCoords(rank, file)
			sb.WriteString(b.squares[sq].String())
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "%s to move, castling %s, t=%d u=%d", b.turn, b.castling, b.coord.T, b.coord.U)
	return sb.String()
}
