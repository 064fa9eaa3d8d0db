package game

import (
	"fmt"
	"strings"

	"chess5d/internal/shared"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Index() int { return int(c) }

// Forward is the sign of a pawn advance along Y and U.
func (c Color) Forward() int {
	if c == White {
		return 1
	}
	return -1
}

// HomeRank is the rank of the colour's king and rooks.
func (c Color) HomeRank() int {
	if c == White {
		return 0
	}
	return 7
}

// PawnRank is the rank from which a pawn may advance two squares.
func (c Color) PawnRank() int {
	if c == White {
		return 1
	}
	return 6
}

// LastRank is the rank on which a pawn promotes.
func (c Color) LastRank() int {
	if c == White {
		return 7
	}
	return 0
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	default:
		return White, false
	}
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("invalid color %q", string(text))
	}
	*c = parsed
	return nil
}

type PieceType uint8

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
	case NoPiece:
		return "-"
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return fmt.Sprintf("piece(%d)", p)
	}
}

// Value is the material worth of a piece kind. Kings count for nothing.
func (p PieceType) Value() int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	default:
		return 0
	}
}

func ParsePieceType(s string) (PieceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "p", "pawn":
		return Pawn, true
	case "n", "knight":
		return Knight, true
	case "b", "bishop":
		return Bishop, true
	case "r", "rook":
		return Rook, true
	case "q", "queen":
		return Queen, true
	case "k", "king":
		return King, true
	default:
		return NoPiece, false
	}
}

// Piece combines a kind and a colour. The zero value is an empty cell.
type Piece struct {
	Type  PieceType
	Color Color
}

func NewPiece(color Color, pt PieceType) Piece { return Piece{Type: pt, Color: color} }

func (p Piece) Empty() bool { return p.Type == NoPiece }

func (p Piece) Is(color Color, pt PieceType) bool {
	return p.Type == pt && p.Color == color && pt != NoPiece
}

// String returns the FEN letter: upper case for White, lower case for Black.
func (p Piece) String() string {
	if p.Empty() {
		return "."
	}
	s := p.Type.String()
	if p.Color == Black {
		return strings.ToLower(s)
	}
	return s
}

// ParsePiece reads a FEN letter.
func ParsePiece(s string) (Piece, bool) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return Piece{}, false
	}
	pt, ok := ParsePieceType(s)
	if !ok {
		return Piece{}, false
	}
	color := White
	if s[0] >= 'a' && s[0] <= 'z' {
		color = Black
	}
	return NewPiece(color, pt), true
}

func (p Piece) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Piece) UnmarshalText(text []byte) error {
	if string(text) == "." {
		*p = Piece{}
		return nil
	}
	parsed, ok := ParsePiece(string(text))
	if !ok {
		return fmt.Errorf("invalid piece %q", string(text))
	}
	*p = parsed
	return nil
}

// Square addresses a cell within one board: file is x, rank is y.
type Square uint8

func (s Square) Rank() int { return int(s) >> 3 }
func (s Square) File() int { return int(s) & 7 }

func (s Square) String() string {
	file := byte('a' + s.File())
	rank := byte('1' + s.Rank())
	return string([]byte{file, rank})
}

func (s Square) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Square) UnmarshalText(text []byte) error {
	sq, ok := CoordToSquare(strings.ToLower(strings.TrimSpace(string(text))))
	if !ok {
		return fmt.Errorf("invalid square %q", string(text))
	}
	*s = sq
	return nil
}

func CoordToSquare(coord string) (Square, bool) {
	if len(coord) != 2 {
		return 0, false
	}
	file := coord[0]
	rank := coord[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, false
	}
	r := int(rank - '1')
	c := int(file - 'a')
	return Square(r*8 + c), true
}

func SquareFromCoords(rank, file int) (Square, bool) {
	if rank < 0 || rank > 7 || file < 0 || file > 7 {
		return 0, false
	}
	return Square(rank*8 + file), true
}

// MustSquare converts an algebraic coordinate and panics on malformed input.
// Intended for fixed coordinates in setup code and tests.
func MustSquare(coord string) Square {
	sq, ok := CoordToSquare(coord)
	if !ok {
		panic(fmt.Sprintf("invalid square %q", coord))
	}
	return sq
}

// Coord locates a board inside the multiverse.
type Coord struct {
	T int `json:"t"`
	U int `json:"u"`
}

func (c Coord) String() string { return fmt.Sprintf("(t%d,u%d)", c.T, c.U) }

// Square5D addresses a square anywhere in the multiverse.
type Square5D struct {
	X int `json:"x"`
	Y int `json:"y"`
	T int `json:"t"`
	U int `json:"u"`
}

// At builds the Square5D of a 2D square on the board at c.
func At(sq Square, c Coord) Square5D {
	return Square5D{X: sq.File(), Y: sq.Rank(), T: c.T, U: c.U}
}

func (s Square5D) Coord() Coord { return Coord{T: s.T, U: s.U} }

// Square returns the 2D part, or false when x or y are off the grid.
func (s Square5D) Square() (Square, bool) { return SquareFromCoords(s.Y, s.X) }

func (s Square5D) Shift(off shared.Offset) Square5D {
	return Square5D{X: s.X + off.DX, Y: s.Y + off.DY, T: s.T + off.DT, U: s.U + off.DU}
}

func (s Square5D) SameBoard(other Square5D) bool { return s.Coord() == other.Coord() }

func (s Square5D) String() string {
	if sq, ok := s.Square(); ok {
		return fmt.Sprintf("%s%s", s.Coord(), sq)
	}
	return fmt.Sprintf("%s[%d,%d]", s.Coord(), s.X, s.Y)
}

type CastlingSide uint8

const (
	CastleKingside CastlingSide = iota
	CastleQueenside
)

func (cs CastlingSide) String() string {
	switch cs {
	case CastleKingside:
		return "kingside"
	case CastleQueenside:
		return "queenside"
	default:
		return "?"
	}
}

// rookFile is the starting file of the rook on that side.
func (cs CastlingSide) rookFile() int {
	if cs == CastleQueenside {
		return 0
	}
	return 7
}

// CastlingFlags records which kings and rooks have left their home squares.
type CastlingFlags uint8

const (
	WhiteKingMoved CastlingFlags = 1 << iota
	WhiteQueenRookMoved
	WhiteKingRookMoved
	BlackKingMoved
	BlackQueenRookMoved
	BlackKingRookMoved

	CastlingNone = WhiteKingMoved | WhiteQueenRookMoved | WhiteKingRookMoved |
		BlackKingMoved | BlackQueenRookMoved | BlackKingRookMoved
)

func KingMovedFlag(color Color) CastlingFlags {
	if color == White {
		return WhiteKingMoved
	}
	return BlackKingMoved
}

func RookMovedFlag(color Color, side CastlingSide) CastlingFlags {
	switch {
	case color == White && side == CastleQueenside:
		return WhiteQueenRookMoved
	case color == White:
		return WhiteKingRookMoved
	case side == CastleQueenside:
		return BlackQueenRookMoved
	default:
		return BlackKingRookMoved
	}
}

func (cf CastlingFlags) Has(flag CastlingFlags) bool { return cf&flag != 0 }

func (cf CastlingFlags) With(flag CastlingFlags) CastlingFlags { return cf | flag }

// CanCastle reports whether neither the king nor the rook on side has moved.
func (cf CastlingFlags) CanCastle(color Color, side CastlingSide) bool {
	return !cf.Has(KingMovedFlag(color)) && !cf.Has(RookMovedFlag(color, side))
}

// String renders the remaining castling rights in FEN style.
func (cf CastlingFlags) String() string {
	var b strings.Builder
	if cf.CanCastle(White, CastleKingside) {
		b.WriteByte('K')
	}
	if cf.CanCastle(White, CastleQueenside) {
		b.WriteByte('Q')
	}
	if cf.CanCastle(Black, CastleKingside) {
		b.WriteByte('k')
	}
	if cf.CanCastle(Black, CastleQueenside) {
		b.WriteByte('q')
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// ParseCastlingRights converts FEN-style rights into moved flags. A right that
// is absent marks its rook as moved; a colour with no rights at all has its
// king marked as moved.
func ParseCastlingRights(s string) (CastlingFlags, error) {
	trimmed := strings.TrimSpace(s)
	flags := CastlingNone
	if trimmed == "" || trimmed == "-" {
		return flags, nil
	}
	grant := func(color Color, side CastlingSide) {
		flags &^= KingMovedFlag(color) | RookMovedFlag(color, side)
	}
	for _, r := range trimmed {
		switch r {
		case 'K':
			grant(White, CastleKingside)
		case 'Q':
			grant(White, CastleQueenside)
		case 'k':
			grant(Black, CastleKingside)
		case 'q':
			grant(Black, CastleQueenside)
		default:
			return CastlingNone, fmt.Errorf("invalid castling flag %q", string(r))
		}
	}
	return flags, nil
}

func (cf CastlingFlags) MarshalText() ([]byte, error) { return []byte(cf.String()), nil }

func (cf *CastlingFlags) UnmarshalText(text []byte) error {
	parsed, err := ParseCastlingRights(string(text))
	if err != nil {
		return err
	}
	*cf = parsed
	return nil
}

// FileSet holds one en-passant flag per file.
type FileSet uint8

func (fs FileSet) Has(file int) bool {
	if file < 0 || file > 7 {
		return false
	}
	return fs&(1<<uint(file)) != 0
}

func (fs FileSet) With(file int) FileSet {
	if file < 0 || file > 7 {
		return fs
	}
	return fs | 1<<uint(file)
}

func (fs FileSet) Files() []int {
	var out []int
	for f := 0; f < 8; f++ {
		if fs.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (fs FileSet) String() string {
	if fs == 0 {
		return "-"
	}
	var b strings.Builder
	for _, f := range fs.Files() {
		b.WriteByte(byte('a' + f))
	}
	return b.String()
}

func ParseFileSet(s string) (FileSet, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" || trimmed == "-" {
		return 0, nil
	}
	var fs FileSet
	for _, r := range trimmed {
		if r < 'a' || r > 'h' {
			return 0, fmt.Errorf("invalid en-passant file %q", string(r))
		}
		fs = fs.With(int(r - 'a'))
	}
	return fs, nil
}

func (fs FileSet) MarshalText() ([]byte, error) { return []byte(fs.String()), nil }

func (fs *FileSet) UnmarshalText(text []byte) error {
	parsed, err := ParseFileSet(string(text))
	if err != nil {
		return err
	}
	*fs = parsed
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
