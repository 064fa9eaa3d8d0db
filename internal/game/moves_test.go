package game

import (
	"errors"
	"testing"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	eng, err := NewEngine(opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng
}

// sq5 names a square on the board at (tt, u).
func sq5(coord string, tt, u int) Square5D {
	return At(MustSquare(coord), Coord{T: tt, U: u})
}

// testSetup builds a setup from FEN letters keyed by algebraic square.
func testSetup(t *testing.T, turn Color, placement map[string]string) Setup {
	t.Helper()
	s := Setup{Pieces: make(map[Square]Piece, len(placement)), Turn: turn}
	for coord, letter := range placement {
		pc, ok := ParsePiece(letter)
		if !ok {
			t.Fatalf("bad piece %q on %s", letter, coord)
		}
		s.Pieces[MustSquare(coord)] = pc
	}
	return s
}

func mustMove(t *testing.T, eng *Engine, from, to Square5D) *Board {
	t.Helper()
	b, err := eng.ExecuteMove(from, to)
	if err != nil {
		t.Fatalf("move %s-%s: %v", from, to, err)
	}
	return b
}

func TestOpeningPawnAdvance(t *testing.T) {
	eng := newTestEngine(t)
	root, _ := eng.BoardAt(0, 0)
	before := root.String()

	next := mustMove(t, eng, sq5("e2", 0, 0), sq5("e4", 0, 0))

	if next.Coord() != (Coord{T: 1, U: 0}) {
		t.Fatalf("expected successor at (t1,u0), got %s", next.Coord())
	}
	if got := next.PieceAt(MustSquare("e4")); !got.Is(White, Pawn) {
		t.Fatalf("expected white pawn on e4, got %s", got)
	}
	if got := next.PieceAt(MustSquare("e2")); !got.Empty() {
		t.Fatalf("expected e2 empty, got %s", got)
	}
	if next.Turn() != Black {
		t.Fatalf("expected black to move, got %s", next.Turn())
	}
	if !next.EnPassant(White).Has(4) {
		t.Fatalf("expected en passant flag on the e-file, got %s", next.EnPassant(White))
	}
	if root.String() != before {
		t.Fatalf("root board changed:\n%s\nwant:\n%s", root, before)
	}
	if eng.Timeline().Universes() != 1 {
		t.Fatalf("expected a single universe, got %d", eng.Timeline().Universes())
	}

	hist := eng.History()
	if len(hist) != 1 || hist[0].Ply != 1 || hist[0].Forked {
		t.Fatalf("unexpected history %+v", hist)
	}
}

func TestExecuteMoveErrors(t *testing.T) {
	tests := []struct {
		name string
		from Square5D
		to   Square5D
		want error
	}{
		{name: "missing board", from: sq5("e2", 4, 0), to: sq5("e4", 4, 0), want: ErrNoBoard},
		{name: "missing universe", from: sq5("e2", 0, 3), to: sq5("e4", 0, 3), want: ErrNoBoard},
		{name: "off grid", from: Square5D{X: 8, Y: 1}, to: sq5("e4", 0, 0), want: ErrNoBoard},
		{name: "cross board", from: sq5("e2", 0, 0), to: sq5("e4", 1, 0), want: ErrCrossBoardMove},
		{name: "empty square", from: sq5("e3", 0, 0), to: sq5("e4", 0, 0), want: ErrNoPiece},
		{name: "wrong side", from: sq5("e7", 0, 0), to: sq5("e5", 0, 0), want: ErrNotYourTurn},
		{name: "unreachable", from: sq5("e2", 0, 0), to: sq5("e5", 0, 0), want: ErrIllegalMove},
		{name: "friendly capture", from: sq5("d1", 0, 0), to: sq5("d2", 0, 0), want: ErrIllegalMove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newTestEngine(t)
			_, err := eng.ExecuteMove(tt.from, tt.to)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("expected error to wrap ErrInvalidMove, got %v", err)
			}
			if len(eng.Timeline().Boards()) != 1 {
				t.Fatalf("rejected move placed a board")
			}
			if len(eng.History()) != 0 {
				t.Fatalf("rejected move recorded in history")
			}
		})
	}
}

func TestCrossBoardDestinationIsListedButNotExecuted(t *testing.T) {
	eng := newTestEngine(t)
	mustMove(t, eng, sq5("e2", 0, 0), sq5("e4", 0, 0))
	forked := mustMove(t, eng, sq5("d2", 0, 0), sq5("d4", 0, 0))
	if forked.Coord() != (Coord{T: 1, U: 1}) {
		t.Fatalf("expected fork at (t1,u1), got %s", forked.Coord())
	}

	knight := sq5("g8", 1, 1)
	target := sq5("g6", 1, 0)
	found := false
	for _, dest := range eng.LegalDestinations(knight) {
		if dest == target {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s among knight destinations %v", target, eng.LegalDestinations(knight))
	}

	if _, err := eng.ExecuteMove(knight, target); !errors.Is(err, ErrCrossBoardMove) {
		t.Fatalf("expected ErrCrossBoardMove, got %v", err)
	}
}

func TestEnPassant(t *testing.T) {
	setup := testSetup(t, Black, map[string]string{
		"e1": "K", "e8": "k", "e5": "P", "d7": "p",
	})
	eng := newTestEngine(t, WithSetup(setup))

	advanced := mustMove(t, eng, sq5("d7", 0, 0), sq5("d5", 0, 0))
	if !advanced.EnPassant(Black).Has(3) {
		t.Fatalf("expected black en passant flag on d, got %s", advanced.EnPassant(Black))
	}

	target := sq5("d6", 1, 0)
	dests := eng.LegalDestinations(sq5("e5", 1, 0))
	found := false
	for _, dest := range dests {
		if dest == target {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected en passant onto d6, got %v", dests)
	}

	after := mustMove(t, eng, sq5("e5", 1, 0), target)
	if got := after.PieceAt(MustSquare("d6")); !got.Is(White, Pawn) {
		t.Fatalf("expected white pawn on d6, got %s", got)
	}
	if got := after.PieceAt(MustSquare("d5")); !got.Empty() {
		t.Fatalf("expected passed pawn removed from d5, got %s", got)
	}
	if after.EnPassant(White) != 0 {
		t.Fatalf("expected white en passant flags cleared, got %s", after.EnPassant(White))
	}

	rec := eng.History()[1]
	if !rec.EnPassant || rec.Captured == nil || !rec.Captured.Is(Black, Pawn) {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestEnPassantExpires(t *testing.T) {
	setup := testSetup(t, Black, map[string]string{
		"e1": "K", "e8": "k", "e5": "P", "d7": "p",
	})
	eng := newTestEngine(t, WithSetup(setup))

	mustMove(t, eng, sq5("d7", 0, 0), sq5("d5", 0, 0))
	mustMove(t, eng, sq5("e1", 1, 0), sq5("d1", 1, 0))
	b := mustMove(t, eng, sq5("e8", 2, 0), sq5("f8", 2, 0))
	if b.EnPassant(Black) != 0 {
		t.Fatalf("expected black flags reset by black's next move, got %s", b.EnPassant(Black))
	}
	for _, dest := range eng.LegalDestinations(sq5("e5", 3, 0)) {
		if dest == sq5("d6", 3, 0) {
			t.Fatalf("en passant still offered after it expired")
		}
	}
}

func TestCastling(t *testing.T) {
	tests := []struct {
		name      string
		placement map[string]string
		to        string
		rookFrom  string
		rookTo    string
		side      string
	}{
		{
			name:      "queenside",
			placement: map[string]string{"e1": "K", "a1": "R", "e8": "k"},
			to:        "c1",
			rookFrom:  "a1",
			rookTo:    "d1",
			side:      "queenside",
		},
		{
			name:      "kingside",
			placement: map[string]string{"e1": "K", "h1": "R", "e8": "k"},
			to:        "g1",
			rookFrom:  "h1",
			rookTo:    "f1",
			side:      "kingside",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newTestEngine(t, WithSetup(testSetup(t, White, tt.placement)))
			next := mustMove(t, eng, sq5("e1", 0, 0), sq5(tt.to, 0, 0))

			if got := next.PieceAt(MustSquare(tt.to)); !got.Is(White, King) {
				t.Fatalf("expected king on %s, got %s", tt.to, got)
			}
			if got := next.PieceAt(MustSquare(tt.rookTo)); !got.Is(White, Rook) {
				t.Fatalf("expected rook on %s, got %s", tt.rookTo, got)
			}
			if got := next.PieceAt(MustSquare(tt.rookFrom)); !got.Empty() {
				t.Fatalf("expected %s empty, got %s", tt.rookFrom, got)
			}
			if !next.Castling().Has(WhiteKingMoved) {
				t.Fatalf("expected king-moved flag, got %s", next.Castling())
			}
			if rec := eng.History()[0]; rec.Castle != tt.side {
				t.Fatalf("expected castle %s, got %q", tt.side, rec.Castle)
			}
		})
	}
}

func TestCastlingDenied(t *testing.T) {
	tests := []struct {
		name      string
		placement map[string]string
		castling  CastlingFlags
		deny      []string
		allow     []string
	}{
		{
			name:      "crossing attacked square",
			placement: map[string]string{"e1": "K", "a1": "R", "h1": "R", "d8": "r", "e8": "k"},
			deny:      []string{"c1"},
			allow:     []string{"g1"},
		},
		{
			name:      "landing on attacked square",
			placement: map[string]string{"e1": "K", "a1": "R", "h1": "R", "g8": "r", "a8": "k"},
			deny:      []string{"g1"},
			allow:     []string{"c1"},
		},
		{
			name:      "king in check",
			placement: map[string]string{"e1": "K", "a1": "R", "h1": "R", "e6": "r", "h8": "k"},
			deny:      []string{"c1", "g1"},
		},
		{
			name:      "blocked by own piece",
			placement: map[string]string{"e1": "K", "a1": "R", "b1": "N", "h1": "R", "e8": "k"},
			deny:      []string{"c1"},
			allow:     []string{"g1"},
		},
		{
			name:      "rook has moved",
			placement: map[string]string{"e1": "K", "a1": "R", "h1": "R", "e8": "k"},
			castling:  WhiteKingRookMoved,
			deny:      []string{"g1"},
			allow:     []string{"c1"},
		},
		{
			name:      "king has moved",
			placement: map[string]string{"e1": "K", "a1": "R", "h1": "R", "e8": "k"},
			castling:  WhiteKingMoved,
			deny:      []string{"c1", "g1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setup := testSetup(t, White, tt.placement)
			setup.Castling = tt.castling
			eng := newTestEngine(t, WithSetup(setup))

			dests := make(map[Square5D]bool)
			for _, d := range eng.LegalDestinations(sq5("e1", 0, 0)) {
				dests[d] = true
			}
			for _, coord := range tt.deny {
				if dests[sq5(coord, 0, 0)] {
					t.Fatalf("castling to %s should be denied", coord)
				}
			}
			for _, coord := range tt.allow {
				if !dests[sq5(coord, 0, 0)] {
					t.Fatalf("castling to %s should be allowed", coord)
				}
			}
		})
	}
}

func TestCastlingFlagsFollowRooks(t *testing.T) {
	setup := testSetup(t, White, map[string]string{
		"e1": "K", "a1": "R", "h1": "R", "e8": "k", "a8": "r", "h8": "r",
	})
	eng := newTestEngine(t, WithSetup(setup))

	b := mustMove(t, eng, sq5("h1", 0, 0), sq5("h5", 0, 0))
	if b.Castling().CanCastle(White, CastleKingside) {
		t.Fatalf("kingside right should be gone after the rook left h1")
	}
	if !b.Castling().CanCastle(White, CastleQueenside) {
		t.Fatalf("queenside right should remain")
	}

	b = mustMove(t, eng, sq5("a8", 1, 0), sq5("a1", 1, 0))
	if b.Castling().CanCastle(White, CastleQueenside) {
		t.Fatalf("queenside right should be gone after a1 was captured")
	}
	if b.Castling().CanCastle(Black, CastleQueenside) {
		t.Fatalf("black queenside right should be gone after the rook left a8")
	}
	if !b.Castling().CanCastle(Black, CastleKingside) {
		t.Fatalf("black kingside right should remain")
	}
}

func TestPromotionToQueen(t *testing.T) {
	setup := testSetup(t, White, map[string]string{
		"e1": "K", "e8": "k", "a7": "P",
	})
	eng := newTestEngine(t, WithSetup(setup))

	next := mustMove(t, eng, sq5("a7", 0, 0), sq5("a8", 0, 0))
	if got := next.PieceAt(MustSquare("a8")); !got.Is(White, Queen) {
		t.Fatalf("expected queen on a8, got %s", got)
	}
	if !eng.IsInCheck(Black, next) {
		t.Fatalf("expected the new queen to check the black king")
	}
	if rec := eng.History()[0]; !rec.Promotion {
		t.Fatalf("expected promotion recorded, got %+v", rec)
	}
}

func TestBranching(t *testing.T) {
	eng := newTestEngine(t)

	mustMove(t, eng, sq5("e2", 0, 0), sq5("e4", 0, 0))
	white := mustMove(t, eng, sq5("d2", 0, 0), sq5("d4", 0, 0))
	if white.Coord() != (Coord{T: 1, U: 1}) {
		t.Fatalf("white fork should append universe 1, got %s", white.Coord())
	}

	extended := mustMove(t, eng, sq5("e7", 1, 0), sq5("e5", 1, 0))
	if extended.Coord() != (Coord{T: 2, U: 0}) {
		t.Fatalf("expected extension at (t2,u0), got %s", extended.Coord())
	}

	black := mustMove(t, eng, sq5("d7", 1, 0), sq5("d5", 1, 0))
	if black.Coord() != (Coord{T: 2, U: -1}) {
		t.Fatalf("black fork should prepend universe -1, got %s", black.Coord())
	}

	tm := eng.Timeline()
	if tm.MinU() != -1 || tm.MaxU() != 1 || tm.Universes() != 3 {
		t.Fatalf("unexpected universe range [%d,%d] count %d", tm.MinU(), tm.MaxU(), tm.Universes())
	}
	if _, ok := tm.Get(0, -1); ok {
		t.Fatalf("forked universe should have no board before its fork point")
	}
	if b, ok := tm.Get(2, -1); !ok || b != black {
		t.Fatalf("forked board not found at (t2,u-1)")
	}
	if len(tm.Boards()) != 5 {
		t.Fatalf("expected one board per move plus the root, got %d", len(tm.Boards()))
	}

	hist := eng.History()
	if !hist[1].Forked || hist[2].Forked || !hist[3].Forked {
		t.Fatalf("unexpected fork flags in %+v", hist)
	}
}

func TestFoolsMate(t *testing.T) {
	eng := newTestEngine(t)
	mustMove(t, eng, sq5("f2", 0, 0), sq5("f3", 0, 0))
	mustMove(t, eng, sq5("e7", 1, 0), sq5("e5", 1, 0))
	mustMove(t, eng, sq5("g2", 2, 0), sq5("g4", 2, 0))
	mate := mustMove(t, eng, sq5("d8", 3, 0), sq5("h4", 3, 0))

	if !eng.IsInCheck(White, mate) {
		t.Fatalf("expected white in check")
	}
	if !eng.IsGameEnded(mate) {
		t.Fatalf("expected the game to be over")
	}
	out := eng.Status(mate)
	if out.Status != StatusCheckmate || !out.HasWinner || out.Winner != Black {
		t.Fatalf("unexpected outcome %+v", out)
	}

	info, ok := eng.Check(White, mate)
	if !ok || info.King != MustSquare("e1") || info.Attacker != MustSquare("h4") {
		t.Fatalf("unexpected check info %+v", info)
	}

	state := eng.BoardState(mate)
	if state.Check == nil || *state.Check != info {
		t.Fatalf("expected board state to carry %+v, got %+v", info, state.Check)
	}
	if eng.BoardState(eng.Timeline().Root()).Check != nil {
		t.Fatalf("root board is not in check")
	}

	if _, err := eng.ExecuteMove(sq5("e1", 4, 0), sq5("f2", 4, 0)); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("expected king move into check to be rejected, got %v", err)
	}
}

func TestResetDiscardsMultiverse(t *testing.T) {
	eng := newTestEngine(t)
	mustMove(t, eng, sq5("e2", 0, 0), sq5("e4", 0, 0))
	mustMove(t, eng, sq5("d2", 0, 0), sq5("d4", 0, 0))

	if err := eng.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(eng.Timeline().Boards()) != 1 || len(eng.History()) != 0 {
		t.Fatalf("reset left state behind: %s", eng)
	}
	if _, ok := eng.BoardAt(1, 0); ok {
		t.Fatalf("board at (t1,u0) survived reset")
	}
}

func TestState(t *testing.T) {
	eng := newTestEngine(t)
	mustMove(t, eng, sq5("e2", 0, 0), sq5("e4", 0, 0))

	state := eng.State()
	if state.Universes != 1 || len(state.Boards) != 2 || len(state.History) != 1 {
		t.Fatalf("unexpected state shape %+v", state)
	}
	latest := state.Boards[1]
	if latest.T != 1 || latest.Turn != "black" || !latest.Frontier {
		t.Fatalf("unexpected latest board %+v", latest)
	}
	if latest.Pieces["e4"] != "P" || latest.Pieces["e2"] != "" {
		t.Fatalf("unexpected pieces %v", latest.Pieces)
	}
	if latest.EnPassant["white"] != "e" || latest.Status != string(StatusOngoing) {
		t.Fatalf("unexpected board flags %+v", latest)
	}
	if state.Boards[0].Frontier {
		t.Fatalf("root is no longer the frontier")
	}
	if state.History[0].Piece != "P" || state.History[0].Mover != "white" {
		t.Fatalf("unexpected history entry %+v", state.History[0])
	}
}
