package game

import (
	"encoding/json"
	"testing"
)

func TestCastlingRightsText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "KQkq", want: "KQkq"},
		{in: "Kq", want: "Kq"},
		{in: "-", want: "-"},
		{in: "", want: "-"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			flags, err := ParseCastlingRights(tt.in)
			if err != nil {
				t.Fatalf("parse %q: %v", tt.in, err)
			}
			if got := flags.String(); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}

	if _, err := ParseCastlingRights("KX"); err == nil {
		t.Fatalf("expected an error for an unknown flag")
	}
	if flags, _ := ParseCastlingRights("Q"); !flags.Has(WhiteKingRookMoved) || flags.Has(WhiteKingMoved) {
		t.Fatalf("Q alone should keep the white king unmoved, got %b", flags)
	}
}

func TestFileSet(t *testing.T) {
	fs, err := ParseFileSet("ah")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !fs.Has(0) || !fs.Has(7) || fs.Has(3) || fs.Has(-1) || fs.Has(8) {
		t.Fatalf("unexpected files %v", fs.Files())
	}
	if fs.String() != "ah" {
		t.Fatalf("expected ah, got %s", fs)
	}
	if _, err := ParseFileSet("z"); err == nil {
		t.Fatalf("expected an error for file z")
	}
}

func TestPieceText(t *testing.T) {
	rec := MoveRecord{Piece: NewPiece(Black, Knight), Mover: Black}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back MoveRecord
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if back.Piece != rec.Piece || back.Mover != Black {
		t.Fatalf("round trip changed the record: %s", data)
	}
	if _, ok := ParsePiece("x"); ok {
		t.Fatalf("x is not a piece")
	}
}

func TestSquare5DShift(t *testing.T) {
	s := sq5("e4", 2, 1)
	if sq, ok := s.Square(); !ok || sq != MustSquare("e4") {
		t.Fatalf("unexpected square %s", s)
	}
	off := Square5D{X: 8, Y: 0}
	if _, ok := off.Square(); ok {
		t.Fatalf("x=8 is off the grid")
	}
	if !s.SameBoard(sq5("a1", 2, 1)) || s.SameBoard(sq5("e4", 0, 1)) {
		t.Fatalf("SameBoard compares the wrong fields")
	}
}
