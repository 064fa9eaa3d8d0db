package game

import "fmt"

// MoveRecord is one executed move in the order it was played.
type MoveRecord struct {
	Ply       int      `json:"ply"`
	Mover     Color    `json:"mover"`
	Piece     Piece    `json:"piece"`
	From      Square5D `json:"from"`
	To        Square5D `json:"to"`
	Board     Coord    `json:"board"`
	Forked    bool     `json:"forked,omitempty"`
	Captured  *Piece   `json:"captured,omitempty"`
	Castle    string   `json:"castle,omitempty"`
	EnPassant bool     `json:"enPassant,omitempty"`
	Promotion bool     `json:"promotion,omitempty"`
}

func newMoveRecord(from, to Square5D, next *Board, fx moveEffects, forked bool) MoveRecord {
	rec := MoveRecord{
		Mover:     fx.piece.Color,
		Piece:     fx.piece,
		From:      from,
		To:        to,
		Board:     next.coord,
		Forked:    forked,
		EnPassant: fx.enPassant,
		Promotion: fx.promoted,
	}
	if fx.captured() {
		victim := fx.capture
		rec.Captured = &victim
	}
	if fx.castled {
		rec.Castle = fx.castleSide.String()
	}
	return rec
}

func (r MoveRecord) String() string {
	s := fmt.Sprintf("%d. %s %s %s-%s", r.Ply, r.Mover, r.Piece, r.From, r.To)
	if r.Captured != nil {
		s += fmt.Sprintf(" x%s", r.Captured)
	}
	if r.Castle != "" {
		s += " castle " + r.Castle
	}
	if r.EnPassant {
		s += " e.p."
	}
	if r.Promotion {
		s += " =Q"
	}
	if r.Forked {
		s += fmt.Sprintf(" forks %s", r.Board)
	}
	return s
}
