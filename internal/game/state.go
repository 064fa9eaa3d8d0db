package game

// BoardState is a serializable view of one board.
type BoardState struct {
	T         int               `json:"t"`
	U         int               `json:"u"`
	Turn      string            `json:"turn"`
	Castling  string            `json:"castling" jsonschema:"description=Remaining castling rights in FEN style or -"`
	EnPassant map[string]string `json:"enPassant" jsonschema:"description=Files per colour whose pawn just advanced two squares"`
	Pieces    map[string]string `json:"pieces" jsonschema:"description=FEN piece letter keyed by algebraic square"`
	Material  map[string]int    `json:"material"`
	Status    string            `json:"status" jsonschema:"enum=ongoing,enum=check,enum=checkmate,enum=stalemate"`
	InCheck   bool              `json:"inCheck"`
	Check     *CheckInfo        `json:"check,omitempty" jsonschema:"description=Checked king and one attacker of the side to move"`
	Winner    string            `json:"winner,omitempty"`
	Frontier  bool              `json:"frontier" jsonschema:"description=Latest board of its universe"`
}

// MoveState is a serializable view of a MoveRecord.
type MoveState struct {
	Ply       int      `json:"ply"`
	Mover     string   `json:"mover"`
	Piece     string   `json:"piece"`
	From      Square5D `json:"from"`
	To        Square5D `json:"to"`
	Board     Coord    `json:"board"`
	Forked    bool     `json:"forked,omitempty"`
	Captured  string   `json:"captured,omitempty"`
	Castle    string   `json:"castle,omitempty"`
	EnPassant bool     `json:"enPassant,omitempty"`
	Promotion bool     `json:"promotion,omitempty"`
}

// MultiverseState is a serializable snapshot of the whole multiverse.
type MultiverseState struct {
	MinU      int          `json:"minU"`
	MaxU      int          `json:"maxU"`
	Universes int          `json:"universes"`
	Boards    []BoardState `json:"boards"`
	History   []MoveState  `json:"history"`
}

// BoardState describes b, including its status for the side to move.
func (e *Engine) BoardState(b *Board) BoardState {
	out := e.Status(b)
	material := b.Material()
	state := BoardState{
		T:        b.coord.T,
		U:        b.coord.U,
		Turn:     b.turn.String(),
		Castling: b.castling.String(),
		EnPassant: map[string]string{
			White.String(): b.EnPassant(White).String(),
			Black.String(): b.EnPassant(Black).String(),
		},
		Pieces: make(map[string]string, 32),
		Material: map[string]int{
			White.String(): material[White.Index()],
			Black.String(): material[Black.Index()],
		},
		Status:  string(out.Status),
		InCheck: out.InCheck,
	}
	if out.InCheck {
		if info, ok := attackOn(b, b.turn); ok {
			state.Check = &info
		}
	}
	if out.HasWinner {
		state.Winner = out.Winner.String()
	}
	for _, color := range []Color{White, Black} {
		b.occupancy[color.Index()].Iter(func(sq Square) {
			state.Pieces[sq.String()] = b.squares[sq].String()
		})
	}
	if front, ok := e.timeline.Frontier(b.coord.U); ok && front == b {
		state.Frontier = true
	}
	return state
}

// State returns a serializable snapshot of every board and the move log.
func (e *Engine) State() MultiverseState {
	boards := e.timeline.Boards()
	state := MultiverseState{
		MinU:      e.timeline.MinU(),
		MaxU:      e.timeline.MaxU(),
		Universes: e.timeline.Universes(),
		Boards:    make([]BoardState, 0, len(boards)),
		History:   make([]MoveState, 0, len(e.history)),
	}
	for _, b := range boards {
		state.Boards = append(state.Boards, e.BoardState(b))
	}
	for _, rec := range e.history {
		ms := MoveState{
			Ply:       rec.Ply,
			Mover:     rec.Mover.String(),
			Piece:     rec.Piece.String(),
			From:      rec.From,
			To:        rec.To,
			Board:     rec.Board,
			Forked:    rec.Forked,
			Castle:    rec.Castle,
			EnPassant: rec.EnPassant,
			Promotion: rec.Promotion,
		}
		if rec.Captured != nil {
			ms.Captured = rec.Captured.String()
		}
		state.History = append(state.History, ms)
	}
	return state
}
