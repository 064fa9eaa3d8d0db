package game

// CheckInfo names the king under attack and one piece attacking it.
type CheckInfo struct {
	King     Square `json:"king"`
	Attacker Square `json:"attacker"`
}

// attackOn scans color's opponents on b for a pseudo-legal move onto color's
// king. Only destinations on b itself count; a king on another board is that
// board's concern.
func attackOn(b *Board, color Color) (CheckInfo, bool) {
	view := &Legality{board: b}
	var info CheckInfo
	found := b.occupancy[color.Opposite().Index()].Any(func(from Square) bool {
		for _, dest := range view.PossibleMoves(from, false) {
			sq, ok := dest.Square()
			if !ok || dest.Coord() != b.coord {
				continue
			}
			if b.squares[sq].Is(color, King) {
				info = CheckInfo{King: sq, Attacker: from}
				return true
			}
		}
		return false
	})
	return info, found
}

// Check reports whether color's king on this board is attacked, and by what.
func (l *Legality) Check(color Color) (CheckInfo, bool) {
	return attackOn(l.board, color)
}

func (l *Legality) InCheck(color Color) bool {
	_, check := attackOn(l.board, color)
	return check
}

func (l *Legality) HasLegalMove(color Color) bool {
	return l.board.occupancy[color.Index()].Any(func(sq Square) bool {
		return len(l.PossibleMoves(sq, true)) > 0
	})
}

// Ended reports whether the side to move has no legal move. Whether that is
// checkmate or stalemate depends on InCheck.
func (l *Legality) Ended() bool {
	return !l.HasLegalMove(l.board.turn)
}

type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
)

// Outcome summarises a board from the point of view of the side to move.
type Outcome struct {
	Status    Status `json:"status"`
	InCheck   bool   `json:"inCheck"`
	GameOver  bool   `json:"gameOver"`
	HasWinner bool   `json:"hasWinner"`
	Winner    Color  `json:"winner"`
}

func (l *Legality) Outcome() Outcome {
	current := l.board.turn
	inCheck := l.InCheck(current)
	hasMove := l.HasLegalMove(current)

	out := Outcome{Status: StatusOngoing, InCheck: inCheck}
	if inCheck {
		out.Status = StatusCheck
	}
	if !hasMove {
		out.GameOver = true
		if inCheck {
			out.Status = StatusCheckmate
			out.HasWinner = true
			out.Winner = current.Opposite()
		} else {
			out.Status = StatusStalemate
		}
	}
	return out
}
