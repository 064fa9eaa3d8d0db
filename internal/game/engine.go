// Package game implements the five-dimensional chess rules engine: move
// generation over the X, Y, T and U axes, check detection and the branching
// multiverse of boards.
package game

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Engine is the facade the outer layers talk to. It owns one multiverse and
// the log of moves played in it. An Engine is not safe for concurrent use.
type Engine struct {
	setup    Setup
	timeline *TimelineMap
	history  []MoveRecord
	log      zerolog.Logger
}

type Option func(*Engine)

// WithLogger sets the logger used for move, fork and game-end events.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithSetup roots the multiverse on s instead of the standard position.
func WithSetup(s Setup) Option {
	return func(e *Engine) { e.setup = s }
}

// NewEngine creates an engine holding a single board at (t=0, u=0).
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		setup: StandardSetup(),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset discards the multiverse and the move log and starts again from the
// engine's setup.
func (e *Engine) Reset() error {
	root, err := NewBoard(e.setup)
	if err != nil {
		return err
	}
	e.timeline = NewTimelineMap(root)
	e.history = e.history[:0]
	e.log.Info().Str("turn", root.turn.String()).Str("castling", root.castling.String()).Msg("new game")
	return nil
}

// LegalDestinations lists every legal destination of the piece on sq. The
// result is computed afresh on each call; nil means there is no piece there
// or it cannot move.
func (e *Engine) LegalDestinations(sq Square5D) []Square5D {
	b, ok := e.timeline.Get(sq.T, sq.U)
	if !ok {
		return nil
	}
	from, ok := sq.Square()
	if !ok {
		return nil
	}
	return NewLegality(b, e.timeline).PossibleMoves(from, true)
}

// ExecuteMove plays a same-board move and returns the new board.
func (e *Engine) ExecuteMove(from, to Square5D) (*Board, error) {
	next, rec, err := e.timeline.Execute(from, to)
	if err != nil {
		e.log.Debug().Err(err).Stringer("from", from).Stringer("to", to).Msg("move rejected")
		return nil, err
	}
	rec.Ply = len(e.history) + 1
	e.history = append(e.history, rec)
	e.log.Debug().Int("ply", rec.Ply).Str("move", rec.String()).Msg("move executed")

	if rec.Forked {
		e.log.Info().
			Int("t", rec.Board.T).
			Int("u", rec.Board.U).
			Int("universes", e.timeline.Universes()).
			Msg("universe forked")
	}
	if out := e.Status(next); out.GameOver {
		ev := e.log.Info().Stringer("board", next.coord).Str("status", string(out.Status))
		if out.HasWinner {
			ev = ev.Str("winner", out.Winner.String())
		}
		ev.Msg("game ended")
	}
	return next, nil
}

// BoardAt returns the board at (t, u), false when there is none.
func (e *Engine) BoardAt(t, u int) (*Board, bool) {
	return e.timeline.Get(t, u)
}

// IsGameEnded reports whether the side to move on b has no legal move.
func (e *Engine) IsGameEnded(b *Board) bool {
	return NewLegality(b, e.timeline).Ended()
}

// IsInCheck reports whether color's king on b is attacked from b.
func (e *Engine) IsInCheck(color Color, b *Board) bool {
	return NewLegality(b, e.timeline).InCheck(color)
}

// Check returns the attacked king and one attacker on b.
func (e *Engine) Check(color Color, b *Board) (CheckInfo, bool) {
	return NewLegality(b, e.timeline).Check(color)
}

func (e *Engine) Status(b *Board) Outcome {
	return NewLegality(b, e.timeline).Outcome()
}

// History returns a copy of the executed moves in play order.
func (e *Engine) History() []MoveRecord {
	return append([]MoveRecord(nil), e.history...)
}

func (e *Engine) Timeline() *TimelineMap { return e.timeline }

func (e *Engine) String() string {
	return fmt.Sprintf("engine: %d boards in %d universes, %d moves",
		len(e.timeline.Boards()), e.timeline.Universes(), len(e.history))
}
