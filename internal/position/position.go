// Package position reads and writes single-board starting positions as YAML.
//
// A document either lists pieces by square:
//
//	turn: black
//	castling: Kq
//	enPassant: {white: e}
//	pieces: {e1: K, h1: R, e8: k, a8: r}
//
// or draws the board as eight rows, rank 8 first, with '.' for empty cells.
// Base "standard" starts from the normal opening position and applies pieces
// on top of it; a '.' in pieces clears a square.
package position

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"chess5d/internal/game"
)

var ErrInvalidPosition = errors.New("invalid position")

const (
	BaseEmpty    = "empty"
	BaseStandard = "standard"
)

// Document is the YAML form of a position.
type Document struct {
	Name      string            `yaml:"name,omitempty"`
	Base      string            `yaml:"base,omitempty"`
	Turn      string            `yaml:"turn,omitempty"`
	Castling  string            `yaml:"castling,omitempty"`
	EnPassant map[string]string `yaml:"enPassant,omitempty"`
	Pieces    map[string]string `yaml:"pieces,omitempty"`
	Rows      []string          `yaml:"rows,omitempty"`
}

// Load reads a position document from filename.
func Load(filename string) (game.Setup, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return game.Setup{}, fmt.Errorf("'%s': %w", filename, err)
	}
	setup, err := Parse(b)
	if err != nil {
		return game.Setup{}, fmt.Errorf("'%s': %w", filename, err)
	}
	return setup, nil
}

// Parse decodes a YAML position document into a setup.
func Parse(data []byte) (game.Setup, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return game.Setup{}, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	return doc.Setup()
}

// Setup converts the document into a game setup.
func (d Document) Setup() (game.Setup, error) {
	var setup game.Setup
	switch strings.ToLower(d.Base) {
	case "", BaseEmpty:
		setup = game.Setup{Pieces: make(map[game.Square]game.Piece), Turn: game.White}
	case BaseStandard:
		setup = game.StandardSetup()
	default:
		return game.Setup{}, fmt.Errorf("%w: unknown base %q", ErrInvalidPosition, d.Base)
	}

	if d.Turn != "" {
		turn, ok := game.ParseColor(d.Turn)
		if !ok {
			return game.Setup{}, fmt.Errorf("%w: turn %q", ErrInvalidPosition, d.Turn)
		}
		setup.Turn = turn
	}

	if d.Castling != "" {
		flags, err := game.ParseCastlingRights(d.Castling)
		if err != nil {
			return game.Setup{}, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
		}
		setup.Castling = flags
	}

	for name, files := range d.EnPassant {
		color, ok := game.ParseColor(name)
		if !ok {
			return game.Setup{}, fmt.Errorf("%w: en passant colour %q", ErrInvalidPosition, name)
		}
		fs, err := game.ParseFileSet(files)
		if err != nil {
			return game.Setup{}, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
		}
		setup.EnPassant[color.Index()] = fs
	}

	if len(d.Rows) > 0 {
		if err := applyRows(setup.Pieces, d.Rows); err != nil {
			return game.Setup{}, err
		}
	}

	for coord, letter := range d.Pieces {
		sq, ok := game.CoordToSquare(strings.ToLower(strings.TrimSpace(coord)))
		if !ok {
			return game.Setup{}, fmt.Errorf("%w: square %q", ErrInvalidPosition, coord)
		}
		if strings.TrimSpace(letter) == "." {
			delete(setup.Pieces, sq)
			continue
		}
		pc, ok := game.ParsePiece(letter)
		if !ok {
			return game.Setup{}, fmt.Errorf("%w: piece %q on %s", ErrInvalidPosition, letter, coord)
		}
		setup.Pieces[sq] = pc
	}

	return setup, nil
}

func applyRows(pieces map[game.Square]game.Piece, rows []string) error {
	if len(rows) != 8 {
		return fmt.Errorf("%w: expected 8 rows, got %d", ErrInvalidPosition, len(rows))
	}
	for i, row := range rows {
		row = strings.ReplaceAll(row, " ", "")
		if len(row) != 8 {
			return fmt.Errorf("%w: row %d has %d cells", ErrInvalidPosition, i+1, len(row))
		}
		rank := 7 - i
		for file := 0; file < 8; file++ {
			sq, _ := game.SquareFromCoords(rank, file)
			if row[file] == '.' {
				delete(pieces, sq)
				continue
			}
			pc, ok := game.ParsePiece(string(row[file]))
			if !ok {
				return fmt.Errorf("%w: cell %q in row %d", ErrInvalidPosition, row[file], i+1)
			}
			pieces[sq] = pc
		}
	}
	return nil
}

// FromBoard describes b as a document with an explicit piece list.
func FromBoard(b *game.Board) Document {
	doc := Document{
		Turn:     b.Turn().String(),
		Castling: b.Castling().String(),
		Pieces:   make(map[string]string),
	}
	for _, color := range []game.Color{game.White, game.Black} {
		if fs := b.EnPassant(color); fs != 0 {
			if doc.EnPassant == nil {
				doc.EnPassant = make(map[string]string)
			}
			doc.EnPassant[color.String()] = fs.String()
		}
		b.Occupancy(color).Iter(func(sq game.Square) {
			doc.Pieces[sq.String()] = b.PieceAt(sq).String()
		})
	}
	return doc
}

// Marshal encodes the document as YAML.
func Marshal(doc Document) ([]byte, error) {
	return yaml.Marshal(doc)
}
