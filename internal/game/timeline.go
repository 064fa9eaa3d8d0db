package game

// BoardLookup resolves a (t, u) coordinate to a board.
type BoardLookup interface {
	Get(t, u int) (*Board, bool)
}

// TimelineMap holds every board of the multiverse. universes[i] is the
// universe with index minU+i; each universe is indexed by t and may start with
// nil slots when it was forked from a later point in time.
type TimelineMap struct {
	universes [][]*Board
	minU      int
}

// NewTimelineMap roots a multiverse on a single board at (t=0, u=0).
func NewTimelineMap(root *Board) *TimelineMap {
	root.coord = Coord{}
	return &TimelineMap{universes: [][]*Board{{root}}}
}

// Get returns the board at (t, u). Out of range and vacant slots report false.
func (m *TimelineMap) Get(t, u int) (*Board, bool) {
	idx := u - m.minU
	if idx < 0 || idx >= len(m.universes) {
		return nil, false
	}
	line := m.universes[idx]
	if t < 0 || t >= len(line) || line[t] == nil {
		return nil, false
	}
	return line[t], true
}

func (m *TimelineMap) Root() *Board {
	b, _ := m.Get(0, 0)
	return b
}

// MinU is the lowest universe index in use.
func (m *TimelineMap) MinU() int { return m.minU }

// MaxU is the highest universe index in use.
func (m *TimelineMap) MaxU() int { return m.minU + len(m.universes) - 1 }

// Universes is the number of universes.
func (m *TimelineMap) Universes() int { return len(m.universes) }

// Frontier returns the latest board of universe u.
func (m *TimelineMap) Frontier(u int) (*Board, bool) {
	idx := u - m.minU
	if idx < 0 || idx >= len(m.universes) {
		return nil, false
	}
	line := m.universes[idx]
	for t := len(line) - 1; t >= 0; t-- {
		if line[t] != nil {
			return line[t], true
		}
	}
	return nil, false
}

// Universe returns a copy of universe u's slots, nil where no board exists.
func (m *TimelineMap) Universe(u int) []*Board {
	idx := u - m.minU
	if idx < 0 || idx >= len(m.universes) {
		return nil
	}
	return append([]*Board(nil), m.universes[idx]...)
}

// Boards lists every placed board ordered by universe, then time.
func (m *TimelineMap) Boards() []*Board {
	var out []*Board
	for _, line := range m.universes {
		for _, b := range line {
			if b != nil {
				out = append(out, b)
			}
		}
	}
	return out
}

// place stores next as the successor of the board at from. The successor
// extends from's universe when its next slot is vacant; otherwise a new
// universe is forked, after the highest index for White and before the lowest
// for Black. It reports whether a fork happened.
func (m *TimelineMap) place(from Coord, mover Color, next *Board) bool {
	tNext := from.T + 1
	idx := from.U - m.minU
	line := m.universes[idx]
	if tNext >= len(line) || line[tNext] == nil {
		for len(line) <= tNext {
			line = append(line, nil)
		}
		line[tNext] = next
		m.universes[idx] = line
		next.coord = Coord{T: tNext, U: from.U}
		return false
	}

	fork := make([]*Board, tNext+1)
	fork[tNext] = next
	if mover == White {
		m.universes = append(m.universes, fork)
		next.coord = Coord{T: tNext, U: m.MaxU()}
		return true
	}
	m.universes = append([][]*Board{fork}, m.universes...)
	m.minU--
	next.coord = Coord{T: tNext, U: m.minU}
	return true
}
