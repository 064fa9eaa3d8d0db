package shared

import "fmt"

// Axis is one of the four movement dimensions of the multiverse.
type Axis uint8

const (
	AxisX Axis = iota // file, through space
	AxisY             // rank, through space
	AxisT             // board index, through time
	AxisU             // universe index, across timelines
)

// TimeStride is the number of plies a single step along AxisT covers. A piece
// travelling through time must land on a board where its own side moves next.
const TimeStride = 2

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisT:
		return "t"
	case AxisU:
		return "u"
	default:
		return fmt.Sprintf("axis(%d)", a)
	}
}

// Movement is a directed step along a single axis.
type Movement struct {
	Axis      Axis
	Magnitude int
}

// Offset is the displacement in board coordinates produced by one or more
// movements.
type Offset struct {
	DX, DY, DT, DU int
}

// Offset converts a movement into coordinate deltas.
func (m Movement) Offset() Offset {
	switch m.Axis {
	case AxisX:
		return Offset{DX: m.Magnitude}
	case AxisY:
		return Offset{DY: m.Magnitude}
	case AxisT:
		return Offset{DT: m.Magnitude * TimeStride}
	case AxisU:
		return Offset{DU: m.Magnitude}
	default:
		return Offset{}
	}
}

// Combine sums the offsets of all movements.
func Combine(ms ...Movement) Offset {
	var out Offset
	for _, m := range ms {
		out = out.Add(m.Offset())
	}
	return out
}

func (o Offset) Add(other Offset) Offset {
	return Offset{
		DX: o.DX + other.DX,
		DY: o.DY + other.DY,
		DT: o.DT + other.DT,
		DU: o.DU + other.DU,
	}
}

// Spatial reports whether the offset stays on the same board.
func (o Offset) Spatial() bool { return o.DT == 0 && o.DU == 0 }

func (o Offset) IsZero() bool { return o == Offset{} }
