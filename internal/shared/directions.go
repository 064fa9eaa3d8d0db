package shared

var (
	Axes = [4]Axis{AxisX, AxisY, AxisT, AxisU}

	// ForwardAxes are the axes a pawn advances along.
	ForwardAxes = [2]Axis{AxisY, AxisU}
	// SidewaysAxes are the axes a pawn captures across.
	SidewaysAxes = [2]Axis{AxisX, AxisT}

	// AxisPairs lists every unordered pair of distinct axes.
	AxisPairs = [6][2]Axis{
		{AxisX, AxisY},
		{AxisX, AxisT},
		{AxisX, AxisU},
		{AxisY, AxisT},
		{AxisY, AxisU},
		{AxisT, AxisU},
	}
)

// Straights returns the unit offsets in both directions along one axis.
func Straights(a Axis) [2]Offset {
	return [2]Offset{
		Movement{Axis: a, Magnitude: 1}.Offset(),
		Movement{Axis: a, Magnitude: -1}.Offset(),
	}
}

// Diagonals returns the four unit diagonals spanned by an axis pair.
func Diagonals(pair [2]Axis) [4]Offset {
	var out [4]Offset
	i := 0
	for _, s0 := range [2]int{1, -1} {
		for _, s1 := range [2]int{1, -1} {
			out[i] = Combine(
				Movement{Axis: pair[0], Magnitude: s0},
				Movement{Axis: pair[1], Magnitude: s1},
			)
			i++
		}
	}
	return out
}

// Leaps returns the eight knight leaps spanned by an axis pair.
func Leaps(pair [2]Axis) [8]Offset {
	shapes := [8][2]int{
		{1, 2}, {2, 1},
		{1, -2}, {-2, 1},
		{-1, 2}, {2, -1},
		{-1, -2}, {-2, -1},
	}
	var out [8]Offset
	for i, s := range shapes {
		out[i] = Combine(
			Movement{Axis: pair[0], Magnitude: s[0]},
			Movement{Axis: pair[1], Magnitude: s[1]},
		)
	}
	return out
}

// Forward returns a single step along axis a in the direction dir (+1 or -1).
func Forward(a Axis, dir int) Offset {
	return Movement{Axis: a, Magnitude: dir}.Offset()
}
