package shared

import "testing"

func TestTimeStepCoversTwoPlies(t *testing.T) {
	got := Movement{Axis: AxisT, Magnitude: -1}.Offset()
	if got != (Offset{DT: -2}) {
		t.Fatalf("expected DT=-2, got %+v", got)
	}
	if got := Combine(Movement{Axis: AxisU, Magnitude: 1}, Movement{Axis: AxisX, Magnitude: 2}); got != (Offset{DX: 2, DU: 1}) {
		t.Fatalf("unexpected combined offset %+v", got)
	}
}

func TestLeapTablesAreDistinct(t *testing.T) {
	for _, pair := range AxisPairs {
		seen := make(map[Offset]bool)
		for _, off := range Leaps(pair) {
			if seen[off] {
				t.Fatalf("duplicate leap %+v for pair %v", off, pair)
			}
			seen[off] = true
		}
		diag := make(map[Offset]bool)
		for _, off := range Diagonals(pair) {
			diag[off] = true
		}
		if len(diag) != 4 {
			t.Fatalf("expected 4 diagonals for pair %v, got %d", pair, len(diag))
		}
	}
}

func TestSpatialOffsets(t *testing.T) {
	if !Forward(AxisY, 1).Spatial() {
		t.Fatalf("y step should stay on the board")
	}
	if Forward(AxisU, -1).Spatial() {
		t.Fatalf("u step should leave the board")
	}
}
