package drift

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestWrapReturnsHalfOpenInterval(t *testing.T) {
	r := 100.0
	values := []float64{0, 1, 49.999, 50, 99, 100, 150, -1, -50, -50.001, -99, -1234.5, 98765.4}
	for _, v := range values {
		w := Wrap(v, r)
		if w < -r/2 || w >= r/2 {
			t.Errorf("Wrap(%v, %v) = %v, want in [-50, 50)", v, r, w)
		}
	}
}

func TestWrapPeriodic(t *testing.T) {
	r := 640.0
	for _, v := range []float64{0, 13.7, -200.2, 319.9, -320} {
		base := Wrap(v, r)
		for _, k := range []float64{-3, -1, 1, 2, 10} {
			got := Wrap(v+k*r, r)
			if !approxEqual(got, base, 1e-6) {
				t.Errorf("Wrap(%v + %v*%v, %v) = %v, want %v", v, k, r, r, got, base)
			}
		}
	}
}

func TestWrapNegativeIsTrueModulo(t *testing.T) {
	// Truncating remainder would map -60 into the wrong half.
	if got := Wrap(-60, 100); !approxEqual(got, 40, epsilon) {
		t.Errorf("Wrap(-60, 100) = %v, want 40", got)
	}
	if got := Wrap(-50, 100); !approxEqual(got, -50, epsilon) {
		t.Errorf("Wrap(-50, 100) = %v, want -50", got)
	}
	if got := Wrap(50, 100); !approxEqual(got, -50, epsilon) {
		t.Errorf("Wrap(50, 100) = %v, want -50 (half-open upper bound)", got)
	}
}

func TestWrapNonPositiveRange(t *testing.T) {
	if got := Wrap(42, 0); got != 0 {
		t.Errorf("Wrap(42, 0) = %v, want 0", got)
	}
	if got := Wrap(42, -10); got != 0 {
		t.Errorf("Wrap(42, -10) = %v, want 0", got)
	}
}

func TestTileOffsets5(t *testing.T) {
	offsets := TileOffsets(5)
	if len(offsets) != 25 {
		t.Fatalf("len = %d, want 25", len(offsets))
	}

	seen := make(map[TileOffset]int)
	for _, o := range offsets {
		seen[o]++
	}
	if len(seen) != 25 {
		t.Errorf("unique offsets = %d, want 25", len(seen))
	}
	if seen[TileOffset{0, 0}] != 1 {
		t.Errorf("(0,0) appears %d times, want exactly 1", seen[TileOffset{0, 0}])
	}

	// Symmetry: for every (x, y), (-x, -y) is also present.
	for _, o := range offsets {
		if seen[TileOffset{-o.Col, -o.Row}] == 0 {
			t.Errorf("offset %v present but %v missing", o, TileOffset{-o.Col, -o.Row})
		}
	}

	// Row-major order, spanning -2..2.
	if offsets[0] != (TileOffset{-2, -2}) {
		t.Errorf("first offset = %v, want (-2,-2)", offsets[0])
	}
	if offsets[24] != (TileOffset{2, 2}) {
		t.Errorf("last offset = %v, want (2,2)", offsets[24])
	}
	if offsets[12] != (TileOffset{0, 0}) {
		t.Errorf("center offset = %v, want (0,0)", offsets[12])
	}
}

func TestTileOffsets1(t *testing.T) {
	offsets := TileOffsets(1)
	if len(offsets) != 1 || offsets[0] != (TileOffset{0, 0}) {
		t.Errorf("TileOffsets(1) = %v, want [(0,0)]", offsets)
	}
}

func TestTileOffsetsBelowOne(t *testing.T) {
	offsets := TileOffsets(0)
	if len(offsets) != 1 || offsets[0] != (TileOffset{0, 0}) {
		t.Errorf("TileOffsets(0) = %v, want [(0,0)]", offsets)
	}
}

func TestTileOffsetsEvenProceeds(t *testing.T) {
	// Even sizes warn but still generate the grid, spanning -g/2..g/2-1.
	offsets := TileOffsets(4)
	if len(offsets) != 16 {
		t.Fatalf("len = %d, want 16", len(offsets))
	}
	if offsets[0] != (TileOffset{-2, -2}) {
		t.Errorf("first offset = %v, want (-2,-2)", offsets[0])
	}
	if offsets[15] != (TileOffset{1, 1}) {
		t.Errorf("last offset = %v, want (1,1)", offsets[15])
	}
}

func TestPerspectiveScale(t *testing.T) {
	p := 1000.0
	if got := perspectiveScale(p, 0); !approxEqual(got, 1, epsilon) {
		t.Errorf("scale at z=0 = %v, want 1", got)
	}
	if got := perspectiveScale(p, 500); !approxEqual(got, 2, epsilon) {
		t.Errorf("scale at z=500 = %v, want 2", got)
	}
	if got := perspectiveScale(p, -1000); !approxEqual(got, 0.5, epsilon) {
		t.Errorf("scale at z=-1000 = %v, want 0.5", got)
	}
	// At and past the perspective limit the scale is reported as 0, never
	// infinity or a negative value.
	if got := perspectiveScale(p, p); got != 0 {
		t.Errorf("scale at z=perspective = %v, want 0", got)
	}
	if got := perspectiveScale(p, p+100); got != 0 {
		t.Errorf("scale past perspective = %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	if got := clamp(5, 0, 10); got != 5 {
		t.Errorf("clamp(5,0,10) = %v", got)
	}
	if got := clamp(-1, 0, 10); got != 0 {
		t.Errorf("clamp(-1,0,10) = %v", got)
	}
	if got := clamp(11, 0, 10); got != 10 {
		t.Errorf("clamp(11,0,10) = %v", got)
	}
}

func TestLerp(t *testing.T) {
	if got := lerp(0, 10, 0.5); !approxEqual(got, 5, epsilon) {
		t.Errorf("lerp(0,10,0.5) = %v, want 5", got)
	}
	if got := lerp(3, 3, 0.9); !approxEqual(got, 3, epsilon) {
		t.Errorf("lerp(3,3,0.9) = %v, want 3", got)
	}
}
