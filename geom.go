package drift

import "math"

// Wrap maps v into the half-open interval [-r/2, r/2) using true modular
// arithmetic, so negative inputs land in the interval as well. Used to keep
// each layer's visible tile near the viewport no matter how far the camera
// has panned. Returns 0 when r is not positive.
func Wrap(v, r float64) float64 {
	if r <= 0 {
		return 0
	}
	w := math.Mod(v+r/2, r)
	if w < 0 {
		w += r
	}
	return w - r/2
}

// TileOffsets returns gridSize² integer offsets spanning
// -⌊gridSize/2⌋..⌊gridSize/2⌋ on both axes in row-major order.
//
// gridSize should be odd so that exactly one offset is (0, 0). An even
// gridSize is accepted but forfeits the center tile: the grid then spans
// -gridSize/2..gridSize/2-1. A warning is emitted and the grid is generated
// anyway, favoring availability over strictness. gridSize below 1 is
// treated as 1.
func TileOffsets(gridSize int) []TileOffset {
	if gridSize < 1 {
		gridSize = 1
	}
	if gridSize%2 == 0 {
		warnf("tile grid size %d is even; grid will not be centered on (0,0)", gridSize)
	}
	lo := -(gridSize / 2)
	offsets := make([]TileOffset, 0, gridSize*gridSize)
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			offsets = append(offsets, TileOffset{Col: lo + col, Row: lo + row})
		}
	}
	return offsets
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// lerp moves a toward b by factor t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// perspectiveScale is the apparent scale of content at effective depth z
// under a perspective constant p: p / (p - z). Returns 0 when the denominator
// is at or past the perspective limit; callers must treat 0 as "skip this
// frame" rather than divide by it.
func perspectiveScale(p, z float64) float64 {
	d := p - z
	if d < 1e-9 {
		return 0
	}
	return p / d
}
