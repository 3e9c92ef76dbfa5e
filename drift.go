package drift

// Vec2 is a 2D vector used for positions, offsets, deltas, and velocities
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v with both components multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// TileOffset is an integer grid offset identifying one replica of the world
// tile. (0, 0) is the center tile.
type TileOffset struct {
	Col, Row int
}

// InstanceKey addresses a single on-screen card instance: one logical card
// replicated at one tile offset. TileIndex is the row-major index into the
// offsets returned by TileOffsets.
type InstanceKey struct {
	CardID    string
	TileIndex int
}

// Mode is the interaction state of the canvas. Panning is ambient and not
// tracked as a separate mode.
type Mode uint8

const (
	ModeIdle         Mode = iota // no card interaction in progress
	ModeDraggingCard             // a pointer is down on a card instance
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// zoomMods are the modifiers that turn a wheel event into a zoom intent.
const zoomMods = ModCtrl | ModMeta

// LayerTransform is the per-frame output for one depth layer: the wrapped
// content offset and the apparent perspective scale. A world point q on the
// layer lands on screen at viewportCenter + (Offset + q) * Scale.
type LayerTransform struct {
	Index  int     // layer index, back-to-front
	Offset Vec2    // wrapped content offset in layout units, pre-scale
	Scale  float64 // apparent scale from the perspective model
	Depth  float64 // effective depth (camera Z + layer base Z)
}

// CardTransform is the per-frame output for one card instance. Position is
// the instance center in screen space; Scale is the final on-screen scale
// including the layer's perspective scale and any drag lift.
type CardTransform struct {
	Key        InstanceKey
	LayerIndex int
	Position   Vec2
	Scale      float64
	IsDragging bool
	IsFocused  bool
	IsDimmed   bool
}

// Frame is the full per-tick simulation output handed to the renderer.
// The slices are reused between ticks and MUST NOT be retained.
type Frame struct {
	Layers  []LayerTransform
	Cards   []CardTransform
	Focused *InstanceKey // nil when no card is focused
}

// Renderer consumes per-frame transforms and paints them. The core never
// paints pixels itself; it only computes numbers.
type Renderer interface {
	RenderFrame(f *Frame)
}
