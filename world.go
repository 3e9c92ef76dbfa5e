package drift

// Layer is one depth band of the world. Cards on a layer share its pan
// speed and resting depth. Layers are ordered back-to-front.
type Layer struct {
	Index int
	Speed float64
	BaseZ float64
	Cards []*Card
}

// Card is the immutable authored data for one logical card. Mutable
// per-card state (the accumulated drag delta) lives on the World, keyed by
// card ID so every tile replica of the card stays coherently repositioned.
type Card struct {
	ID         string
	LayerIndex int
	Pos        Vec2 // authored position in world-local coordinates
	Scale      float64
	Width      float64
	Height     float64
}

// World lays out layers and cards inside one logical tile and owns the
// per-card drag deltas. The tile is replicated at every offset of the tile
// grid to fake infinite wraparound.
type World struct {
	layers  []*Layer
	cards   map[string]*Card
	ordered []*Card // config order, for deterministic iteration
	offsets []TileOffset

	baseWidth  float64 // authored tile size
	baseHeight float64
	factor     float64 // responsive layout factor from the viewport

	dragDeltas map[string]Vec2
}

// NewWorld builds the world model from a validated config. The layout
// factor starts at 1; call UpdateLayout once the viewport size is known.
func NewWorld(cfg *Config) *World {
	w := &World{
		cards:      make(map[string]*Card, len(cfg.Cards)),
		dragDeltas: make(map[string]Vec2),
		baseWidth:  cfg.World.Width,
		baseHeight: cfg.World.Height,
		factor:     1,
		offsets:    TileOffsets(cfg.Grid),
	}
	for i, lc := range cfg.Layers {
		w.layers = append(w.layers, &Layer{Index: i, Speed: lc.Speed, BaseZ: lc.BaseZ})
	}
	for _, cc := range cfg.Cards {
		card := &Card{
			ID:         cc.ID,
			LayerIndex: cc.Layer,
			Pos:        Vec2{cc.X, cc.Y},
			Scale:      cc.Scale,
			Width:      cc.Width,
			Height:     cc.Height,
		}
		w.cards[card.ID] = card
		w.ordered = append(w.ordered, card)
		layer := w.layers[card.LayerIndex]
		layer.Cards = append(layer.Cards, card)
	}
	return w
}

// UpdateLayout recomputes the responsive layout factor from the viewport
// size. One world tile always spans the viewport width, so authored
// positions scale proportionally. A non-positive viewport is ignored.
func (w *World) UpdateLayout(viewportW, viewportH float64) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	w.factor = viewportW / w.baseWidth
}

// LayoutFactor returns the current responsive layout factor.
func (w *World) LayoutFactor() float64 {
	return w.factor
}

// Extent returns the world tile size in layout units (authored size times
// the layout factor). This is the wrap period for layer offsets and the
// replica spacing for tile instances.
func (w *World) Extent() Vec2 {
	return Vec2{w.baseWidth * w.factor, w.baseHeight * w.factor}
}

// Layers returns the layers back-to-front. The slice MUST NOT be mutated.
func (w *World) Layers() []*Layer {
	return w.layers
}

// Cards returns every card in config order. The slice MUST NOT be mutated.
func (w *World) Cards() []*Card {
	return w.ordered
}

// CardByID looks up a card. Returns nil for unknown IDs.
func (w *World) CardByID(id string) *Card {
	return w.cards[id]
}

// Offsets returns the tile grid offsets in row-major order.
func (w *World) Offsets() []TileOffset {
	return w.offsets
}

// InstanceCount is the number of on-screen card instances: one per card per
// tile offset.
func (w *World) InstanceCount() int {
	return len(w.ordered) * len(w.offsets)
}

// DragDelta returns the committed drag delta for a card. The delta is
// card-scoped: every tile replica shares it.
func (w *World) DragDelta(id string) Vec2 {
	return w.dragDeltas[id]
}

// CommitDrag adds d to the card's persistent drag delta, so repeated drags
// accumulate. Unknown IDs are ignored.
func (w *World) CommitDrag(id string, d Vec2) {
	if _, ok := w.cards[id]; !ok {
		return
	}
	w.dragDeltas[id] = w.dragDeltas[id].Add(d)
}

// CardCenter returns a card instance's center in layout units relative to
// the world origin, before camera pan and perspective are applied: authored
// position scaled by the layout factor, plus the committed drag delta, plus
// the tile replica offset.
func (w *World) CardCenter(card *Card, tile TileOffset) Vec2 {
	ext := w.Extent()
	p := card.Pos.Scale(w.factor).Add(w.dragDeltas[card.ID])
	return Vec2{
		p.X + float64(tile.Col)*ext.X,
		p.Y + float64(tile.Row)*ext.Y,
	}
}
