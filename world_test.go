package drift

import "testing"

func testWorldConfig() *Config {
	cfg := &Config{
		World: WorldConfig{Width: 1600, Height: 1000},
		Layers: []LayerConfig{
			{Speed: 0.2, BaseZ: -600},
			{Speed: 0.5, BaseZ: -250},
			{Speed: 1.0, BaseZ: 0},
		},
		Cards: []CardConfig{
			{ID: "aurora", Layer: 2, X: -300, Y: 120},
			{ID: "basalt", Layer: 1, X: 250, Y: -80},
			{ID: "cinder", Layer: 1, X: 0, Y: 300, Scale: 0.8},
		},
		Grid: 3,
	}
	cfg.applyDefaults()
	return cfg
}

func TestNewWorld(t *testing.T) {
	w := NewWorld(testWorldConfig())

	if len(w.Layers()) != 3 {
		t.Fatalf("layers = %d, want 3", len(w.Layers()))
	}
	if len(w.Cards()) != 3 {
		t.Fatalf("cards = %d, want 3", len(w.Cards()))
	}
	if len(w.Offsets()) != 9 {
		t.Fatalf("offsets = %d, want 9", len(w.Offsets()))
	}
	if w.InstanceCount() != 27 {
		t.Errorf("instance count = %d, want 27", w.InstanceCount())
	}

	if card := w.CardByID("basalt"); card == nil || card.LayerIndex != 1 {
		t.Errorf("CardByID(basalt) = %+v", card)
	}
	if w.CardByID("nope") != nil {
		t.Error("unknown card id should return nil")
	}

	// Cards land on their layer's card list.
	if n := len(w.Layers()[1].Cards); n != 2 {
		t.Errorf("layer 1 card count = %d, want 2", n)
	}
}

func TestUpdateLayout(t *testing.T) {
	w := NewWorld(testWorldConfig())
	if w.LayoutFactor() != 1 {
		t.Fatalf("initial factor = %v, want 1", w.LayoutFactor())
	}

	w.UpdateLayout(800, 600)
	if !approxEqual(w.LayoutFactor(), 0.5, epsilon) {
		t.Errorf("factor = %v, want 0.5", w.LayoutFactor())
	}
	ext := w.Extent()
	if !approxEqual(ext.X, 800, epsilon) || !approxEqual(ext.Y, 500, epsilon) {
		t.Errorf("extent = %v, want (800, 500)", ext)
	}

	// A non-positive viewport is ignored.
	w.UpdateLayout(0, 600)
	if !approxEqual(w.LayoutFactor(), 0.5, epsilon) {
		t.Errorf("factor after bogus layout = %v, want 0.5", w.LayoutFactor())
	}
}

func TestDragAccumulation(t *testing.T) {
	w := NewWorld(testWorldConfig())

	w.CommitDrag("aurora", Vec2{10, 10})
	w.CommitDrag("aurora", Vec2{5, -5})

	got := w.DragDelta("aurora")
	if !approxEqual(got.X, 15, epsilon) || !approxEqual(got.Y, 5, epsilon) {
		t.Errorf("accumulated delta = %v, want (15, 5)", got)
	}

	// Other cards are unaffected.
	if d := w.DragDelta("basalt"); d != (Vec2{}) {
		t.Errorf("basalt delta = %v, want zero", d)
	}
}

func TestCommitDragUnknownID(t *testing.T) {
	w := NewWorld(testWorldConfig())
	w.CommitDrag("ghost", Vec2{100, 100})
	if d := w.DragDelta("ghost"); d != (Vec2{}) {
		t.Errorf("unknown id accumulated a delta: %v", d)
	}
}

func TestCardCenter(t *testing.T) {
	w := NewWorld(testWorldConfig())
	w.UpdateLayout(800, 600) // factor 0.5, extent (800, 500)
	card := w.CardByID("aurora")

	// Center tile: authored position scaled by the layout factor.
	got := w.CardCenter(card, TileOffset{0, 0})
	if !approxEqual(got.X, -150, epsilon) || !approxEqual(got.Y, 60, epsilon) {
		t.Errorf("center tile = %v, want (-150, 60)", got)
	}

	// Replica tile: shifted by whole extents.
	got = w.CardCenter(card, TileOffset{1, -1})
	if !approxEqual(got.X, 650, epsilon) || !approxEqual(got.Y, -440, epsilon) {
		t.Errorf("replica tile = %v, want (650, -440)", got)
	}

	// The committed drag delta applies to every replica.
	w.CommitDrag("aurora", Vec2{20, -10})
	got = w.CardCenter(card, TileOffset{1, -1})
	if !approxEqual(got.X, 670, epsilon) || !approxEqual(got.Y, -450, epsilon) {
		t.Errorf("replica with drag = %v, want (670, -450)", got)
	}
}
