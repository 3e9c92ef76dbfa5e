// Package drift is the simulation core for an infinitely tiled, pseudo-3D
// parallax card canvas built on [Ebitengine].
//
// Drift computes numbers, not pixels: each tick it advances an inertial
// pan/zoom camera, a drag/focus interaction state machine, and wrap-around
// tiling math, then emits per-layer and per-card transforms for an external
// renderer to paint.
//
// # Quick start
//
// Describe the canvas in YAML (or build a [Config] in code), create a
// [Canvas], and drive it from an [ebiten.Game]:
//
//	cfg, err := drift.LoadConfigFile("canvas.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	canvas, err := drift.NewCanvas(cfg, 1280, 720)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	type Game struct{ canvas *drift.Canvas }
//
//	func (g *Game) Update() error { g.canvas.Update(); return nil }
//	func (g *Game) Draw(screen *ebiten.Image) {
//		for _, ct := range g.canvas.Frame().Cards {
//			// paint ct.Position / ct.Scale / ct.IsFocused ...
//		}
//	}
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Model
//
// The world is one rectangular tile of cards on ordered parallax layers,
// replicated across an odd×odd grid of tile offsets so panning wraps
// seamlessly. The camera pans in layer-independent "pan units" (each layer
// moves by pan × speed) and zooms along a depth axis under a perspective
// projection. Clicking a card focuses it: the camera is attracted toward
// centering that card's nearest replica at a fixed on-screen scale.
// Dragging a card accumulates a persistent offset shared by all of its
// tile replicas.
//
// Interaction comes from mouse, touch (including two-finger pinch zoom),
// and wheel input, normalized by [Normalizer]; ctrl- or meta-modified
// wheel events zoom toward the cursor, unmodified ones pan. Settle
// animations and programmatic camera moves run on [gween] tweens.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package drift
