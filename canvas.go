package drift

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// settleAnim animates a card's lift scale back to resting after a drag ends.
type settleAnim struct {
	key   InstanceKey
	tween *gween.Tween
	scale float64
}

// zoomIntent is a queued zoom request carrying the cursor position for
// anchoring. Input callbacks only enqueue; the scheduler tick applies.
type zoomIntent struct {
	deltaZ float64
	cursor Vec2
}

// Canvas is the controller that owns the whole simulation: world layout,
// camera physics, input normalization, and the drag/focus state machine.
// Call Update once per tick and hand Frame's output to a renderer.
//
// Everything runs on one logical thread: input callbacks mutate lightweight
// state (velocities, deltas, mode flags) and the Update tick does the
// integration, so no locking is involved.
type Canvas struct {
	cfg   *Config
	world *World
	cam   *Camera
	input *Normalizer
	inter *Interaction

	viewportW float64
	viewportH float64

	zoomIntents []zoomIntent
	settle      *settleAnim
	hover       *InstanceKey

	// OnHoverChange fires when the instance under the cursor changes,
	// including to nil on leave. Cold path, like Interaction.OnFocusChange.
	OnHoverChange func(hovered *InstanceKey)

	renderer Renderer

	// frame buffers are reused between ticks.
	frame Frame

	injectQueue []syntheticEvent
	testRunner  *TestRunner

	debug  bool
	killed bool
}

// NewCanvas builds a canvas from a config and the viewport size. A nil
// config uses DefaultConfig. The config is validated; structural problems
// (no layers, bad card references) are returned as errors.
func NewCanvas(cfg *Config, viewportW, viewportH float64) (*Canvas, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	c := &Canvas{
		cfg:       cfg,
		viewportW: viewportW,
		viewportH: viewportH,
	}
	c.world = NewWorld(cfg)
	c.world.UpdateLayout(viewportW, viewportH)
	c.cam = NewCamera(cfg)
	c.inter = NewInteraction(c.world, c.cam, cfg)
	c.input = NewNormalizer(Callbacks{
		OnPointerDown: c.pointerDown,
		OnPointerMove: c.pointerMove,
		OnPointerUp:   c.pointerUp,
		OnHover:       c.pointerHover,
		OnDrag:        c.dragPan,
		OnWheelPan:    c.wheelPan,
		OnZoom:        c.zoomWheel,
		OnPinch:       c.pinchZoom,
	})
	return c, nil
}

// World returns the world model.
func (c *Canvas) World() *World {
	return c.world
}

// Camera returns the camera state. Hosts may read it freely; writes should
// go through the interaction surface or the camera's own methods.
func (c *Canvas) Camera() *Camera {
	return c.cam
}

// Input returns the input normalizer, for enable/disable gating.
func (c *Canvas) Input() *Normalizer {
	return c.input
}

// Interaction returns the drag/focus state machine.
func (c *Canvas) Interaction() *Interaction {
	return c.inter
}

// SetRenderer sets the external renderer that receives each tick's frame.
// Optional: hosts can instead read Frame after each Update.
func (c *Canvas) SetRenderer(r Renderer) {
	c.renderer = r
}

// SetDebugMode enables per-tick stats logging to stderr.
func (c *Canvas) SetDebugMode(enabled bool) {
	c.debug = enabled
}

// UpdateLayout recomputes the responsive layout from a new viewport size.
// Wire this to the host's resize notification.
func (c *Canvas) UpdateLayout(viewportW, viewportH float64) {
	if viewportW <= 0 || viewportH <= 0 {
		return
	}
	c.viewportW = viewportW
	c.viewportH = viewportH
	c.world.UpdateLayout(viewportW, viewportH)
}

// SetFocus programmatically focuses a card by ID. Unknown IDs silently
// clear focus.
func (c *Canvas) SetFocus(cardID string, tileIndex int) {
	c.inter.SetFocus(cardID, tileIndex)
}

// ClearFocus removes any focus.
func (c *Canvas) ClearFocus() {
	c.inter.ClearFocus()
}

// FocusedInstance returns the focused card instance, or nil.
func (c *Canvas) FocusedInstance() *InstanceKey {
	return c.inter.Focused()
}

// HoveredInstance returns the card instance under the cursor, or nil.
// Always nil when the hover feature is disabled.
func (c *Canvas) HoveredInstance() *InstanceKey {
	return c.hover
}

// Frame returns the most recent simulation output. The frame and its
// slices are reused every tick and MUST NOT be retained.
func (c *Canvas) Frame() *Frame {
	return &c.frame
}

// Kill tears the canvas down: input listeners stop emitting, the in-flight
// drag is cancelled without committing, and settle/scroll tweens are
// released. Idempotent; Update becomes a no-op afterwards.
func (c *Canvas) Kill() {
	if c.killed {
		return
	}
	c.killed = true
	c.input.Kill()
	c.inter.CancelDrag()
	c.cam.StopTweens()
	c.settle = nil
	c.zoomIntents = nil
	c.injectQueue = nil
	c.testRunner = nil
}

// Update advances the simulation one tick: poll input, apply queued zoom
// intents with cursor anchoring, integrate the camera, attract toward the
// focused card, advance the settle animation, and rebuild the frame output.
// Idempotent per tick and free of side effects beyond the frame buffers.
func (c *Canvas) Update() {
	if c.killed {
		return
	}
	var t0 time.Time
	if c.debug {
		t0 = time.Now()
	}

	if c.testRunner != nil {
		c.testRunner.step(c)
	}
	if !c.processInjected() {
		c.input.Poll()
	}

	c.applyZoomIntents()

	focused := c.inter.Focused()
	c.cam.step(1.0/float32(ebiten.TPS()), focused != nil)
	if focused != nil {
		c.attractToFocus(*focused)
	}

	if ended := c.inter.takeDragEnded(); ended != nil {
		c.startSettle(*ended)
	}
	c.advanceSettle(1.0 / float32(ebiten.TPS()))

	c.rebuildFrame()

	if c.renderer != nil {
		c.renderer.RenderFrame(&c.frame)
	}
	if c.debug {
		c.debugLog(debugStats{
			stepTime:      time.Since(t0),
			layerCount:    len(c.frame.Layers),
			instanceCount: len(c.frame.Cards),
			mode:          c.inter.Mode(),
		})
	}
}

// --- Input routing ---

func (c *Canvas) pointerDown(p Vec2) {
	c.inter.PointerDown(c.instanceAt(p), p)
}

func (c *Canvas) pointerMove(p Vec2) {
	c.inter.PointerMove(p)
}

func (c *Canvas) pointerUp(p Vec2) {
	c.inter.PointerUp(p)
}

func (c *Canvas) pointerHover(p Vec2) {
	if !c.cfg.Features.Hover {
		return
	}
	prev := c.hover
	c.hover = c.instanceAt(p)
	if c.OnHoverChange == nil {
		return
	}
	switch {
	case prev == nil && c.hover == nil:
	case prev != nil && c.hover != nil && *prev == *c.hover:
	default:
		c.OnHoverChange(c.hover)
	}
}

// dragPan turns background drag deltas into pan velocity. Suppressed while
// a card drag is in progress.
func (c *Canvas) dragPan(delta Vec2, p Vec2) {
	if c.inter.Mode() == ModeDraggingCard || !c.cfg.Features.Pan {
		return
	}
	if step, ok := c.screenDeltaToPan(delta); ok {
		// Replacing (not accumulating) keeps the drag 1:1 while held and
		// leaves the last frame's velocity as inertia on release.
		c.cam.PanVelocity = step
	}
}

func (c *Canvas) wheelPan(delta Vec2) {
	if !c.cfg.Features.Pan {
		return
	}
	d := delta.Scale(c.cfg.Tuning.WheelPanSpeed * c.cfg.ScrollSpeed)
	if step, ok := c.screenDeltaToPan(d); ok {
		c.cam.PanVelocity = c.cam.PanVelocity.Add(step)
	}
}

func (c *Canvas) zoomWheel(deltaY float64, cursor Vec2) {
	if !c.cfg.Features.Zoom {
		return
	}
	c.zoomIntents = append(c.zoomIntents, zoomIntent{
		deltaZ: deltaY * c.cfg.Tuning.ZoomSpeed,
		cursor: cursor,
	})
}

func (c *Canvas) pinchZoom(scaleDelta float64, center Vec2) {
	if !c.cfg.Features.Zoom {
		return
	}
	c.zoomIntents = append(c.zoomIntents, zoomIntent{
		deltaZ: scaleDelta * c.cfg.Tuning.PinchZoomSpeed,
		cursor: center,
	})
}

// screenDeltaToPan converts a screen-space delta into pan units through the
// reference layer, negated so dragged content follows the pointer. Reports
// false at a projection singularity or zero-speed reference layer.
func (c *Canvas) screenDeltaToPan(delta Vec2) (Vec2, bool) {
	ref := c.refLayer()
	s := c.cam.LayerScale(ref.BaseZ)
	if s == 0 || ref.Speed == 0 {
		return Vec2{}, false
	}
	return delta.Scale(-1 / (s * ref.Speed)), true
}

// refLayer is the layer used for zoom anchoring and pan conversion: the
// focused card's layer when a card is focused, else the middle layer.
func (c *Canvas) refLayer() *Layer {
	layers := c.world.Layers()
	if f := c.inter.Focused(); f != nil {
		if card := c.world.CardByID(f.CardID); card != nil {
			return layers[card.LayerIndex]
		}
	}
	return layers[len(layers)/2]
}

// applyZoomIntents drains queued zoom intents through cursor-anchored
// compensation. Each intent that survives the degenerate-case guards adds a
// zoom impulse plus the pan impulse that keeps the cursor's world point
// visually stationary.
func (c *Canvas) applyZoomIntents() {
	if len(c.zoomIntents) == 0 {
		return
	}
	ref := c.refLayer()
	center := Vec2{c.viewportW / 2, c.viewportH / 2}
	for _, zi := range c.zoomIntents {
		c.cam.ZoomImpulse(zi.deltaZ, zi.cursor.Sub(center), ref.Speed, ref.BaseZ)
	}
	c.zoomIntents = c.zoomIntents[:0]
}

// attractToFocus nudges the camera toward centering the focused card at the
// required on-screen scale. The same world card repeats across the tile
// grid at a period of extent/speed in pan units, so the target is the
// replica nearest the current pan, chosen by rounding the signed pan-space
// distance to the nearest whole period.
func (c *Canvas) attractToFocus(key InstanceKey) {
	card := c.world.CardByID(key.CardID)
	if card == nil {
		// Card no longer present; drop the focus silently.
		c.inter.ClearFocus()
		return
	}
	layer := c.world.Layers()[card.LayerIndex]
	if layer.Speed == 0 {
		// A static layer cannot be centered by panning.
		return
	}

	offsets := c.world.Offsets()
	tile := TileOffset{}
	if key.TileIndex >= 0 && key.TileIndex < len(offsets) {
		tile = offsets[key.TileIndex]
	}

	q := c.world.CardCenter(card, tile)
	base := q.Scale(1 / layer.Speed)
	ext := c.world.Extent()
	period := Vec2{ext.X / layer.Speed, ext.Y / layer.Speed}

	target := base
	if period.X > 0 {
		target.X += math.Round((c.cam.Pan.X-base.X)/period.X) * period.X
	}
	if period.Y > 0 {
		target.Y += math.Round((c.cam.Pan.Y-base.Y)/period.Y) * period.Y
	}

	sNeeded := c.cfg.Tuning.FocusScale / (card.Scale * c.world.LayoutFactor())
	z, ok := c.cam.depthForScale(sNeeded, layer.BaseZ)
	if !ok {
		return
	}
	c.cam.attract(target, z)
}

// --- Settle animation ---

func (c *Canvas) startSettle(key InstanceKey) {
	lift := c.cfg.Tuning.LiftScale
	c.settle = &settleAnim{
		key:   key,
		tween: gween.New(float32(lift), 1, float32(c.cfg.Tuning.SettleDuration), ease.OutQuad),
		scale: lift,
	}
}

func (c *Canvas) advanceSettle(dt float32) {
	if c.settle == nil {
		return
	}
	val, done := c.settle.tween.Update(dt)
	c.settle.scale = float64(val)
	if done {
		c.settle = nil
	}
}

// --- Frame output ---

// rebuildFrame recomputes every layer and card instance transform from the
// current simulation state. Buffers are reused; allocation is bounded by
// the instance count.
func (c *Canvas) rebuildFrame() {
	c.frame.Layers = c.frame.Layers[:0]
	c.frame.Cards = c.frame.Cards[:0]

	ext := c.world.Extent()
	center := Vec2{c.viewportW / 2, c.viewportH / 2}
	factor := c.world.LayoutFactor()
	focused := c.inter.Focused()
	dragKey, dragging := c.inter.DraggingKey()
	live := c.inter.LiveDelta()
	lift := c.cfg.Tuning.LiftScale

	for _, layer := range c.world.Layers() {
		sL := c.cam.LayerScale(layer.BaseZ)
		if sL == 0 {
			// Perspective singularity; skip the layer for this frame.
			continue
		}
		off := Vec2{
			Wrap(-c.cam.Pan.X*layer.Speed, ext.X),
			Wrap(-c.cam.Pan.Y*layer.Speed, ext.Y),
		}
		c.frame.Layers = append(c.frame.Layers, LayerTransform{
			Index:  layer.Index,
			Offset: off,
			Scale:  sL,
			Depth:  c.cam.Z + layer.BaseZ,
		})

		for _, card := range layer.Cards {
			for ti, tile := range c.world.Offsets() {
				key := InstanceKey{CardID: card.ID, TileIndex: ti}
				q := c.world.CardCenter(card, tile)
				// The actively-dragged card bypasses smoothing: its live
				// delta applies directly, to every tile replica, so the
				// card stays coherent across the grid.
				if dragging && card.ID == dragKey.CardID {
					q = q.Add(live)
				}
				scale := card.Scale * factor * sL
				isDragInstance := dragging && key == dragKey
				if isDragInstance {
					scale *= lift
				} else if c.settle != nil && key == c.settle.key {
					scale *= c.settle.scale
				}
				isFocused := focused != nil && key == *focused
				c.frame.Cards = append(c.frame.Cards, CardTransform{
					Key:        key,
					LayerIndex: layer.Index,
					Position: Vec2{
						center.X + (off.X+q.X)*sL,
						center.Y + (off.Y+q.Y)*sL,
					},
					Scale:      scale,
					IsDragging: isDragInstance,
					IsFocused:  isFocused,
					IsDimmed:   focused != nil && !isFocused,
				})
			}
		}
	}
	c.frame.Focused = focused
}

// instanceAt returns the topmost card instance whose rect contains the
// screen point, or nil for the empty background. Uses the transforms from
// the most recent frame, which is what is on screen when the event fires.
func (c *Canvas) instanceAt(p Vec2) *InstanceKey {
	for i := len(c.frame.Cards) - 1; i >= 0; i-- {
		ct := &c.frame.Cards[i]
		card := c.world.CardByID(ct.Key.CardID)
		if card == nil {
			continue
		}
		halfW := card.Width * ct.Scale / 2
		halfH := card.Height * ct.Scale / 2
		if math.Abs(p.X-ct.Position.X) <= halfW && math.Abs(p.Y-ct.Position.Y) <= halfH {
			key := ct.Key
			return &key
		}
	}
	return nil
}
