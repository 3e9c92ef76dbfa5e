package drift

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels of movement before a drag starts
)

// Callbacks receives the normalized input stream. Any callback may be nil.
// Pointer positions are in screen space.
type Callbacks struct {
	// OnPointerDown fires when a pointer button or touch goes down.
	OnPointerDown func(p Vec2)
	// OnPointerMove fires when a held pointer moves.
	OnPointerMove func(p Vec2)
	// OnPointerUp fires when a pointer button or touch is released.
	OnPointerUp func(p Vec2)
	// OnHover fires when the mouse moves with no button held.
	OnHover func(p Vec2)
	// OnDrag fires with incremental deltas once movement exceeds the dead
	// zone. Suppressed for pointers participating in a pinch.
	OnDrag func(delta Vec2, p Vec2)
	// OnWheelPan fires for unmodified wheel events.
	OnWheelPan func(delta Vec2)
	// OnZoom fires for wheel events with ctrl or meta held, carrying the
	// vertical delta and the cursor position for anchoring.
	OnZoom func(deltaY float64, cursor Vec2)
	// OnPinch fires during a two-finger gesture with the relative scale
	// change between consecutive samples and the gesture center.
	OnPinch func(scaleDelta float64, center Vec2)
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	start    Vec2
	last     Vec2
	dragging bool
}

type pinchState struct {
	active   bool
	prevDist float64
}

// Normalizer converts raw mouse, touch, and wheel input into the uniform
// stream of drag, wheel-pan, zoom, and pinch intents in Callbacks. It owns
// enable/disable gating: while disabled, polling still tracks pointer state
// but every callback is suppressed, so re-enabling is cheap.
type Normalizer struct {
	cb       Callbacks
	enabled  bool
	killed   bool
	deadZone float64

	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	pinch        pinchState
}

// NewNormalizer creates an enabled normalizer emitting into cb.
func NewNormalizer(cb Callbacks) *Normalizer {
	return &Normalizer{cb: cb, enabled: true, deadZone: defaultDragDeadZone}
}

// Enable resumes callback emission. No-op after Kill.
func (n *Normalizer) Enable() {
	if !n.killed {
		n.enabled = true
	}
}

// Disable suppresses all callbacks without tearing anything down.
func (n *Normalizer) Disable() {
	n.enabled = false
}

// Kill permanently tears the normalizer down and clears all gesture state.
// Idempotent; Enable after Kill is a no-op.
func (n *Normalizer) Kill() {
	n.killed = true
	n.enabled = false
	n.pointers = [maxPointers]pointerState{}
	n.touchUsed = [maxPointers]bool{}
	n.pinch = pinchState{}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (n *Normalizer) SetDragDeadZone(pixels float64) {
	n.deadZone = pixels
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// Poll reads the current device state from Ebiten and runs the pointer
// state machines. Call once per tick. No-op after Kill.
func (n *Normalizer) Poll() {
	if n.killed {
		return
	}
	mods := readModifiers()

	n.pollMouse()
	n.pollTouches()
	n.detectPinch()
	n.pollWheel(mods)
}

// pollMouse handles the mouse as pointer 0.
func (n *Normalizer) pollMouse() {
	mx, my := ebiten.CursorPosition()
	p := Vec2{float64(mx), float64(my)}
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	n.process(0, p, pressed)
}

// pollTouches handles touch input as pointers 1-9.
func (n *Normalizer) pollTouches() {
	touchIDs := ebiten.AppendTouchIDs(n.prevTouchIDs[:0])
	n.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := n.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		n.process(slot, Vec2{float64(tx), float64(ty)}, true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if n.touchUsed[i] && !activeSlots[i] {
			ps := &n.pointers[i]
			if ps.down {
				n.process(i, ps.last, false)
			}
			n.touchUsed[i] = false
			n.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (n *Normalizer) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if n.touchUsed[i] && n.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !n.touchUsed[i] {
			n.touchUsed[i] = true
			n.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// pollWheel classifies wheel input: modifier held means zoom intent, plain
// wheel means pan intent.
func (n *Normalizer) pollWheel(mods KeyModifiers) {
	dx, dy := ebiten.Wheel()
	if dx == 0 && dy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	n.wheel(Vec2{dx, dy}, Vec2{float64(mx), float64(my)}, mods)
}

// wheel is the pure wheel classification core, shared with injected input.
func (n *Normalizer) wheel(delta Vec2, cursor Vec2, mods KeyModifiers) {
	if mods&zoomMods != 0 {
		n.fireZoom(delta.Y, cursor)
		return
	}
	n.fireWheelPan(delta)
}

// process runs the state machine for a single pointer. This is the pure
// core: tests and injected input feed it directly.
func (n *Normalizer) process(pointerID int, p Vec2, pressed bool) {
	ps := &n.pointers[pointerID]

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.start = p
		ps.last = p
		ps.dragging = false
		n.firePointerDown(p)

	case !pressed && ps.down:
		ps.down = false
		ps.dragging = false
		n.firePointerUp(p)

	case pressed && ps.down:
		if p != ps.last {
			n.firePointerMove(p)
			if !ps.dragging {
				d := p.Sub(ps.start)
				if math.Hypot(d.X, d.Y) > n.deadZone {
					ps.dragging = true
				}
			}
			if ps.dragging && !n.pinch.active {
				n.fireDrag(p.Sub(ps.last), p)
			}
			ps.last = p
		}

	default:
		if p != ps.last {
			n.fireHover(p)
			ps.last = p
		}
	}
}

// detectPinch watches for exactly two active touch pointers and converts
// their inter-finger distance ratio into pinch-zoom intents. Ordinary drag
// handling is suppressed for the gesture's duration.
func (n *Normalizer) detectPinch() {
	var p0, p1 int
	count := 0
	for i := 1; i < maxPointers; i++ {
		if n.pointers[i].down {
			if count == 0 {
				p0 = i
			} else if count == 1 {
				p1 = i
			}
			count++
		}
	}

	if count != 2 {
		n.pinch.active = false
		return
	}

	ps0 := &n.pointers[p0]
	ps1 := &n.pointers[p1]
	dist := math.Hypot(ps1.last.X-ps0.last.X, ps1.last.Y-ps0.last.Y)
	center := Vec2{(ps0.last.X + ps1.last.X) / 2, (ps0.last.Y + ps1.last.Y) / 2}

	if !n.pinch.active {
		n.pinch.active = true
		n.pinch.prevDist = dist
	} else if n.pinch.prevDist > 0 {
		n.firePinch(dist/n.pinch.prevDist-1, center)
		n.pinch.prevDist = dist
	}

	// Suppress single-pointer drag while both fingers are part of the pinch.
	ps0.dragging = false
	ps1.dragging = false
}

// --- Gated emission ---

func (n *Normalizer) firePointerDown(p Vec2) {
	if n.enabled && n.cb.OnPointerDown != nil {
		n.cb.OnPointerDown(p)
	}
}

func (n *Normalizer) firePointerMove(p Vec2) {
	if n.enabled && n.cb.OnPointerMove != nil {
		n.cb.OnPointerMove(p)
	}
}

func (n *Normalizer) firePointerUp(p Vec2) {
	if n.enabled && n.cb.OnPointerUp != nil {
		n.cb.OnPointerUp(p)
	}
}

func (n *Normalizer) fireHover(p Vec2) {
	if n.enabled && n.cb.OnHover != nil {
		n.cb.OnHover(p)
	}
}

func (n *Normalizer) fireDrag(delta Vec2, p Vec2) {
	if n.enabled && n.cb.OnDrag != nil {
		n.cb.OnDrag(delta, p)
	}
}

func (n *Normalizer) fireWheelPan(delta Vec2) {
	if n.enabled && n.cb.OnWheelPan != nil {
		n.cb.OnWheelPan(delta)
	}
}

func (n *Normalizer) fireZoom(deltaY float64, cursor Vec2) {
	if n.enabled && n.cb.OnZoom != nil {
		n.cb.OnZoom(deltaY, cursor)
	}
}

func (n *Normalizer) firePinch(scaleDelta float64, center Vec2) {
	if n.enabled && n.cb.OnPinch != nil {
		n.cb.OnPinch(scaleDelta, center)
	}
}
