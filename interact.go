package drift

import "math"

// dragState is the live state of a card drag, created on pointer-down over
// a card instance and cleared on pointer-up.
type dragState struct {
	key   InstanceKey
	start Vec2 // pointer-down position, screen space
	live  Vec2 // delta accumulated since pointer-down, world units
}

// Interaction is the drag/focus state machine. It tracks whether the user
// is idle or dragging a specific card instance, resolves click-vs-drag
// ambiguity on release, and manages focus toggling. Panning is ambient:
// the canvas suppresses it while a card drag is in progress.
type Interaction struct {
	world    *World
	cam      *Camera
	features *Features

	clickThreshold float64

	mode  Mode
	drag  dragState
	focus *InstanceKey

	// dragEnded holds the instance whose drag just resolved, until the
	// scheduler consumes it to start the settle animation.
	dragEnded *InstanceKey

	// OnFocusChange fires whenever the focused instance changes. This is
	// the cold path: hosts use it to refresh dependent UI (dimming,
	// detail panels) without watching the hot per-frame state.
	OnFocusChange func(focused *InstanceKey)
}

// NewInteraction creates an idle interaction machine over the given world
// and camera.
func NewInteraction(world *World, cam *Camera, cfg *Config) *Interaction {
	return &Interaction{
		world:          world,
		cam:            cam,
		features:       cfg.Features,
		clickThreshold: cfg.Tuning.ClickThreshold,
	}
}

// Mode returns the current interaction mode.
func (it *Interaction) Mode() Mode {
	return it.mode
}

// Focused returns the focused instance, or nil. The returned pointer MUST
// NOT be mutated.
func (it *Interaction) Focused() *InstanceKey {
	return it.focus
}

// DraggingKey returns the instance under an active drag and true, or a
// zero key and false when no drag is in progress.
func (it *Interaction) DraggingKey() (InstanceKey, bool) {
	if it.mode != ModeDraggingCard {
		return InstanceKey{}, false
	}
	return it.drag.key, true
}

// LiveDelta is the in-progress drag delta in world units. Zero unless a
// card drag is active.
func (it *Interaction) LiveDelta() Vec2 {
	if it.mode != ModeDraggingCard {
		return Vec2{}
	}
	return it.drag.live
}

// PointerDown starts a card drag when the pointer lands on a card
// instance. A nil key means the press hit the empty background, which
// clears any focus immediately.
func (it *Interaction) PointerDown(key *InstanceKey, p Vec2) {
	if key == nil {
		it.setFocus(nil)
		return
	}
	if !it.features.Drag && !it.features.FocusClick {
		return
	}
	it.mode = ModeDraggingCard
	it.drag = dragState{key: *key, start: p}
}

// PointerMove updates the live drag delta. Screen-space pointer movement is
// converted to world space by dividing by the effective camera scale, so the
// drag feels 1:1 regardless of zoom level.
func (it *Interaction) PointerMove(p Vec2) {
	if it.mode != ModeDraggingCard || !it.features.Drag {
		return
	}
	s := it.cam.EffectiveScale()
	if s == 0 {
		return
	}
	it.drag.live = p.Sub(it.drag.start).Scale(1 / s)
}

// PointerUp resolves the gesture. Displacement below the click threshold is
// a click: it focuses the card when nothing is focused, and clears focus
// otherwise. Anything larger is a drag: the live delta is committed into
// the card's persistent drag delta and focus is cleared.
func (it *Interaction) PointerUp(p Vec2) {
	if it.mode != ModeDraggingCard {
		return
	}
	it.mode = ModeIdle
	d := p.Sub(it.drag.start)

	// Comparing screen displacement against the raw threshold is the same
	// as comparing the world-space delta against threshold/scale: the
	// click feel stays constant across zoom levels.
	if math.Hypot(d.X, d.Y) <= it.clickThreshold {
		if it.features.FocusClick {
			if it.focus != nil {
				it.setFocus(nil)
			} else {
				key := it.drag.key
				it.setFocus(&key)
			}
		}
	} else {
		if it.features.Drag {
			it.world.CommitDrag(it.drag.key.CardID, it.drag.live)
			ended := it.drag.key
			it.dragEnded = &ended
		}
		it.setFocus(nil)
	}
	it.drag = dragState{}
}

// CancelDrag aborts any in-progress drag without committing its delta.
// Used on teardown.
func (it *Interaction) CancelDrag() {
	it.mode = ModeIdle
	it.drag = dragState{}
}

// SetFocus programmatically focuses a card instance by ID, so external UI
// (a search or select affordance) can drive the camera. An unresolvable
// card ID silently clears focus instead of erroring.
func (it *Interaction) SetFocus(cardID string, tileIndex int) {
	if it.world.CardByID(cardID) == nil {
		it.setFocus(nil)
		return
	}
	it.setFocus(&InstanceKey{CardID: cardID, TileIndex: tileIndex})
}

// ClearFocus removes any focus.
func (it *Interaction) ClearFocus() {
	it.setFocus(nil)
}

// takeDragEnded consumes the drag-just-ended marker, if any.
func (it *Interaction) takeDragEnded() *InstanceKey {
	ended := it.dragEnded
	it.dragEnded = nil
	return ended
}

func (it *Interaction) setFocus(key *InstanceKey) {
	if key == nil && it.focus == nil {
		return
	}
	if key != nil && it.focus != nil && *key == *it.focus {
		return
	}
	it.focus = key
	if it.OnFocusChange != nil {
		it.OnFocusChange(key)
	}
}
