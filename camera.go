package drift

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// panAnim holds active programmatic pan tweens for camera X and Y.
type panAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera is the pan/zoom simulation state. Pan is in layer-independent
// "pan units": each layer's content offset is Pan times that layer's speed.
// Z is the camera depth under the perspective model; it is clamped so it
// never reaches the perspective constant.
//
// The exported fields are hot-path state mutated every tick and on every
// input event. They are read directly by the frame scheduler; changing them
// does not require any notification.
type Camera struct {
	Pan          Vec2
	PanVelocity  Vec2
	Z            float64
	TargetZ      float64
	ZoomVelocity float64

	perspective float64
	minZ, maxZ  float64
	tuning      Tuning

	panTween  *panAnim
	zoomTween *gween.Tween
}

// NewCamera creates a camera at rest from a validated config.
func NewCamera(cfg *Config) *Camera {
	return &Camera{
		perspective: cfg.Perspective,
		minZ:        cfg.Tuning.MinZ,
		maxZ:        cfg.Tuning.MaxZ,
		tuning:      cfg.Tuning,
	}
}

// EffectiveScale is the apparent zoom multiplier of the reference plane
// (base Z of 0) at the current camera depth. Returns 0 at the perspective
// limit; callers must skip work for that frame instead of dividing by it.
func (c *Camera) EffectiveScale() float64 {
	return perspectiveScale(c.perspective, c.Z)
}

// LayerScale is the apparent scale of a layer resting at baseZ.
func (c *Camera) LayerScale(baseZ float64) float64 {
	return perspectiveScale(c.perspective, c.Z+baseZ)
}

// step advances the camera one frame: zoom integration first, then pan
// integration. Order matters because cursor-anchored zoom compensation
// reads pan velocity before pan integrates. dt only drives programmatic
// tweens; the velocity damping model is per-frame.
func (c *Camera) step(dt float32, focusing bool) {
	// Zoom integration.
	c.TargetZ += c.ZoomVelocity
	c.TargetZ = clamp(c.TargetZ, c.minZ, c.maxZ)
	c.ZoomVelocity *= c.tuning.ZoomDamping
	zoomLerp := c.tuning.ZoomLerp
	if focusing {
		zoomLerp = c.tuning.FocusZoomLerp
	}
	c.Z = lerp(c.Z, c.TargetZ, zoomLerp)

	// Pan integration.
	c.Pan = c.Pan.Add(c.PanVelocity)
	c.PanVelocity = c.PanVelocity.Scale(c.tuning.PanDamping)

	c.stepTweens(dt)
}

// stepTweens advances programmatic PanTo/ZoomTo animations.
func (c *Camera) stepTweens(dt float32) {
	if c.panTween != nil {
		if !c.panTween.doneX {
			val, done := c.panTween.tweenX.Update(dt)
			c.Pan.X = float64(val)
			c.panTween.doneX = done
		}
		if !c.panTween.doneY {
			val, done := c.panTween.tweenY.Update(dt)
			c.Pan.Y = float64(val)
			c.panTween.doneY = done
		}
		if c.panTween.doneX && c.panTween.doneY {
			c.panTween = nil
		}
	}
	if c.zoomTween != nil {
		val, done := c.zoomTween.Update(dt)
		c.TargetZ = clamp(float64(val), c.minZ, c.maxZ)
		if done {
			c.zoomTween = nil
		}
	}
}

// attract nudges pan and target depth toward the focus target by the focus
// lerp factor. Called once per frame while a card is focused, after the
// free integration steps.
func (c *Camera) attract(targetPan Vec2, targetZ float64) {
	f := c.tuning.FocusLerp
	c.Pan.X = lerp(c.Pan.X, targetPan.X, f)
	c.Pan.Y = lerp(c.Pan.Y, targetPan.Y, f)
	c.TargetZ = clamp(lerp(c.TargetZ, targetZ, f), c.minZ, c.maxZ)
}

// ZoomImpulse applies a zoom intent with cursor anchoring: before the
// impulse is added, a compensating pan-velocity impulse is injected so the
// world point under the cursor stays visually stationary as the depth
// changes. cursorOffset is the cursor's offset from the viewport center;
// refSpeed and refBaseZ describe the reference layer (the focused card's
// layer when one is focused, else a default middle layer).
//
// Degenerate cases (a zero-speed reference layer, or either apparent
// scale at the perspective limit) skip the zoom step entirely rather than
// producing NaN or Infinity. Reports whether the impulse was applied.
func (c *Camera) ZoomImpulse(dv float64, cursorOffset Vec2, refSpeed, refBaseZ float64) bool {
	// Where the damped impulse will eventually take the target depth.
	finalZ := clamp(c.TargetZ+dv/(1-c.tuning.ZoomDamping), c.minZ, c.maxZ)

	sBefore := perspectiveScale(c.perspective, c.TargetZ+refBaseZ)
	sAfter := perspectiveScale(c.perspective, finalZ+refBaseZ)
	if refSpeed == 0 || sBefore == 0 || sAfter == 0 {
		return false
	}

	// Total pan displacement that keeps the cursor's world point fixed:
	// the point q at screen offset o satisfies o = (q - pan*speed)*scale,
	// so pan must absorb o*(1/sBefore - 1/sAfter)/speed as scale changes.
	total := cursorOffset.Scale((1/sBefore - 1/sAfter) / refSpeed)

	// A velocity v damped by d each frame displaces v/(1-d) in total.
	c.PanVelocity = c.PanVelocity.Add(total.Scale(1 - c.tuning.PanDamping))
	c.ZoomVelocity += dv
	return true
}

// PanTo animates the camera pan to the given position over duration
// seconds, replacing any in-flight pan tween.
func (c *Camera) PanTo(target Vec2, duration float32, easeFn ease.TweenFunc) {
	c.panTween = &panAnim{
		tweenX: gween.New(float32(c.Pan.X), float32(target.X), duration, easeFn),
		tweenY: gween.New(float32(c.Pan.Y), float32(target.Y), duration, easeFn),
	}
}

// ZoomTo animates the target depth to z over duration seconds, replacing
// any in-flight zoom tween. z is clamped to the depth range.
func (c *Camera) ZoomTo(z float64, duration float32, easeFn ease.TweenFunc) {
	z = clamp(z, c.minZ, c.maxZ)
	c.zoomTween = gween.New(float32(c.TargetZ), float32(z), duration, easeFn)
}

// StopTweens cancels in-flight programmatic pan/zoom animations.
func (c *Camera) StopTweens() {
	c.panTween = nil
	c.zoomTween = nil
}

// depthForScale returns the camera depth at which a layer resting at baseZ
// appears at the given scale. Used by focus attraction to pick the zoom
// target that shows the focused card at the required on-screen size.
// Returns the clamped depth and false when no usable depth exists.
func (c *Camera) depthForScale(scale, baseZ float64) (float64, bool) {
	if scale <= 0 {
		return 0, false
	}
	// scale = p/(p - z - baseZ)  =>  z = p - p/scale - baseZ
	z := c.perspective - c.perspective/scale - baseZ
	return clamp(z, c.minZ, c.maxZ), true
}
