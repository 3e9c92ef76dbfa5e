package drift

// syntheticEvent is a single injected input event. Screen coordinates are
// used, identical to real device input.
type syntheticEvent struct {
	wheel   bool
	p       Vec2 // pointer position, or cursor position for wheel events
	pressed bool
	delta   Vec2 // wheel delta
	mods    KeyModifiers
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next Update, bypassing device polling for that
// tick.
func (c *Canvas) InjectPress(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{p: Vec2{x, y}, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use between
// InjectPress and InjectRelease to simulate a drag.
func (c *Canvas) InjectMove(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{p: Vec2{x, y}, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (c *Canvas) InjectRelease(x, y float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{p: Vec2{x, y}, pressed: false})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two ticks.
func (c *Canvas) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves, and release at (toX, toY). The sequence consumes
// `frames` ticks; minimum is 2 (press + release).
func (c *Canvas) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		c.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	c.InjectRelease(toX, toY)
}

// InjectWheel queues an unmodified wheel event (a pan intent).
func (c *Canvas) InjectWheel(dx, dy float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{wheel: true, delta: Vec2{dx, dy}})
}

// InjectZoomWheel queues a modifier-held wheel event (a zoom intent) with
// the cursor at the given screen coordinates.
func (c *Canvas) InjectZoomWheel(dy, cursorX, cursorY float64) {
	c.injectQueue = append(c.injectQueue, syntheticEvent{
		wheel: true,
		delta: Vec2{0, dy},
		p:     Vec2{cursorX, cursorY},
		mods:  ModCtrl,
	})
}

// processInjected pops one event from the inject queue and feeds it through
// the normalizer's pure core. Returns true if an event was consumed, in
// which case device polling is skipped for the tick.
func (c *Canvas) processInjected() bool {
	if len(c.injectQueue) == 0 {
		return false
	}
	evt := c.injectQueue[0]
	copy(c.injectQueue, c.injectQueue[1:])
	c.injectQueue = c.injectQueue[:len(c.injectQueue)-1]

	if evt.wheel {
		c.input.wheel(evt.delta, evt.p, evt.mods)
	} else {
		c.input.process(0, evt.p, evt.pressed)
	}
	return true
}
