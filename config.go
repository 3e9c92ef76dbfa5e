package drift

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WorldConfig is the logical size of one world tile. Cards are authored in
// coordinates relative to the tile center, ranging ±Width/2 and ±Height/2.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LayerConfig describes one parallax depth band. Layers are listed
// back-to-front. Speed is the pan multiplier (0 = static background,
// 1 = moves 1:1 with input); BaseZ is the resting depth offset in
// perspective units (negative = farther from the camera).
type LayerConfig struct {
	Speed float64 `yaml:"speed"`
	BaseZ float64 `yaml:"baseZ"`
}

// CardConfig is the authored data for one logical card. Position is in
// world-local coordinates; Width/Height are the card's hit extent. The card
// is instantiated once per tile offset at render time.
type CardConfig struct {
	ID     string  `yaml:"id"`
	Layer  int     `yaml:"layer"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Scale  float64 `yaml:"scale"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Features toggles interaction behaviors independently. All default to
// enabled when the config omits the block.
type Features struct {
	Pan        bool `yaml:"pan"`
	Drag       bool `yaml:"drag"`
	Zoom       bool `yaml:"zoom"`
	FocusClick bool `yaml:"focusClick"`
	Hover      bool `yaml:"hover"`
}

// Tuning holds the physics constants. These are tuning values, not
// invariants: damping factors must stay in (0, 1) and lerp factors in
// (0, 1], but the exact numbers are chosen empirically.
type Tuning struct {
	PanDamping     float64 `yaml:"panDamping"`     // pan velocity decay per frame
	ZoomDamping    float64 `yaml:"zoomDamping"`    // zoom velocity decay per frame
	ZoomLerp       float64 `yaml:"zoomLerp"`       // Z smoothing toward target per frame
	FocusZoomLerp  float64 `yaml:"focusZoomLerp"`  // tighter Z smoothing while focus-seeking
	FocusLerp      float64 `yaml:"focusLerp"`      // pan/zoom attraction toward the focused card
	ZoomSpeed      float64 `yaml:"zoomSpeed"`      // wheel deltaY to zoom velocity
	PinchZoomSpeed float64 `yaml:"pinchZoomSpeed"` // pinch scale delta to zoom velocity
	WheelPanSpeed  float64 `yaml:"wheelPanSpeed"`  // wheel delta to pan velocity
	ClickThreshold float64 `yaml:"clickThreshold"` // click-vs-drag displacement, screen px at unit scale
	MinZ           float64 `yaml:"minZ"`
	MaxZ           float64 `yaml:"maxZ"`
	FocusScale     float64 `yaml:"focusScale"`     // required on-screen scale for a focused card
	LiftScale      float64 `yaml:"liftScale"`      // scale multiplier while a card is dragged
	SettleDuration float64 `yaml:"settleDuration"` // seconds for the post-drag settle animation
}

// Config is the full layout and tuning description of a canvas. It is
// read-only once the canvas is built; the core never mutates it.
type Config struct {
	World       WorldConfig   `yaml:"world"`
	Layers      []LayerConfig `yaml:"layers"`
	Cards       []CardConfig  `yaml:"cards"`
	Grid        int           `yaml:"grid"`        // tile grid size, should be odd
	Perspective float64       `yaml:"perspective"` // perspective constant; Z must never reach it
	ScrollSpeed float64       `yaml:"scrollSpeed"` // global multiplier on wheel panning
	Features    *Features     `yaml:"features"`
	Tuning      Tuning        `yaml:"tuning"`
}

// DefaultConfig returns a config with a single mid layer and no cards,
// using the default tuning constants.
func DefaultConfig() *Config {
	cfg := &Config{
		World:       WorldConfig{Width: 1600, Height: 1000},
		Layers:      []LayerConfig{{Speed: 0.5, BaseZ: 0}},
		Grid:        3,
		Perspective: 1000,
		ScrollSpeed: 1,
	}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig parses a YAML canvas description and fills defaults for any
// omitted tuning values.
func LoadConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse canvas config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads and parses a YAML canvas description from disk.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read canvas config: %w", err)
	}
	return LoadConfig(data)
}

// validate fills defaults and checks structural requirements. Recoverable
// oddities (even grid, MaxZ at the perspective limit) are warned about and
// fixed up; only unusable configs return an error.
func (c *Config) validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("canvas config: world size must be positive, got %gx%g",
			c.World.Width, c.World.Height)
	}
	if len(c.Layers) == 0 {
		return fmt.Errorf("canvas config: at least one layer is required")
	}
	for i, l := range c.Layers {
		if l.Speed < 0 {
			return fmt.Errorf("canvas config: layer %d has negative speed %g", i, l.Speed)
		}
	}
	seen := make(map[string]bool, len(c.Cards))
	for i, card := range c.Cards {
		if card.ID == "" {
			return fmt.Errorf("canvas config: card %d has no id", i)
		}
		if seen[card.ID] {
			return fmt.Errorf("canvas config: duplicate card id %q", card.ID)
		}
		seen[card.ID] = true
		if card.Layer < 0 || card.Layer >= len(c.Layers) {
			return fmt.Errorf("canvas config: card %q references layer %d of %d",
				card.ID, card.Layer, len(c.Layers))
		}
	}
	c.applyDefaults()
	return nil
}

// applyDefaults fills zero-valued fields with the reference tuning. Kept
// separate from validate so programmatically built configs can use it too.
func (c *Config) applyDefaults() {
	if c.Grid == 0 {
		c.Grid = 3
	}
	if c.Perspective == 0 {
		c.Perspective = 1000
	}
	if c.ScrollSpeed == 0 {
		c.ScrollSpeed = 1
	}
	if c.Features == nil {
		c.Features = &Features{Pan: true, Drag: true, Zoom: true, FocusClick: true, Hover: true}
	}
	t := &c.Tuning
	if t.PanDamping == 0 {
		t.PanDamping = 0.92
	}
	if t.ZoomDamping == 0 {
		t.ZoomDamping = 0.90
	}
	if t.ZoomLerp == 0 {
		t.ZoomLerp = 0.08
	}
	if t.FocusZoomLerp == 0 {
		t.FocusZoomLerp = 0.08
	}
	if t.FocusLerp == 0 {
		t.FocusLerp = 0.08
	}
	if t.ZoomSpeed == 0 {
		t.ZoomSpeed = 0.5
	}
	if t.PinchZoomSpeed == 0 {
		t.PinchZoomSpeed = 600
	}
	if t.WheelPanSpeed == 0 {
		t.WheelPanSpeed = 1
	}
	if t.ClickThreshold == 0 {
		t.ClickThreshold = 5
	}
	if t.MinZ == 0 {
		t.MinZ = -2000
	}
	if t.MaxZ == 0 {
		t.MaxZ = 600
	}
	if t.FocusScale == 0 {
		t.FocusScale = 1
	}
	if t.LiftScale == 0 {
		t.LiftScale = 1.06
	}
	if t.SettleDuration == 0 {
		t.SettleDuration = 0.25
	}
	// Z must never reach the perspective distance: the projection divides
	// by (perspective - Z).
	if t.MaxZ >= c.Perspective {
		warnf("maxZ %g is at or past the perspective constant %g; clamping", t.MaxZ, c.Perspective)
		t.MaxZ = c.Perspective * 0.9
	}
	for i := range c.Cards {
		card := &c.Cards[i]
		if card.Scale == 0 {
			card.Scale = 1
		}
		if card.Width == 0 {
			card.Width = 240
		}
		if card.Height == 0 {
			card.Height = 150
		}
	}
}
