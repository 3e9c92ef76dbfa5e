package drift

import (
	"strings"
	"testing"
)

const testConfigYAML = `
world:
  width: 1600
  height: 1000
grid: 3
perspective: 1200
scrollSpeed: 1.5
layers:
  - {speed: 0.2, baseZ: -600}
  - {speed: 0.5, baseZ: -250}
  - {speed: 1.0, baseZ: 0}
cards:
  - {id: aurora, layer: 2, x: -300, y: 120, scale: 1.2}
  - {id: basalt, layer: 1, x: 250, y: -80}
features:
  pan: true
  drag: true
  zoom: true
  focusClick: true
  hover: false
tuning:
  panDamping: 0.94
  maxZ: 800
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.World.Width != 1600 || cfg.World.Height != 1000 {
		t.Errorf("world = %+v, want 1600x1000", cfg.World)
	}
	if len(cfg.Layers) != 3 {
		t.Fatalf("layers = %d, want 3", len(cfg.Layers))
	}
	if cfg.Layers[0].Speed != 0.2 || cfg.Layers[0].BaseZ != -600 {
		t.Errorf("layer 0 = %+v", cfg.Layers[0])
	}
	if cfg.Perspective != 1200 || cfg.ScrollSpeed != 1.5 {
		t.Errorf("perspective/scrollSpeed = %v/%v", cfg.Perspective, cfg.ScrollSpeed)
	}
	if cfg.Features.Hover {
		t.Error("hover should be disabled")
	}
	if len(cfg.Cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(cfg.Cards))
	}
	if cfg.Cards[0].ID != "aurora" || cfg.Cards[0].Scale != 1.2 {
		t.Errorf("card 0 = %+v", cfg.Cards[0])
	}
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	cfg, err := LoadConfig([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	// Explicit value kept, omitted ones defaulted.
	if cfg.Tuning.PanDamping != 0.94 {
		t.Errorf("panDamping = %v, want 0.94 (explicit)", cfg.Tuning.PanDamping)
	}
	if cfg.Tuning.ZoomDamping != 0.90 {
		t.Errorf("zoomDamping = %v, want default 0.90", cfg.Tuning.ZoomDamping)
	}
	if cfg.Tuning.ClickThreshold != 5 {
		t.Errorf("clickThreshold = %v, want default 5", cfg.Tuning.ClickThreshold)
	}
	// Card dimensions defaulted.
	if cfg.Cards[1].Scale != 1 || cfg.Cards[1].Width == 0 || cfg.Cards[1].Height == 0 {
		t.Errorf("card defaults not applied: %+v", cfg.Cards[1])
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"malformed yaml", "world: [", "parse canvas config"},
		{"zero world", "world: {width: 0, height: 100}\nlayers: [{speed: 1}]", "world size"},
		{"no layers", "world: {width: 100, height: 100}", "at least one layer"},
		{
			"negative speed",
			"world: {width: 100, height: 100}\nlayers: [{speed: -0.5}]",
			"negative speed",
		},
		{
			"card without id",
			"world: {width: 100, height: 100}\nlayers: [{speed: 1}]\ncards: [{layer: 0}]",
			"has no id",
		},
		{
			"duplicate card id",
			"world: {width: 100, height: 100}\nlayers: [{speed: 1}]\ncards: [{id: a, layer: 0}, {id: a, layer: 0}]",
			"duplicate card id",
		},
		{
			"bad layer reference",
			"world: {width: 100, height: 100}\nlayers: [{speed: 1}]\ncards: [{id: a, layer: 3}]",
			"references layer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestMaxZClampedBelowPerspective(t *testing.T) {
	yaml := `
world: {width: 100, height: 100}
perspective: 500
layers: [{speed: 1}]
tuning: {maxZ: 900}
`
	cfg, err := LoadConfig([]byte(yaml))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Tuning.MaxZ >= cfg.Perspective {
		t.Errorf("maxZ = %v, must stay below perspective %v", cfg.Tuning.MaxZ, cfg.Perspective)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.validate(); err != nil {
		t.Fatalf("DefaultConfig does not validate: %v", err)
	}
	if cfg.Grid%2 != 1 {
		t.Errorf("default grid %d is not odd", cfg.Grid)
	}
	if cfg.Tuning.MaxZ >= cfg.Perspective {
		t.Error("default maxZ is not below the perspective constant")
	}
	if cfg.Tuning.PanDamping <= 0 || cfg.Tuning.PanDamping >= 1 {
		t.Errorf("default panDamping %v outside (0,1)", cfg.Tuning.PanDamping)
	}
	if cfg.Tuning.ZoomDamping <= 0 || cfg.Tuning.ZoomDamping >= 1 {
		t.Errorf("default zoomDamping %v outside (0,1)", cfg.Tuning.ZoomDamping)
	}
}
