package drift

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default card tint.
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp(c.R, 0, 1) * 255),
		G: uint8(clamp(c.G, 0, 1) * 255),
		B: uint8(clamp(c.B, 0, 1) * 255),
		A: uint8(clamp(c.A, 0, 1) * 255),
	}
}

// whitePixel is a 1x1 white image scaled up to draw solid color rectangles.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// defaultLayerColors cycles by layer index when a card has no explicit color.
// Back layers get darker, desaturated tones so depth reads even without
// parallax motion.
var defaultLayerColors = []Color{
	{R: 0.25, G: 0.28, B: 0.38, A: 1},
	{R: 0.38, G: 0.45, B: 0.58, A: 1},
	{R: 0.55, G: 0.65, B: 0.78, A: 1},
	{R: 0.75, G: 0.82, B: 0.90, A: 1},
}

// EbitenRenderer draws canvas frames onto an ebiten.Image as solid color
// rectangles, back to front in the frame's card order. It is the built-in
// Renderer; hosts drawing their own card art implement Renderer instead.
type EbitenRenderer struct {
	canvas *Canvas

	// ClearColor fills the screen before each frame.
	ClearColor Color
	// ShowStats overlays FPS/TPS and instance counts, refreshed twice a second.
	ShowStats bool

	cardColors map[string]Color

	frame *Frame

	statsImage *ebiten.Image
	statsClock float64
}

// NewEbitenRenderer creates a renderer bound to the canvas and registers
// itself as the canvas renderer.
func NewEbitenRenderer(c *Canvas) *EbitenRenderer {
	r := &EbitenRenderer{
		canvas:     c,
		ClearColor: Color{R: 0.10, G: 0.09, B: 0.13, A: 1},
		cardColors: make(map[string]Color),
	}
	c.SetRenderer(r)
	return r
}

// SetCardColor assigns a fill color for a card. Cards without one use a
// default color keyed by their layer index.
func (r *EbitenRenderer) SetCardColor(cardID string, col Color) {
	r.cardColors[cardID] = col
}

// RenderFrame stores the frame for the next Draw. The frame's buffers are
// owned by the canvas and reused every tick, so this keeps only the pointer.
func (r *EbitenRenderer) RenderFrame(f *Frame) {
	r.frame = f
}

// Draw renders the most recent frame onto screen. Call from the host's
// ebiten Draw after the canvas Update has run for the tick.
func (r *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.ClearColor.toRGBA())
	if r.frame == nil {
		return
	}

	for i := range r.frame.Cards {
		ct := &r.frame.Cards[i]
		card := r.canvas.World().CardByID(ct.Key.CardID)
		if card == nil {
			continue
		}
		w := card.Width * ct.Scale
		h := card.Height * ct.Scale
		if w <= 0 || h <= 0 {
			continue
		}

		col, ok := r.cardColors[ct.Key.CardID]
		if !ok {
			col = defaultLayerColors[ct.LayerIndex%len(defaultLayerColors)]
		}

		var op ebiten.DrawImageOptions
		op.GeoM.Scale(w, h)
		op.GeoM.Translate(ct.Position.X-w/2, ct.Position.Y-h/2)
		op.ColorScale.ScaleWithColor(col.toRGBA())
		switch {
		case ct.IsDimmed:
			op.ColorScale.Scale(0.45, 0.45, 0.45, 1)
		case ct.IsDragging || ct.IsFocused:
			op.ColorScale.Scale(1.15, 1.15, 1.15, 1)
		}
		screen.DrawImage(whitePixel, &op)
	}

	if r.ShowStats {
		r.drawStats(screen)
	}
}

// drawStats overlays FPS/TPS and frame counts. The text image is refreshed
// every half second; redrawing it per frame is wasted work.
func (r *EbitenRenderer) drawStats(screen *ebiten.Image) {
	refresh := r.statsImage == nil
	if refresh {
		r.statsImage = ebiten.NewImage(140, 48)
	}
	r.statsClock += 1.0 / float64(ebiten.TPS())
	if r.statsClock >= 0.5 {
		r.statsClock = 0
		refresh = true
	}
	if refresh {
		r.statsImage.Clear()
		r.statsImage.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(r.statsImage, fmt.Sprintf(
			"FPS: %.1f\nTPS: %.1f\nlayers: %d cards: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			len(r.frame.Layers), len(r.frame.Cards)))
	}
	screen.DrawImage(r.statsImage, nil)
}
