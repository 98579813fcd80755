package game

import (
	"fmt"
	"math"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Stroke describes an outline. An empty Dash draws a solid line; otherwise
// Dash alternates on/off lengths in user units.
type Stroke struct {
	Color RGBA
	Width float64
	Dash  []float64
}

// Surface is a canvas-style 2D drawing target. Coordinates pass through the
// current transform; Push/Pop save and restore it.
type Surface interface {
	Size() (w, h int)
	Clear(c RGBA)
	FillRect(x, y, w, h float64, c RGBA)
	StrokeRect(x, y, w, h float64, st Stroke)
	Line(x0, y0, x1, y1 float64, st Stroke)
	FillCircle(cx, cy, r float64, c RGBA)
	// Text draws s with its baseline at y; align picks which end of the
	// string sits at x.
	Text(s string, x, y, size float64, c RGBA, align Align)
	Push()
	Pop()
	Translate(x, y float64)
	Rotate(rad float64)
	Scale(sx, sy float64)
}

// Scene is everything one frame needs. DrawFrame only reads it.
type Scene struct {
	Width, Height float64
	Theme         ThemeConfig
	Karts         [2]Kart
	KartColors    [2]RGB
	KartLabels    [2]string
	Markers       []Marker
	Progress      Progress
	Caption       string
}

const defaultCaption = "P1: Arrows | P2: WASD | ESC: Pause"

// DrawFrame paints one frame back to front: track, uncollected power-ups,
// kart 1, kart 2, HUD. A nil surface is skipped.
func DrawFrame(s Surface, sc *Scene) {
	if s == nil || sc == nil {
		return
	}
	w, h := sc.Width, sc.Height
	if w <= 0 || h <= 0 {
		w, h = WorldWidth, WorldHeight
	}

	s.Push()
	fitWorld(s, w, h)

	drawTrack(s, sc.Theme, w, h)
	for i := range sc.Markers {
		if !sc.Markers[i].Collected {
			drawPowerUp(s, sc.Markers[i])
		}
	}
	for i := range sc.Karts {
		drawKart(s, sc.Karts[i], sc.KartColors[i], sc.KartLabels[i])
	}
	drawHUD(s, sc.Progress, sc.Caption, w)

	s.Pop()
}

// fitWorld scales a w x h world onto the surface when their sizes differ.
func fitWorld(s Surface, w, h float64) {
	if sw, sh := s.Size(); sw > 0 && sh > 0 && (float64(sw) != w || float64(sh) != h) {
		s.Scale(float64(sw)/w, float64(sh)/h)
	}
}

func drawTrack(s Surface, th ThemeConfig, w, h float64) {
	s.Clear(th.Grass.Opaque())
	s.FillRect(0, 0, w, h, th.Grass.Opaque())

	s.FillRect(TrackInset, TrackInset, w-2*TrackInset, h-2*TrackInset, th.Asphalt.Opaque())

	lines := Stroke{
		Color: th.Line.Opaque(),
		Width: LaneLineWide,
		Dash:  []float64{LaneDashLen, LaneDashGap},
	}
	s.StrokeRect(TrackInset, TrackInset, w-2*TrackInset, h-2*TrackInset, lines)

	// Center divider.
	s.Line(w/2, TrackInset, w/2, h-TrackInset, lines)
}

func drawPowerUp(s Surface, m Marker) {
	s.FillCircle(m.X, m.Y, PowerUpRadius, powerUpColor(m.Kind).Opaque())
	s.Text(m.Kind.Glyph(), m.X, m.Y+4, 12, Palette.Label.Opaque(), AlignCenter)
}

// drawKart draws the kart rotated about its own center: body, four wheels,
// then the label above the body.
func drawKart(s Surface, k Kart, body RGB, label string) {
	s.Push()
	s.Translate(k.X, k.Y)
	s.Rotate(degToRad(k.Heading))

	s.FillRect(-KartLength/2, -KartWidth/2, KartLength, KartWidth, body.Opaque())

	wheel := Palette.Wheel.Opaque()
	s.FillRect(-12, -12, WheelW, WheelH, wheel)
	s.FillRect(-12, 8, WheelW, WheelH, wheel)
	s.FillRect(6, -12, WheelW, WheelH, wheel)
	s.FillRect(6, 8, WheelW, WheelH, wheel)

	if label != "" {
		s.Text(label, 0, -20, 12, Palette.Label.Opaque(), AlignCenter)
	}
	s.Pop()
}

func drawHUD(s Surface, p Progress, caption string, w float64) {
	s.FillRect(0, 0, w, HUDHeight, Palette.HUDBand)

	text := Palette.HUDText.Opaque()
	s.Text(fmt.Sprintf("Lap: %d/%d", p.Lap, p.TotalLaps), 20, 30, 20, text, AlignLeft)
	s.Text(fmt.Sprintf("Position: %d", p.Position), 20, 55, 20, text, AlignLeft)
	s.Text("Time: "+FormatClock(p.Elapsed), 200, 30, 20, text, AlignLeft)
	s.Text(fmt.Sprintf("Speed: %d km/h", int(math.Floor(p.Speed))), 200, 55, 20, text, AlignLeft)

	if caption == "" {
		caption = defaultCaption
	}
	s.Text(caption, w-250, 30, 14, text, AlignLeft)
}

// DrawBanner dims the whole surface and centers text on it. Front ends
// draw it over the last frame while the race is paused or over.
func DrawBanner(s Surface, text string) {
	if s == nil || text == "" {
		return
	}
	const w, h = WorldWidth, WorldHeight
	s.Push()
	fitWorld(s, w, h)
	s.FillRect(0, 0, w, h, Palette.PauseMask)
	s.Text(text, w/2, h/2, 48, Palette.HUDText.Opaque(), AlignCenter)
	s.Pop()
}
