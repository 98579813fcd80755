package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Surface that logs every call.
type recorder struct {
	w, h int
	ops  []string
	text []string
}

func (r *recorder) log(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) Size() (int, int) { return r.w, r.h }
func (r *recorder) Clear(c RGBA)     { r.log("clear") }
func (r *recorder) FillRect(x, y, w, h float64, c RGBA) {
	r.log("rect %g,%g %gx%g #%02x%02x%02x", x, y, w, h, c.R, c.G, c.B)
}
func (r *recorder) StrokeRect(x, y, w, h float64, st Stroke) {
	r.log("stroke %g,%g %gx%g dash=%v", x, y, w, h, st.Dash)
}
func (r *recorder) Line(x0, y0, x1, y1 float64, st Stroke) {
	r.log("line %g,%g-%g,%g", x0, y0, x1, y1)
}
func (r *recorder) FillCircle(cx, cy, rad float64, c RGBA) { r.log("circle r=%g", rad) }
func (r *recorder) Text(s string, x, y, size float64, c RGBA, align Align) {
	r.log("text %s", s)
	r.text = append(r.text, s)
}
func (r *recorder) Push()                  { r.log("push") }
func (r *recorder) Pop()                   { r.log("pop") }
func (r *recorder) Translate(x, y float64) { r.log("translate %g,%g", x, y) }
func (r *recorder) Rotate(rad float64)     { r.log("rotate") }
func (r *recorder) Scale(sx, sy float64)   { r.log("scale %g,%g", sx, sy) }

func (r *recorder) index(prefix string) int {
	for i, op := range r.ops {
		if strings.HasPrefix(op, prefix) {
			return i
		}
	}
	return -1
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, op := range r.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

func testScene() Scene {
	return Scene{
		Width:      WorldWidth,
		Height:     WorldHeight,
		Theme:      ThemeCity,
		Karts:      [2]Kart{NewKart(100, 300, 0, DefaultTuning), NewKart(100, 350, 0, DefaultTuning)},
		KartColors: [2]RGB{Palette.Kart1, Palette.Kart2},
		KartLabels: [2]string{"P1", "P2"},
		Markers: []Marker{
			{X: 200, Y: 200, Kind: PowerMissile},
			{X: 300, Y: 200, Kind: PowerOil, Collected: true},
			{X: 400, Y: 200, Kind: PowerTurbo},
		},
		Progress: Progress{Elapsed: 75.4, Lap: 2, TotalLaps: 3, Position: 1, Speed: 61.7},
	}
}

func TestDrawFrame_Order(t *testing.T) {
	r := &recorder{w: WorldWidth, h: WorldHeight}
	sc := testScene()
	DrawFrame(r, &sc)

	require.Equal(t, "push", r.ops[0])
	assert.Equal(t, "clear", r.ops[1])
	assert.Equal(t, "pop", r.ops[len(r.ops)-1])
	assert.Equal(t, -1, r.index("scale"), "no scaling at native size")

	grass := r.index("rect 0,0 1200x600 #2d5a27")
	asphalt := r.index("rect 50,50 1100x500 #444444")
	border := r.index("stroke 50,50 1100x500 dash=[10 10]")
	divider := r.index("line 600,50-600,550")
	firstPower := r.index("circle")
	kart1 := r.index("translate 100,300")
	kart2 := r.index("translate 100,350")
	hud := r.index("rect 0,0 1200x80")

	for _, i := range []int{grass, asphalt, border, divider, firstPower, kart1, kart2, hud} {
		require.GreaterOrEqual(t, i, 0)
	}
	assert.Less(t, grass, asphalt)
	assert.Less(t, asphalt, border)
	assert.Less(t, border, divider)
	assert.Less(t, divider, firstPower)
	assert.Less(t, firstPower, kart1)
	assert.Less(t, kart1, kart2)
	assert.Less(t, kart2, hud)

	assert.Equal(t, 2, r.count("circle r=8"), "collected markers are not drawn")
	assert.Equal(t, 2, r.count("rect -15,-10 30x20"))
	assert.Equal(t, 8, r.count("rect -12,")+r.count("rect 6,"), "four wheels per kart")

	assert.Equal(t, []string{
		"M", "T", "P1", "P2",
		"Lap: 2/3",
		"Position: 1",
		"Time: 1:15",
		"Speed: 61 km/h",
		defaultCaption,
	}, r.text)
}

func TestDrawFrame_KartColors(t *testing.T) {
	r := &recorder{w: WorldWidth, h: WorldHeight}
	sc := testScene()
	sc.KartColors[0] = RGB{R: 0x12, G: 0x34, B: 0x56}
	sc.Caption = "custom"
	DrawFrame(r, &sc)

	assert.GreaterOrEqual(t, r.index("rect -15,-10 30x20 #123456"), 0)
	assert.GreaterOrEqual(t, r.index("rect -15,-10 30x20 #4ecdc4"), 0)
	assert.Equal(t, "custom", r.text[len(r.text)-1])
}

func TestDrawFrame_ScalesToSurface(t *testing.T) {
	r := &recorder{w: 600, h: 300}
	sc := testScene()
	DrawFrame(r, &sc)
	assert.Equal(t, "scale 0.5,0.5", r.ops[1])
}

func TestDrawFrame_NilSurface(t *testing.T) {
	sc := testScene()
	assert.NotPanics(t, func() { DrawFrame(nil, &sc) })
}

func TestDrawBanner(t *testing.T) {
	r := &recorder{w: WorldWidth, h: WorldHeight}
	DrawBanner(r, "PAUSED")

	assert.Equal(t, []string{
		"push",
		"rect 0,0 1200x600 #000000",
		"text PAUSED",
		"pop",
	}, r.ops)
}

func TestDrawBanner_ScaledAndEmpty(t *testing.T) {
	r := &recorder{w: 600, h: 300}
	DrawBanner(r, "")
	assert.Empty(t, r.ops)

	DrawBanner(r, "RACE ABORTED")
	assert.Equal(t, "scale 0.5,0.5", r.ops[1])
	assert.Equal(t, []string{"RACE ABORTED"}, r.text)

	DrawBanner(nil, "PAUSED")
}
