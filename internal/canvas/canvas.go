// Package canvas is a software implementation of game.Surface that draws
// into an in-memory RGBA image. The desktop and terminal front ends present
// its pixels; headless runs save them as PNG.
package canvas

import (
	"image"
	"math"
	"sort"

	"golang.org/x/image/font"

	"kart/internal/game"
)

// affine is a 2D transform: x' = a*x + c*y + e, y' = b*x + d*y + f.
type affine struct {
	a, b, c, d, e, f float64
}

var identity = affine{a: 1, d: 1}

func (m affine) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

// mul returns m·n (n applied first).
func (m affine) mul(n affine) affine {
	return affine{
		a: m.a*n.a + m.c*n.b,
		b: m.b*n.a + m.d*n.b,
		c: m.a*n.c + m.c*n.d,
		d: m.b*n.c + m.d*n.d,
		e: m.a*n.e + m.c*n.f + m.e,
		f: m.b*n.e + m.d*n.f + m.f,
	}
}

// scale is the linear size factor of the transform.
func (m affine) scale() float64 {
	return math.Sqrt(math.Abs(m.a*m.d - m.b*m.c))
}

type point struct{ x, y float64 }

// Canvas is not safe for concurrent use.
type Canvas struct {
	img   *image.RGBA
	m     affine
	stack []affine
	faces map[int]font.Face
	xs    []float64
}

var _ game.Surface = (*Canvas)(nil)

func New(width, height int) *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		m:     identity,
		faces: make(map[int]font.Face),
	}
}

// Image returns the backing framebuffer. It stays valid across frames.
func (cv *Canvas) Image() *image.RGBA { return cv.img }

func (cv *Canvas) Size() (int, int) {
	b := cv.img.Bounds()
	return b.Dx(), b.Dy()
}

// Pixel returns the colour stored at (x, y).
func (cv *Canvas) Pixel(x, y int) game.RGBA {
	if !(image.Point{X: x, Y: y}.In(cv.img.Rect)) {
		return game.RGBA{}
	}
	i := cv.img.PixOffset(x, y)
	p := cv.img.Pix[i : i+4 : i+4]
	return game.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Clear paints every pixel with c, ignoring the transform.
func (cv *Canvas) Clear(c game.RGBA) {
	pix := cv.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

func (cv *Canvas) Push() {
	cv.stack = append(cv.stack, cv.m)
}

// Pop restores the last pushed transform. Unbalanced pops reset to identity.
func (cv *Canvas) Pop() {
	n := len(cv.stack)
	if n == 0 {
		cv.m = identity
		return
	}
	cv.m = cv.stack[n-1]
	cv.stack = cv.stack[:n-1]
}

func (cv *Canvas) Translate(x, y float64) {
	cv.m = cv.m.mul(affine{a: 1, d: 1, e: x, f: y})
}

func (cv *Canvas) Rotate(rad float64) {
	s, c := math.Sincos(rad)
	cv.m = cv.m.mul(affine{a: c, b: s, c: -s, d: c})
}

func (cv *Canvas) Scale(sx, sy float64) {
	cv.m = cv.m.mul(affine{a: sx, d: sy})
}

func (cv *Canvas) FillRect(x, y, w, h float64, c game.RGBA) {
	cv.fillPoly([]point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, c)
}

func (cv *Canvas) StrokeRect(x, y, w, h float64, st game.Stroke) {
	cv.strokePath([]point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}, {x, y}}, st)
}

func (cv *Canvas) Line(x0, y0, x1, y1 float64, st game.Stroke) {
	cv.strokePath([]point{{x0, y0}, {x1, y1}}, st)
}

func (cv *Canvas) FillCircle(cx, cy, r float64, c game.RGBA) {
	if r <= 0 {
		return
	}
	n := int(math.Ceil(r*cv.m.scale())) * 4
	n = max(16, min(n, 128))
	pts := make([]point, n)
	for i := range pts {
		s, co := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = point{cx + r*co, cy + r*s}
	}
	cv.fillPoly(pts, c)
}

// strokePath strokes consecutive segments of pts. The dash pattern runs
// continuously along the whole path.
func (cv *Canvas) strokePath(pts []point, st game.Stroke) {
	width := st.Width
	if width <= 0 {
		width = 1
	}
	dash := st.Dash
	if len(dash)%2 == 1 {
		dash = append(append([]float64(nil), dash...), dash...)
	}
	var period float64
	for _, d := range dash {
		period += d
	}
	if period <= 0 {
		dash = nil
	}

	idx, left, on := 0, 0.0, true
	if dash != nil {
		left = dash[0]
	}

	for i := 0; i+1 < len(pts); i++ {
		p0, p1 := pts[i], pts[i+1]
		segLen := math.Hypot(p1.x-p0.x, p1.y-p0.y)
		if segLen == 0 {
			continue
		}
		if dash == nil {
			cv.fillSegment(p0, p1, width, st.Color)
			continue
		}
		ux, uy := (p1.x-p0.x)/segLen, (p1.y-p0.y)/segLen
		pos := 0.0
		for pos < segLen {
			step := math.Min(left, segLen-pos)
			if on && step > 0 {
				a := point{p0.x + ux*pos, p0.y + uy*pos}
				b := point{p0.x + ux*(pos+step), p0.y + uy*(pos+step)}
				cv.fillSegment(a, b, width, st.Color)
			}
			pos += step
			left -= step
			if left <= 0 {
				idx = (idx + 1) % len(dash)
				left = dash[idx]
				on = !on
			}
		}
	}
}

// fillSegment fills the butt-capped rectangle around a-b.
func (cv *Canvas) fillSegment(a, b point, width float64, c game.RGBA) {
	l := math.Hypot(b.x-a.x, b.y-a.y)
	if l == 0 {
		return
	}
	nx, ny := -(b.y-a.y)/l*width/2, (b.x-a.x)/l*width/2
	cv.fillPoly([]point{
		{a.x + nx, a.y + ny},
		{b.x + nx, b.y + ny},
		{b.x - nx, b.y - ny},
		{a.x - nx, a.y - ny},
	}, c)
}

// fillPoly transforms pts and fills the polygon with the even-odd rule,
// sampling at pixel centers.
func (cv *Canvas) fillPoly(pts []point, c game.RGBA) {
	if len(pts) < 3 || c.A == 0 {
		return
	}
	dev := make([]point, len(pts))
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range pts {
		x, y := cv.m.apply(p.x, p.y)
		dev[i] = point{x, y}
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	b := cv.img.Rect
	y0 := max(b.Min.Y, int(math.Floor(minY)))
	y1 := min(b.Max.Y-1, int(math.Ceil(maxY)))
	for py := y0; py <= y1; py++ {
		sy := float64(py) + 0.5
		xs := cv.xs[:0]
		for i := range dev {
			p, q := dev[i], dev[(i+1)%len(dev)]
			if (p.y <= sy) == (q.y <= sy) {
				continue
			}
			xs = append(xs, p.x+(sy-p.y)*(q.x-p.x)/(q.y-p.y))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			// Pixel px is inside when its center px+0.5 lies in [xs[i], xs[i+1]).
			x0 := max(b.Min.X, int(math.Ceil(xs[i]-0.5)))
			x1 := min(b.Max.X, int(math.Ceil(xs[i+1]-0.5)))
			for px := x0; px < x1; px++ {
				cv.blend(px, py, c)
			}
		}
		cv.xs = xs
	}
}

// blend composites c over the pixel with source-over.
func (cv *Canvas) blend(x, y int, c game.RGBA) {
	i := cv.img.PixOffset(x, y)
	p := cv.img.Pix[i : i+4 : i+4]
	if c.A == 255 {
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, 255
		return
	}
	a := uint32(c.A)
	ia := 255 - a
	p[0] = uint8((uint32(c.R)*a + uint32(p[0])*ia + 127) / 255)
	p[1] = uint8((uint32(c.G)*a + uint32(p[1])*ia + 127) / 255)
	p[2] = uint8((uint32(c.B)*a + uint32(p[2])*ia + 127) / 255)
	p[3] = uint8(a + (uint32(p[3])*ia+127)/255)
}
