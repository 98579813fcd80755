package canvas

import (
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"kart/internal/game"
)

var (
	parseOnce sync.Once
	regular   *opentype.Font
)

func regularFont() *opentype.Font {
	parseOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err == nil {
			regular = f
		}
	})
	return regular
}

// face returns a cached face for a pixel size. Falls back to the fixed
// 7x13 bitmap face when the outline font is unavailable.
func (cv *Canvas) face(px float64) font.Face {
	key := int(math.Round(px))
	if key < 4 {
		key = 4
	}
	if f, ok := cv.faces[key]; ok {
		return f
	}
	var f font.Face = basicfont.Face7x13
	if tt := regularFont(); tt != nil {
		if nf, err := opentype.NewFace(tt, &opentype.FaceOptions{
			Size:    float64(key),
			DPI:     72,
			Hinting: font.HintingFull,
		}); err == nil {
			f = nf
		}
	}
	cv.faces[key] = f
	return f
}

// Text draws s with its baseline at (x, y) in user space. The anchor and the
// glyph size follow the transform; glyphs themselves stay upright.
func (cv *Canvas) Text(s string, x, y, size float64, c game.RGBA, align game.Align) {
	if s == "" || c.A == 0 || size <= 0 {
		return
	}
	dx, dy := cv.m.apply(x, y)
	face := cv.face(size * cv.m.scale())

	w := font.MeasureString(face, s)
	switch align {
	case game.AlignCenter:
		dx -= float64(w) / 64 / 2
	case game.AlignRight:
		dx -= float64(w) / 64
	}

	d := font.Drawer{
		Dst:  cv.img,
		Src:  image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(math.Round(dx * 64)), Y: fixed.Int26_6(math.Round(dy * 64))},
	}
	d.DrawString(s)
}

// MeasureText returns the advance width of s in device pixels at the given
// size under the current transform.
func (cv *Canvas) MeasureText(s string, size float64) float64 {
	return float64(font.MeasureString(cv.face(size*cv.m.scale()), s)) / 64
}
