package terminal

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"kart/internal/game"
)

// upperHalf paints the top pixel in the foreground and the bottom pixel in
// the background, doubling vertical resolution.
const upperHalf = '▀'

// Present draws img into the cols x rows cell area at the top-left of scr.
// Each cell shows two box-averaged pixel rows.
func Present(scr tcell.Screen, img *image.RGBA, cols, rows int) {
	if cols <= 0 || rows <= 0 || img.Rect.Empty() {
		return
	}
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			top := average(img, cellRect(img.Rect, cx, 2*cy, cols, 2*rows))
			bot := average(img, cellRect(img.Rect, cx, 2*cy+1, cols, 2*rows))
			scr.SetContent(cx, cy, upperHalf, nil, cellStyle(top, bot))
		}
	}
}

func cellStyle(top, bot game.RGB) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
		Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
}

// cellRect is the source rectangle of grid cell (gx, gy) in an nx x ny grid
// laid over b. It is never empty.
func cellRect(b image.Rectangle, gx, gy, nx, ny int) image.Rectangle {
	x0 := b.Min.X + gx*b.Dx()/nx
	x1 := b.Min.X + (gx+1)*b.Dx()/nx
	y0 := b.Min.Y + gy*b.Dy()/ny
	y1 := b.Min.Y + (gy+1)*b.Dy()/ny
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return image.Rect(x0, y0, x1, y1).Intersect(b)
}

func average(img *image.RGBA, r image.Rectangle) game.RGB {
	if r.Empty() {
		return game.RGB{}
	}
	var sr, sg, sb, n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			sr += int(img.Pix[i])
			sg += int(img.Pix[i+1])
			sb += int(img.Pix[i+2])
			n++
			i += 4
		}
	}
	return game.RGB{R: uint8(sr / n), G: uint8(sg / n), B: uint8(sb / n)}
}

// drawText writes s at (x, y), clipped to the screen width.
func drawText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	w, _ := scr.Size()
	for _, r := range s {
		if x >= w {
			return
		}
		scr.SetContent(x, y, r, nil, st)
		x++
	}
}

func clearRow(scr tcell.Screen, y int, st tcell.Style) {
	w, _ := scr.Size()
	for x := 0; x < w; x++ {
		scr.SetContent(x, y, ' ', nil, st)
	}
}
