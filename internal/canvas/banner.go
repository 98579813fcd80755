package canvas

import "kart/internal/game"

// WithBanner returns src untouched when banner is empty. Otherwise it copies
// src into dst, allocating a new canvas when dst is nil or a different size,
// dims it under the banner text and returns dst.
func WithBanner(dst, src *Canvas, banner string) *Canvas {
	if banner == "" {
		return src
	}
	if dst == nil || dst.img.Rect != src.img.Rect {
		w, h := src.Size()
		dst = New(w, h)
	}
	copy(dst.img.Pix, src.img.Pix)
	game.DrawBanner(dst, banner)
	return dst
}
