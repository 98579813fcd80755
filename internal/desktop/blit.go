package desktop

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// blitter streams the software canvas into a texture and draws it as one
// letterboxed quad.
type blitter struct {
	prog uint32
	vao  uint32
	vbo  uint32
	tex  uint32
	w, h int
}

func newBlitter(width, height int) (*blitter, error) {
	prog, err := newFrameProgram()
	if err != nil {
		return nil, fmt.Errorf("frame program: %w", err)
	}
	b := &blitter{prog: prog, w: width, h: height}

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	quadVerts := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVerts)*4, gl.Ptr(&quadVerts[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.GenTextures(1, &b.tex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)

	gl.UseProgram(prog)
	gl.Uniform1i(gl.GetUniformLocation(prog, gl.Str("uFrame\x00")), 0)

	gl.BindVertexArray(0)
	return b, nil
}

// upload replaces the texture contents with img, which must match the
// blitter size.
func (b *blitter) upload(img *image.RGBA) {
	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(b.w), int32(b.h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
}

func (b *blitter) draw(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	x, y, w, h := fitViewport(fbW, fbH, b.w, b.h)
	gl.Viewport(x, y, w, h)
	gl.UseProgram(b.prog)
	gl.BindVertexArray(b.vao)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (b *blitter) destroy() {
	if b.tex != 0 {
		gl.DeleteTextures(1, &b.tex)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if b.prog != 0 {
		gl.DeleteProgram(b.prog)
	}
}

// fitViewport centers the largest srcW x srcH-proportioned rectangle that
// fits in the framebuffer.
func fitViewport(fbW, fbH, srcW, srcH int) (x, y, w, h int32) {
	if fbW <= 0 || fbH <= 0 || srcW <= 0 || srcH <= 0 {
		return 0, 0, int32(max(fbW, 0)), int32(max(fbH, 0))
	}
	vw, vh := fbW, fbW*srcH/srcW
	if vh > fbH {
		vw, vh = fbH*srcW/srcH, fbH
	}
	return int32((fbW - vw) / 2), int32((fbH - vh) / 2), int32(vw), int32(vh)
}
