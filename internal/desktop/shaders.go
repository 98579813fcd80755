package desktop

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Frame vertex shader: unit quad stretched over the viewport, top row first.
const frameVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos; // 0..1 quad vertex

out vec2 vUV;

void main() {
    vUV = aPos;
    vec2 ndc = aPos * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
}
` + "\x00"

const frameFragSrc = `#version 410 core

uniform sampler2D uFrame;

in vec2 vUV;
out vec4 FragColor;

void main() {
    FragColor = vec4(texture(uFrame, vUV).rgb, 1.0);
}
` + "\x00"

// newFrameProgram compiles and links the program that draws the canvas
// texture.
func newFrameProgram() (uint32, error) {
	vs, err := compileShader(gl.VERTEX_SHADER, frameVertSrc)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(gl.FRAGMENT_SHADER, frameFragSrc)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)
	gl.DetachShader(prog, vs)
	gl.DetachShader(prog, fs)

	var ok, n int32
	if gl.GetProgramiv(prog, gl.LINK_STATUS, &ok); ok != gl.FALSE {
		return prog, nil
	}
	gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
	msg := infoLog(n, func(n int32, p *uint8) { gl.GetProgramInfoLog(prog, n, nil, p) })
	gl.DeleteProgram(prog)
	return 0, fmt.Errorf("link: %s", msg)
}

func compileShader(kind uint32, src string) (uint32, error) {
	sh := gl.CreateShader(kind)
	cs, free := gl.Strs(src)
	gl.ShaderSource(sh, 1, cs, nil)
	free()
	gl.CompileShader(sh)

	var ok, n int32
	if gl.GetShaderiv(sh, gl.COMPILE_STATUS, &ok); ok != gl.FALSE {
		return sh, nil
	}
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
	msg := infoLog(n, func(n int32, p *uint8) { gl.GetShaderInfoLog(sh, n, nil, p) })
	gl.DeleteShader(sh)
	return 0, fmt.Errorf("compile: %s", msg)
}

// infoLog reads a driver log of n bytes through get.
func infoLog(n int32, get func(int32, *uint8)) string {
	if n < 1 {
		return "unknown error"
	}
	buf := make([]uint8, n)
	get(n, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}
