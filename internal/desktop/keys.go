package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"kart/internal/game"
)

var keyNames = map[glfw.Key]string{
	glfw.KeyUp:         game.KeyArrowUp,
	glfw.KeyDown:       game.KeyArrowDown,
	glfw.KeyLeft:       game.KeyArrowLeft,
	glfw.KeyRight:      game.KeyArrowRight,
	glfw.KeyW:          game.KeyW,
	glfw.KeyA:          game.KeyA,
	glfw.KeyS:          game.KeyS,
	glfw.KeyD:          game.KeyD,
	glfw.KeyQ:          game.KeyQ,
	glfw.KeyEscape:     game.KeyEscape,
	glfw.KeyEnter:      game.KeyEnter,
	glfw.KeyKPEnter:    game.KeyEnter,
	glfw.KeyBackspace:  game.KeyBackspace,
	glfw.KeySpace:      game.KeySpace,
	glfw.KeyLeftShift:  game.KeyShift,
	glfw.KeyRightShift: game.KeyShift,
}

// KeyName maps a GLFW key to its latch name.
func KeyName(k glfw.Key) (string, bool) {
	name, ok := keyNames[k]
	return name, ok
}

// keyHandler applies one key callback to the session: control keys act on
// press, driving keys follow press and release.
type keyHandler struct {
	session *game.Session
	latch   *game.Latch
}

func (h keyHandler) handle(key glfw.Key, action glfw.Action) {
	name, ok := KeyName(key)
	if !ok {
		return
	}
	switch action {
	case glfw.Press:
		if h.session.HandleKey(name) {
			return
		}
		h.latch.Set(name, true)
	case glfw.Release:
		h.latch.Set(name, false)
	}
}
