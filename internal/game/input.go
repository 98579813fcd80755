package game

import (
	"strings"
	"sync"
)

// Logical key names. Front ends translate device codes into these.
const (
	KeyArrowUp    = "arrowup"
	KeyArrowDown  = "arrowdown"
	KeyArrowLeft  = "arrowleft"
	KeyArrowRight = "arrowright"
	KeyW          = "w"
	KeyA          = "a"
	KeyS          = "s"
	KeyD          = "d"
	KeyEscape     = "escape"
	KeyEnter      = "enter"
	KeySpace      = " "
	KeyShift      = "shift"
	KeyBackspace  = "backspace"
	KeyQ          = "q"
)

// Latch records the last-known pressed state of each logical key.
// Writers are input callbacks, the frame loop is the only reader. Key names
// are case-insensitive.
type Latch struct {
	mu   sync.RWMutex
	keys map[string]bool
	prev map[string]bool
}

func NewLatch() *Latch {
	return &Latch{
		keys: make(map[string]bool),
		prev: make(map[string]bool),
	}
}

// Set stores the pressed state of a key. Last write wins.
func (l *Latch) Set(name string, pressed bool) {
	name = strings.ToLower(name)
	l.mu.Lock()
	l.keys[name] = pressed
	l.mu.Unlock()
}

// Pressed reports whether the key is currently held.
func (l *Latch) Pressed(name string) bool {
	name = strings.ToLower(name)
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.keys[name]
}

// JustPressed reports a released→held transition since the previous
// JustPressed call for the same key. Used by shells for one-shot actions.
func (l *Latch) JustPressed(name string) bool {
	name = strings.ToLower(name)
	l.mu.Lock()
	defer l.mu.Unlock()
	down := l.keys[name]
	jp := down && !l.prev[name]
	l.prev[name] = down
	return jp
}

// Reset releases every key.
func (l *Latch) Reset() {
	l.mu.Lock()
	clear(l.keys)
	clear(l.prev)
	l.mu.Unlock()
}

// ControlSet binds the four driving actions of one kart to key names.
type ControlSet struct {
	Forward, Back, Left, Right string
}

var (
	ArrowControls = ControlSet{Forward: KeyArrowUp, Back: KeyArrowDown, Left: KeyArrowLeft, Right: KeyArrowRight}
	WASDControls  = ControlSet{Forward: KeyW, Back: KeyS, Left: KeyA, Right: KeyD}
)

// Controls is one tick's sample of a ControlSet.
type Controls struct {
	Forward, Back, Left, Right bool
}

// Sample reads the bound keys from the latch.
func (cs ControlSet) Sample(l *Latch) Controls {
	if l == nil {
		return Controls{}
	}
	return Controls{
		Forward: l.Pressed(cs.Forward),
		Back:    l.Pressed(cs.Back),
		Left:    l.Pressed(cs.Left),
		Right:   l.Pressed(cs.Right),
	}
}
