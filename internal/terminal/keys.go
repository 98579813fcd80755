package terminal

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"kart/internal/game"
)

// KeyName maps a tcell key event to the latch key name it drives.
func KeyName(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.KeyArrowUp, true
	case tcell.KeyDown:
		return game.KeyArrowDown, true
	case tcell.KeyLeft:
		return game.KeyArrowLeft, true
	case tcell.KeyRight:
		return game.KeyArrowRight, true
	case tcell.KeyEscape:
		return game.KeyEscape, true
	case tcell.KeyEnter:
		return game.KeyEnter, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return game.KeyBackspace, true
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return game.KeySpace, true
		}
		if r > unicode.MaxASCII || !unicode.IsLetter(r) {
			return "", false
		}
		return string(unicode.ToLower(r)), true
	}
	return "", false
}

// Shifted reports whether the event carried shift, either as a modifier or
// as an upper-case letter.
func Shifted(ev *tcell.EventKey) bool {
	if ev.Modifiers()&tcell.ModShift != 0 {
		return true
	}
	return ev.Key() == tcell.KeyRune && unicode.IsUpper(ev.Rune())
}

// holdInitial covers the terminal's auto-repeat delay after the first press.
const holdInitial = 550 * time.Millisecond

// Holder turns key presses into held latch keys. Terminals report no key
// releases, so a key stays down until its repeats stop arriving.
type Holder struct {
	latch    *game.Latch
	repeat   time.Duration
	deadline map[string]time.Time
}

func NewHolder(latch *game.Latch, repeat time.Duration) *Holder {
	if repeat <= 0 {
		repeat = 180 * time.Millisecond
	}
	return &Holder{
		latch:    latch,
		repeat:   repeat,
		deadline: make(map[string]time.Time),
	}
}

// Press marks name held at now.
func (h *Holder) Press(name string, now time.Time) {
	until := now.Add(h.repeat)
	if cur, ok := h.deadline[name]; !ok {
		until = now.Add(holdInitial)
		h.latch.Set(name, true)
	} else if cur.After(until) {
		until = cur
	}
	h.deadline[name] = until
}

// Expire releases every key whose hold ran out by now.
func (h *Holder) Expire(now time.Time) {
	for name, until := range h.deadline {
		if now.Before(until) {
			continue
		}
		delete(h.deadline, name)
		h.latch.Set(name, false)
	}
}

// Held returns the number of keys currently held.
func (h *Holder) Held() int { return len(h.deadline) }
