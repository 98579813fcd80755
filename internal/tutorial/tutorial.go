// Package tutorial walks a player through the controls one step at a time.
package tutorial

import (
	"strings"

	"kart/internal/catalog"
	"kart/internal/game"
)

// Machine is a linear step machine. Each step completes on its gating key.
type Machine struct {
	steps     []catalog.TutorialStep
	completed []bool
	current   int
}

func New(steps []catalog.TutorialStep) *Machine {
	return &Machine{
		steps:     steps,
		completed: make([]bool, len(steps)),
	}
}

// Satisfies reports whether a key press completes a step with the action.
func Satisfies(action, key string) bool {
	key = strings.ToLower(key)
	switch action {
	case catalog.ActionMove:
		return key == game.KeyArrowUp || key == game.KeyArrowDown
	case catalog.ActionTurn:
		return key == game.KeyArrowLeft || key == game.KeyArrowRight
	case catalog.ActionPower:
		return key == game.KeySpace
	case catalog.ActionNitro:
		return key == game.KeyShift
	case catalog.ActionCustomize:
		return true
	}
	return false
}

// Press feeds a key to the current step. It returns true when the key
// completed the step; the machine then moves to the next one.
func (m *Machine) Press(key string) bool {
	if m.Done() {
		return false
	}
	if !Satisfies(m.steps[m.current].Action, key) {
		return false
	}
	m.completed[m.current] = true
	m.current++
	return true
}

// Current returns the step waiting for input.
func (m *Machine) Current() (catalog.TutorialStep, bool) {
	if m.Done() {
		return catalog.TutorialStep{}, false
	}
	return m.steps[m.current], true
}

func (m *Machine) Index() int { return m.current }
func (m *Machine) Len() int   { return len(m.steps) }
func (m *Machine) Done() bool { return m.current >= len(m.steps) }

// Completed reports whether step i has been passed.
func (m *Machine) Completed(i int) bool {
	return i >= 0 && i < len(m.completed) && m.completed[i]
}

// Progress is the completed fraction in [0,1].
func (m *Machine) Progress() float64 {
	if len(m.steps) == 0 {
		return 1
	}
	return float64(m.current) / float64(len(m.steps))
}
