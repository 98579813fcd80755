package game

import (
	"fmt"
	"strings"
)

type GameState int

const (
	StateRacing   GameState = iota // frame loop armed
	StatePaused                    // no ticks, last frame stays on screen
	StateFinished                  // terminal
)

func (s GameState) String() string {
	switch s {
	case StateRacing:
		return "racing"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Mode is accepted at session start but does not alter the simulation.
type Mode int

const (
	ModeSolo Mode = iota
	ModeMultiplayer
)

func (m Mode) String() string {
	if m == ModeMultiplayer {
		return "multiplayer"
	}
	return "solo"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "solo":
		return ModeSolo, nil
	case "multiplayer", "multi", "versus":
		return ModeMultiplayer, nil
	}
	return ModeSolo, fmt.Errorf("unknown game mode %q", s)
}

// TrackInfo is the track descriptor handed to a session.
type TrackInfo struct {
	ID         int
	Name       string
	Theme      string
	Difficulty string
	Obstacles  []string
	Shortcuts  int
}
