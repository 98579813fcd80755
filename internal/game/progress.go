package game

import (
	"fmt"
	"math"
	"time"
)

// Progress is the race clock and standings for one session.
type Progress struct {
	Elapsed   float64 // seconds of racing time
	Lap       int
	TotalLaps int
	Position  int
	Speed     float64 // HUD value only
}

func NewProgress(totalLaps int) Progress {
	if totalLaps < 1 {
		totalLaps = DefaultTotalLaps
	}
	return Progress{Lap: 1, TotalLaps: totalLaps, Position: 1}
}

// Tick advances the clock by a fixed delta. Missed frames are not
// compensated, so a slow host slows race time with it.
func (p Progress) Tick(dt float64, lead Kart) Progress {
	if dt > 0 {
		p.Elapsed += dt
	}
	p.Speed = math.Abs(lead.Speed * SpeedDisplayFactor)
	return p
}

// Duration returns the elapsed racing time.
func (p Progress) Duration() time.Duration {
	return time.Duration(p.Elapsed * float64(time.Second))
}

// FormatClock renders seconds as m:ss, truncating fractions.
func FormatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Reward returns the coins earned for a finishing position.
func Reward(position int) int {
	switch position {
	case 1:
		return RewardFirst
	case 2:
		return RewardSecond
	}
	return RewardOther
}
