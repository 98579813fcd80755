package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewProgress(t *testing.T) {
	p := NewProgress(0)
	assert.Equal(t, Progress{Lap: 1, TotalLaps: DefaultTotalLaps, Position: 1}, p)
	assert.Equal(t, 5, NewProgress(5).TotalLaps)
}

func TestProgress_Tick(t *testing.T) {
	p := NewProgress(3)
	lead := Kart{Speed: -2}
	for i := 0; i < TickRate; i++ {
		p = p.Tick(TickDelta, lead)
	}
	assert.InDelta(t, 1.0, p.Elapsed, 1e-9)
	assert.InDelta(t, 40.0, p.Speed, 1e-12)
	assert.InDelta(t, float64(time.Second), float64(p.Duration()), float64(time.Millisecond))

	before := p.Elapsed
	p = p.Tick(-1, lead)
	assert.Equal(t, before, p.Elapsed)
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0:00"},
		{9.99, "0:09"},
		{61, "1:01"},
		{600.5, "10:00"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatClock(tt.in))
	}
}

func TestReward(t *testing.T) {
	assert.Equal(t, 100, Reward(1))
	assert.Equal(t, 50, Reward(2))
	assert.Equal(t, 25, Reward(3))
	assert.Equal(t, 25, Reward(8))
}
