package desktop

import (
	"time"

	"kart/internal/game"
)

// pacer admits at most one frame per interval. With vsync on the interval is
// zero and the buffer swap paces the loop instead.
type pacer struct {
	interval time.Duration
	next     time.Time
}

func newPacer(vsync bool, now time.Time) *pacer {
	p := &pacer{next: now}
	if !vsync {
		p.interval = time.Second / game.TickRate
	}
	return p
}

// due reports whether a frame may run at now. A loop that fell more than one
// interval behind resumes from now rather than bursting to catch up.
func (p *pacer) due(now time.Time) bool {
	if p.interval <= 0 {
		return true
	}
	if now.Before(p.next) {
		return false
	}
	p.next = p.next.Add(p.interval)
	if p.next.Before(now) {
		p.next = now.Add(p.interval)
	}
	return true
}

// wait is how long until the next frame is due.
func (p *pacer) wait(now time.Time) time.Duration {
	if d := p.next.Sub(now); d > 0 {
		return d
	}
	return 0
}
