// Package headless drives a race without a display on a virtual clock,
// for scripted runs and screenshots.
package headless

import (
	"time"

	"kart/internal/game"
)

// FrameInterval is the virtual time between frames.
const FrameInterval = time.Second / 60

// Script describes a scripted run: Hold keys stay pressed for Ticks frames,
// then the race is finished or aborted.
type Script struct {
	Ticks  int
	Hold   []string
	Finish bool
}

// Run starts the session and plays the script. It returns once the end
// callback has fired.
func Run(s *game.Session, q *game.FrameQueue, l *game.Latch, sc Script) {
	for _, k := range sc.Hold {
		l.Set(k, true)
	}

	s.Start()
	now := q.Now()
	for i := 0; i < sc.Ticks && !s.Ended(); i++ {
		q.RunFrame()
		now = now.Add(FrameInterval)
		q.Advance(now)
	}
	l.Reset()

	if sc.Finish {
		s.Finish()
	} else {
		s.Abort()
	}
	for !s.Ended() {
		next, ok := q.NextDeadline()
		if !ok {
			// Nothing scheduled: the session has no scheduler to wait on.
			return
		}
		q.Advance(next)
	}
}
