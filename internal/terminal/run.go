// Package terminal runs races and the tutorial inside a text terminal.
package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"kart/internal/canvas"
	"kart/internal/game"
)

const frameInterval = 16 * time.Millisecond // ~60 FPS

// Race is the session wiring the terminal loop drives. The session must draw
// into Canvas and schedule on Queue.
type Race struct {
	Session *game.Session
	Queue   *game.FrameQueue
	Latch   *game.Latch
	Canvas  *canvas.Canvas
}

var statusStyle = tcell.StyleDefault.
	Foreground(tcell.NewRGBColor(255, 255, 255)).
	Background(tcell.NewRGBColor(0, 0, 0))

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func pollEvents(scr tcell.Screen, done <-chan struct{}) <-chan tcell.Event {
	ch := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := scr.PollEvent()
			if ev == nil {
				return
			}
			select {
			case ch <- ev:
			case <-done:
				return
			}
		}
	}()
	return ch
}

// Run starts the session and drives it until its end callback has fired.
// Cancelling ctx aborts the race.
func Run(ctx context.Context, scr tcell.Screen, race Race, hold time.Duration, log zerolog.Logger) error {
	done := make(chan struct{})
	defer close(done)
	events := pollEvents(scr, done)

	holder := NewHolder(race.Latch, hold)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	// overlay holds the frame with the pause or finish banner drawn on top.
	var overlay *canvas.Canvas
	show := func() {
		frame := canvas.WithBanner(overlay, race.Canvas, race.Session.Banner())
		if frame != race.Canvas {
			overlay = frame
		}
		draw(scr, frame, race.Session)
	}

	race.Session.Start()
	show()
	log.Debug().Msg("terminal race loop started")

	for !race.Session.Ended() {
		select {
		case <-ctx.Done():
			race.Session.Abort()
			return ctx.Err()

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				handleKey(race.Session, holder, ev)
			case *tcell.EventResize:
				scr.Sync()
			}
			show()

		case now := <-ticker.C:
			holder.Expire(now)
			race.Queue.Advance(now)
			if race.Queue.RunFrame() > 0 {
				show()
			}
		}
	}
	show()
	log.Debug().Uint64("ticks", race.Session.Ticks()).Msg("terminal race loop ended")
	return nil
}

func handleKey(s *game.Session, h *Holder, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		s.Abort()
		return
	}
	name, ok := KeyName(ev)
	if !ok {
		return
	}
	if s.HandleKey(name) {
		return
	}
	now := time.Now()
	if Shifted(ev) {
		h.Press(game.KeyShift, now)
	}
	h.Press(name, now)
}

func draw(scr tcell.Screen, frame *canvas.Canvas, s *game.Session) {
	cols, rows := scr.Size()
	if rows < 2 {
		return
	}
	Present(scr, frame.Image(), cols, rows-1)
	clearRow(scr, rows-1, statusStyle)
	drawText(scr, 0, rows-1, status(s), statusStyle)
	scr.Show()
}

// status is the bottom line: the HUD figures plus any banner.
func status(s *game.Session) string {
	p := s.Progress()
	line := fmt.Sprintf(" Lap %d/%d  Pos %d  Time %s  Speed %d km/h",
		p.Lap, p.TotalLaps, p.Position, game.FormatClock(p.Elapsed), int(p.Speed))
	if b := s.Banner(); b != "" {
		line += "  " + b
	}
	return line
}
