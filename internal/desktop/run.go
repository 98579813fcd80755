// Package desktop runs a race in an OpenGL window, presenting the software
// canvas as a texture.
package desktop

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/rs/zerolog"

	"kart/internal/canvas"
	"kart/internal/game"
)

// Race is the session wiring the window loop drives. The session must draw
// into Canvas and schedule on Queue.
type Race struct {
	Session *game.Session
	Queue   *game.FrameQueue
	Latch   *game.Latch
	Canvas  *canvas.Canvas
}

// Window holds the window options.
type Window struct {
	Title string
	Scale float64
	VSync bool
}

// Run opens the window, starts the session and drives it until the end
// callback has fired. Closing the window or cancelling ctx aborts the race.
// Must be called from the main goroutine.
func Run(ctx context.Context, race Race, opts Window, log zerolog.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	cw, ch := race.Canvas.Size()
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	window, err := initWindow(int(float64(cw)*scale), int(float64(ch)*scale), opts.Title, opts.VSync)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Debug().Str("gl", gl.GoStr(gl.GetString(gl.VERSION))).Msg("opengl context ready")

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0, 0, 0, 1)

	blit, err := newBlitter(cw, ch)
	if err != nil {
		return err
	}
	defer blit.destroy()

	keys := keyHandler{session: race.Session, latch: race.Latch}
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		keys.handle(key, action)
	})
	window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if !focused {
			race.Latch.Reset()
		}
	})

	race.Session.Start()
	race.Session.Redraw()

	pace := newPacer(opts.VSync, time.Now())
	// overlay holds the frame with the pause or finish banner drawn on top.
	var overlay *canvas.Canvas

	for !race.Session.Ended() {
		if window.ShouldClose() {
			log.Info().Msg("window closed, aborting race")
			race.Session.Abort()
			break
		}
		select {
		case <-ctx.Done():
			race.Session.Abort()
			return ctx.Err()
		default:
		}

		glfw.PollEvents()
		now := time.Now()
		race.Queue.Advance(now)
		if !pace.due(now) {
			time.Sleep(pace.wait(now))
			continue
		}
		race.Queue.RunFrame()

		frame := canvas.WithBanner(overlay, race.Canvas, race.Session.Banner())
		if frame != race.Canvas {
			overlay = frame
		}
		fbW, fbH := window.GetFramebufferSize()
		blit.upload(frame.Image())
		blit.draw(fbW, fbH)
		window.SwapBuffers()
	}
	return nil
}
