package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"kart/internal/audio"
	"kart/internal/canvas"
	"kart/internal/config"
	"kart/internal/desktop"
	"kart/internal/game"
	"kart/internal/headless"
	"kart/internal/profile"
	"kart/internal/terminal"
)

func raceCommand(ctx context.Context, cfg config.Config) error {
	args := CLI.Race
	frontend := cfg.Frontend
	if args.Frontend != "" {
		frontend = args.Frontend
	}
	switch frontend {
	case config.FrontendDesktop, config.FrontendTerminal, config.FrontendHeadless:
	default:
		return fmt.Errorf("frontend %q: want desktop, terminal or headless", frontend)
	}
	mode, err := game.ParseMode(args.Mode)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	p, loadErr := store.Load(ctx)
	if loadErr != nil {
		log.Warn().Err(loadErr).Msg("Using default profile; the race result will not be saved")
	}
	track, err := p.CheckTrack(args.Track)
	if err != nil {
		return err
	}

	logger := log.With().Str("component", "race").Logger()
	if frontend == config.FrontendTerminal {
		// The terminal owns the screen while racing.
		logger = logger.Level(zerolog.WarnLevel)
	}

	seed := cfg.Race.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	opts := game.Options{
		Track:        track.Info(),
		Mode:         mode,
		Seed:         seed,
		TotalLaps:    cfg.Race.TotalLaps,
		Colors:       [2]game.RGB{p.KartColor()},
		PreviousBest: p.BestTimes[track.ID],
		Collector:    game.ProximityCollector{Radius: cfg.Race.CollectRadius},
		FinishDelay:  cfg.Race.FinishDelay,
	}

	var (
		result game.Result
		ended  bool
	)
	latch := game.NewLatch()
	queue := game.NewFrameQueue(time.Now())
	session := game.NewSession(opts, queue, latch, func(r game.Result) {
		result, ended = r, true
	})

	w, h := int(game.WorldWidth), int(game.WorldHeight)
	if frontend == config.FrontendTerminal {
		w, h = w/2, h/2
	}
	cv := canvas.New(w, h)
	session.SetSurface(func() game.Surface { return cv })

	events := game.NewEventBus()
	logEvents(events, logger)
	session.SetEvents(events)

	if cfg.Audio.Enabled && frontend != config.FrontendHeadless {
		player, err := audio.New(cfg.Audio.SFXVolume, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("audio init failed, continuing without sound")
		} else {
			player.Attach(events)
			defer player.Wait()
		}
	}

	logger.Info().
		Str("track", track.Name).
		Str("mode", mode.String()).
		Str("frontend", frontend).
		Uint64("seed", seed).
		Msg("race starting")

	switch frontend {
	case config.FrontendDesktop:
		err = desktop.Run(ctx, desktop.Race{Session: session, Queue: queue, Latch: latch, Canvas: cv}, desktop.Window{
			Title: "Kart - " + track.Name,
			Scale: cfg.Window.Scale,
			VSync: cfg.Window.VSync,
		}, logger)
	case config.FrontendTerminal:
		err = runTerminal(ctx, terminal.Race{Session: session, Queue: queue, Latch: latch, Canvas: cv}, cfg.Terminal.HoldTimeout, logger)
	case config.FrontendHeadless:
		headless.Run(session, queue, latch, headless.Script{Ticks: args.Ticks, Hold: args.Hold, Finish: !args.Abort})
		if args.Screenshot != "" {
			if err := canvas.WithBanner(nil, cv, session.Banner()).SavePNG(args.Screenshot); err != nil {
				return err
			}
			logger.Info().Str("path", args.Screenshot).Msg("screenshot saved")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if !ended {
		return fmt.Errorf("race ended without a result")
	}

	saveResult(context.WithoutCancel(ctx), store, &p, loadErr == nil, track.ID, result, logger)
	printResult(track.Name, result, p.Coins)
	return nil
}

// saveResult applies the race result to p and persists it. A profile that
// failed to load is never written back over the stored one.
func saveResult(ctx context.Context, store *profile.Store, p *profile.Profile, loaded bool, trackID int, r game.Result, logger zerolog.Logger) bool {
	if !p.ApplyResult(trackID, r) {
		return false
	}
	if !loaded {
		logger.Warn().Msg("race result was not saved: stored profile could not be read")
		return false
	}
	if !store.Save(ctx, *p) {
		logger.Warn().Msg("race result was not saved")
		return false
	}
	return true
}

func runTerminal(ctx context.Context, race terminal.Race, hold time.Duration, logger zerolog.Logger) error {
	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer scr.Fini()
	return terminal.Run(ctx, scr, race, hold, logger)
}

// logEvents traces session events at debug level.
func logEvents(eb *game.EventBus, logger zerolog.Logger) {
	for _, t := range []game.EventType{
		game.EventRaceStarted,
		game.EventPaused,
		game.EventResumed,
		game.EventPowerUpCollected,
		game.EventRaceFinished,
		game.EventRaceAborted,
		game.EventRaceEnded,
	} {
		eb.Subscribe(t, func(e game.Event) {
			logger.Debug().
				Str("event", e.Type.String()).
				Int("kart", e.Kart).
				Int("data", e.Data).
				Msg("session event")
		})
	}
}

func printResult(track string, r game.Result, coins int) {
	if r.Aborted {
		fmt.Printf("Race on %s aborted after %s.\n", track, game.FormatClock(r.Elapsed.Seconds()))
		return
	}
	fmt.Printf("Finished %s in position %d after %s: +%d coins (%d total).\n",
		track, r.Position, game.FormatClock(r.Elapsed.Seconds()), r.CoinsEarned, coins)
	if r.NewBest {
		fmt.Println("New best time!")
	}
}
