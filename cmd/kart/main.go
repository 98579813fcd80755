package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"kart/internal/config"
)

type idArg struct {
	ID int `arg:"" help:"Catalog id."`
}

var CLI struct {
	Config string `help:"Path to a config file (default: kart.yaml lookup)." type:"path"`
	Debug  bool   `help:"Whether to enable debug logging."`

	Race struct {
		Track      int      `help:"Track id." default:"1"`
		Mode       string   `help:"Game mode." enum:"solo,multiplayer" default:"solo"`
		Frontend   string   `help:"Front end: desktop, terminal or headless. Overrides the config."`
		Ticks      int      `help:"Headless: frames to simulate." default:"600"`
		Hold       []string `help:"Headless: keys held for the whole run (e.g. arrowup,w)."`
		Abort      bool     `help:"Headless: abort instead of finishing after the last frame."`
		Screenshot string   `help:"Headless: write the final frame to this PNG file." type:"path"`
	} `cmd:"" help:"Race on an unlocked track."`

	Profile struct {
		Show  struct{} `cmd:"" help:"Print the player profile."`
		Reset struct{} `cmd:"" help:"Restore the default profile."`
	} `cmd:"" help:"Inspect or reset the player profile."`

	Garage struct {
		List      struct{} `cmd:"" help:"List cars and parts."`
		BuyCar    idArg    `cmd:"" help:"Buy a car."`
		Select    idArg    `cmd:"" help:"Select an owned car."`
		Customize struct {
			Car   int    `arg:"" help:"Car id."`
			Kind  string `arg:"" help:"Part kind." enum:"color,wheels,engine,sticker"`
			Value string `arg:"" help:"Part value or name."`
		} `cmd:"" help:"Buy a part and fit it to a car."`
	} `cmd:"" help:"Cars and customization."`

	Shop struct {
		List    struct{} `cmd:"" help:"List powers."`
		Buy     idArg    `cmd:"" help:"Buy a power."`
		Equip   idArg    `cmd:"" help:"Equip an owned power."`
		Unequip idArg    `cmd:"" help:"Unequip a power."`
	} `cmd:"" help:"Power shop."`

	Tracks   struct{} `cmd:"" help:"List tracks."`
	Tutorial struct{} `cmd:"" help:"Learn the controls."`
}

func writeError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}

func setupLogging(level string, debug bool) {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(consoleWriter)

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Warn().Msg("debug logging enabled")
	}
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("kart"),
		kong.Description("a local two-player kart racer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		writeError(err)
	}
	setupLogging(cfg.LogLevel, CLI.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch kctx.Command() {
	case "race":
		err = raceCommand(ctx, cfg)
	case "profile show":
		err = withProfile(ctx, cfg, false, showProfile)
	case "profile reset":
		err = resetProfile(ctx, cfg)
	case "garage list":
		listGarage()
	case "garage buy-car <id>":
		err = withProfile(ctx, cfg, true, buyCar(CLI.Garage.BuyCar.ID))
	case "garage select <id>":
		err = withProfile(ctx, cfg, true, selectCar(CLI.Garage.Select.ID))
	case "garage customize <car> <kind> <value>":
		c := CLI.Garage.Customize
		err = withProfile(ctx, cfg, true, customize(c.Car, c.Kind, c.Value))
	case "shop list":
		err = withProfile(ctx, cfg, false, listPowers)
	case "shop buy <id>":
		err = withProfile(ctx, cfg, true, buyPower(CLI.Shop.Buy.ID))
	case "shop equip <id>":
		err = withProfile(ctx, cfg, true, equipPower(CLI.Shop.Equip.ID))
	case "shop unequip <id>":
		err = withProfile(ctx, cfg, true, unequipPower(CLI.Shop.Unequip.ID))
	case "tracks":
		err = withProfile(ctx, cfg, false, listTracks)
	case "tutorial":
		err = tutorialCommand(ctx, cfg)
	default:
		err = fmt.Errorf("unknown command %q", kctx.Command())
	}
	if err != nil {
		stop()
		writeError(err)
	}
}
