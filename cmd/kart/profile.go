package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog/log"

	"kart/internal/catalog"
	"kart/internal/config"
	"kart/internal/game"
	"kart/internal/profile"
)

func openStore(cfg config.Config) (*profile.Store, error) {
	if cfg.Profile.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Profile.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create profile directory: %w", err)
		}
	}
	return profile.Open(cfg.Profile.Path, log.With().Str("component", "profile").Logger())
}

// withProfile loads the profile, runs fn on it and saves it when save is set
// and fn succeeded.
func withProfile(ctx context.Context, cfg config.Config, save bool, fn func(*profile.Profile) error) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.Load(ctx)
	if err != nil {
		if save {
			return fmt.Errorf("%w; the stored profile is left untouched", err)
		}
		log.Warn().Err(err).Msg("Using default profile")
	}
	if err := fn(&p); err != nil {
		return err
	}
	if save && !store.Save(ctx, p) {
		return fmt.Errorf("profile was not saved")
	}
	return nil
}

func resetProfile(ctx context.Context, cfg config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	p, ok := store.Reset(ctx)
	if !ok {
		return fmt.Errorf("profile was not saved")
	}
	return showProfile(&p)
}

func showProfile(p *profile.Profile) error {
	car, _ := catalog.CarByID(p.SelectedCar)
	stats, _ := p.Stats(p.SelectedCar)

	fmt.Printf("%s (level %d)\n", p.Name, p.Level)
	fmt.Printf("Coins:    %d\n", p.Coins)
	fmt.Printf("Races:    %d (%d victories)\n", p.TotalRaces, p.Victories)
	fmt.Printf("Tutorial: %v\n", p.CompletedTutorial)
	fmt.Printf("Car:      %s  speed %d  accel %d  handling %d\n", car.Name, stats.Speed, stats.Acceleration, stats.Handling)
	fmt.Printf("Powers:   %s\n", powerNames(p.EquippedPowers))

	for _, t := range catalog.Tracks {
		if best, ok := p.BestTimes[t.ID]; ok {
			fmt.Printf("Best %-18s %s\n", t.Name+":", game.FormatClock(best.Seconds()))
		}
	}
	return nil
}

func powerNames(ids []int) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if pw, ok := catalog.PowerByID(id); ok {
			names = append(names, pw.Name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ", ")
}

func listTracks(p *profile.Profile) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTHEME\tDIFFICULTY\tSHORTCUTS\tSTATUS")
	for _, t := range catalog.Tracks {
		status := "locked"
		if p.TrackUnlocked(t.ID) {
			status = "unlocked"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n", t.ID, t.Name, t.Theme, t.Difficulty, t.Shortcuts, status)
	}
	return w.Flush()
}

func listGarage() {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCAR\tSPEED\tACCEL\tHANDLING\tPRICE")
	for _, c := range catalog.Cars {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\n", c.ID, c.Name, c.Speed, c.Acceleration, c.Handling, c.Price)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "KIND\tPART\tVALUE\tPRICE\tBONUS")
	for _, kind := range []catalog.PartKind{catalog.PartColor, catalog.PartWheels, catalog.PartEngine, catalog.PartSticker} {
		for _, part := range catalog.Parts(kind) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", kind, part.Name, part.Value, part.Price, bonus(part))
		}
	}
	w.Flush()
}

func bonus(p catalog.Part) string {
	var parts []string
	if p.Speed != 0 {
		parts = append(parts, fmt.Sprintf("speed +%d", p.Speed))
	}
	if p.Acceleration != 0 {
		parts = append(parts, fmt.Sprintf("accel +%d", p.Acceleration))
	}
	if p.Handling != 0 {
		parts = append(parts, fmt.Sprintf("handling +%d", p.Handling))
	}
	return strings.Join(parts, ", ")
}

func listPowers(p *profile.Profile) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Coins: %d  Slots: %d/%d\n\n", p.Coins, len(p.EquippedPowers), catalog.MaxEquippedPowers)
	fmt.Fprintln(w, "ID\tPOWER\tPRICE\tCOOLDOWN\tSTATUS\tDESCRIPTION")
	for _, pw := range catalog.Powers {
		status := ""
		switch {
		case p.Equipped(pw.ID):
			status = "equipped"
		case p.OwnsPower(pw.ID):
			status = "owned"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n", pw.ID, pw.Name, pw.Price, pw.Cooldown, status, pw.Description)
	}
	return w.Flush()
}

func buyCar(id int) func(*profile.Profile) error {
	return func(p *profile.Profile) error {
		if err := p.BuyCar(id); err != nil {
			return err
		}
		car, _ := catalog.CarByID(id)
		fmt.Printf("Bought %s. %d coins left.\n", car.Name, p.Coins)
		return nil
	}
}

func selectCar(id int) func(*profile.Profile) error {
	return func(p *profile.Profile) error {
		if err := p.SelectCar(id); err != nil {
			return err
		}
		car, _ := catalog.CarByID(id)
		fmt.Printf("%s selected.\n", car.Name)
		return nil
	}
}

func customize(carID int, kindName, value string) func(*profile.Profile) error {
	return func(p *profile.Profile) error {
		kind, ok := catalog.ParsePartKind(kindName)
		if !ok {
			return fmt.Errorf("part kind %q: %w", kindName, profile.ErrUnknownItem)
		}
		if err := p.BuyPart(carID, kind, value); err != nil {
			return err
		}
		stats, _ := p.Stats(carID)
		fmt.Printf("Fitted %s %s. %d coins left. Speed %d, accel %d, handling %d.\n",
			kind, value, p.Coins, stats.Speed, stats.Acceleration, stats.Handling)
		return nil
	}
}

func buyPower(id int) func(*profile.Profile) error {
	return func(p *profile.Profile) error {
		if err := p.BuyPower(id); err != nil {
			return err
		}
		pw, _ := catalog.PowerByID(id)
		fmt.Printf("Bought %s. %d coins left.\n", pw.Name, p.Coins)
		return nil
	}
}

func equipPower(id int) func(*profile.Profile) error {
	return func(p *profile.Profile) error {
		if err := p.Equip(id); err != nil {
			return err
		}
		fmt.Printf("Equipped: %s\n", powerNames(p.EquippedPowers))
		return nil
	}
}

func unequipPower(id int) func(*profile.Profile) error {
	return func(p *profile.Profile) error {
		if err := p.Unequip(id); err != nil {
			return err
		}
		fmt.Printf("Equipped: %s\n", powerNames(p.EquippedPowers))
		return nil
	}
}
