package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"

	"kart/internal/catalog"
	"kart/internal/config"
	"kart/internal/terminal"
	"kart/internal/tutorial"
)

func tutorialCommand(ctx context.Context, cfg config.Config) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	p, loadErr := store.Load(ctx)
	if loadErr != nil {
		log.Warn().Err(loadErr).Msg("Using default profile; progress will not be saved")
	}

	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	m := tutorial.New(catalog.TutorialSteps)
	done, err := terminal.Tutorial(ctx, scr, m)
	scr.Fini()
	if err != nil {
		return err
	}
	if !done {
		fmt.Printf("Tutorial left at step %d of %d.\n", m.Index()+1, m.Len())
		return nil
	}

	p.CompleteTutorial()
	if loadErr != nil {
		return fmt.Errorf("tutorial complete, but not saved: %w", loadErr)
	}
	if !store.Save(ctx, p) {
		return fmt.Errorf("profile was not saved")
	}
	fmt.Println("Tutorial complete. Ready to race!")
	return nil
}
