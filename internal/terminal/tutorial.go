package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"kart/internal/game"
	"kart/internal/tutorial"
)

var (
	titleStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	textStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	doneStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
)

// Tutorial shows the steps of m until all are completed. It reports false
// when the player leaves with Escape or Ctrl-C first.
func Tutorial(ctx context.Context, scr tcell.Screen, m *tutorial.Machine) (bool, error) {
	done := make(chan struct{})
	defer close(done)
	events := pollEvents(scr, done)

	drawTutorial(scr, m)
	for !m.Done() {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return false, nil
				}
				if Shifted(ev) {
					m.Press(game.KeyShift)
				}
				if name, ok := KeyName(ev); ok {
					m.Press(name)
				}
			case *tcell.EventResize:
				scr.Sync()
			}
			drawTutorial(scr, m)
		}
	}
	return true, nil
}

func drawTutorial(scr tcell.Screen, m *tutorial.Machine) {
	scr.Clear()
	drawText(scr, 2, 1, "KART TUTORIAL", titleStyle)

	for i := 0; i < m.Len(); i++ {
		mark, st := "[ ]", textStyle
		if m.Completed(i) {
			mark, st = "[x]", doneStyle
		}
		drawText(scr, 2, 3+i, mark, st)
	}
	if step, ok := m.Current(); ok {
		drawText(scr, 6, 3+m.Index(), step.Title, titleStyle)
		drawText(scr, 2, 4+m.Len(), step.Description, textStyle)
	} else {
		drawText(scr, 2, 4+m.Len(), "All done. Ready to race!", doneStyle)
	}

	const barWidth = 30
	filled := int(m.Progress() * barWidth)
	bar := fmt.Sprintf("[%s%s] %d/%d", strings.Repeat("#", filled), strings.Repeat("-", barWidth-filled), m.Index(), m.Len())
	drawText(scr, 2, 6+m.Len(), bar, textStyle)
	drawText(scr, 2, 8+m.Len(), "ESC: leave", textStyle)
	scr.Show()
}
