package render

import (
	"github.com/gdamore/tcell/v2"
)

var markCellStyles = [...]tcell.Style{
	MarkFree:     tcell.StyleDefault.Foreground(tcell.ColorGray),
	MarkBlocked:  tcell.StyleDefault.Foreground(tcell.ColorSlateGray).Background(tcell.ColorSlateGray),
	MarkExpanded: tcell.StyleDefault.Foreground(tcell.ColorTeal),
	MarkPath:     tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	MarkStart:    tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	MarkGoal:     tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
}

// Draw paints the view at the top-left corner of screen, with the title on
// the line below the grid. The caller is responsible for Show.
func Draw(screen tcell.Screen, v View) {
	screen.Clear()
	marks := v.Marks()
	for r, row := range marks {
		for c, mark := range row {
			screen.SetContent(c, r, mark.Rune(), nil, markCellStyles[mark])
		}
	}
	for i, ch := range []rune(v.Title) {
		screen.SetContent(i, len(marks)+1, ch, nil, tcell.StyleDefault.Bold(true))
	}
}

// Display draws the view on screen and blocks until a key is pressed.
// screen is initialised here and finalised before returning.
func Display(screen tcell.Screen, v View) error {
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	Draw(screen, v)
	screen.Show()
	for {
		switch screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
			Draw(screen, v)
			screen.Show()
		case *tcell.EventKey:
			return nil
		}
	}
}

// Show opens the terminal and displays the view until a key is pressed.
func Show(v View) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	return Display(screen, v)
}
