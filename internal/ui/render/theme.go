package render

import "github.com/gdamore/tcell/v2"

// Theme groups the styles used by the renderer.
type Theme struct {
	File      tcell.Style
	Dir       tcell.Style
	Title     tcell.Style
	Help      tcell.Style
	HelpKey   tcell.Style
	Input     tcell.Style
	InputEdit tcell.Style
}

// DefaultTheme mirrors the classic look: cyan directories, yellow
// input while editing.
func DefaultTheme() Theme {
	return Theme{
		File:      tcell.StyleDefault,
		Dir:       tcell.StyleDefault.Foreground(tcell.ColorLightCyan),
		Title:     tcell.StyleDefault.Bold(true),
		Help:      tcell.StyleDefault.Dim(true),
		HelpKey:   tcell.StyleDefault.Foreground(tcell.ColorLightBlue).Bold(true),
		Input:     tcell.StyleDefault,
		InputEdit: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}
}
