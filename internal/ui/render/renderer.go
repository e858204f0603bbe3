// Package render draws the browser onto a tcell screen. It is a thin
// presentation layer: all decisions about what is visible are made by
// the engine; the renderer only reads.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/okabe-dev/peruse/internal/engine"
	"github.com/okabe-dev/peruse/internal/fs"
	"github.com/okabe-dev/peruse/internal/nav"
	"github.com/okabe-dev/peruse/internal/preview"
)

const loadedAtFormat = "2006-01-02 15:04:05"

// Renderer handles all UI drawing.
type Renderer struct {
	screen tcell.Screen
	theme  Theme
	status string
}

// SetStatus sets a one-shot status message shown instead of the help
// line on the next frame; an empty string clears it.
func (r *Renderer) SetStatus(msg string) { r.status = msg }

// NewRenderer creates a renderer over an initialized screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, theme: DefaultTheme()}
}

// Render draws the full frame for the current mode.
func (r *Renderer) Render(b *engine.Browser, state *nav.State) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w == 0 || h < 4 {
		r.screen.Show()
		return
	}

	if state.IsFileView() && b.Document() != nil {
		r.drawFileView(b, w, h)
	} else {
		r.drawListView(b, state, w, h)
	}
	r.drawInputLine(b, state, w, h)
	r.drawHelpLine(state, w, h)

	r.screen.Show()
}

// drawListView renders the title row plus the filtered selection:
// relative paths in browse mode, absolute paths in history mode.
func (r *Renderer) drawListView(b *engine.Browser, state *nav.State, w, h int) {
	eng := b.Engine()
	selected := eng.Selected()

	title := r.listTitle(eng, state)
	r.drawLine(0, w, title, r.theme.Title)

	highlight, ok := b.HighlightIndex()
	if !ok {
		return
	}

	listHeight := h - 3 // title, input, help
	top := 0
	if highlight >= listHeight-1 {
		top = highlight - (listHeight - 2)
	}

	y := 1
	for i := top; i < len(selected) && y < h-2; i++ {
		text, err := renderEntryText(eng, state, selected[i])
		if err != nil {
			continue
		}
		style := r.theme.File
		if !selected[i].IsFile {
			style = r.theme.Dir
		}
		if i == highlight {
			style = style.Reverse(true)
		}
		r.drawLine(y, w, text, style)
		y++
	}
}

func (r *Renderer) listTitle(eng *engine.Engine, state *nav.State) string {
	if state.IsHistorySearch() {
		return fmt.Sprintf("History: %d items", len(eng.Selected()))
	}
	title := eng.CurrentDirectory()
	if snap, err := eng.Peek(); err == nil {
		title = fmt.Sprintf("%s  (%s)", title, snap.LoadedAt.Format(loadedAtFormat))
	}
	return title
}

// renderEntryText mirrors the engine's selection semantics: history
// rows are absolute cache keys, browse rows are relative names. History
// rows must not touch the filesystem: an entry whose directory has been
// deleted externally still occupies a highlight index and must stay
// visible until the user activates it and the engine drops it.
func renderEntryText(eng *engine.Engine, state *nav.State, ent fs.Entry) (string, error) {
	if state.IsHistorySearch() {
		return ent.FullPath(), nil
	}
	return ent.RelativeTo(eng.CurrentDirectory())
}

// drawFileView renders the opened file with its scroll offsets.
func (r *Renderer) drawFileView(b *engine.Browser, w, h int) {
	r.drawLine(0, w, b.OpenedPath(), r.theme.Title)

	text, ok := b.Document().(*preview.FileText)
	if !ok {
		return
	}
	vScroll, hScroll := b.Scroll()

	y := 1
	for row := vScroll; row < len(text.Lines) && y < h-2; row++ {
		x := -hScroll
		for _, span := range text.Lines[row].Spans {
			x = r.drawSpan(x, y, w, span.Text, span.Style)
			if x >= w {
				break
			}
		}
		y++
	}
}

func (r *Renderer) drawInputLine(b *engine.Browser, state *nav.State, w, h int) {
	style := r.theme.Input
	if state.IsEdit() {
		style = r.theme.InputEdit
	}
	query := b.Engine().Filter()
	r.drawLine(h-2, w, "> "+query, style)
	if state.IsEdit() {
		r.screen.ShowCursor(min(2+runewidth.StringWidth(query), w-1), h-2)
	} else {
		r.screen.HideCursor()
	}
}

func (r *Renderer) drawHelpLine(state *nav.State, w, h int) {
	if r.status != "" {
		r.drawLine(h-1, w, r.status, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}
	var help string
	switch {
	case state.IsFileView():
		help = "q back  j/k scroll  h/l pan  PgUp/PgDn  Home/End"
	case state.IsHistorySearch():
		help = "Tab browse  Enter open  type to filter history"
	case state.IsEdit():
		help = "Tab normal  Enter open  Ctrl+U clear  type to filter"
	default:
		help = "Tab filter  h history  e expand  c collapse  u refresh  Ctrl+D delete  Ctrl+K parent  q quit"
	}
	r.drawLine(h-1, w, help, r.theme.Help)
}

// drawLine writes text onto row y, clipped to the screen width.
func (r *Renderer) drawLine(y, w int, text string, style tcell.Style) {
	x := r.drawSpan(0, y, w, text, style)
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawSpan writes text starting at x (which may be negative under
// horizontal scroll) and returns the next column.
func (r *Renderer) drawSpan(x, y, w int, text string, style tcell.Style) int {
	for _, ru := range text {
		rw := runewidth.RuneWidth(ru)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= w {
			r.screen.SetContent(x, y, ru, nil, style)
		}
		x += rw
		if x >= w {
			break
		}
	}
	return x
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
